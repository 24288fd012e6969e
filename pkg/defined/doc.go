// Package defined provides the public contract for the Defined Networking
// API client: resource client interfaces, typed request and response
// structures, the error model, and pagination helpers.
//
// Use github.com/rrajpuro/defined-go/pkg/dnclient to construct a client:
//
//	client, err := dnclient.New(&defined.Config{
//		APIKey: "dnkey-...",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	hosts, err := client.Hosts().List(ctx, nil)
//
// API keys are created at https://admin.defined.net/settings/api-keys. For
// full API documentation, see https://docs.defined.net/.
package defined

// Version is the client library version reported in the User-Agent header.
const Version = "0.2.0"
