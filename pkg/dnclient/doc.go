// Package dnclient provides the main entry point for creating Defined
// Networking API clients.
//
// Basic usage:
//
//	client, err := dnclient.New(&defined.Config{
//		APIKey: os.Getenv("DN_API_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	hosts, err := client.Hosts().List(ctx, nil)
package dnclient
