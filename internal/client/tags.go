package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rrajpuro/defined-go/internal/http"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// TagsClient implements defined.TagsClient. Tag names are "key:value"
// strings and are percent-encoded when interpolated into paths so the
// embedded colon cannot corrupt routing.
type TagsClient struct {
	httpClient *http.Client
}

// NewTagsClient creates a new tags client.
func NewTagsClient(httpClient *http.Client) *TagsClient {
	return &TagsClient{httpClient: httpClient}
}

// Create implements defined.TagsClient.Create.
func (c *TagsClient) Create(ctx context.Context, request *defined.TagCreateRequest) (*defined.Tag, error) {
	resp, err := c.httpClient.Post(ctx, "/v1/tags", request)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	return unwrapData[defined.Tag](resp.Body)
}

// List implements defined.TagsClient.List. Tag listing uses the v2
// endpoint; every sibling operation stays on v1.
func (c *TagsClient) List(ctx context.Context, opts *defined.ListOptions) (*defined.ListResponse[defined.Tag], error) {
	resp, err := c.httpClient.Get(ctx, "/v2/tags", opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	return unwrapList[defined.Tag](resp.Body)
}

// Get implements defined.TagsClient.Get.
func (c *TagsClient) Get(ctx context.Context, tag string) (*defined.Tag, error) {
	path := "/v1/tags/" + url.PathEscape(tag)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}

	return unwrapData[defined.Tag](resp.Body)
}

// Update implements defined.TagsClient.Update. ConfigOverrides is
// full-replace on the server side.
func (c *TagsClient) Update(ctx context.Context, tag string, request *defined.TagUpdateRequest) (*defined.Tag, error) {
	path := "/v1/tags/" + url.PathEscape(tag)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating tag: %w", err)
	}

	return unwrapData[defined.Tag](resp.Body)
}

// Delete implements defined.TagsClient.Delete.
func (c *TagsClient) Delete(ctx context.Context, tag string) error {
	path := "/v1/tags/" + url.PathEscape(tag)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	return nil
}
