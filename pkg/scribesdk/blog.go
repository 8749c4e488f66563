package scribesdk

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// GenerateBlog submits a YouTube URL for document generation and returns the
// generated post. regen forces regeneration when a document for the URL
// already exists. The flag goes over the wire as a string because that is
// what the endpoint expects.
func (c *Client) GenerateBlog(ctx context.Context, url string, regen bool) (*BlogPost, error) {
	body := map[string]string{
		"url":   url,
		"regen": strconv.FormatBool(regen),
	}

	var out BlogPost
	err := c.do(ctx, &request{method: http.MethodPost, path: "/blog/generate-from-youtube/", body: body}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBlogs returns the caller's documents, newest first.
func (c *Client) ListBlogs(ctx context.Context) ([]BlogPost, error) {
	var out []BlogPost
	if err := c.do(ctx, &request{method: http.MethodGet, path: "/blog/my-blogs/"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBlog fetches a single document by id.
func (c *Client) GetBlog(ctx context.Context, id int) (*BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, &request{method: http.MethodGet, path: fmt.Sprintf("/blog/my-blogs/%d/", id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBlog removes a document by id.
func (c *Client) DeleteBlog(ctx context.Context, id int) error {
	return c.do(ctx, &request{method: http.MethodDelete, path: fmt.Sprintf("/blog/my-blogs/%d/", id)}, nil)
}
