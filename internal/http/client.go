package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "youtube-downloader"

// maxBodySize caps in-memory downloads. Thumbnails are well below it.
const maxBodySize = 20 << 20

// Client wraps HTTP operations used for video side assets such as
// thumbnails. Media streams are fetched by yt-dlp, not by this client.
//
// Example usage:
//
//	client := NewClient()
//	jpeg, err := client.DownloadBytes(ctx, "https://i.ytimg.com/vi/ID/maxresdefault.jpg")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client with a 60 second timeout and the
// default User-Agent header.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: DefaultUserAgent,
	}
}

// WithHTTPClient returns a copy of c that sends requests through hc.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := *c
	cp.httpClient = hc
	return &cp
}

// Get performs a GET request and returns the response body.
//
// Returns an error if the request fails, the response status is not 200 OK,
// or the body is larger than maxBodySize.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, maxBodySize)
	}

	return body, nil
}

// DownloadBytes downloads a small file such as a thumbnail into memory.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
