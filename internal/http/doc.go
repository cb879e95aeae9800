// Package http provides a small HTTP client for fetching video thumbnails.
//
//	client := http.NewClient()
//	data, err := client.DownloadBytes(ctx, thumbnailURL)
package http
