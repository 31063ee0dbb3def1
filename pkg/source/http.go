// ABOUTME: HTTP MP3 streaming source
// ABOUTME: Fetches a URL and decodes the response body as MP3
package source

import (
	"fmt"
	"net/http"
)

// NewHTTP streams MP3 from an HTTP URL. The stream ends at EOF.
func NewHTTP(url string) (*MP3, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch HTTP stream: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	src, err := NewMP3(resp.Body, "HTTP Stream")
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	src.artist = "HTTP Stream"
	src.album = ""
	return src, nil
}
