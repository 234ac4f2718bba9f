// Package storage provides remote access to page renders: an HTTP fetcher for
// scoring requests and an Azure blob uploader for baseline captures.
package storage

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// ImageFetcher retrieves a page render from a URL.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) (*imaging.RGB, error)
}

// HTTPImageFetcher implements ImageFetcher over plain HTTP with retries.
type HTTPImageFetcher struct {
	client *http.Client
}

// NewHTTPImageFetcher creates an HTTP image fetcher tuned for single-image
// downloads of page renders.
func NewHTTPImageFetcher(timeout time.Duration) ImageFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) (*imaging.RGB, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/png, image/jpeg, */*")
	req.Header.Set("User-Agent", "superdoc-visual-benchmarks/1.0")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		resp, err = h.client.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}

		if err != nil {
			lastErr = err
			resp = nil
		} else {
			// 4xx client errors are non-retryable.
			retryable := resp.StatusCode >= 500
			lastErr = fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
			resp.Body.Close()
			resp = nil
			if !retryable {
				break
			}
		}

		if attempt < 2 {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}

	if resp == nil {
		return nil, fmt.Errorf("failed to fetch image after 3 attempts: %w", lastErr)
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.FromImage(img), nil
}
