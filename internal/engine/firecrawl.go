package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Firecrawl scrape client. Used by the transcript scrape paths to obtain a
// rendered (JS-executed) view of a watch page, which a plain GET never sees.

const firecrawlDefaultBase = "https://api.firecrawl.dev"

// ErrScrapeNotConfigured is returned before any network call when the
// Firecrawl API key is missing.
var ErrScrapeNotConfigured = errors.New("firecrawl is not configured: set FIRECRAWL_API_KEY")

// ScrapeData is the rendered page content in the requested formats.
type ScrapeData struct {
	HTML     string `json:"html,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
	WaitFor int64    `json:"waitFor,omitempty"` // milliseconds
}

type scrapeResponse struct {
	Success bool        `json:"success"`
	Data    *ScrapeData `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ScrapePage fetches a rendered page via Firecrawl. formats is any subset of
// "html" and "markdown". When markdown is requested but the response only
// carries HTML, the markdown is produced locally from that HTML.
func ScrapePage(ctx context.Context, pageURL string, formats []string, waitFor time.Duration) (*ScrapeData, error) {
	if cfg.FirecrawlAPIKey == "" {
		return nil, ErrScrapeNotConfigured
	}
	metrics.ScrapeRequests.Add(1)

	base := cfg.FirecrawlAPIBase
	if base == "" {
		base = firecrawlDefaultBase
	}

	reqBody, err := json.Marshal(scrapeRequest{
		URL:     pageURL,
		Formats: formats,
		WaitFor: waitFor.Milliseconds(),
	})
	if err != nil {
		return nil, err
	}

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v1/scrape", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+cfg.FirecrawlAPIKey)
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		metrics.ScrapeErrors.Add(1)
		return nil, fmt.Errorf("firecrawl scrape: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ScrapeErrors.Add(1)
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("firecrawl HTTP %d: %s", resp.StatusCode, snippet)
	}

	var sr scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		metrics.ScrapeErrors.Add(1)
		return nil, fmt.Errorf("decode firecrawl response: %w", err)
	}
	if !sr.Success || sr.Data == nil {
		metrics.ScrapeErrors.Add(1)
		if sr.Error != "" {
			return nil, fmt.Errorf("firecrawl scrape failed: %s", sr.Error)
		}
		return nil, errors.New("firecrawl scrape failed: no data returned")
	}

	if hasFormat(formats, "markdown") && sr.Data.Markdown == "" && sr.Data.HTML != "" {
		if md, err := htmltomarkdown.ConvertString(sr.Data.HTML); err == nil {
			sr.Data.Markdown = md
		}
	}

	return sr.Data, nil
}

func hasFormat(formats []string, want string) bool {
	for _, f := range formats {
		if f == want {
			return true
		}
	}
	return false
}
