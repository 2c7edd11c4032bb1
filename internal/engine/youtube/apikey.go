package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sync"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// KeyCache holds the current Innertube API key. The key ships with a
// known-good default and is replaced in place when requests using it start
// failing; refresh scrapes the key YouTube embeds in its own homepage.
// Sharing one cache across calls amortizes the refresh round trip.
type KeyCache struct {
	mu  sync.Mutex
	key string
}

// NewKeyCache returns a cache seeded with def, or with the built-in default
// when def is empty.
func NewKeyCache(def string) *KeyCache {
	if def == "" {
		def = DefaultInnertubeKey
	}
	return &KeyCache{key: def}
}

// Current returns the key currently in use.
func (k *KeyCache) Current() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.key
}

func (k *KeyCache) set(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.key = key
}

// Ordered patterns for the key embedded in the homepage: a JSON string field
// under two possible spellings, or a URL query parameter.
var keyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"INNERTUBE_API_KEY":"([^"]+)"`),
	regexp.MustCompile(`innertubeApiKey":"([^"]+)"`),
	regexp.MustCompile(`api_key=([A-Za-z0-9_-]+)`),
}

// extractInnertubeKey scans a homepage body for an embedded API key,
// trying each pattern in order.
func extractInnertubeKey(body string) (string, error) {
	for _, re := range keyPatterns {
		if m := re.FindStringSubmatch(body); len(m) >= 2 && m[1] != "" {
			return m[1], nil
		}
	}
	return "", errors.New("no API key pattern matched in homepage")
}

// Refresh fetches the homepage with a browser-shaped client and replaces the
// cached key with whatever is embedded there. On failure the cached key is
// left untouched; the caller decides whether the stale key is still usable.
func (k *KeyCache) Refresh(ctx context.Context) (string, error) {
	engine.IncrKeyRefreshes()

	body, status, err := fetchHomepage(ctx)
	if err != nil {
		engine.IncrKeyRefreshErrors()
		return "", fmt.Errorf("fetch homepage: %w", err)
	}
	if status != http.StatusOK {
		engine.IncrKeyRefreshErrors()
		return "", fmt.Errorf("fetch homepage: HTTP %d", status)
	}

	key, err := extractInnertubeKey(body)
	if err != nil {
		engine.IncrKeyRefreshErrors()
		return "", err
	}

	k.set(key)
	return key, nil
}

// fetchHomepage uses the TLS-fingerprinted browser client when available,
// falling back to the shared HTTP client with a Chrome User-Agent.
func fetchHomepage(ctx context.Context) (string, int, error) {
	if bc := engine.Cfg.BrowserClient; bc != nil {
		body, status, err := bc.Do(http.MethodGet, ytHomeURL, engine.ChromeHeaders(), nil)
		return string(body), status, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ytHomeURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", engine.UserAgentChrome)
	resp, err := engine.Cfg.HTTPClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	return string(body), resp.StatusCode, err
}
