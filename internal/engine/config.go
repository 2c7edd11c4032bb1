package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey         string // Data API v3 key; empty = search falls back to page scraping
	YouTubeAPIKeyFallback string // secondary Data API key, tried on quota errors
	InnertubeAPIKey       string // overrides the built-in Innertube key when set
	FirecrawlAPIKey       string // empty = scrape-based transcript tools disabled
	FirecrawlAPIBase      string
	ScrapeWait            time.Duration // render wait passed to Firecrawl
	MaxTranscriptChars    int           // cap on transcript text sent to the LLM
	CacheMaxEntries       int
	CacheCleanupInterval  time.Duration
	HTTPClient            *http.Client
	BrowserClient         *BrowserClient // nil = Innertube key refresh disabled
	LLMClient             *llm.Client    // nil = video_summary disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (youtube, tubeserver).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
