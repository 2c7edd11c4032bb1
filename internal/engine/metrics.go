package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests    atomic.Int64
	InnertubeRequests     atomic.Int64
	KeyRefreshes          atomic.Int64
	KeyRefreshErrors      atomic.Int64
	ScrapeRequests        atomic.Int64
	ScrapeErrors          atomic.Int64
	SearchRequests        atomic.Int64
	VideoDetailRequests   atomic.Int64
	ChannelDetailRequests atomic.Int64
	ChannelVideoRequests  atomic.Int64
	LLMCalls              atomic.Int64
	LLMErrors             atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"transcript_requests":     metrics.TranscriptRequests.Load(),
		"innertube_requests":      metrics.InnertubeRequests.Load(),
		"key_refreshes":           metrics.KeyRefreshes.Load(),
		"key_refresh_errors":      metrics.KeyRefreshErrors.Load(),
		"scrape_requests":         metrics.ScrapeRequests.Load(),
		"scrape_errors":           metrics.ScrapeErrors.Load(),
		"search_requests":         metrics.SearchRequests.Load(),
		"video_detail_requests":   metrics.VideoDetailRequests.Load(),
		"channel_detail_requests": metrics.ChannelDetailRequests.Load(),
		"channel_video_requests":  metrics.ChannelVideoRequests.Load(),
		"llm_calls":               metrics.LLMCalls.Load(),
		"llm_errors":              metrics.LLMErrors.Load(),
		"cache_hits":              hits,
		"cache_misses":            misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "innertube_requests",
		"key_refreshes", "key_refresh_errors",
		"scrape_requests", "scrape_errors",
		"search_requests", "video_detail_requests",
		"channel_detail_requests", "channel_video_requests",
		"llm_calls", "llm_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the youtube sub-package.
func IncrTranscriptRequests()    { metrics.TranscriptRequests.Add(1) }
func IncrInnertubeRequests()     { metrics.InnertubeRequests.Add(1) }
func IncrKeyRefreshes()          { metrics.KeyRefreshes.Add(1) }
func IncrKeyRefreshErrors()      { metrics.KeyRefreshErrors.Add(1) }
func IncrSearchRequests()        { metrics.SearchRequests.Add(1) }
func IncrVideoDetailRequests()   { metrics.VideoDetailRequests.Add(1) }
func IncrChannelDetailRequests() { metrics.ChannelDetailRequests.Add(1) }
func IncrChannelVideoRequests()  { metrics.ChannelVideoRequests.Add(1) }
