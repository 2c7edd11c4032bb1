package youtube

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// FetchTranscriptAuto tries the acquisition strategies in priority order:
// Innertube protocol first (no scrape dependency, cheapest), then the
// markdown scrape, then the HTML scrape. First non-empty result wins.
// Scrape strategies are skipped entirely when Firecrawl is not configured.
func FetchTranscriptAuto(ctx context.Context, videoID string, keys *KeyCache) ([]engine.TranscriptSegment, error) {
	segments, err := FetchTranscript(ctx, videoID, keys)
	if err == nil {
		return segments, nil
	}
	slog.Warn("transcript auto: protocol path failed, trying markdown scrape",
		slog.String("video_id", videoID), slog.Any("error", err))

	mdSegments, mdErr := FetchTranscriptMarkdown(ctx, videoID)
	if mdErr == nil {
		return mdSegments, nil
	}
	if errors.Is(mdErr, engine.ErrScrapeNotConfigured) {
		return nil, err // protocol error is the informative one
	}
	slog.Warn("transcript auto: markdown scrape failed, trying html scrape",
		slog.String("video_id", videoID), slog.Any("error", mdErr))

	htmlResult, htmlErr := FetchTranscriptHTML(ctx, videoID)
	if htmlErr != nil {
		return nil, htmlErr
	}
	if len(htmlResult.Segments) == 0 {
		return nil, mdErr
	}
	return htmlResult.Segments, nil
}
