package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Structured-markup transcript parsing. The rendered page (and our own
// RenderTranscriptHTML output) carries one block per caption line:
//
//	<div class="segment"><span class="timestamp">…</span><span class="text">…</span></div>
//
// Blocks are matched with patterns rather than a markup parser — the input
// is third-party markup that drifts, and the loose match survives drift a
// strict parser would choke on.

var (
	segmentBlockRE  = regexp.MustCompile(`(?s)<div class="segment">.*?</div>`)
	timestampSpanRE = regexp.MustCompile(`<span class="timestamp">([^<]*)</span>`)
	textSpanRE      = regexp.MustCompile(`(?s)<span class="text">(.*?)</span>`)
)

var minimalEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// TranscriptHTML is the HTML-scrape result: the raw page is returned even
// when no segments were found in it.
type TranscriptHTML struct {
	HTML     string                     `json:"html"`
	Segments []engine.TranscriptSegment `json:"segments"`
}

// FetchTranscriptHTML scrapes the watch page as HTML via Firecrawl and
// extracts transcript segments from it. Zero segments is not an error:
// the HTML itself is still a useful artifact, so it is returned with an
// empty segment list and a logged warning.
func FetchTranscriptHTML(ctx context.Context, videoID string) (*TranscriptHTML, error) {
	data, err := engine.ScrapePage(ctx, watchURL(videoID), []string{"html"}, engine.Cfg.ScrapeWait)
	if err != nil {
		return nil, fmt.Errorf("scrape watch page: %w", err)
	}

	segments := ParseTranscriptHTML(data.HTML)
	if len(segments) == 0 {
		slog.Warn("transcript html: no segments found in page", slog.String("video_id", videoID))
	}
	return &TranscriptHTML{HTML: data.HTML, Segments: segments}, nil
}

// ParseTranscriptHTML extracts timestamp/text pairs from segment blocks.
// Blocks missing either sub-match are dropped; duplicate timestamp+text
// pairs are kept once, in first-seen order (the markup often repeats each
// segment in an accessibility-only copy).
func ParseTranscriptHTML(page string) []engine.TranscriptSegment {
	var segments []engine.TranscriptSegment
	seen := make(map[string]bool)

	for _, block := range segmentBlockRE.FindAllString(page, -1) {
		tsM := timestampSpanRE.FindStringSubmatch(block)
		textM := textSpanRE.FindStringSubmatch(block)
		if tsM == nil || textM == nil {
			continue
		}

		timestamp := strings.TrimSpace(tsM[1])
		text := strings.TrimSpace(minimalEntities.Replace(textM[1]))
		if timestamp == "" || text == "" {
			continue
		}

		key := timestamp + "|" + text
		if seen[key] {
			continue
		}
		seen[key] = true
		segments = append(segments, engine.TranscriptSegment{Timestamp: timestamp, Text: text})
	}
	return segments
}
