package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Markdown transcript parsing. The rendered watch page, converted to
// markdown, carries the transcript panel as bare timestamp lines followed by
// text lines. The heuristics below encode observed page quirks — they are
// deliberately line-oriented, not a markup parser.

const (
	transcriptHeading = "## Transcript"
	transcriptButton  = "Show transcript"
)

// displayTimestampRE matches the display timestamp forms: 0:01, 10:05, 1:00:00.
var displayTimestampRE = regexp.MustCompile(`^(\d{1,2}:)?\d{1,2}:\d{2}$`)

// Bare language names and dubbing markers that trail the transcript panel.
var languageTokens = map[string]bool{
	"English":     true,
	"German":      true,
	"Auto-dubbed": true,
}

// FetchTranscriptMarkdown scrapes the watch page as markdown via Firecrawl
// and parses the transcript section out of it.
func FetchTranscriptMarkdown(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	data, err := engine.ScrapePage(ctx, watchURL(videoID), []string{"markdown"}, engine.Cfg.ScrapeWait)
	if err != nil {
		return nil, fmt.Errorf("scrape watch page: %w", err)
	}
	if data.Markdown == "" {
		return nil, errors.New("scrape watch page: no markdown returned")
	}
	return ParseTranscriptMarkdown(data.Markdown)
}

// ParseTranscriptMarkdown locates the transcript section of a full-page
// markdown rendering and parses it into segments. Fails when no segments
// can be extracted.
func ParseTranscriptMarkdown(page string) ([]engine.TranscriptSegment, error) {
	content := transcriptRegion(page)

	var segments []engine.TranscriptSegment
	var currentTimestamp string
	var currentText []string

	flush := func() {
		if currentTimestamp == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(currentText, " "))
		if text != "" {
			segments = append(segments, engine.TranscriptSegment{Timestamp: currentTimestamp, Text: text})
		}
		currentText = currentText[:0]
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if displayTimestampRE.MatchString(trimmed) {
			flush()
			currentTimestamp = trimmed
			continue
		}

		if strings.HasPrefix(trimmed, "##") {
			continue
		}

		// Thumbnail links mark the related-videos footer. Only break once
		// segments exist — the channel avatar above the transcript would
		// false-trigger when parsing the whole page.
		if strings.HasPrefix(trimmed, "[![](") && len(segments) > 0 {
			break
		}

		if languageTokens[trimmed] {
			continue
		}

		// Text before the first timestamp is page chrome, not transcript.
		if currentTimestamp != "" {
			currentText = append(currentText, trimmed)
		}
	}
	flush()

	if len(segments) == 0 {
		return nil, errors.New("transcript parsing failed: no segments found")
	}
	return segments, nil
}

// transcriptRegion narrows the page to the transcript section: the
// "## Transcript" heading, then the content after the last "Show transcript"
// button label, then — as a logged last resort — the whole page.
func transcriptRegion(page string) string {
	if parts := strings.Split(page, transcriptHeading); len(parts) >= 2 {
		return parts[1]
	}
	if parts := strings.Split(page, transcriptButton); len(parts) >= 2 {
		slog.Debug("transcript markdown: using button-label fallback")
		return parts[len(parts)-1]
	}
	slog.Warn("transcript markdown: no transcript marker found, parsing whole page")
	return page
}
