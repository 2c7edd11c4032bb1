package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Rotation controls which client identities the protocol path tries and how
// many attempts each one gets. Identity order matters: the mobile identity
// is least likely to be rate-limited, so it goes first.
type Rotation struct {
	Clients     []ClientIdentity
	MaxAttempts int // attempts per client before moving to the next
}

// DefaultRotation mirrors the order YouTube tolerates best.
var DefaultRotation = Rotation{
	Clients:     []ClientIdentity{ClientAndroid, ClientWeb, ClientTV},
	MaxAttempts: 2,
}

// FetchTranscript runs the Innertube protocol path with the default
// rotation. keys is the shared Innertube key cache; it may be left mutated
// for the benefit of subsequent calls.
func FetchTranscript(ctx context.Context, videoID string, keys *KeyCache) ([]engine.TranscriptSegment, error) {
	return DefaultRotation.FetchTranscript(ctx, videoID, keys)
}

// FetchTranscript tries each client identity in order, up to MaxAttempts
// times each, refreshing the shared key between failed attempts. The first
// identity that yields segments wins. When everything is exhausted, the
// returned error carries the text of the last underlying failure.
func (r Rotation) FetchTranscript(ctx context.Context, videoID string, keys *KeyCache) ([]engine.TranscriptSegment, error) {
	engine.IncrTranscriptRequests()

	var lastErr error
	for _, client := range r.Clients {
		for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
			slog.Debug("transcript: trying client",
				slog.String("client", client.Name),
				slog.Int("attempt", attempt),
				slog.String("key_prefix", engine.Truncate(keys.Current(), 10)))

			segments, err := extractOnce(ctx, videoID, keys.Current(), client)
			if err == nil {
				return segments, nil
			}
			lastErr = err
			slog.Warn("transcript: attempt failed",
				slog.String("client", client.Name),
				slog.Int("attempt", attempt),
				slog.Any("error", err))

			if attempt < r.MaxAttempts {
				if _, refreshErr := keys.Refresh(ctx); refreshErr != nil {
					// Stale key is reused on the next attempt.
					slog.Warn("transcript: key refresh failed", slog.Any("error", refreshErr))
				}
			}
		}
	}

	return nil, fmt.Errorf("transcript extraction failed for all clients: last error: %w", lastErr)
}

// extractOnce is a single protocol attempt: playability + tracks, then the
// caption payload of the first track. Track selection deliberately ignores
// language: the first track is usually English or auto-generated English.
func extractOnce(ctx context.Context, videoID, apiKey string, client ClientIdentity) ([]engine.TranscriptSegment, error) {
	pr, err := playerRequest(ctx, videoID, apiKey, client)
	if err != nil {
		return nil, err
	}

	if pr.PlayabilityStatus == nil || pr.PlayabilityStatus.Status != "OK" {
		status, reason := "UNKNOWN", ""
		if pr.PlayabilityStatus != nil {
			status, reason = pr.PlayabilityStatus.Status, pr.PlayabilityStatus.Reason
		}
		return nil, &PlayabilityError{Client: client.Name, Status: status, Reason: reason}
	}

	tracks := pr.tracks()
	if len(tracks) == 0 {
		return nil, &NoCaptionsError{Client: client.Name}
	}

	track := tracks[0]
	slog.Debug("transcript: caption track",
		slog.String("client", client.Name),
		slog.String("name", track.Name.SimpleText),
		slog.String("lang", track.LanguageCode))

	payload, err := fetchCaptionXML(ctx, track.BaseURL, videoID)
	if err != nil {
		return nil, err
	}

	lines := parseCaptionXML(payload)
	if len(lines) == 0 {
		return nil, &ParseEmptyError{Client: client.Name}
	}

	segments := make([]engine.TranscriptSegment, len(lines))
	for i, l := range lines {
		segments[i] = engine.TranscriptSegment{
			Timestamp: engine.FormatTimestamp(l.Start),
			Text:      l.Text,
		}
	}
	return segments, nil
}

// RenderTranscriptHTML renders segments into the minimal markup that
// ParseTranscriptHTML consumes, for callers that want an HTML artifact.
func RenderTranscriptHTML(segments []engine.TranscriptSegment) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><div class="transcript">`)
	for i, s := range segments {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(`<div class="segment"><span class="timestamp">`)
		sb.WriteString(escapeHTML(s.Timestamp))
		sb.WriteString(`</span><span class="text">`)
		sb.WriteString(escapeHTML(s.Text))
		sb.WriteString(`</span></div>`)
	}
	sb.WriteString(`</div></body></html>`)
	return sb.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
