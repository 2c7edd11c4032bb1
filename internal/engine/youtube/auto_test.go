package youtube

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchTranscriptAutoProtocolWins(t *testing.T) {
	var base string
	mux := http.NewServeMux()
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"playabilityStatus": {"status": "OK"},
			"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
				{"baseUrl": %q, "languageCode": "en"}
			]}}
		}`, base+"/api/timedtext")
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<text start="0.0" dur="1.0">via protocol</text>`)
	})
	srv := withTestEndpoints(t, mux)
	base = srv.URL

	segments, err := FetchTranscriptAuto(context.Background(), "dQw4w9WgXcQ", NewKeyCache(""))
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.Equal(t, "via protocol", segments[0].Text)
}

func TestFetchTranscriptAutoNoScrapeConfigured(t *testing.T) {
	// Protocol fails and no scrape backend is configured: the protocol error
	// is the one surfaced, not a configuration complaint.
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playabilityStatus": {"status": "ERROR", "reason": "Video unavailable"}}`)
	})
	withTestEndpoints(t, mux)

	_, err := FetchTranscriptAuto(context.Background(), "dQw4w9WgXcQ", NewKeyCache(""))
	require.Error(t, err)
	require.Contains(t, err.Error(), "transcript extraction failed for all clients")
	require.Contains(t, err.Error(), "Video unavailable")
}
