package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/stretchr/testify/require"
)

func withTestEndpoints(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)

	oldPlayer, oldHome := ytPlayerURL, ytHomeURL
	ytPlayerURL = srv.URL + "/youtubei/v1/player"
	ytHomeURL = srv.URL

	engine.Init(engine.Config{
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	})

	t.Cleanup(func() {
		ytPlayerURL, ytHomeURL = oldPlayer, oldHome
		srv.Close()
	})
	return srv
}

func TestFetchTranscriptSuccess(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "3", r.Header.Get("X-Youtube-Client-Name"))
		require.Len(t, r.Header.Get("X-Goog-Visitor-Id"), 11)
		fmt.Fprintf(w, `{
			"playabilityStatus": {"status": "OK"},
			"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
				{"baseUrl": %q, "languageCode": "en", "name": {"simpleText": "English (auto-generated)"}}
			]}}
		}`, srv.URL+"/api/timedtext?v=abc&fmt=srv3")
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		// The srv3 format parameter must have been stripped.
		require.Empty(t, r.URL.Query().Get("fmt"))
		fmt.Fprint(w, `<transcript>`+
			`<text start="0.0" dur="2.0">Hello world</text>`+
			`<text start="65.0" dur="2.0">one minute in</text>`+
			`<text start="3605.0" dur="2.0">one hour in</text>`+
			`</transcript>`)
	})
	srv = withTestEndpoints(t, mux)

	rot := Rotation{Clients: []ClientIdentity{ClientAndroid}, MaxAttempts: 1}
	segments, err := rot.FetchTranscript(context.Background(), "dQw4w9WgXcQ", NewKeyCache(""))
	require.NoError(t, err)
	require.Len(t, segments, 3)

	require.Equal(t, "0:00", segments[0].Timestamp)
	require.Equal(t, "Hello world", segments[0].Text)
	require.Equal(t, "1:05", segments[1].Timestamp)
	require.Equal(t, "1:00:05", segments[2].Timestamp)
}

func TestFetchTranscriptPlayabilityError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playabilityStatus": {"status": "LOGIN_REQUIRED", "reason": "Sign in to confirm your age"}}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"INNERTUBE_API_KEY":"AIzaSyFresh"}`)
	})
	withTestEndpoints(t, mux)

	rot := Rotation{Clients: []ClientIdentity{ClientAndroid, ClientWeb}, MaxAttempts: 2}
	keys := NewKeyCache("")
	_, err := rot.FetchTranscript(context.Background(), "dQw4w9WgXcQ", keys)
	require.Error(t, err)
	require.Contains(t, err.Error(), "transcript extraction failed for all clients")
	require.Contains(t, err.Error(), "LOGIN_REQUIRED")

	// Failed attempts refreshed the key from the homepage.
	require.Equal(t, "AIzaSyFresh", keys.Current())
}

func TestFetchTranscriptNoCaptions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playabilityStatus": {"status": "OK"}}`)
	})
	withTestEndpoints(t, mux)

	rot := Rotation{Clients: []ClientIdentity{ClientAndroid}, MaxAttempts: 1}
	_, err := rot.FetchTranscript(context.Background(), "dQw4w9WgXcQ", NewKeyCache(""))
	require.Error(t, err)
	require.Contains(t, err.Error(), "no captions available")
}

func TestRenderTranscriptHTML(t *testing.T) {
	segments := []engine.TranscriptSegment{
		{Timestamp: "0:00", Text: "Hello <world>"},
		{Timestamp: "0:05", Text: `Tom & "Jerry"`},
	}

	html := RenderTranscriptHTML(segments)
	if !strings.Contains(html, `<span class="text">Hello &lt;world&gt;</span>`) {
		t.Errorf("special characters not escaped: %s", html)
	}

	// The rendered markup must parse back into the same segments.
	parsed := ParseTranscriptHTML(html)
	if len(parsed) != 2 {
		t.Fatalf("round-trip produced %d segments, want 2", len(parsed))
	}
	for i := range segments {
		if parsed[i] != segments[i] {
			t.Errorf("segment %d = %+v, want %+v", i, parsed[i], segments[i])
		}
	}
}
