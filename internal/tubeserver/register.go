package tubeserver

import (
	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// innertubeKeys is the shared Innertube key cache: one refresh benefits all
// subsequent transcript calls.
var innertubeKeys *youtube.KeyCache

// RegisterTools registers all YouTube tools on the given MCP server:
// transcript extraction (protocol, markdown scrape, HTML scrape, auto),
// metadata lookup, and transcript summarization.
func RegisterTools(server *mcp.Server) {
	innertubeKeys = youtube.NewKeyCache(engine.Cfg.InnertubeAPIKey)

	registerTranscriptTools(server)
	registerMetadataTools(server)
	registerSummaryTool(server)
}

// resolveVideoID normalizes a tool's video_id input, which may be a bare ID
// or any YouTube URL form.
func resolveVideoID(raw string) string {
	return youtube.ExtractVideoID(raw)
}
