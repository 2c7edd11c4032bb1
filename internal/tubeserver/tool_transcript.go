package tubeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TranscriptOutput is the response of the segment-producing transcript tools.
type TranscriptOutput struct {
	VideoID  string                     `json:"video_id"`
	Count    int                        `json:"count"`
	Segments []engine.TranscriptSegment `json:"segments"`
	HTML     string                     `json:"html,omitempty"`
}

// TranscriptHTMLOutput is the response of get_transcript_html: the raw page
// HTML is returned even when no segments were found in it.
type TranscriptHTMLOutput struct {
	VideoID  string                     `json:"video_id"`
	Count    int                        `json:"count"`
	Segments []engine.TranscriptSegment `json:"segments"`
	HTML     string                     `json:"html"`
}

func registerTranscriptTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Extract the transcript of a YouTube video via the Innertube player API, rotating client identities (ANDROID, WEB, TVHTML5) with automatic API key refresh. Returns timestamped segments in playback order. No scraping service required.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		id := resolveVideoID(input.VideoID)
		if id == "" {
			return nil, TranscriptOutput{}, fmt.Errorf("video_id is required")
		}

		segments, err := youtube.FetchTranscript(ctx, id, innertubeKeys)
		if err != nil {
			return nil, TranscriptOutput{}, err
		}

		out := TranscriptOutput{VideoID: id, Count: len(segments), Segments: segments}
		if input.IncludeHTML {
			out.HTML = youtube.RenderTranscriptHTML(segments)
		}
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript_markdown",
		Description: "Extract the transcript of a YouTube video by scraping the rendered watch page as markdown (requires Firecrawl) and parsing the transcript panel. Fails when the transcript section cannot be located or yields no segments.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		id := resolveVideoID(input.VideoID)
		if id == "" {
			return nil, TranscriptOutput{}, fmt.Errorf("video_id is required")
		}

		segments, err := youtube.FetchTranscriptMarkdown(ctx, id)
		if err != nil {
			return nil, TranscriptOutput{}, err
		}
		return nil, TranscriptOutput{VideoID: id, Count: len(segments), Segments: segments}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript_html",
		Description: "Scrape the rendered watch page as HTML (requires Firecrawl) and extract transcript segments from the segment markup. The raw HTML is always returned; zero segments is not an error.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, TranscriptHTMLOutput, error) {
		id := resolveVideoID(input.VideoID)
		if id == "" {
			return nil, TranscriptHTMLOutput{}, fmt.Errorf("video_id is required")
		}

		result, err := youtube.FetchTranscriptHTML(ctx, id)
		if err != nil {
			return nil, TranscriptHTMLOutput{}, err
		}
		return nil, TranscriptHTMLOutput{
			VideoID:  id,
			Count:    len(result.Segments),
			Segments: result.Segments,
			HTML:     result.HTML,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript_auto",
		Description: "Extract the transcript of a YouTube video, trying strategies in order: Innertube player API, then markdown scrape, then HTML scrape. Returns the first non-empty result.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		id := resolveVideoID(input.VideoID)
		if id == "" {
			return nil, TranscriptOutput{}, fmt.Errorf("video_id is required")
		}

		segments, err := youtube.FetchTranscriptAuto(ctx, id, innertubeKeys)
		if err != nil {
			return nil, TranscriptOutput{}, err
		}
		return nil, TranscriptOutput{VideoID: id, Count: len(segments), Segments: segments}, nil
	})
}
