package tubeserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// VideoSummaryOutput is the response of video_summary.
type VideoSummaryOutput struct {
	VideoID  string `json:"video_id"`
	Title    string `json:"title,omitempty"`
	Summary  string `json:"summary"`
	Segments int    `json:"segments"`
}

func registerSummaryTool(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_summary",
		Description: "Fetch a YouTube video's transcript (trying all extraction strategies) and summarize it with the LLM. Requires an LLM API key.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.VideoSummaryInput) (*mcp.CallToolResult, VideoSummaryOutput, error) {
		id := resolveVideoID(input.VideoID)
		if id == "" {
			return nil, VideoSummaryOutput{}, fmt.Errorf("video_id is required")
		}

		segments, err := youtube.FetchTranscriptAuto(ctx, id, innertubeKeys)
		if err != nil {
			return nil, VideoSummaryOutput{}, err
		}

		// Title is nice-to-have; a missing Data API key should not block the summary.
		title := ""
		if engine.Cfg.YouTubeAPIKey != "" {
			if video, err := youtube.FetchVideoDetails(ctx, id); err == nil {
				title = video.Title
			} else {
				slog.Debug("video_summary: details lookup failed", slog.Any("error", err))
			}
		}

		var sb strings.Builder
		for _, s := range segments {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(s.Text)
		}

		summary, err := engine.SummarizeTranscript(ctx, title, sb.String())
		if err != nil {
			return nil, VideoSummaryOutput{}, fmt.Errorf("LLM summarization failed: %w", err)
		}

		return nil, VideoSummaryOutput{
			VideoID:  id,
			Title:    title,
			Summary:  summary,
			Segments: len(segments),
		}, nil
	})
}
