package tubeserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// VideoSearchOutput is the response of video_search.
type VideoSearchOutput struct {
	Query string                    `json:"query"`
	Total int                       `json:"total"`
	Items []youtube.VideoSearchItem `json:"items"`
}

// ChannelVideosOutput is the response of channel_videos.
type ChannelVideosOutput struct {
	ChannelID string          `json:"channel_id"`
	Total     int             `json:"total"`
	Items     []youtube.Video `json:"items"`
}

func registerMetadataTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_search",
		Description: "Search YouTube videos. Uses the Data API v3 when a key is configured, otherwise scrapes search results. Returns video ID, title, channel, and snippet per result.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.VideoSearchInput) (*mcp.CallToolResult, VideoSearchOutput, error) {
		if input.Query == "" {
			return nil, VideoSearchOutput{}, fmt.Errorf("query is required")
		}

		cacheKey := engine.CacheKey("video_search", input.Query, strconv.Itoa(input.Limit))
		if out, ok := toolutil.CacheLoadJSON[VideoSearchOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		items, err := youtube.SearchVideos(ctx, input.Query, input.Limit)
		if err != nil {
			return nil, VideoSearchOutput{}, err
		}

		out := VideoSearchOutput{Query: input.Query, Total: len(items), Items: items}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_details",
		Description: "Look up a single YouTube video: title, channel, description, duration, publish date, view and like counts. Requires a Data API key.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.VideoDetailsInput) (*mcp.CallToolResult, youtube.Video, error) {
		id := resolveVideoID(input.VideoID)
		if id == "" {
			return nil, youtube.Video{}, fmt.Errorf("video_id is required")
		}

		cacheKey := engine.CacheKey("video_details", id)
		if out, ok := toolutil.CacheLoadJSON[youtube.Video](ctx, cacheKey); ok {
			return nil, out, nil
		}

		video, err := youtube.FetchVideoDetails(ctx, id)
		if err != nil {
			return nil, youtube.Video{}, err
		}

		toolutil.CacheStoreJSON(ctx, cacheKey, *video)
		return nil, *video, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_details",
		Description: "Look up a YouTube channel: title, description, country, subscriber/video/view counts. Requires a Data API key.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ChannelDetailsInput) (*mcp.CallToolResult, youtube.Channel, error) {
		if input.ChannelID == "" {
			return nil, youtube.Channel{}, fmt.Errorf("channel_id is required")
		}

		cacheKey := engine.CacheKey("channel_details", input.ChannelID)
		if out, ok := toolutil.CacheLoadJSON[youtube.Channel](ctx, cacheKey); ok {
			return nil, out, nil
		}

		channel, err := youtube.FetchChannelDetails(ctx, input.ChannelID)
		if err != nil {
			return nil, youtube.Channel{}, err
		}

		toolutil.CacheStoreJSON(ctx, cacheKey, *channel)
		return nil, *channel, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_videos",
		Description: "List a channel's uploads with full details, paging through the uploads playlist. Can return the entire upload history; use max to limit. Requires a Data API key.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ChannelVideosInput) (*mcp.CallToolResult, ChannelVideosOutput, error) {
		if input.ChannelID == "" {
			return nil, ChannelVideosOutput{}, fmt.Errorf("channel_id is required")
		}

		cacheKey := engine.CacheKey("channel_videos", input.ChannelID, strconv.Itoa(input.Max))
		if out, ok := toolutil.CacheLoadJSON[ChannelVideosOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		videos, err := youtube.ChannelVideos(ctx, input.ChannelID, input.Max)
		if err != nil {
			return nil, ChannelVideosOutput{}, err
		}

		out := ChannelVideosOutput{ChannelID: input.ChannelID, Total: len(videos), Items: videos}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
