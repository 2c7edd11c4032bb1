package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// YouTube Data API v3 — typed wrappers for search, video/channel details,
// and full channel listings. Plain request/response mapping; the only added
// behavior is quota-key fallback and rate limiting.

// ytDataAPIBase is a var so tests can point it at a local server.
var ytDataAPIBase = "https://www.googleapis.com/youtube/v3"

// dataAPILimiter keeps burst tool usage inside the daily quota.
var dataAPILimiter = rate.NewLimiter(rate.Limit(8), 16)

// VideoSearchItem is one search result.
type VideoSearchItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Channel string `json:"channel"`
	Snippet string `json:"snippet,omitempty"`
	URL     string `json:"url"`
}

// Video is the detail view of a single video.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"` // ISO 8601, e.g. PT4M13S
	PublishedAt string `json:"published_at,omitempty"`
	Views       int64  `json:"views"`
	Likes       int64  `json:"likes"`
	URL         string `json:"url"`
}

// Channel is the detail view of a channel.
type Channel struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country,omitempty"`
	Subscribers int64  `json:"subscribers"`
	Videos      int64  `json:"videos"`
	Views       int64  `json:"views"`
}

// --- raw Data API response types ---

type ytSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

type ytSearchResp struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
}

type ytVideoListResp struct {
	Items []struct {
		ID             string    `json:"id"`
		Snippet        ytSnippet `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type ytChannelListResp struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Country     string `json:"country"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			VideoCount      string `json:"videoCount"`
			ViewCount       string `json:"viewCount"`
		} `json:"statistics"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type ytPlaylistItemsResp struct {
	Items []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// dataAPIGet performs one GET against the Data API with the given key.
func dataAPIGet(ctx context.Context, path string, params url.Values, apiKey string, out any) error {
	if err := dataAPILimiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("key", apiKey)
	apiURL := ytDataAPIBase + path + "?" + params.Encode()

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return fmt.Errorf("youtube data API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("youtube data API %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// dataAPIGetKeyed tries the primary key, then the fallback key on quota
// errors (403).
func dataAPIGetKeyed(ctx context.Context, path string, params url.Values, out any) error {
	keys := []string{engine.Cfg.YouTubeAPIKey}
	if engine.Cfg.YouTubeAPIKeyFallback != "" {
		keys = append(keys, engine.Cfg.YouTubeAPIKeyFallback)
	}

	var lastErr error
	for _, key := range keys {
		err := dataAPIGet(ctx, path, cloneValues(params), key, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !strings.Contains(err.Error(), "data API 403") {
			return err
		}
		slog.Debug("youtube data API key failed, trying fallback", slog.Any("err", err))
	}
	return lastErr
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

// SearchVideos searches for videos. Uses the Data API when a key is
// configured; otherwise scrapes ytInitialData from the results page.
func SearchVideos(ctx context.Context, query string, limit int) ([]VideoSearchItem, error) {
	engine.IncrSearchRequests()
	if limit <= 0 || limit > 25 {
		limit = 5
	}
	if engine.Cfg.YouTubeAPIKey == "" {
		return searchInitialData(ctx, query, limit)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(limit))

	var result ytSearchResp
	if err := dataAPIGetKeyed(ctx, "/search", params, &result); err != nil {
		return nil, err
	}

	items := make([]VideoSearchItem, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		items = append(items, VideoSearchItem{
			ID:      item.ID.VideoID,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
			Snippet: engine.TruncateRunes(item.Snippet.Description, 200, "…"),
			URL:     watchURL(item.ID.VideoID),
		})
	}
	return items, nil
}

// FetchVideoDetails looks up a single video.
func FetchVideoDetails(ctx context.Context, videoID string) (*Video, error) {
	engine.IncrVideoDetailRequests()

	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", videoID)

	var result ytVideoListResp
	if err := dataAPIGetKeyed(ctx, "/videos", params, &result); err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("video not found: %s", videoID)
	}

	item := result.Items[0]
	return &Video{
		ID:          item.ID,
		Title:       item.Snippet.Title,
		Channel:     item.Snippet.ChannelTitle,
		Description: item.Snippet.Description,
		Duration:    item.ContentDetails.Duration,
		PublishedAt: item.Snippet.PublishedAt,
		Views:       parseCount(item.Statistics.ViewCount),
		Likes:       parseCount(item.Statistics.LikeCount),
		URL:         watchURL(item.ID),
	}, nil
}

// FetchChannelDetails looks up a single channel.
func FetchChannelDetails(ctx context.Context, channelID string) (*Channel, error) {
	engine.IncrChannelDetailRequests()

	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)

	var result ytChannelListResp
	if err := dataAPIGetKeyed(ctx, "/channels", params, &result); err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("channel not found: %s", channelID)
	}

	item := result.Items[0]
	return &Channel{
		ID:          item.ID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Country:     item.Snippet.Country,
		Subscribers: parseCount(item.Statistics.SubscriberCount),
		Videos:      parseCount(item.Statistics.VideoCount),
		Views:       parseCount(item.Statistics.ViewCount),
	}, nil
}

// ChannelVideos lists a channel's uploads with full details, paging through
// the uploads playlist 50 at a time. max <= 0 means all of them.
func ChannelVideos(ctx context.Context, channelID string, max int) ([]Video, error) {
	engine.IncrChannelVideoRequests()

	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var chResult ytChannelListResp
	if err := dataAPIGetKeyed(ctx, "/channels", params, &chResult); err != nil {
		return nil, err
	}
	if len(chResult.Items) == 0 {
		return nil, fmt.Errorf("channel not found: %s", channelID)
	}
	uploads := chResult.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return nil, fmt.Errorf("no uploads playlist for channel: %s", channelID)
	}

	var videos []Video
	pageToken := ""
	for {
		plParams := url.Values{}
		plParams.Set("part", "contentDetails")
		plParams.Set("playlistId", uploads)
		plParams.Set("maxResults", "50")
		if pageToken != "" {
			plParams.Set("pageToken", pageToken)
		}

		var plResult ytPlaylistItemsResp
		if err := dataAPIGetKeyed(ctx, "/playlistItems", plParams, &plResult); err != nil {
			return nil, err
		}

		var ids []string
		for _, item := range plResult.Items {
			if item.ContentDetails.VideoID != "" {
				ids = append(ids, item.ContentDetails.VideoID)
			}
		}

		if len(ids) > 0 {
			vParams := url.Values{}
			vParams.Set("part", "snippet,contentDetails,statistics")
			vParams.Set("id", strings.Join(ids, ","))

			var vResult ytVideoListResp
			if err := dataAPIGetKeyed(ctx, "/videos", vParams, &vResult); err != nil {
				return nil, err
			}
			for _, item := range vResult.Items {
				videos = append(videos, Video{
					ID:          item.ID,
					Title:       item.Snippet.Title,
					Channel:     item.Snippet.ChannelTitle,
					Description: engine.TruncateRunes(item.Snippet.Description, 500, "…"),
					Duration:    item.ContentDetails.Duration,
					PublishedAt: item.Snippet.PublishedAt,
					Views:       parseCount(item.Statistics.ViewCount),
					Likes:       parseCount(item.Statistics.LikeCount),
					URL:         watchURL(item.ID),
				})
			}
		}

		slog.Debug("channel videos: fetched page",
			slog.Int("page_items", len(plResult.Items)),
			slog.Int("total", len(videos)),
			slog.Bool("more", plResult.NextPageToken != ""))

		if max > 0 && len(videos) >= max {
			videos = videos[:max]
			break
		}
		pageToken = plResult.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(videos) == 0 {
		return nil, errors.New("channel has no videos")
	}
	return videos, nil
}
