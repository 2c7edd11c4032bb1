package engine

// TranscriptSegment is one timestamped line of transcript text.
// Timestamp is the display form ("1:02", "1:00:00"); Text is decoded,
// trimmed, and never empty.
type TranscriptSegment struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// --- Tool input types ---

type TranscriptInput struct {
	VideoID     string `json:"video_id" jsonschema:"Video ID or any YouTube URL"`
	Lang        string `json:"lang,omitempty" jsonschema:"Preferred language code (accepted for compatibility; the first available track is always used)"`
	IncludeHTML bool   `json:"include_html,omitempty" jsonschema:"Also return the transcript rendered as HTML"`
}

type VideoSearchInput struct {
	Query string `json:"query" jsonschema:"Search query"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 5, max 25)"`
}

type VideoDetailsInput struct {
	VideoID string `json:"video_id" jsonschema:"Video ID or any YouTube URL"`
}

type ChannelDetailsInput struct {
	ChannelID string `json:"channel_id" jsonschema:"Channel ID (UC...)"`
}

type ChannelVideosInput struct {
	ChannelID string `json:"channel_id" jsonschema:"Channel ID (UC...)"`
	Max       int    `json:"max,omitempty" jsonschema:"Max videos to return (default: all uploads)"`
}

type VideoSummaryInput struct {
	VideoID string `json:"video_id" jsonschema:"Video ID or any YouTube URL"`
}
