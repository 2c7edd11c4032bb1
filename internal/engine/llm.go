package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const transcriptSummaryPrompt = `You are summarizing the transcript of a YouTube video titled %q.

Write a concise summary (3-6 sentences) of what the video covers, followed by
up to 5 bullet points with the key takeaways. Use only information from the
transcript. Respond in plain text, no markdown fences.

Transcript:
%s`

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// SummarizeTranscript produces an LLM summary of a video transcript.
// The transcript is capped at MaxTranscriptChars before prompting.
func SummarizeTranscript(ctx context.Context, title, transcript string) (string, error) {
	if cfg.LLMClient == nil {
		return "", errors.New("LLM is not configured: set LLM_API_KEY")
	}
	if cfg.MaxTranscriptChars > 0 && len(transcript) > cfg.MaxTranscriptChars {
		transcript = Truncate(transcript, cfg.MaxTranscriptChars) + "..."
	}

	metrics.LLMCalls.Add(1)
	resp, err := cfg.LLMClient.Complete(ctx, "", fmt.Sprintf(transcriptSummaryPrompt, title, transcript))
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}
