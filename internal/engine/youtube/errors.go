package youtube

import "fmt"

// PlayabilityError means the platform reported the video as not playable
// for the client identity that asked.
type PlayabilityError struct {
	Client string
	Status string
	Reason string
}

func (e *PlayabilityError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("video not playable (%s): %s - %s", e.Client, e.Status, e.Reason)
	}
	return fmt.Sprintf("video not playable (%s): %s", e.Client, e.Status)
}

// NoCaptionsError means the video is playable but exposes no caption tracks.
type NoCaptionsError struct {
	Client string
}

func (e *NoCaptionsError) Error() string {
	return fmt.Sprintf("no captions available for this video (%s)", e.Client)
}

// ParseEmptyError means a caption payload was fetched but yielded zero
// usable lines.
type ParseEmptyError struct {
	Client string
}

func (e *ParseEmptyError) Error() string {
	return fmt.Sprintf("failed to parse captions (%s): no usable lines", e.Client)
}
