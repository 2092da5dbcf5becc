package model

import (
	"fmt"
	"strings"
)

// QueueItem represents a single unit of acquisition work, from submission
// through metadata fetch, download and transcode, to a local artifact.
// Title, Artist, Thumbnail and Duration stay empty until metadata resolves.
type QueueItem struct {
	ID         string      `json:"id"`
	URL        string      `json:"url"`
	Title      string      `json:"title,omitempty"`
	Artist     string      `json:"artist,omitempty"`
	Thumbnail  string      `json:"thumbnail,omitempty"`
	Duration   int64       `json:"duration,omitempty"` // total length in seconds, 0 until resolved
	Status     QueueStatus `json:"status"`
	Progress   int         `json:"progress"` // 0 to 100, meaningful only while downloading
	LastError  string      `json:"error,omitempty"`
	OutputPath string      `json:"outputPath,omitempty"`
}

// GetDisplayTitle returns "Artist - Title" when metadata is resolved,
// falling back to the source URL
func (qi *QueueItem) GetDisplayTitle() string {
	if qi.Title != "" {
		if qi.Artist != "" {
			return qi.Artist + " - " + qi.Title
		}
		return qi.Title
	}
	return qi.URL
}

// GetDurationString returns the item duration formatted as mm:ss or hh:mm:ss,
// or "—" while metadata is unresolved
func (qi *QueueItem) GetDurationString() string {
	if qi.Duration <= 0 {
		return "—"
	}
	return FormatDuration(qi.Duration)
}

// FormatDuration formats a length in seconds as mm:ss, or hh:mm:ss when an
// hour or longer
func FormatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var b strings.Builder
	if hours > 0 {
		b.WriteString(fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs))
	} else {
		b.WriteString(fmt.Sprintf("%02d:%02d", minutes, secs))
	}
	return b.String()
}

// CloneItems returns a deep copy of a queue snapshot. Broadcast payloads are
// copied so no subscriber can alias the authoritative state.
func CloneItems(items []QueueItem) []QueueItem {
	out := make([]QueueItem, len(items))
	copy(out, items)
	return out
}
