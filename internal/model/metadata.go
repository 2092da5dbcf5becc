package model

// VideoMetadata holds the resolved metadata for a remote media URL
type VideoMetadata struct {
	VideoID     string `json:"videoId"`
	RawTitle    string `json:"rawTitle"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Duration    int64  `json:"duration,omitempty"` // seconds, 0 if unknown
	ChannelName string `json:"channelName,omitempty"`
}
