package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/sample-downloader/internal/logger"
	"github.com/ytget/sample-downloader/internal/model"
)

// Timeout constants
const (
	DefaultMetadataTimeout = 60 * time.Second
)

// Download constants
const (
	// AudioFormatSelector prefers m4a, the container the transcoder expects
	AudioFormatSelector = "bestaudio[ext=m4a]/bestaudio/best"

	ProgressInterval = 500 * time.Millisecond
)

// Service resolves metadata and downloads audio streams through yt-dlp
type Service struct {
	metadataTimeout time.Duration
}

// NewService creates a new fetch service
func NewService() *Service {
	return &Service{
		metadataTimeout: DefaultMetadataTimeout,
	}
}

// FetchMetadata extracts video info without downloading. Track/artist tags
// are preferred when the source provides them; otherwise the raw title is
// parsed and the channel name serves as the artist fallback.
func (s *Service) FetchMetadata(ctx context.Context, url string) (*model.VideoMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, s.metadataTimeout)
	defer cancel()

	dl := ytdlp.New().
		Quiet().
		NoPlaylist().
		SkipDownload().
		DumpSingleJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to extract info for %s: %w", url, err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted info: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("no info extracted for %s", url)
	}

	info := infos[0]

	channel := stringValue(info.Channel)
	if channel == "" {
		channel = stringValue(info.Uploader)
	}

	rawTitle := stringValue(info.Title)

	var artist, title string
	if stringValue(info.Artist) != "" && stringValue(info.Track) != "" {
		artist = stringValue(info.Artist)
		title = stringValue(info.Track)
	} else {
		fallback := channel
		if fallback == "" {
			fallback = UnknownArtist
		}
		artist, title = ParseArtistTitle(rawTitle, fallback)
	}

	metadata := &model.VideoMetadata{
		VideoID:     info.ID,
		RawTitle:    rawTitle,
		Title:       title,
		Artist:      artist,
		Thumbnail:   stringValue(info.Thumbnail),
		ChannelName: channel,
	}
	if info.Duration != nil {
		metadata.Duration = int64(*info.Duration)
	}

	logger.Debug("metadata resolved",
		zap.String("url", url),
		zap.String("artist", metadata.Artist),
		zap.String("title", metadata.Title))

	return metadata, nil
}

// DownloadAudio downloads the best audio stream into outputPath
func (s *Service) DownloadAudio(ctx context.Context, url, outputPath string, onProgress func(percent int)) error {
	dl := ytdlp.New().
		Quiet().
		NoPlaylist().
		ForceOverwrites().
		Format(AudioFormatSelector).
		Output(outputPath)

	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		if onProgress == nil || update.TotalBytes <= 0 {
			return
		}
		percent := int(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
		if percent > 100 {
			percent = 100
		}
		onProgress(percent)
	})

	if _, err := dl.Run(ctx, url); err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	return nil
}

// stringValue dereferences an optional yt-dlp field
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
