package fetch

import (
	"context"

	"github.com/ytget/sample-downloader/internal/model"
)

// Fetcher defines the interface for remote metadata resolution and audio
// stream download
type Fetcher interface {
	// FetchMetadata resolves display metadata for a media URL without
	// downloading anything
	FetchMetadata(ctx context.Context, url string) (*model.VideoMetadata, error)

	// DownloadAudio downloads the best audio stream for url into outputPath.
	// onProgress, when non-nil, receives transfer percentages in [0, 100].
	DownloadAudio(ctx context.Context, url, outputPath string, onProgress func(percent int)) error
}
