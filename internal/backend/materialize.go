package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ytget/sample-downloader/internal/audio"
	"github.com/ytget/sample-downloader/internal/logger"
	"github.com/ytget/sample-downloader/internal/model"
	"github.com/ytget/sample-downloader/internal/platform"
)

// Progress milestones during materialization. The download stage maps onto
// 20-60, the transcode stage onto 65-95.
const (
	progressStarted     = 10
	progressFetching    = 20
	progressDownloaded  = 60
	progressConverting  = 65
	progressConverted   = 95
	progressDone        = 100
	downloadStageSpan   = progressDownloaded - progressFetching
	transcodeStageSpan  = progressConverted - progressConverting
	coverDownloadPrefix = "cover-"
)

// Materialize drives one queue item through
// fetching → ready → downloading → complete|failed, publishing a snapshot on
// every state change. trim, when non-nil, bounds the retained audio span and
// is reflected in the artifact filename.
func (s *Service) Materialize(ctx context.Context, id, outputDir string, trim *model.TrimRange) error {
	item, ok := s.getItem(id)
	if !ok {
		return ErrItemNotFound
	}

	s.updateItem(id, func(it *model.QueueItem) {
		it.Status = model.StatusFetching
		it.Progress = 0
		it.LastError = ""
	})

	title, artist, thumbnail := item.Title, item.Artist, item.Thumbnail
	duration := item.Duration

	if title == "" || artist == "" {
		metadata, err := s.fetcher.FetchMetadata(ctx, item.URL)
		if err != nil {
			return s.fail(id, fmt.Errorf("metadata fetch failed: %w", err))
		}
		title, artist, thumbnail = metadata.Title, metadata.Artist, metadata.Thumbnail
		duration = metadata.Duration
	}

	s.updateItem(id, func(it *model.QueueItem) {
		it.Title = title
		it.Artist = artist
		it.Thumbnail = thumbnail
		it.Duration = duration
		it.Status = model.StatusReady
	})

	s.updateItem(id, func(it *model.QueueItem) {
		it.Status = model.StatusDownloading
		it.Progress = progressStarted
	})

	outputPath := filepath.Join(outputDir, platform.OutputFileName(artist, title, trim))

	// an existing artifact is reused, not re-downloaded
	if platform.FileExists(outputPath) {
		logger.Info("artifact already exists", zap.String("path", outputPath))
		s.complete(id, outputPath)
		return nil
	}

	if s.cancelled.Load() {
		return s.fail(id, ErrCancelled)
	}

	tempPath := filepath.Join(outputDir, platform.TempFileName(artist, title))

	s.setProgress(id, progressFetching)
	err := s.fetcher.DownloadAudio(ctx, item.URL, tempPath, func(percent int) {
		s.setProgress(id, progressFetching+percent*downloadStageSpan/100)
	})
	if err != nil {
		return s.fail(id, fmt.Errorf("download failed: %w", err))
	}
	s.setProgress(id, progressDownloaded)

	actualTempPath, err := findDownloadedFile(tempPath)
	if err != nil {
		return s.fail(id, err)
	}

	if s.cancelled.Load() {
		os.Remove(actualTempPath)
		return s.fail(id, ErrCancelled)
	}

	s.setProgress(id, progressConverting)

	opts := audio.ConvertOptions{
		Trim:   trim,
		Title:  title,
		Artist: artist,
	}
	if thumbnail != "" {
		// cover art is optional, a fetch failure never fails the item
		if coverPath, coverErr := downloadCover(ctx, thumbnail); coverErr == nil {
			opts.CoverPath = coverPath
			defer os.Remove(coverPath)
		} else {
			logger.Warn("cover art fetch failed", zap.Error(coverErr))
		}
	}

	err = s.converter.Convert(ctx, actualTempPath, outputPath, opts, func(fraction float64) {
		s.setProgress(id, progressConverting+int(fraction*float64(transcodeStageSpan)))
	})
	os.Remove(actualTempPath)
	if err != nil {
		return s.fail(id, fmt.Errorf("conversion failed: %w", err))
	}

	s.recordHistory(ctx, item.URL, title, artist, thumbnail, duration, outputPath, trim)

	s.complete(id, outputPath)
	return nil
}

// setProgress updates the progress percentage of a downloading item
func (s *Service) setProgress(id string, progress int) {
	s.updateItem(id, func(it *model.QueueItem) {
		it.Progress = progress
	})
}

// complete marks an item finished with its artifact location
func (s *Service) complete(id, outputPath string) {
	s.updateItem(id, func(it *model.QueueItem) {
		it.Status = model.StatusComplete
		it.Progress = progressDone
		it.OutputPath = outputPath
		it.LastError = ""
	})
}

// fail marks an item failed and returns the error for the caller to surface
func (s *Service) fail(id string, err error) error {
	logger.Error("materialize failed", zap.String("id", id), zap.Error(err))
	s.updateItem(id, func(it *model.QueueItem) {
		it.Status = model.StatusFailed
		it.Progress = 0
		it.LastError = err.Error()
	})
	return err
}

// recordHistory writes the ledger entry for a successful materialization.
// Ledger failures are logged, never propagated.
func (s *Service) recordHistory(ctx context.Context, url, title, artist, thumbnail string, duration int64, outputPath string, trim *model.TrimRange) {
	if s.recorder == nil {
		return
	}

	entry := Record{
		URL:        url,
		Title:      title,
		Artist:     artist,
		Thumbnail:  thumbnail,
		Duration:   duration,
		OutputPath: outputPath,
	}
	if trim != nil {
		entry.Title = fmt.Sprintf("%s (%ds-%ds)", title, int(trim.StartTime), int(trim.EndTime))
		entry.Duration = int64(trim.Duration())
	}

	if _, err := s.recorder.Save(ctx, entry); err != nil {
		logger.Warn("failed to save history entry", zap.Error(err))
	}
}

// findDownloadedFile locates the file yt-dlp actually wrote: the requested
// path, the path with an extra container extension, or any sibling sharing
// the requested base name
func findDownloadedFile(requestedPath string) (string, error) {
	if platform.FileExists(requestedPath) {
		return requestedPath, nil
	}

	withExt := requestedPath + platform.TempExtension
	if platform.FileExists(withExt) {
		return withExt, nil
	}

	dir := filepath.Dir(requestedPath)
	base := strings.TrimSuffix(filepath.Base(requestedPath), platform.TempExtension)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read output dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), base) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("downloaded file not found for %s", requestedPath)
}

// downloadCover fetches thumbnail art into a temp file and returns its path
func downloadCover(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build cover request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download cover: HTTP %d", resp.StatusCode)
	}

	ext := ".jpg"
	if strings.Contains(url, ".png") {
		ext = ".png"
	}

	file, err := os.CreateTemp("", coverDownloadPrefix+"*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create cover temp file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write cover file: %w", err)
	}
	return file.Name(), nil
}
