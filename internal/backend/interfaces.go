package backend

import (
	"context"

	"github.com/ytget/sample-downloader/internal/audio"
)

// Converter defines the transcode step of a materialize run
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string, opts audio.ConvertOptions, onProgress func(fraction float64)) error
}

// Recorder defines the download-history ledger written on successful
// materialization
type Recorder interface {
	Save(ctx context.Context, entry Record) (int64, error)
}

// Record is the ledger row written after a successful materialization
type Record struct {
	URL        string
	Title      string
	Artist     string
	Thumbnail  string
	Duration   int64
	OutputPath string
}

// Broadcaster is the read side of the queue snapshot feed
type Broadcaster interface {
	// Subscribe registers a new snapshot consumer. The returned subscription
	// must be closed when the consumer goes away.
	Subscribe() *Subscription
}

var _ Broadcaster = (*Service)(nil)
