package queue

import (
	"context"

	"github.com/ytget/sample-downloader/internal/model"
)

// Subscription is one consumer's handle on the backend snapshot feed
type Subscription interface {
	// Updates returns the snapshot channel, closed on teardown
	Updates() <-chan []model.QueueItem

	// Close unregisters the consumer; no snapshot is delivered afterwards
	Close()
}

// Backend defines the authoritative queue service the manager drives. The
// manager never mutates queue state itself; it issues commands and mirrors
// the snapshots the backend broadcasts back.
type Backend interface {
	// List returns the current queue snapshot
	List() []model.QueueItem

	// Enqueue adds one item per valid URL and returns the added items
	Enqueue(urls []string) []model.QueueItem

	// Remove deletes an item from the queue
	Remove(id string) error

	// ClearFinished removes successfully completed items
	ClearFinished()

	// Materialize drives one item through fetch, download and transcode
	Materialize(ctx context.Context, id, outputDir string, trim *model.TrimRange) error

	// Subscribe registers a snapshot consumer
	Subscribe() Subscription
}
