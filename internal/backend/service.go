package backend

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/sample-downloader/internal/fetch"
	"github.com/ytget/sample-downloader/internal/logger"
	"github.com/ytget/sample-downloader/internal/model"
)

// Queue item IDs use a short UUID prefix, long enough to stay unique within
// one session
const itemIDLength = 8

// Errors surfaced by queue operations
var (
	ErrItemNotFound = errors.New("item not found in queue")
	ErrCancelled    = errors.New("download cancelled")
)

// Service is the authoritative owner of queue state. Every mutation goes
// through it, and every change is published to subscribers as a full
// snapshot; consumers never patch state locally.
type Service struct {
	mu    sync.Mutex
	items []model.QueueItem

	subs   map[int]*Subscription
	nextID int

	cancelled atomic.Bool

	fetcher   fetch.Fetcher
	converter Converter
	recorder  Recorder
}

// NewService creates an acquisition backend with the given collaborators.
// recorder may be nil when no history ledger is wanted.
func NewService(fetcher fetch.Fetcher, converter Converter, recorder Recorder) *Service {
	return &Service{
		subs:      make(map[int]*Subscription),
		fetcher:   fetcher,
		converter: converter,
		recorder:  recorder,
	}
}

// List returns a copy of the current queue snapshot
func (s *Service) List() []model.QueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneItems(s.items)
}

// Enqueue adds one queue item per valid URL: blank entries and locators
// without an http(s) scheme are dropped. Returns the added items.
func (s *Service) Enqueue(urls []string) []model.QueueItem {
	var added []model.QueueItem

	s.mu.Lock()
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" || (!strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://")) {
			continue
		}

		item := model.QueueItem{
			ID:     uuid.NewString()[:itemIDLength],
			URL:    url,
			Status: model.StatusPending,
		}
		s.items = append(s.items, item)
		added = append(added, item)
	}
	s.mu.Unlock()

	if len(added) > 0 {
		logger.Info("items enqueued", zap.Int("count", len(added)))
		s.publish()
	}
	return added
}

// Remove deletes an item from the queue
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return ErrItemNotFound
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.mu.Unlock()

	s.publish()
	return nil
}

// ClearFinished removes all items that completed successfully. Failed items
// stay in the queue for user inspection and retry.
func (s *Service) ClearFinished() {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.Status != model.StatusComplete {
			kept = append(kept, item)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	s.mu.Unlock()

	if removed > 0 {
		s.publish()
	}
}

// Cancel flags the in-flight acquisition for cancellation. The flag sticks
// until ResetCancel so a cancel issued between stages is not lost.
func (s *Service) Cancel() {
	s.cancelled.Store(true)
}

// ResetCancel clears the cancellation flag before a fresh acquisition
func (s *Service) ResetCancel() {
	s.cancelled.Store(false)
}

// indexOf returns the position of an item id, -1 when absent. Caller holds
// the mutex.
func (s *Service) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// updateItem mutates one item under the mutex and publishes the new snapshot
func (s *Service) updateItem(id string, mutate func(*model.QueueItem)) {
	s.mu.Lock()
	if index := s.indexOf(id); index >= 0 {
		mutate(&s.items[index])
	}
	s.mu.Unlock()

	s.publish()
}

// getItem returns a copy of one item
func (s *Service) getItem(id string) (model.QueueItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index := s.indexOf(id); index >= 0 {
		return s.items[index], true
	}
	return model.QueueItem{}, false
}
