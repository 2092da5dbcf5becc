package queue

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/sample-downloader/internal/logger"
	"github.com/ytget/sample-downloader/internal/model"
)

// Manager is the consumer-side queue coordinator. It keeps a read-only
// mirror of the backend's queue state, updated wholesale from snapshot
// broadcasts, and translates user intents (add, remove, download) into
// backend commands.
//
// DownloadOne and DownloadAll are not mutually exclusive; the caller is
// expected to disable single-item downloads while a batch runs.
type Manager struct {
	backend Backend

	mu            sync.RWMutex
	items         []model.QueueItem
	processingAll bool

	sub  Subscription
	done chan struct{}
}

// Counts summarizes the mirror by lifecycle stage
type Counts struct {
	Actionable int
	Active     int
	Complete   int
	Failed     int
}

// NewManager creates a manager mirroring the given backend. Close must be
// called to release the snapshot subscription.
func NewManager(backend Backend) *Manager {
	m := &Manager{
		backend: backend,
		sub:     backend.Subscribe(),
		done:    make(chan struct{}),
	}
	go m.consume()
	return m
}

// consume replaces the mirror with every broadcast snapshot until the
// subscription closes. The mirror is never patched in place.
func (m *Manager) consume() {
	defer close(m.done)
	for snapshot := range m.sub.Updates() {
		m.mu.Lock()
		m.items = snapshot
		m.mu.Unlock()
	}
}

// Items returns a copy of the mirrored queue
func (m *Manager) Items() []model.QueueItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return model.CloneItems(m.items)
}

// AddURLs splits free-form text into one URL per line and enqueues the
// non-blank ones. Returns how many items the backend accepted.
func (m *Manager) AddURLs(rawText string) int {
	var urls []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	if len(urls) == 0 {
		return 0
	}
	return len(m.backend.Enqueue(urls))
}

// RemoveItem removes an item from the queue. Items currently being worked on
// are kept; the refusal is logged, not an error.
func (m *Manager) RemoveItem(id string) error {
	m.mu.RLock()
	var status model.QueueStatus
	for _, item := range m.items {
		if item.ID == id {
			status = item.Status
			break
		}
	}
	m.mu.RUnlock()

	if status.IsActive() {
		logger.Warn("refusing to remove an in-flight item",
			zap.String("id", id), zap.String("status", status.String()))
		return nil
	}
	return m.backend.Remove(id)
}

// ClearCompleted removes all successfully finished items
func (m *Manager) ClearCompleted() {
	m.backend.ClearFinished()
}

// DownloadOne materializes a single item into outputDir, optionally trimmed
func (m *Manager) DownloadOne(ctx context.Context, id, outputDir string, trim *model.TrimRange) error {
	return m.backend.Materialize(ctx, id, outputDir, trim)
}

// DownloadAll materializes every actionable item, strictly one at a time in
// queue order. The actionable set is fixed when the call starts; items added
// later wait for the next batch. A failing item is logged and skipped, the
// batch continues. Returns how many items succeeded and how many failed.
//
// Only one batch runs at a time; a second call while one is in flight
// returns immediately.
func (m *Manager) DownloadAll(ctx context.Context, outputDir string) (succeeded, failed int) {
	m.mu.Lock()
	if m.processingAll {
		m.mu.Unlock()
		logger.Warn("batch download already running")
		return 0, 0
	}
	m.processingAll = true

	var ids []string
	for _, item := range m.items {
		if item.Status.IsActionable() {
			ids = append(ids, item.ID)
		}
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.processingAll = false
		m.mu.Unlock()
	}()

	logger.Info("batch download started", zap.Int("count", len(ids)))
	for _, id := range ids {
		if err := m.backend.Materialize(ctx, id, outputDir, nil); err != nil {
			logger.Warn("batch item failed", zap.String("id", id), zap.Error(err))
			failed++
			continue
		}
		succeeded++
	}
	logger.Info("batch download finished",
		zap.Int("succeeded", succeeded), zap.Int("failed", failed))
	return succeeded, failed
}

// IsProcessingAll reports whether a batch download is in flight
func (m *Manager) IsProcessingAll() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.processingAll
}

// CountByStatus summarizes the mirror by lifecycle stage
func (m *Manager) CountByStatus() Counts {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var counts Counts
	for _, item := range m.items {
		switch {
		case item.Status.IsActionable():
			counts.Actionable++
		case item.Status.IsActive():
			counts.Active++
		case item.Status == model.StatusComplete:
			counts.Complete++
		case item.Status == model.StatusFailed:
			counts.Failed++
		}
	}
	return counts
}

// Close releases the snapshot subscription and waits for the mirror
// goroutine to stop
func (m *Manager) Close() {
	m.sub.Close()
	<-m.done
}
