package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ytget/sample-downloader/internal/audio"
	"github.com/ytget/sample-downloader/internal/backend"
	"github.com/ytget/sample-downloader/internal/config"
	"github.com/ytget/sample-downloader/internal/fetch"
	"github.com/ytget/sample-downloader/internal/history"
	"github.com/ytget/sample-downloader/internal/logger"
	"github.com/ytget/sample-downloader/internal/platform"
	"github.com/ytget/sample-downloader/internal/queue"
)

const historyFileName = "history.db"

// commandContext carries lazily-loaded settings and wiring shared by all
// subcommands
type commandContext struct {
	configFlag *string
	outputFlag *string

	loadOnce sync.Once
	settings *config.Settings
	loadErr  error
}

func newCommandContext(configFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		outputFlag: outputFlag,
	}
}

// ensureSettings loads settings once: explicit --config path, else the
// per-user settings file. --output-dir overrides the configured download
// directory. The logger is initialized from the loaded settings.
func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.loadOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		if path == "" {
			if dir, err := platform.GetConfigDir(); err == nil {
				path = filepath.Join(dir, config.SettingsFileName)
			}
		}

		settings, err := config.Load(path)
		if err != nil {
			c.loadErr = fmt.Errorf("failed to load settings: %w", err)
			return
		}
		if *c.outputFlag != "" {
			settings.DownloadDir = *c.outputFlag
		}
		c.settings = settings

		logger.Init(logger.Config{
			Level:      logger.LogLevel(settings.LogLevel),
			OutputPath: settings.LogPath,
		})
	})
	return c.settings, c.loadErr
}

// openHistory opens the download-history ledger under the per-user config
// directory
func (c *commandContext) openHistory() (*history.Store, error) {
	dir, err := platform.GetConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, platform.DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return history.Open(filepath.Join(dir, historyFileName))
}

// newProcessor builds the transcode processor from settings
func (c *commandContext) newProcessor() (*audio.Processor, *config.Settings, error) {
	settings, err := c.ensureSettings()
	if err != nil {
		return nil, nil, err
	}
	return audio.NewProcessor(settings.FFmpegPath, settings.FFprobePath, settings.BitrateKbps), settings, nil
}

// backendAdapter narrows *backend.Service to the queue.Backend interface;
// the Subscribe return types differ only in concreteness
type backendAdapter struct {
	*backend.Service
}

func (a backendAdapter) Subscribe() queue.Subscription {
	return a.Service.Subscribe()
}

// historyRecorder bridges the acquisition backend to the history store
type historyRecorder struct {
	store *history.Store
}

func (r *historyRecorder) Save(ctx context.Context, entry backend.Record) (int64, error) {
	return r.store.Save(ctx, history.Entry{
		URL:        entry.URL,
		Title:      entry.Title,
		Artist:     entry.Artist,
		Thumbnail:  entry.Thumbnail,
		Duration:   entry.Duration,
		OutputPath: entry.OutputPath,
	})
}

// newPipeline wires the full acquisition stack: fetcher, transcoder, history
// ledger, backend service and queue manager. The returned cleanup closes
// everything in order.
func (c *commandContext) newPipeline() (*queue.Manager, *config.Settings, func(), error) {
	processor, settings, err := c.newProcessor()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := os.MkdirAll(settings.DownloadDir, platform.DefaultDirPermissions); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	store, err := c.openHistory()
	if err != nil {
		return nil, nil, nil, err
	}

	service := backend.NewService(fetch.NewService(), processor, &historyRecorder{store: store})
	manager := queue.NewManager(backendAdapter{Service: service})

	cleanup := func() {
		manager.Close()
		store.Close()
		logger.Sync()
	}
	return manager, settings, cleanup, nil
}

// awaitMirror waits until the manager mirror holds at least want items.
// Snapshot delivery is asynchronous, so commands that enqueue and then act
// on specific items need this barrier.
func awaitMirror(manager *queue.Manager, want int) error {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(manager.Items()) >= want {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("queue did not reach %d items", want)
}
