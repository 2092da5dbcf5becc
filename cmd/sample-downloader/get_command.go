package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/sample-downloader/internal/model"
	"github.com/ytget/sample-downloader/internal/queue"
	"github.com/ytget/sample-downloader/internal/trim"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	var trimFlag string

	cmd := &cobra.Command{
		Use:   "get [url ...]",
		Short: "Download one or more URLs as tagged MP3 files",
		Long:  "Queues the given URLs (or URLs read from stdin, one per line) and downloads\nthem sequentially. With --trim, a single URL is cut to the given clip range.",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, "\n")
			if len(args) == 0 {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read URLs from stdin: %w", err)
				}
				raw = string(data)
			}

			manager, settings, cleanup, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			count := manager.AddURLs(raw)
			if count == 0 {
				return errors.New("no valid http(s) URLs given")
			}
			if err := awaitMirror(manager, count); err != nil {
				return err
			}

			if trimFlag != "" {
				if count != 1 {
					return errors.New("--trim applies to a single URL")
				}
				trimRange, err := parseTrimRange(trimFlag)
				if err != nil {
					return err
				}
				items := manager.Items()
				item := items[len(items)-1]
				if err := manager.DownloadOne(cmd.Context(), item.ID, settings.DownloadDir, trimRange); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", awaitOutputPath(manager, item.ID))
				return nil
			}

			succeeded, failed := manager.DownloadAll(cmd.Context(), settings.DownloadDir)
			awaitSettled(manager, succeeded+failed)
			for _, item := range manager.Items() {
				switch item.Status {
				case model.StatusComplete:
					fmt.Fprintf(cmd.OutOrStdout(), "ok    %s\n", item.OutputPath)
				case model.StatusFailed:
					fmt.Fprintf(cmd.OutOrStdout(), "fail  %s: %s\n", item.GetDisplayTitle(), item.LastError)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done: %d succeeded, %d failed\n", succeeded, failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d downloads failed", failed, succeeded+failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&trimFlag, "trim", "t", "", `clip range in seconds, "start-end" (for example "12.5-95")`)
	return cmd
}

// parseTrimRange parses "start-end" in seconds into a trim range
func parseTrimRange(spec string) (*model.TrimRange, error) {
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid trim range %q, want \"start-end\"", spec)
	}

	start, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid trim start %q", parts[0])
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid trim end %q", parts[1])
	}
	if start < 0 || end-start < trim.MinGap {
		return nil, fmt.Errorf("trim range must keep at least %.1fs after a non-negative start", trim.MinGap)
	}
	return &model.TrimRange{StartTime: start, EndTime: end}, nil
}

// awaitSettled waits until the mirror reflects at least want terminal items,
// so the result listing is not printed from a stale snapshot
func awaitSettled(manager *queue.Manager, want int) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		counts := manager.CountByStatus()
		if counts.Complete+counts.Failed >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// awaitOutputPath reads the artifact path for id once the mirror catches up
// with the final snapshot
func awaitOutputPath(manager *queue.Manager, id string) string {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, item := range manager.Items() {
			if item.ID == id && item.OutputPath != "" {
				return item.OutputPath
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return ""
}
