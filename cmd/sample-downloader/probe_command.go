package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/sample-downloader/internal/fetch"
	"github.com/ytget/sample-downloader/internal/model"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <url>",
		Short: "Resolve and print metadata for a URL without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureSettings(); err != nil {
				return err
			}

			metadata, err := fetch.NewService().FetchMetadata(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:     %s\n", metadata.Title)
			fmt.Fprintf(out, "Artist:    %s\n", metadata.Artist)
			if metadata.Duration > 0 {
				fmt.Fprintf(out, "Duration:  %s\n", model.FormatDuration(metadata.Duration))
			}
			if metadata.ChannelName != "" {
				fmt.Fprintf(out, "Channel:   %s\n", metadata.ChannelName)
			}
			if metadata.Thumbnail != "" {
				fmt.Fprintf(out, "Thumbnail: %s\n", metadata.Thumbnail)
			}
			return nil
		},
	}
}
