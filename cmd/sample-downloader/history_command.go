package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ytget/sample-downloader/internal/history"
	"github.com/ytget/sample-downloader/internal/model"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history [query]",
		Short: "List past downloads, newest first",
		Long:  "Lists the download ledger. An optional query matches against title and\nartist.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureSettings(); err != nil {
				return err
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []history.Entry
			if len(args) == 1 {
				entries, err = store.Search(cmd.Context(), args[0], limitFlag)
			} else {
				entries, err = store.Recent(cmd.Context(), limitFlag)
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No downloads recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tARTIST\tTITLE\tLENGTH\tDOWNLOADED")
			for _, entry := range entries {
				length := "—"
				if entry.Duration > 0 {
					length = model.FormatDuration(entry.Duration)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					entry.ID, entry.Artist, entry.Title, length, entry.DownloadedAt)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", history.DefaultLimit, "maximum entries to list")
	cmd.AddCommand(newHistoryClearCommand(ctx))
	cmd.AddCommand(newHistoryDeleteCommand(ctx))
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureSettings(); err != nil {
				return err
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func newHistoryDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureSettings(); err != nil {
				return err
			}

			var id int64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return fmt.Errorf("invalid history id %q", args[0])
			}

			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			return store.Delete(cmd.Context(), id)
		},
	}
}
