package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/ytget/yt-player/internal/model"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or edit the watch history",
	}

	var limit int
	var continueOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "Show watched videos, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.lib.History.Entries()
			if continueOnly {
				entries = a.lib.History.RecentWithProgress(model.ContinueMinSeconds, max(limit, 1))
			} else if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "No history yet")
				return nil
			}

			now := time.Now()
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tPOSITION\tPLAYED\tTITLE")
			for i, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, e.Ref.ID,
					model.FormatPosition(e.LastPosition), model.TimeAgo(e.LastPlayedAt, now), e.Ref.DisplayTitle())
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n entries")
	list.Flags().BoolVar(&continueOnly, "continue", false, "only videos worth continuing")

	rm := &cobra.Command{
		Use:   "rm INDEX",
		Short: "Remove one history entry by its list index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			if err := a.lib.History.RemoveAt(cmd.Context(), index); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed entry %d\n", index)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.lib.History.Len()
			a.lib.History.Clear(cmd.Context())
			fmt.Fprintf(a.out, "Cleared %d entries\n", n)
			return nil
		},
	}

	cmd.AddCommand(list, rm, clearCmd)
	return cmd
}
