package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/ytget/yt-player/internal/model"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or set the saved playback state",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the session the player would offer to resume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, ok := a.lib.Session.LoadForRestorePrompt(cmd.Context())
			if !ok {
				fmt.Fprintf(a.out, "Nothing to resume (window %s)\n", a.lib.Session.RestoreWindow())
				return nil
			}
			fmt.Fprintf(a.out, "Video:    %s (%s)\n", state.Ref.DisplayTitle(), state.Ref.ID)
			fmt.Fprintf(a.out, "Position: %s\n", model.FormatPosition(state.Position))
			fmt.Fprintf(a.out, "Speed:    %s\n", model.FormatRate(state.PlaybackRate))
			fmt.Fprintf(a.out, "Saved:    %s\n", model.TimeAgo(state.SavedAt, time.Now()))
			return nil
		},
	}

	var position int
	var rate float64
	var title string
	save := &cobra.Command{
		Use:   "save URL|ID",
		Short: "Overwrite the saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveRef(args[0], title)
			if err != nil {
				return err
			}
			state := a.lib.Session.Save(cmd.Context(), ref, position, rate)
			a.lib.Session.SavePosition(cmd.Context(), ref.ID, state.Position)
			fmt.Fprintf(a.out, "Saved %s at %s, %s\n", ref.ID, model.FormatPosition(state.Position), model.FormatRate(state.PlaybackRate))
			return nil
		},
	}
	save.Flags().IntVarP(&position, "position", "p", 0, "position in seconds")
	save.Flags().Float64VarP(&rate, "rate", "r", model.DefaultPlaybackRate, "playback rate")
	save.Flags().StringVarP(&title, "title", "t", "", "video title")

	positionCmd := &cobra.Command{
		Use:   "position URL|ID",
		Short: "Show the stored resume position of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveRef(args[0], "")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, model.FormatPosition(a.lib.Session.Position(cmd.Context(), ref.ID)))
			return nil
		},
	}

	cmd.AddCommand(show, save, positionCmd)
	return cmd
}
