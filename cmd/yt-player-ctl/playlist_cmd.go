package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ytget/yt-player/internal/model"
)

func newPlaylistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Bring YouTube playlists into favorites",
	}

	var category, mode, dump string
	importCmd := &cobra.Command{
		Use:   "import [URL]",
		Short: "Import a playlist as favorites",
		Long: "Import a playlist as favorites. The playlist is fetched from YouTube,\n" +
			"or read from a `yt-dlp --flat-playlist -j` dump with --from-dump.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			var res model.ImportResult
			switch {
			case dump != "":
				f, err := os.Open(dump)
				if err != nil {
					return err
				}
				defer f.Close()
				res, err = a.lib.Transfer.ImportPlaylistDump(cmd.Context(), f, category, m)
				if err != nil {
					return err
				}
			case len(args) == 1:
				res, err = a.lib.Transfer.ImportPlaylist(cmd.Context(), args[0], category, m)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("give a playlist URL or --from-dump FILE")
			}
			fmt.Fprintf(a.out, "Imported %d videos (%s), %d favorites total\n", res.Added, m, res.Total)
			return nil
		},
	}
	importCmd.Flags().StringVarP(&category, "category", "c", "", "category for imported videos (default: playlist title)")
	importCmd.Flags().StringVarP(&mode, "mode", "m", "merge", "merge or replace")
	importCmd.Flags().StringVar(&dump, "from-dump", "", "read a yt-dlp JSON-lines dump instead of fetching")

	cmd.AddCommand(importCmd)
	return cmd
}
