package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/platform"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved videos and categories",
	}

	var listCategory string
	list := &cobra.Command{
		Use:   "list",
		Short: "Show favorites in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.lib.Favorites.Entries()
			if listCategory != "" {
				entries = a.lib.Favorites.ByCategory(listCategory)
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "No favorites")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tCATEGORY\tTITLE")
			for i, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, e.Ref.ID, e.Category, e.Ref.DisplayTitle())
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVarP(&listCategory, "category", "c", "", "only this category")

	var addTitle, addCategory string
	add := &cobra.Command{
		Use:   "add URL|ID",
		Short: "Save a video under a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveRef(args[0], addTitle)
			if err != nil {
				return err
			}
			category := addCategory
			if !cmd.Flags().Changed("category") {
				category = a.cfg.Category
			}
			res, err := a.lib.Favorites.Add(cmd.Context(), ref, category)
			if err != nil {
				return err
			}
			category = model.FavoriteEntry{Category: category}.Normalize().Category
			if res == model.AlreadyExists {
				fmt.Fprintf(a.out, "%s is already in %s\n", ref.ID, category)
				return nil
			}
			fmt.Fprintf(a.out, "Added %s to %s\n", ref.ID, category)
			return nil
		},
	}
	add.Flags().StringVarP(&addTitle, "title", "t", "", "video title")
	add.Flags().StringVarP(&addCategory, "category", "c", "", "category (default: quick-save category from config)")

	var rmCategory string
	rm := &cobra.Command{
		Use:   "rm URL|ID",
		Short: "Remove a video from one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveRef(args[0], "")
			if err != nil {
				return err
			}
			if err := a.lib.Favorites.Remove(cmd.Context(), ref.ID, rmCategory); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed %s\n", ref.ID)
			return nil
		},
	}
	rm.Flags().StringVarP(&rmCategory, "category", "c", "", "category (default Uncategorized)")

	rmCategoryCmd := &cobra.Command{
		Use:   "rm-category CATEGORY",
		Short: "Remove every favorite in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.lib.Favorites.RemoveCategory(cmd.Context(), args[0])
			fmt.Fprintf(a.out, "Removed %d favorites from %s\n", n, args[0])
			return nil
		},
	}

	var withDefaults bool
	categories := &cobra.Command{
		Use:   "categories",
		Short: "List categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := a.lib.Favorites.Categories()
			if withDefaults {
				names = a.lib.Favorites.CategoryOptions(a.cfg.Category)
			}
			for _, c := range names {
				fmt.Fprintf(a.out, "%s\t%d\n", c, len(a.lib.Favorites.ByCategory(c)))
			}
			return nil
		},
	}
	categories.Flags().BoolVar(&withDefaults, "all", false, "include the default category offerings")

	export := &cobra.Command{
		Use:   "export [PATH|-]",
		Short: "Write favorites as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := platform.DefaultExportPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				data, err := a.lib.Transfer.ExportFavorites()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, string(data))
				return err
			}
			n, err := a.lib.Transfer.ExportFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Exported %d favorites to %s\n", n, path)
			return nil
		},
	}

	var importMode string
	importCmd := &cobra.Command{
		Use:   "import PATH|-",
		Short: "Merge or replace favorites from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(importMode)
			if err != nil {
				return err
			}
			var res model.ImportResult
			if args[0] == "-" {
				res, err = a.lib.Transfer.ImportReader(cmd.Context(), a.in, mode)
			} else {
				if _, statErr := os.Stat(args[0]); statErr != nil {
					return statErr
				}
				res, err = a.lib.Transfer.ImportFile(cmd.Context(), args[0], mode)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Imported %d favorites (%s), %d total\n", res.Added, mode, res.Total)
			return nil
		},
	}
	importCmd.Flags().StringVarP(&importMode, "mode", "m", "merge", "merge or replace")

	cmd.AddCommand(list, add, rm, rmCategoryCmd, categories, export, importCmd)
	return cmd
}
