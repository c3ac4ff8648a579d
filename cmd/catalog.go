package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fotoctl/fotolia"
)

var (
	newTags       bool
	conceptual    bool
	thumbnailSize int
	withGalleries bool
	countriesFlag bool
)

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show the most used or the newest tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tagType := fotolia.TagsUsed
		if newTags {
			tagType = fotolia.TagsNew
		}
		resp, err := client.GetTags(cmd.Context(), language, tagType)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories [parent-id]",
	Short: "Browse the category tree",
	Long: `Browse the representative category tree, or the conceptual one with
--conceptual. Without a parent id the root categories are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent := 0
		if len(args) == 1 {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 0 {
				return fmt.Errorf("invalid category id: %s", args[0])
			}
			parent = id
		}

		get := client.GetCategories1
		if conceptual {
			get = client.GetCategories2
		}
		resp, err := get(cmd.Context(), language, parent)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

// mediaCmd represents the media command
var mediaCmd = &cobra.Command{
	Use:   "media <id>...",
	Short: "Show everything known about one or more media",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		var resp *fotolia.Response
		if len(ids) == 1 {
			resp, err = client.GetMediaData(ctx, ids[0], thumbnailSize, language)
		} else {
			resp, err = client.GetBulkMediaData(ctx, ids, thumbnailSize, language)
		}
		if err != nil {
			return err
		}
		if err := printResponse(resp); err != nil {
			return err
		}

		if !withGalleries {
			return nil
		}
		for _, id := range ids {
			galleries, err := client.GetMediaGalleries(ctx, id, language, thumbnailSize)
			if err != nil {
				return err
			}
			fmt.Printf("\nGalleries of %d:\n", id)
			if err := printResponse(galleries); err != nil {
				return err
			}
		}
		return nil
	},
}

// dataCmd represents the data command
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Show general service data, or the country list with --countries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			resp *fotolia.Response
			err  error
		)
		if countriesFlag {
			resp, err = client.GetCountries(cmd.Context(), language)
		} else {
			resp, err = client.GetData(cmd.Context())
		}
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(dataCmd)

	tagsCmd.Flags().BoolVar(&newTags, "new", false, "show the newest tags instead of the most used")
	categoriesCmd.Flags().BoolVar(&conceptual, "conceptual", false, "browse conceptual categories")
	mediaCmd.Flags().IntVar(&thumbnailSize, "thumbnail", fotolia.DefaultThumbnailSize, "thumbnail size in pixels")
	mediaCmd.Flags().BoolVar(&withGalleries, "galleries", false, "also list the galleries each media belongs to")
	dataCmd.Flags().BoolVar(&countriesFlag, "countries", false, "list countries")
}
