package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fotoctl/fotolia"
)

var (
	seasonal      bool
	seasonalTheme int
	mineOnly      bool
	galleryPage   int
	galleryPer    int
	moveTo        string
)

// galleriesCmd represents the galleries command
var galleriesCmd = &cobra.Command{
	Use:   "galleries",
	Short: "List public, seasonal or your own galleries",
	Long: `List public galleries, seasonal galleries with --seasonal, or the
galleries of the logged in member with --mine. Subcommands manage member
galleries and the lightbox.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			resp *fotolia.Response
			err  error
		)
		switch {
		case mineOnly:
			resp, err = client.GetUserGalleries(ctx)
		case seasonal:
			resp, err = client.GetSeasonalGalleries(ctx, language, fotolia.DefaultThumbnailSize, seasonalTheme)
		default:
			resp, err = client.GetGalleries(ctx, language)
		}
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var galleryMediasCmd = &cobra.Command{
	Use:   "medias [gallery-id]",
	Short: "List the media of a gallery, or of the lightbox without an id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := fotolia.GalleryPage{Page: galleryPage, PerPage: galleryPer}
		if len(args) == 1 {
			q.GalleryID = args[0]
		}
		resp, err := client.GetUserGalleryMedias(cmd.Context(), q)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var galleryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a gallery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.CreateUserGallery(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printSuccess("Created gallery %q (ID: %s)", args[0], resp.String("id"))
		return nil
	},
}

var galleryDeleteCmd = &cobra.Command{
	Use:   "delete <gallery-id>",
	Short: "Delete a gallery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.DeleteUserGallery(cmd.Context(), args[0]); err != nil {
			return err
		}
		printSuccess("Deleted gallery %s", args[0])
		return nil
	},
}

var galleryAddCmd = &cobra.Command{
	Use:   "add <media-id> [gallery-id]",
	Short: "Add a media to a gallery, or to the lightbox without a gallery id",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, galleryID, err := galleryArgs(args)
		if err != nil {
			return err
		}
		if _, err := client.AddToUserGallery(cmd.Context(), id, galleryID); err != nil {
			return err
		}
		printSuccess("Added %d to %s", id, galleryName(galleryID))
		return nil
	},
}

var galleryRemoveCmd = &cobra.Command{
	Use:   "remove <media-id> [gallery-id]",
	Short: "Remove a media from a gallery, or from the lightbox without a gallery id",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, galleryID, err := galleryArgs(args)
		if err != nil {
			return err
		}
		if _, err := client.RemoveFromUserGallery(cmd.Context(), id, galleryID); err != nil {
			return err
		}
		printSuccess("Removed %d from %s", id, galleryName(galleryID))
		return nil
	},
}

var galleryMoveCmd = &cobra.Command{
	Use:   "move <media-id> <gallery-id>",
	Short: "Reorder a media inside a gallery",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, galleryID, err := galleryArgs(args)
		if err != nil {
			return err
		}

		switch moveTo {
		case "up":
			err = client.MoveUpMediaInUserGallery(ctx, id, galleryID)
		case "down":
			err = client.MoveDownMediaInUserGallery(ctx, id, galleryID)
		case "top":
			err = client.MoveMediaToTopInUserGallery(ctx, id, galleryID)
		default:
			return fmt.Errorf("invalid --to %q (must be up, down or top)", moveTo)
		}
		if err != nil {
			return err
		}
		printSuccess("Moved %d %s in gallery %s", id, moveTo, galleryID)
		return nil
	},
}

func galleryArgs(args []string) (int64, string, error) {
	ids, err := parseIDs(args[:1])
	if err != nil {
		return 0, "", err
	}
	galleryID := ""
	if len(args) > 1 {
		galleryID = args[1]
	}
	return ids[0], galleryID, nil
}

func galleryName(galleryID string) string {
	if galleryID == "" {
		return "the lightbox"
	}
	return "gallery " + galleryID
}

func init() {
	rootCmd.AddCommand(galleriesCmd)
	galleriesCmd.AddCommand(galleryMediasCmd, galleryCreateCmd, galleryDeleteCmd,
		galleryAddCmd, galleryRemoveCmd, galleryMoveCmd)

	galleriesCmd.Flags().BoolVar(&seasonal, "seasonal", false, "list seasonal galleries")
	galleriesCmd.Flags().IntVar(&seasonalTheme, "theme", 0, "seasonal theme id (default all)")
	galleriesCmd.Flags().BoolVar(&mineOnly, "mine", false, "list the galleries of the logged in member")
	galleryMediasCmd.Flags().IntVar(&galleryPage, "page", 1, "page number")
	galleryMediasCmd.Flags().IntVar(&galleryPer, "per-page", 32, "media per page")
	galleryMoveCmd.Flags().StringVar(&moveTo, "to", "up", "direction: up, down or top")
}
