package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fotoctl/fotolia"
)

// errTerminalOutput is returned when binary output would go to a terminal
var errTerminalOutput = errors.New("refusing to write binary data to a terminal, use --output or --force")

var (
	outputPath   string
	forceOutput  bool
	anonymous    bool
	compDir      string
	compWorkers  int
	compURLOnly  bool
	licenseName  string
	subaccountID int64
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download a URL returned by getMedia or getMediaComp",
	Long: `Stream a download URL to a file, or to stdout when --output is not given.
Purchased media need a logged in member; comp URLs can be fetched with --comp.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		requireAuth := !anonymous
		kind := downloadKind(requireAuth)

		if outputPath != "" {
			err := client.DownloadFile(ctx, args[0], outputPath, requireAuth)
			collector.ObserveDownload(kind, err)
			if err != nil {
				return err
			}
			fprintSuccess(os.Stderr, "Saved %s", outputPath)
			return nil
		}

		sink, err := stdoutSink(os.Stdout, isTerminal(os.Stdout), forceOutput)
		if err != nil {
			return err
		}
		err = client.Download(ctx, args[0], sink, requireAuth)
		collector.ObserveDownload(kind, err)
		return err
	},
}

// compCmd represents the comp command
var compCmd = &cobra.Command{
	Use:   "comp <id>...",
	Short: "Download the comp (preview) image of one or more media",
	Long: `Resolve the comp image of each media and save it as <id>.<ext> in --dir.
Comps are watermarked previews for evaluation only and need no login.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		if compURLOnly {
			for _, id := range ids {
				resp, err := client.GetMediaComp(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("%d\t%s\t%sx%s\n", id, resp.String("url"), resp.String("width"), resp.String("height"))
			}
			return nil
		}

		if err := os.MkdirAll(compDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", compDir, err)
		}

		result := client.DownloadComps(ctx, ids, compDir, compWorkers)
		for _, saved := range result.Saved {
			collector.ObserveDownload(downloadKind(false), nil)
			printSuccess("%d → %s", saved.MediaID, saved.Path)
		}
		for _, failed := range result.Failed {
			collector.ObserveDownload(downloadKind(false), failed.Err)
			printFailure("%v", failed)
		}

		if len(result.Failed) > 0 {
			return fmt.Errorf("%d of %d comp downloads failed", len(result.Failed), result.Requested)
		}
		return nil
	},
}

// buyCmd represents the buy command
var buyCmd = &cobra.Command{
	Use:   "buy <id>",
	Short: "Purchase a media and download it",
	Long: `Purchase a media under --license through getMedia and download the file.
The purchase is charged to the logged in member, or to --subaccount.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if licenseName == "" {
			return fmt.Errorf("--license is required")
		}
		if !client.Authenticated() {
			return fmt.Errorf("buying requires fotolia.login and fotolia.password: %w", fotolia.ErrAuthRequired)
		}

		resp, err := client.GetMedia(ctx, ids[0], licenseName, subaccountID)
		if err != nil {
			return err
		}
		mediaURL := resp.String("url")
		if mediaURL == "" {
			return fmt.Errorf("getMedia returned no download url")
		}

		target := outputPath
		if target == "" {
			target = fileNameFor(mediaURL, fmt.Sprintf("%d_%s.jpg", ids[0], licenseName))
		}

		logger.Info().Int64("media_id", ids[0]).Str("license", licenseName).Str("path", target).Msg("Downloading purchased media")

		err = client.DownloadMedia(ctx, mediaURL, target)
		collector.ObserveDownload(downloadKind(true), err)
		if err != nil {
			return err
		}
		printSuccess("Saved %s", target)
		return nil
	},
}

func downloadKind(requireAuth bool) string {
	if requireAuth {
		return "media"
	}
	return "comp"
}

// stdoutSink returns w unless it is a terminal and force is not set
func stdoutSink(w io.Writer, terminal, force bool) (io.Writer, error) {
	if terminal && !force {
		return nil, errTerminalOutput
	}
	return w, nil
}

// fileNameFor picks a local file name from the last path segment of a
// download URL.
func fileNameFor(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || !strings.Contains(name, ".") {
		return fallback
	}
	return name
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(compCmd)
	rootCmd.AddCommand(buyCmd)

	downloadCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to this file instead of stdout")
	downloadCmd.Flags().BoolVar(&forceOutput, "force", false, "write to stdout even when it is a terminal")
	downloadCmd.Flags().BoolVar(&anonymous, "comp", false, "the URL is a comp and needs no login")

	compCmd.Flags().StringVar(&compDir, "dir", ".", "directory to save comps in")
	compCmd.Flags().IntVar(&compWorkers, "concurrency", fotolia.DefaultBatchConcurrency, "parallel downloads")
	compCmd.Flags().BoolVar(&compURLOnly, "url-only", false, "print the comp URLs without downloading")

	buyCmd.Flags().StringVar(&licenseName, "license", "", "license name, e.g. XS, M, XL, V")
	buyCmd.Flags().Int64Var(&subaccountID, "subaccount", 0, "buy for a subaccount")
	buyCmd.Flags().StringVarP(&outputPath, "output", "o", "", "file to save to (default from the URL)")
}
