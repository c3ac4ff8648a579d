package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fotoctl/filter"
	"github.com/s0up4200/fotoctl/fotolia"
)

var (
	searchLimit   int
	searchOffset  int
	searchOrder   string
	searchColumns []string
	searchParams  []string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [words...]",
	Short: "Search the image bank",
	Long: `Search the Fotolia image bank. Rows can be narrowed locally with a filter
expression or a preset from the config, for example:

  fotoctl search sunset --filter 'hasLicense("XL") and nb_views > 1000'
  fotoctl search cat --param 'filters[content_type:photo]=1'`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", 32, "number of results (max 64)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "index of the first result")
	searchCmd.Flags().StringVar(&searchOrder, "order", "relevance", "sort order: relevance, price_1, creation, nb_views, nb_downloads")
	searchCmd.Flags().StringSliceVar(&searchColumns, "columns", nil, "restrict the columns of each row")
	searchCmd.Flags().StringArrayVar(&searchParams, "param", nil, "extra search parameter as key=value (repeatable)")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the rows")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if searchLimit < 1 || searchLimit > 64 {
		return fmt.Errorf("--limit must be between 1 and 64")
	}

	extra, err := parseKeyValues(searchParams)
	if err != nil {
		return err
	}

	params := fotolia.P(
		"words", strings.Join(args, " "),
		"language_id", language,
		"limit", searchLimit,
		"offset", searchOffset,
		"order", searchOrder,
	)
	params = append(params, extra...)

	manager := filter.NewManager()
	if err := manager.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}
	rowFilter, err := manager.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	logger.Info().Strs("words", args).Int("limit", searchLimit).Msg("Searching")

	resp, err := client.GetSearchResults(ctx, params, searchColumns)
	if err != nil {
		return err
	}

	rows, err := manager.Apply(ctx, rowFilter, resp.SearchRows())
	if err != nil {
		return err
	}

	if rawOutput {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format rows: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if len(rows) == 0 {
		fmt.Println("No media found matching the search.")
		return nil
	}

	fmt.Printf("\nShowing %d of %s results", len(rows), resp.String("nb_results"))
	if rowFilter != nil {
		fmt.Printf(" (filter: %s)", rowFilter.Expression())
	}
	fmt.Println(":")
	fmt.Println(strings.Repeat("-", 80))

	for _, row := range rows {
		fmt.Print(formatRow(row))
	}

	return nil
}

// formatRow renders one search row for the terminal
func formatRow(row map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "• %v  %v", row["id"], field(row, "title"))
	if creator := field(row, "creator_name"); creator != "" {
		fmt.Fprintf(&b, " by %s", creator)
	}
	b.WriteString("\n")
	if views := field(row, "nb_views"); views != "" {
		fmt.Fprintf(&b, "  Views: %s  Downloads: %s\n", views, field(row, "nb_downloads"))
	}
	if thumb := field(row, "thumbnail_url"); thumb != "" {
		fmt.Fprintf(&b, "  Thumbnail: %s\n", thumb)
	}
	return b.String()
}

func field(row map[string]any, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
