package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/s0up4200/qbitctl/filter"
	"github.com/s0up4200/qbitctl/qbittorrent"
)

var (
	listFilterExpr string
	listPreset     string
	listCategory   string
	listTag        string
	listState      string
	listJSON       bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List torrents matching the filter criteria",
	Long: `List torrents in the client, narrowed server-side by category, tag or
state, and client-side by a filter expression such as:

  qbitctl list --filter 'Ratio > 2.0 && State.IsSeeding()'
  qbitctl list --filter 'HasTag("iso") && Size > 1024*1024*1024'`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFilterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&listPreset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only torrents with this category")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "only torrents with this tag")
	listCmd.Flags().StringVarP(&listState, "state", "s", "", "server-side state filter (seeding, downloading, paused, ...)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	expression, err := filterExpression()
	if err != nil {
		return err
	}

	opts := qbittorrent.TorrentListOptions{
		Category: listCategory,
		Tag:      listTag,
	}
	if listState != "" {
		opts.Filter = qbittorrent.TorrentListFilter(listState)
	}

	torrents, err := qbClient.GetTorrents(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if expression != "" {
		logger.Debug().Str("filter", expression).Msg("Applying filter expression")

		f, err := filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}

		torrents, err = f.Apply(torrents)
		if err != nil {
			return err
		}
	}

	if listJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(torrents)
	}

	if len(torrents) == 0 {
		fmt.Println("No torrents found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d torrents:\n", len(torrents))
	fmt.Println(strings.Repeat("-", 80))

	for _, t := range torrents {
		fmt.Printf("• %s [%s]\n", t.Name, t.State)
		fmt.Printf("  %s  ratio %.2f  ↓ %s/s  ↑ %s/s",
			humanize.IBytes(uint64(t.Size)),
			t.Ratio,
			humanize.IBytes(uint64(t.DownloadSpeed)),
			humanize.IBytes(uint64(t.UploadSpeed)),
		)
		if t.Progress < 1.0 {
			fmt.Printf("  %.1f%%", t.Progress*100)
		}
		fmt.Println()
		if t.Category != "" {
			fmt.Printf("  Category: %s\n", t.Category)
		}
		if len(t.Tags) > 0 {
			fmt.Printf("  Tags: %s\n", strings.Join(t.Tags, ", "))
		}
		fmt.Printf("  Hash: %s\n", t.Hash)
	}

	return nil
}

// filterExpression resolves --filter / --preset into a single expression.
func filterExpression() (string, error) {
	if listFilterExpr != "" && listPreset != "" {
		return "", fmt.Errorf("--filter and --preset are mutually exclusive")
	}
	if listPreset != "" {
		expression, ok := cfg.Filters[listPreset]
		if !ok {
			return "", fmt.Errorf("unknown filter preset: %s", listPreset)
		}
		return expression, nil
	}
	return listFilterExpr, nil
}
