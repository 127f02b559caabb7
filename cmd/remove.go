package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeDeleteFiles bool

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove HASH...",
	Short: "Remove torrents from the client",
	Long: `Remove one or more torrents, identified by hash. With --delete-files
the downloaded data is removed as well.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolVar(&removeDeleteFiles, "delete-files", false, "also delete downloaded data")
}

func runRemove(cmd *cobra.Command, args []string) error {
	if cfg.Safety.DryRun {
		logger.Info().
			Strs("hashes", args).
			Bool("delete_files", removeDeleteFiles).
			Msg("Dry run: would remove torrents")
		return nil
	}

	prompt := fmt.Sprintf("Remove %d torrent(s)", len(args))
	if removeDeleteFiles {
		prompt += " and their data"
	}
	if !confirm(prompt + "?") {
		fmt.Println("Aborted.")
		return nil
	}

	if err := qbClient.DeleteTorrents(cmd.Context(), args, removeDeleteFiles); err != nil {
		return err
	}

	fmt.Printf("Removed %d torrent(s).\n", len(args))
	return nil
}
