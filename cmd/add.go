package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/qbitctl/qbittorrent"
)

var (
	addFiles     []string
	addURLs      []string
	addCategory  string
	addTags      []string
	addSavePath  string
	addRename    string
	addPaused    bool
	addSkipCheck bool
	addAutoTMM   bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add torrents from files, URLs or magnet links",
	Long: `Add one or more torrents to the client, from local .torrent files
(uploaded to the WebUI) and/or URLs or magnet links (fetched by the client).`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringSliceVar(&addFiles, "file", nil, "path to a .torrent file (repeatable)")
	addCmd.Flags().StringSliceVar(&addURLs, "url", nil, "torrent URL or magnet link (repeatable)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category for the torrents")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "tags for the torrents")
	addCmd.Flags().StringVar(&addSavePath, "save-path", "", "download folder")
	addCmd.Flags().StringVar(&addRename, "rename", "", "rename the torrent")
	addCmd.Flags().BoolVar(&addPaused, "paused", false, "add torrents in the paused state")
	addCmd.Flags().BoolVar(&addSkipCheck, "skip-check", false, "skip hash checking")
	addCmd.Flags().BoolVar(&addAutoTMM, "auto-tmm", false, "enable Automatic Torrent Management")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if len(addFiles) == 0 && len(addURLs) == 0 {
		return fmt.Errorf("at least one --file or --url is required")
	}

	opts := &qbittorrent.TorrentAddOptions{
		URLs:         addURLs,
		SavePath:     addSavePath,
		Category:     addCategory,
		Tags:         addTags,
		Rename:       addRename,
		Paused:       addPaused,
		SkipChecking: addSkipCheck,
		AutoTMM:      addAutoTMM,
	}

	for _, path := range addFiles {
		if err := opts.AddFile(path); err != nil {
			return err
		}
	}

	if cfg.Safety.DryRun {
		logger.Info().
			Strs("files", addFiles).
			Strs("urls", addURLs).
			Msg("Dry run: would add torrents")
		return nil
	}

	if err := qbClient.AddTorrent(cmd.Context(), opts); err != nil {
		return err
	}

	fmt.Printf("Submitted %d torrent(s) to the client.\n", len(addFiles)+len(addURLs))
	return nil
}
