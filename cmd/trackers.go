package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/qbitctl/qbittorrent"
)

// trackerFetchLimit caps concurrent trackers requests when multiple hashes
// are given.
const trackerFetchLimit = 5

// trackersCmd groups the tracker subcommands
var trackersCmd = &cobra.Command{
	Use:   "trackers",
	Short: "Inspect and edit torrent trackers",
}

var trackersGetCmd = &cobra.Command{
	Use:   "get HASH...",
	Short: "Show the trackers of one or more torrents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrackersGet,
}

var trackersAddCmd = &cobra.Command{
	Use:   "add HASH URL...",
	Short: "Add tracker URLs to a torrent",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Safety.DryRun {
			logger.Info().Str("hash", args[0]).Strs("urls", args[1:]).Msg("Dry run: would add trackers")
			return nil
		}
		return qbClient.AddTrackers(cmd.Context(), args[0], args[1:]...)
	},
}

var trackersEditCmd = &cobra.Command{
	Use:   "edit HASH OLD_URL NEW_URL",
	Short: "Replace a tracker URL on a torrent",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Safety.DryRun {
			logger.Info().Str("hash", args[0]).Str("old", args[1]).Str("new", args[2]).Msg("Dry run: would edit tracker")
			return nil
		}
		return qbClient.EditTracker(cmd.Context(), args[0], args[1], args[2])
	},
}

var trackersRemoveCmd = &cobra.Command{
	Use:   "remove HASH URL...",
	Short: "Remove tracker URLs from a torrent",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Safety.DryRun {
			logger.Info().Str("hash", args[0]).Strs("urls", args[1:]).Msg("Dry run: would remove trackers")
			return nil
		}
		return qbClient.RemoveTrackers(cmd.Context(), args[0], args[1:]...)
	},
}

func init() {
	rootCmd.AddCommand(trackersCmd)

	trackersCmd.AddCommand(trackersGetCmd)
	trackersCmd.AddCommand(trackersAddCmd)
	trackersCmd.AddCommand(trackersEditCmd)
	trackersCmd.AddCommand(trackersRemoveCmd)
}

func runTrackersGet(cmd *cobra.Command, args []string) error {
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(trackerFetchLimit)

	var mu sync.Mutex
	results := make(map[string][]qbittorrent.TorrentTracker, len(args))

	for _, hash := range args {
		g.Go(func() error {
			trackers, err := qbClient.GetTorrentTrackers(ctx, hash)
			if err != nil {
				return err
			}

			mu.Lock()
			results[hash] = trackers
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, hash := range args {
		fmt.Printf("\n%s:\n", hash)
		for _, tracker := range results[hash] {
			fmt.Printf("  %s [%s]", tracker.URL, tracker.Status)
			if tracker.Message != "" {
				fmt.Printf(" - %s", tracker.Message)
			}
			fmt.Println()
			if tracker.Status == qbittorrent.TrackerWorking {
				fmt.Printf("    seeds: %d  peers: %d  leeches: %d  downloaded: %d\n",
					tracker.NumSeeds, tracker.NumPeers, tracker.NumLeeches, tracker.NumDownloaded)
			}
		}
	}

	return nil
}
