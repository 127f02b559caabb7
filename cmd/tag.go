package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tagCmd groups the tag subcommands
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := qbClient.GetTags(cmd.Context())
		if err != nil {
			return err
		}

		if len(tags) == 0 {
			fmt.Println("No tags defined.")
			return nil
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

var tagCreateCmd = &cobra.Command{
	Use:   "create TAG...",
	Short: "Create one or more tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Safety.DryRun {
			logger.Info().Strs("tags", args).Msg("Dry run: would create tags")
			return nil
		}
		return qbClient.CreateTags(cmd.Context(), args...)
	},
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete TAG...",
	Short: "Delete one or more tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Safety.DryRun {
			logger.Info().Strs("tags", args).Msg("Dry run: would delete tags")
			return nil
		}
		return qbClient.DeleteTags(cmd.Context(), args...)
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagCreateCmd)
	tagCmd.AddCommand(tagDeleteCmd)
}
