package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repoSlug = "s0up4200/qbitctl"

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:           "update",
	Short:         "Update qbitctl",
	Long:          `Update qbitctl to the latest release.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// no config or WebUI session needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },

	RunE: func(cmd *cobra.Command, args []string) error {
		release, err := selfupdate.UpdateSelf(cmd.Context(), appVersion, selfupdate.ParseSlug(repoSlug))
		if err != nil {
			return fmt.Errorf("could not update binary: %w", err)
		}

		fmt.Printf("Successfully updated to version: %s\n", release.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
