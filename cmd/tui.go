// ABOUTME: TUI command for the stayhub CLI
// ABOUTME: Opens the interactive terminal browser

package cmd

import (
	"github.com/spf13/cobra"

	"stayhub/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive browser",
	Long: `Open the interactive terminal browser.

Browse listings, inspect units, place bookings and manage your
inventory. The same session as the other commands is used, so log in
once with either.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the interactive browser over the shared session store
func runTUI() error {
	c, store := newClient()
	return tui.Run(c, store)
}
