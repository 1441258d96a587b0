// ABOUTME: Logout command for the stayhub CLI
// ABOUTME: Clears the persisted session including both tokens and identity

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of StayHub",
	Long: `Remove the stored session from disk.

Both tokens, the username and the role are cleared together. Logging
out while already logged out is not an error.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	_, store := newClient()

	sess, err := store.Get()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := store.Clear(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		output := map[string]interface{}{"loggedOut": true}
		if sess != nil {
			output["username"] = sess.Username
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if sess == nil {
		fmt.Fprintln(w, "Not logged in.")
	} else {
		fmt.Fprintf(w, "Logged out %s.\n", sess.Username)
	}
	return 0
}
