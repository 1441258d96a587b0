// ABOUTME: Whoami command for the stayhub CLI
// ABOUTME: Shows the stored session identity and access token expiry

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"stayhub/internal/rolegate"
	"stayhub/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Long: `Show who is logged in, their role, and when the stored access
token expires. Expiry is informational only; an expired token is
refreshed automatically on the next request.

Exit codes:
  0 - Logged in
  1 - Not logged in
  2 - Error`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami reads the stored session and returns exit code
func runWhoami(w io.Writer) int {
	_, store := newClient()

	sess, err := store.Get()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if sess == nil {
		if IsJSONOutput() {
			fmt.Fprintln(w, `{"loggedIn": false}`)
		} else {
			fmt.Fprintln(w, "Not logged in.")
		}
		return 1
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(sess))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(sess))
	}
	return 0
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Verification belongs to the server; the client only displays it.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// formatWhoamiHuman formats the session for human readability
func formatWhoamiHuman(sess *session.Session) string {
	expiry := "unknown"
	if exp, ok := tokenExpiry(sess.AccessToken); ok {
		expiry = exp.UTC().Format("2006-01-02 15:04 MST")
		if exp.Before(time.Now()) {
			expiry += " (expired, will refresh)"
		}
	}
	return fmt.Sprintf(`Logged in as: %s
Role:         %s
Opens at:     %s
Token until:  %s`, sess.Username, sess.Role, rolegate.RouteForRole(sess.Role), expiry)
}

// formatWhoamiJSON formats the session as JSON
func formatWhoamiJSON(sess *session.Session) string {
	output := map[string]interface{}{
		"loggedIn": true,
		"username": sess.Username,
		"role":     string(sess.Role),
		"route":    rolegate.RouteForRole(sess.Role).String(),
	}
	if exp, ok := tokenExpiry(sess.AccessToken); ok {
		output["tokenExpiresAt"] = exp.UTC().Format(time.RFC3339)
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
