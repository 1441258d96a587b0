// ABOUTME: Login command for the stayhub CLI
// ABOUTME: Authenticates, persists the session and reports the landing view

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"stayhub/internal/client"
	"stayhub/internal/rolegate"
	"stayhub/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to StayHub",
	Long: `Log in with your StayHub account.

Prompts for email and password when the flags are omitted. The session
is stored on disk and reused by every other command until you log out.

Exit codes:
  0 - Logged in
  1 - Credentials rejected
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
}

// runLogin executes the login and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginEmail == "" || loginPassword == "" {
		if err := promptCredentials(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	c, _ := newClient()
	sess, err := c.Login(ctx, loginEmail, loginPassword)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return 1
		}
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatLoginJSON(sess))
	} else {
		fmt.Fprintln(w, formatLoginHuman(sess))
	}
	return 0
}

// promptCredentials asks for the missing fields interactively
func promptCredentials() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&loginEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&loginPassword),
		),
	).Run()
}

// formatLoginHuman formats the login result for human readability
func formatLoginHuman(sess *session.Session) string {
	return fmt.Sprintf(`Logged in as: %s
Role:         %s
Opens at:     %s`, sess.Username, sess.Role, rolegate.RouteForRole(sess.Role))
}

// formatLoginJSON formats the login result as JSON
func formatLoginJSON(sess *session.Session) string {
	output := map[string]interface{}{
		"username": sess.Username,
		"role":     string(sess.Role),
		"route":    rolegate.RouteForRole(sess.Role).String(),
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
