// ABOUTME: Signup command for the stayhub CLI
// ABOUTME: Registers a customer or vendor account and logs straight in

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"stayhub/internal/client"
	"stayhub/internal/session"
)

var signupProfile client.SignupProfile

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a StayHub account",
	Long: `Create a new StayHub account and log straight in.

Accounts are either customer (book stays and tables) or vendor (list
properties). Admin accounts are not self-service.

Prompts for any field not given as a flag.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSignup(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var signupRole string

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupProfile.Username, "username", "", "Display name")
	signupCmd.Flags().StringVar(&signupProfile.Email, "email", "", "Account email")
	signupCmd.Flags().StringVar(&signupProfile.Password, "password", "", "Account password")
	signupCmd.Flags().StringVar(&signupProfile.Phone, "phone", "", "Contact phone number")
	signupCmd.Flags().StringVar(&signupProfile.Address, "address", "", "Postal address")
	signupCmd.Flags().StringVar(&signupRole, "role", "customer", "Account role (customer or vendor)")
}

// runSignup executes the registration and returns exit code
func runSignup(ctx context.Context, w io.Writer) int {
	signupProfile.Role = session.Role(signupRole)
	if signupIncomplete() {
		if err := promptSignup(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		signupProfile.Role = session.Role(signupRole)
	}

	c, _ := newClient()
	sess, err := c.Signup(ctx, signupProfile)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return 1
		}
		var vErr *client.ValidationError
		if errors.As(err, &vErr) {
			return 1
		}
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatLoginJSON(sess))
	} else {
		fmt.Fprintf(w, "Welcome to StayHub, %s!\n%s\n", sess.Username, formatLoginHuman(sess))
	}
	return 0
}

func signupIncomplete() bool {
	return signupProfile.Username == "" ||
		signupProfile.Email == "" ||
		signupProfile.Password == "" ||
		signupProfile.Phone == "" ||
		signupProfile.Address == ""
}

// promptSignup collects the registration form interactively
func promptSignup() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&signupProfile.Username),
			huh.NewInput().
				Title("Email").
				Value(&signupProfile.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&signupProfile.Password),
			huh.NewInput().
				Title("Phone").
				Value(&signupProfile.Phone),
			huh.NewInput().
				Title("Address").
				Value(&signupProfile.Address),
			huh.NewSelect[string]().
				Title("Account type").
				Options(
					huh.NewOption("Customer - book stays and tables", "customer"),
					huh.NewOption("Vendor - list properties", "vendor"),
				).
				Value(&signupRole),
		),
	).Run()
}
