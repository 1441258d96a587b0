// ABOUTME: Root command for the stayhub CLI
// ABOUTME: Handles global flags, environment and config file resolution

package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stayhub/internal/client"
	"stayhub/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080/api/v1"

// rootCmd is the base command. Running it bare opens the interactive
// browser, same as the tui subcommand.
var rootCmd = &cobra.Command{
	Use:   "stayhub",
	Short: "Terminal client for the StayHub booking marketplace",
	Long: `stayhub is a terminal client for the StayHub hotel and restaurant
booking marketplace. Browse listings, book units and manage your
inventory without leaving the terminal.

Running stayhub without a subcommand opens the interactive browser.

Environment Variables:
  STAYHUB_API_URL  Backend API URL (default: http://localhost:8080/api/v1)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides STAYHUB_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// initConfig wires env vars and the optional config file into viper.
// A .env in the working directory is picked up for development setups.
func initConfig() {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if dir := session.DefaultConfigDir(); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.SetEnvPrefix("stayhub")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// GetAPIURL returns the API URL from flag, env, config file, or default
// (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if url := viper.GetString("api-url"); url != "" {
		return url
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds the API client over the persistent session store.
func newClient() (*client.Client, session.Store) {
	store := session.NewFileStore(session.DefaultConfigDir())
	return client.New(GetAPIURL(), store), store
}
