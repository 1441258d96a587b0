// ABOUTME: Search command for the stayhub CLI
// ABOUTME: Queries the public listing catalogue with filters and sorting

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"stayhub/internal/client"
)

var (
	searchType     string
	searchLocation string
	searchMaxPrice int
	searchSort     string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search hotel and restaurant listings",
	Long: `Search the public listing catalogue. No login required.

Examples:
  stayhub search --type Hotel --location Goa
  stayhub search --max-price 5000 --sort lowToHigh`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSearch(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchType, "type", "", "Listing type (Hotel or Restaurant)")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "Location to search in")
	searchCmd.Flags().IntVar(&searchMaxPrice, "max-price", 0, "Maximum price per unit")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Price order (lowToHigh or highToLow)")
}

// runSearch executes the listing search and returns exit code
func runSearch(ctx context.Context, w io.Writer) int {
	c, _ := newClient()

	listings, err := c.Listings(ctx, client.SearchFilter{
		Type:        client.ListingType(searchType),
		Location:    searchLocation,
		MaxPrice:    searchMaxPrice,
		SortByPrice: searchSort,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatListingsJSON(listings))
	} else {
		fmt.Fprintln(w, formatListingsHuman(listings))
	}
	return 0
}

// formatListingsHuman formats search results for human readability
func formatListingsHuman(listings []client.Listing) string {
	if len(listings) == 0 {
		return "No listings matched."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %-11s %10s  %s\n", "NAME", "TYPE", "PRICE", "ADDRESS"))
	for _, l := range listings {
		name := l.Name
		if !l.IsActive {
			name += " (inactive)"
		}
		sb.WriteString(fmt.Sprintf("%-28s %-11s %10.0f  %s\n", name, l.Type, l.Pricing, l.Address))
	}
	sb.WriteString(fmt.Sprintf("\n%d listing(s)", len(listings)))
	return sb.String()
}

// formatListingsJSON formats search results as JSON
func formatListingsJSON(listings []client.Listing) string {
	data, _ := json.MarshalIndent(listings, "", "  ")
	return string(data)
}
