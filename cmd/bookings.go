// ABOUTME: Bookings command group for the stayhub CLI
// ABOUTME: Lists, updates and deletes bookings with client-side role gating

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
	"stayhub/internal/rolegate"
	"stayhub/internal/session"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Work with bookings",
	Long: `List, update and delete bookings.

Customers see their own bookings; vendors and admins see the bookings
on their listings. Updating and deleting require a vendor or admin
account.`,
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookings visible to your account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBookingsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var (
	bookingStatus  string
	bookingPayment string
)

var bookingsUpdateCmd = &cobra.Command{
	Use:   "update <booking-id>",
	Short: "Update a booking's status and payment state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBookingsUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var bookingsDeleteCmd = &cobra.Command{
	Use:   "delete <booking-id>",
	Short: "Delete a booking",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBookingsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(bookingsCmd)
	bookingsCmd.AddCommand(bookingsListCmd)
	bookingsCmd.AddCommand(bookingsUpdateCmd)
	bookingsCmd.AddCommand(bookingsDeleteCmd)
	bookingsUpdateCmd.Flags().StringVar(&bookingStatus, "status", "", "New status (Pending, Confirmed or Cancelled)")
	bookingsUpdateCmd.Flags().StringVar(&bookingPayment, "payment", "", "New payment state (Paid, Pending or Failed)")
}

// gate checks the stored session against the required roles before any
// request is issued. A denial produces no network traffic.
func gate(w io.Writer, store session.Store, required ...session.Role) (*session.Session, bool) {
	sess, err := store.Get()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, false
	}
	if d := rolegate.Authorize(sess, required...); !d.Allowed {
		fmt.Fprintf(w, "Error: %s\n", d.Message())
		return nil, false
	}
	return sess, true
}

// runBookingsList fetches the bookings for the stored role and returns
// exit code
func runBookingsList(ctx context.Context, w io.Writer) int {
	c, store := newClient()

	sess, ok := gate(w, store)
	if !ok {
		return 1
	}

	var bookings []client.Booking
	var err error
	if sess.Role == session.RoleCustomer {
		bookings, err = c.CustomerBookings(ctx)
	} else {
		bookings, err = c.Bookings(ctx)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatBookingsJSON(bookings))
	} else {
		fmt.Fprintln(w, formatBookingsHuman(bookings))
	}
	return 0
}

// runBookingsUpdate changes a booking's state and returns exit code
func runBookingsUpdate(ctx context.Context, w io.Writer, id string) int {
	c, store := newClient()

	if _, ok := gate(w, store, session.RoleVendor, session.RoleAdmin); !ok {
		return 1
	}

	updated, err := c.UpdateBooking(ctx, id,
		client.BookingStatus(bookingStatus),
		client.PaymentStatus(bookingPayment))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(updated, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Booking %s is now %s (payment %s).\n",
			updated.ID, updated.Status, updated.PaymentDetails.PaymentStatus)
	}
	return 0
}

// runBookingsDelete removes a booking and returns exit code
func runBookingsDelete(ctx context.Context, w io.Writer, id string) int {
	c, store := newClient()

	if _, ok := gate(w, store, session.RoleVendor, session.RoleAdmin); !ok {
		return 1
	}

	if err := c.DeleteBooking(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Booking %s deleted.\n", id)
	return 0
}

// formatBookingsHuman formats bookings for human readability
func formatBookingsHuman(bookings []client.Booking) string {
	if len(bookings) == 0 {
		return "No bookings."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-26s %-22s %5s  %-10s %-8s %s\n",
		"ID", "LISTING", "UNITS", "STATUS", "PAYMENT", "DATES"))
	for _, b := range bookings {
		dates := "-"
		if b.BookingDates != nil {
			dates = fmt.Sprintf("%s to %s",
				b.BookingDates.CheckIn.Format("2006-01-02"),
				b.BookingDates.CheckOut.Format("2006-01-02"))
		}
		sb.WriteString(fmt.Sprintf("%-26s %-22s %5d  %-10s %-8s %s\n",
			b.ID, b.Listing.Name, b.NoOfBookedUnit, b.Status,
			b.PaymentDetails.PaymentStatus, dates))
	}
	sb.WriteString(fmt.Sprintf("\n%d booking(s)", len(bookings)))
	return sb.String()
}

// formatBookingsJSON formats bookings as JSON
func formatBookingsJSON(bookings []client.Booking) string {
	data, _ := json.MarshalIndent(bookings, "", "  ")
	return string(data)
}
