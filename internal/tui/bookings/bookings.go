// ABOUTME: Bookings table screen for customers, vendors and admins
// ABOUTME: Vendors and admins can confirm, cancel, settle and delete rows

package bookings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"stayhub/internal/client"
	"stayhub/internal/tui/icons"
	"stayhub/internal/tui/styles"
	"stayhub/internal/tui/widgets"
)

// UpdateRequestedMsg asks the app to change a booking's state
type UpdateRequestedMsg struct {
	ID      string
	Status  client.BookingStatus
	Payment client.PaymentStatus
}

// DeleteRequestedMsg asks the app to delete a booking
type DeleteRequestedMsg struct {
	ID string
}

// BackMsg is sent when the user leaves the bookings screen
type BackMsg struct{}

// List is the bookings table model
type List struct {
	bookings []client.Booking
	table    table.Model
	manage   bool
}

// New creates the table. manage enables the vendor/admin state keys.
func New(bookings []client.Booking, manage bool, height int) *List {
	columns := []table.Column{
		{Title: "Listing", Width: 22},
		{Title: "Unit", Width: 14},
		{Title: "Units", Width: 5},
		{Title: "Dates", Width: 24},
		{Title: "Status", Width: 10},
		{Title: "Payment", Width: 8},
	}
	if manage {
		columns = append([]table.Column{{Title: "Customer", Width: 14}}, columns...)
	}

	rows := make([]table.Row, len(bookings))
	for i, b := range bookings {
		dates := "-"
		if b.BookingDates != nil {
			dates = fmt.Sprintf("%s to %s",
				b.BookingDates.CheckIn.Format("2006-01-02"),
				b.BookingDates.CheckOut.Format("2006-01-02"))
		}
		row := table.Row{
			b.Listing.Name,
			b.Unit.Type,
			strconv.Itoa(b.NoOfBookedUnit),
			dates,
			string(b.Status),
			string(b.PaymentDetails.PaymentStatus),
		}
		if manage {
			row = append(table.Row{b.Customer.Username}, row...)
		}
		rows[i] = row
	}

	if height < 4 {
		height = 4
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Bold(true).
		Foreground(styles.Primary).
		BorderBottom(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Accent).
		Bold(true)
	t.SetStyles(ts)

	return &List{bookings: bookings, table: t, manage: manage}
}

// Selected returns the booking under the cursor, or nil
func (l *List) Selected() *client.Booking {
	i := l.table.Cursor()
	if i < 0 || i >= len(l.bookings) {
		return nil
	}
	return &l.bookings[i]
}

// Manage reports whether state-changing keys are enabled
func (l *List) Manage() bool {
	return l.manage
}

// Update handles keyboard input
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "b", "esc":
			return l, func() tea.Msg { return BackMsg{} }
		case "c":
			if b := l.Selected(); l.manage && b != nil {
				id, payment := b.ID, b.PaymentDetails.PaymentStatus
				return l, func() tea.Msg {
					return UpdateRequestedMsg{ID: id, Status: client.StatusConfirmed, Payment: payment}
				}
			}
		case "x":
			if b := l.Selected(); l.manage && b != nil {
				id, payment := b.ID, b.PaymentDetails.PaymentStatus
				return l, func() tea.Msg {
					return UpdateRequestedMsg{ID: id, Status: client.StatusCancelled, Payment: payment}
				}
			}
		case "p":
			if b := l.Selected(); l.manage && b != nil {
				id, status := b.ID, b.Status
				return l, func() tea.Msg {
					return UpdateRequestedMsg{ID: id, Status: status, Payment: client.PaymentPaid}
				}
			}
		case "d":
			if b := l.Selected(); l.manage && b != nil {
				id := b.ID
				return l, func() tea.Msg {
					return DeleteRequestedMsg{ID: id}
				}
			}
		}
	}

	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return l, cmd
}

// View renders the table with a summary line
func (l *List) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Bookings", icons.Booking.String())))
	sb.WriteString("\n")

	if len(l.bookings) == 0 {
		sb.WriteString(styles.Subtitle.Render("No bookings yet."))
		return sb.String()
	}

	sb.WriteString(l.table.View())
	sb.WriteString("\n")

	if b := l.Selected(); b != nil {
		sb.WriteString(fmt.Sprintf("%s %s  %s\n",
			widgets.BookingBadge(b.Status),
			widgets.PaymentBadge(b.PaymentDetails.PaymentStatus),
			styles.PriceStyle.Render(fmt.Sprintf("%.0f", b.PaymentDetails.Amount))))
	}
	return sb.String()
}
