// ABOUTME: Listing detail screen with unit selection and booking form
// ABOUTME: Validates the booking locally so bad forms never reach the network

package detail

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"stayhub/internal/client"
	"stayhub/internal/tui/icons"
	"stayhub/internal/tui/styles"
	"stayhub/internal/tui/widgets"
)

// BookingSubmittedMsg is sent when a valid booking form is submitted
type BookingSubmittedMsg struct {
	Booking client.NewBooking
}

// BackMsg is sent when the user leaves the detail screen
type BackMsg struct{}

const dateLayout = "2006-01-02"

// Detail is the listing detail and booking model
type Detail struct {
	listing client.Listing
	units   []client.Unit
	cursor  int
	width   int

	// Booking form state
	booking  bool
	form     *huh.Form
	checkIn  string
	checkOut string
	count    string
	errMsg   string
}

// New creates the detail screen for a listing and its fetched units
func New(listing client.Listing, units []client.Unit, width int) *Detail {
	return &Detail{listing: listing, units: units, width: width}
}

// SetSize sets the render width
func (d *Detail) SetSize(width int) {
	d.width = width
}

// SelectedUnit returns the unit under the cursor, or nil
func (d *Detail) SelectedUnit() *client.Unit {
	if d.cursor < 0 || d.cursor >= len(d.units) {
		return nil
	}
	return &d.units[d.cursor]
}

// Booking reports whether the booking form is open
func (d *Detail) Booking() bool {
	return d.booking
}

// Update handles keyboard input and form progression
func (d *Detail) Update(msg tea.Msg) (*Detail, tea.Cmd) {
	if d.booking {
		return d.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch key.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.units)-1 {
			d.cursor++
		}
	case "enter":
		unit := d.SelectedUnit()
		if unit == nil {
			return d, nil
		}
		if unit.Availability.Count < 1 {
			d.errMsg = "This unit is sold out."
			return d, nil
		}
		d.openForm()
		return d, d.form.Init()
	case "b", "esc":
		return d, func() tea.Msg { return BackMsg{} }
	}
	return d, nil
}

func (d *Detail) updateForm(msg tea.Msg) (*Detail, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		d.booking = false
		d.form = nil
		return d, nil
	}

	form, cmd := d.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		d.form = hf
	}

	if d.form.State == huh.StateCompleted {
		return d.submit()
	}
	return d, cmd
}

// openForm builds the booking form for the selected unit. Hotels ask
// for dates, restaurants only for a unit count.
func (d *Detail) openForm() {
	unit := d.SelectedUnit()
	d.errMsg = ""
	d.count = "1"

	fields := []huh.Field{}
	if d.listing.Type == client.TypeHotel {
		fields = append(fields,
			huh.NewInput().
				Title("Check-in").
				Placeholder(dateLayout).
				Value(&d.checkIn).
				Validate(validateDate),
			huh.NewInput().
				Title("Check-out").
				Placeholder(dateLayout).
				Value(&d.checkOut).
				Validate(validateDate),
		)
	}
	fields = append(fields,
		huh.NewInput().
			Title(fmt.Sprintf("Units (up to %d)", unit.Availability.Count)).
			Value(&d.count).
			Validate(validatePositiveInt),
	)

	d.form = huh.NewForm(
		huh.NewGroup(fields...).
			Title(fmt.Sprintf("Book %s", unit.Type)).
			Description(fmt.Sprintf("%.0f per unit", unit.Price)),
	)
	d.booking = true
}

// submit validates the booking and either emits it or reopens the form
// with an error. A rejected form produces no message and no request.
func (d *Detail) submit() (*Detail, tea.Cmd) {
	unit := d.SelectedUnit()
	count, _ := strconv.Atoi(d.count)

	if count > unit.Availability.Count {
		d.errMsg = fmt.Sprintf("Only %d unit(s) available.", unit.Availability.Count)
		d.openForm()
		return d, d.form.Init()
	}

	booking := client.NewBooking{
		ListingID:   d.listing.ID,
		UnitID:      unit.ID,
		ListingType: d.listing.Type,
		CheckIn:     d.checkIn,
		CheckOut:    d.checkOut,
		Units:       count,
		Amount:      d.amount(unit, count),
	}
	if err := booking.Validate(); err != nil {
		d.errMsg = err.Error()
		d.openForm()
		return d, d.form.Init()
	}

	d.booking = false
	d.form = nil
	return d, func() tea.Msg { return BookingSubmittedMsg{Booking: booking} }
}

// amount prices the booking: per-unit price times count, times nights
// for hotel stays.
func (d *Detail) amount(unit *client.Unit, count int) float64 {
	total := unit.Price * float64(count)
	if d.listing.Type == client.TypeHotel {
		in, err1 := time.Parse(dateLayout, d.checkIn)
		out, err2 := time.Parse(dateLayout, d.checkOut)
		if err1 == nil && err2 == nil && out.After(in) {
			nights := int(out.Sub(in).Hours() / 24)
			total *= float64(nights)
		}
	}
	return total
}

// View renders the detail screen
func (d *Detail) View() string {
	var sb strings.Builder

	icon := icons.Hotel
	if d.listing.Type == client.TypeRestaurant {
		icon = icons.Restaurant
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icon.String(), d.listing.Name)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", icons.Location.String(), d.listing.Address))
	if d.listing.Description != "" {
		sb.WriteString(styles.Subtitle.Render(d.listing.Description))
		sb.WriteString("\n")
	}
	if len(d.listing.Facilities) > 0 {
		sb.WriteString(styles.Subtitle.Render(strings.Join(d.listing.Facilities, " · ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if d.booking && d.form != nil {
		sb.WriteString(d.form.View())
		if d.errMsg != "" {
			sb.WriteString("\n" + styles.StatusCritical.Render(d.errMsg))
		}
		return sb.String()
	}

	if len(d.units) == 0 {
		sb.WriteString(styles.Subtitle.Render("No units listed yet."))
		return sb.String()
	}

	cfg := widgets.DefaultAvailBarConfig()
	cfg.Width = 12
	for i, u := range d.units {
		marker := "  "
		name := u.Type
		if i == d.cursor {
			marker = styles.Selected.Render("> ")
			name = styles.Selected.Render(name)
		}
		sb.WriteString(fmt.Sprintf("%s%s %s  %s  %s\n",
			marker, icons.Unit.String(), name,
			styles.PriceStyle.Render(fmt.Sprintf("%.0f", u.Price)),
			widgets.AvailBarWithLabel(u.Availability.Count, u.Capacity, cfg)))
		if features := u.FeatureList(); len(features) > 0 {
			sb.WriteString("     " + styles.Subtitle.Render(strings.Join(features, " · ")) + "\n")
		}
	}

	if d.errMsg != "" {
		sb.WriteString("\n" + styles.StatusCritical.Render(d.errMsg))
	}
	return sb.String()
}

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("use a date like 2026-01-31")
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
