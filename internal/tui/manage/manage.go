// ABOUTME: Management screen for vendor inventory and admin moderation
// ABOUTME: Creates listings and units with huh forms, validated before submit

package manage

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"stayhub/internal/client"
	"stayhub/internal/tui/icons"
	"stayhub/internal/tui/styles"
	"stayhub/internal/tui/widgets"
)

// CreateListingMsg asks the app to create a listing
type CreateListingMsg struct {
	Listing client.NewListing
}

// CreateUnitMsg asks the app to create a unit under a listing
type CreateUnitMsg struct {
	Unit client.NewUnit
}

// ToggleRequestedMsg asks the app to flip a listing's active flag
type ToggleRequestedMsg struct {
	ID     string
	Active bool
}

// DeleteRequestedMsg asks the app to delete a listing
type DeleteRequestedMsg struct {
	ID string
}

// BackMsg is sent when the user leaves the management screen
type BackMsg struct{}

type formKind int

const (
	formNone formKind = iota
	formListing
	formUnit
)

// Manager is the management screen model
type Manager struct {
	listings []client.Listing
	cursor   int
	vendor   bool // vendors create; admins only moderate
	errMsg   string

	// Form state
	kind formKind
	form *huh.Form

	// Listing form fields
	name        string
	address     string
	description string
	pricing     string
	ltype       string
	facilities  string

	// Unit form fields
	unitType  string
	capacity  string
	unitPrice string
	features  string
	count     string
}

// New creates the management screen. vendor enables creation forms.
func New(listings []client.Listing, vendor bool) *Manager {
	return &Manager{listings: listings, vendor: vendor, ltype: string(client.TypeHotel)}
}

// Selected returns the listing under the cursor, or nil
func (m *Manager) Selected() *client.Listing {
	if m.cursor < 0 || m.cursor >= len(m.listings) {
		return nil
	}
	return &m.listings[m.cursor]
}

// FormOpen reports whether a creation form is active
func (m *Manager) FormOpen() bool {
	return m.kind != formNone
}

// Update handles keyboard input and form progression
func (m *Manager) Update(msg tea.Msg) (*Manager, tea.Cmd) {
	if m.kind != formNone {
		return m.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.listings)-1 {
			m.cursor++
		}
	case "n":
		if m.vendor {
			m.openListingForm()
			return m, m.form.Init()
		}
	case "u":
		if m.vendor && m.Selected() != nil {
			m.openUnitForm()
			return m, m.form.Init()
		}
	case "a":
		if l := m.Selected(); l != nil {
			id, active := l.ID, !l.IsActive
			return m, func() tea.Msg {
				return ToggleRequestedMsg{ID: id, Active: active}
			}
		}
	case "d":
		if l := m.Selected(); l != nil {
			id := l.ID
			return m, func() tea.Msg {
				return DeleteRequestedMsg{ID: id}
			}
		}
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

func (m *Manager) updateForm(msg tea.Msg) (*Manager, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.kind = formNone
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		m.form = hf
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	return m, cmd
}

func (m *Manager) openListingForm() {
	m.errMsg = ""
	m.kind = formListing
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.name),
			huh.NewInput().
				Title("Address").
				Value(&m.address),
			huh.NewInput().
				Title("Description").
				Value(&m.description),
			huh.NewInput().
				Title("Base price").
				Value(&m.pricing).
				Validate(validatePositiveNumber),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Hotel", string(client.TypeHotel)),
					huh.NewOption("Restaurant", string(client.TypeRestaurant)),
				).
				Value(&m.ltype),
			huh.NewInput().
				Title("Facilities (comma separated)").
				Placeholder("WiFi, Pool").
				Value(&m.facilities),
		).Title("New listing"),
	)
}

func (m *Manager) openUnitForm() {
	m.errMsg = ""
	m.kind = formUnit
	m.count = "1"
	m.capacity = "1"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Unit type").
				Placeholder("Double Room, Booth ...").
				Value(&m.unitType),
			huh.NewInput().
				Title("Capacity").
				Value(&m.capacity).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Price per unit").
				Value(&m.unitPrice).
				Validate(validatePositiveNumber),
			huh.NewInput().
				Title("Features (comma separated)").
				Placeholder("AC, WiFi").
				Value(&m.features),
			huh.NewInput().
				Title("Available count").
				Value(&m.count).
				Validate(validateNonNegativeInt),
		).Title(fmt.Sprintf("New unit for %s", m.Selected().Name)),
	)
}

// submit validates the form's entity and either emits a creation
// message or reopens the form with the error. Invalid input never
// produces a message.
func (m *Manager) submit() (*Manager, tea.Cmd) {
	switch m.kind {
	case formListing:
		pricing, _ := strconv.ParseFloat(m.pricing, 64)
		listing := client.NewListing{
			Name:        m.name,
			Address:     m.address,
			Description: m.description,
			Pricing:     pricing,
			Type:        client.ListingType(m.ltype),
			Facilities:  splitList(m.facilities),
		}
		if err := listing.Validate(); err != nil {
			m.errMsg = err.Error()
			m.openListingForm()
			return m, m.form.Init()
		}
		m.kind = formNone
		m.form = nil
		return m, func() tea.Msg { return CreateListingMsg{Listing: listing} }

	case formUnit:
		capacity, _ := strconv.Atoi(m.capacity)
		price, _ := strconv.ParseFloat(m.unitPrice, 64)
		count, _ := strconv.Atoi(m.count)
		unit := client.NewUnit{
			ListingID:      m.Selected().ID,
			Type:           m.unitType,
			Capacity:       capacity,
			Price:          price,
			Features:       splitList(m.features),
			AvailableCount: count,
		}
		if err := unit.Validate(); err != nil {
			m.errMsg = err.Error()
			m.openUnitForm()
			return m, m.form.Init()
		}
		m.kind = formNone
		m.form = nil
		return m, func() tea.Msg { return CreateUnitMsg{Unit: unit} }
	}
	return m, nil
}

// View renders the management screen
func (m *Manager) View() string {
	var sb strings.Builder

	title := "Moderate listings"
	if m.vendor {
		title = "My listings"
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icons.Settings.String(), title)))
	sb.WriteString("\n\n")

	if m.kind != formNone && m.form != nil {
		sb.WriteString(m.form.View())
		if m.errMsg != "" {
			sb.WriteString("\n" + styles.StatusCritical.Render(m.errMsg))
		}
		return sb.String()
	}

	if len(m.listings) == 0 {
		hint := "Nothing to moderate."
		if m.vendor {
			hint = "No listings yet. Press n to create one."
		}
		sb.WriteString(styles.Subtitle.Render(hint))
		return sb.String()
	}

	for i, l := range m.listings {
		marker := "  "
		name := l.Name
		if i == m.cursor {
			marker = styles.Selected.Render("> ")
			name = styles.Selected.Render(name)
		}
		icon := icons.Hotel
		if l.Type == client.TypeRestaurant {
			icon = icons.Restaurant
		}
		sb.WriteString(fmt.Sprintf("%s%s %s  %s  %s\n",
			marker, icon.String(), name,
			styles.PriceStyle.Render(fmt.Sprintf("%.0f", l.Pricing)),
			widgets.ActiveBadge(l.IsActive)))
	}

	if m.errMsg != "" {
		sb.WriteString("\n" + styles.StatusCritical.Render(m.errMsg))
	}
	return sb.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("must be zero or more")
	}
	return nil
}

func validatePositiveNumber(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
