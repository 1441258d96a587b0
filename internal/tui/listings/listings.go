// ABOUTME: Listing browser showing the public catalogue as selectable cards
// ABOUTME: Filters by listing type and hides inactive entries

package listings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"stayhub/internal/client"
	"stayhub/internal/tui/icons"
	"stayhub/internal/tui/styles"
)

// ListingChosenMsg is sent when the user opens a listing
type ListingChosenMsg struct {
	Listing client.Listing
}

// BackMsg is sent when the user leaves the browser
type BackMsg struct{}

// Browser is the catalogue browsing model
type Browser struct {
	listings []client.Listing
	cursor   int
	filter   client.ListingType
	width    int
}

// New creates a browser over the fetched catalogue
func New(listings []client.Listing, width int) *Browser {
	return &Browser{listings: listings, width: width}
}

// SetSize sets the render width
func (b *Browser) SetSize(width int) {
	b.width = width
}

// Visible returns the listings after filtering. Inactive listings are
// never shown in the public browser.
func (b *Browser) Visible() []client.Listing {
	var out []client.Listing
	for _, l := range b.listings {
		if !l.IsActive {
			continue
		}
		if b.filter != "" && l.Type != b.filter {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Filter returns the current type filter, empty for all
func (b *Browser) Filter() client.ListingType {
	return b.filter
}

// Update handles keyboard input
func (b *Browser) Update(msg tea.Msg) (*Browser, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	visible := b.Visible()
	switch key.String() {
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(visible)-1 {
			b.cursor++
		}
	case "t":
		b.cycleFilter()
		b.cursor = 0
	case "enter":
		if b.cursor < len(visible) {
			chosen := visible[b.cursor]
			return b, func() tea.Msg { return ListingChosenMsg{Listing: chosen} }
		}
	case "b", "esc":
		return b, func() tea.Msg { return BackMsg{} }
	}
	return b, nil
}

// cycleFilter rotates all -> hotels -> restaurants -> all
func (b *Browser) cycleFilter() {
	switch b.filter {
	case "":
		b.filter = client.TypeHotel
	case client.TypeHotel:
		b.filter = client.TypeRestaurant
	default:
		b.filter = ""
	}
}

// View renders the catalogue
func (b *Browser) View() string {
	var sb strings.Builder

	title := "All listings"
	switch b.filter {
	case client.TypeHotel:
		title = "Hotels"
	case client.TypeRestaurant:
		title = "Restaurants"
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icons.Search.String(), title)))
	sb.WriteString("\n\n")

	visible := b.Visible()
	if len(visible) == 0 {
		sb.WriteString(styles.Subtitle.Render("Nothing here yet. Press t to change the filter."))
		return sb.String()
	}

	for i, l := range visible {
		sb.WriteString(b.renderCard(l, i == b.cursor))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Browser) renderCard(l client.Listing, selected bool) string {
	icon := icons.Hotel
	if l.Type == client.TypeRestaurant {
		icon = icons.Restaurant
	}

	name := l.Name
	if selected {
		name = styles.Selected.Render(name)
	}

	line1 := fmt.Sprintf("%s %s  %s", icon.String(), name,
		styles.PriceStyle.Render(fmt.Sprintf("%.0f", l.Pricing)))
	line2 := fmt.Sprintf("   %s %s", icons.Location.String(), l.Address)

	marker := "  "
	if selected {
		marker = styles.Selected.Render("> ")
	}

	card := marker + line1 + "\n" + marker + line2
	if len(l.Facilities) > 0 {
		card += "\n" + marker + "   " + styles.Subtitle.Render(strings.Join(l.Facilities, " · "))
	}
	return card
}
