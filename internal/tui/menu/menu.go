// ABOUTME: Main menu for the TUI, built from the current session
// ABOUTME: Guests see login, vendors and admins see management entries

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"stayhub/internal/session"
	"stayhub/internal/tui/icons"
	"stayhub/internal/tui/styles"
)

// Action is a main-menu destination
type Action int

const (
	ActionBrowse Action = iota
	ActionBookings
	ActionManage
	ActionLogin
	ActionSignup
	ActionLogout
	ActionQuit
)

// ActionSelectedMsg is sent when the user picks a menu entry
type ActionSelectedMsg struct {
	Action Action
}

// CancelledMsg is sent when the user quits from the menu
type CancelledMsg struct{}

type item struct {
	icon   icons.Icon
	label  string
	action Action
}

// Menu is the main menu model
type Menu struct {
	items  []item
	cursor int
	user   string
}

// New builds the menu for the current session state
func New(sess *session.Session) *Menu {
	m := &Menu{}
	m.items = append(m.items, item{icons.Search, "Browse listings", ActionBrowse})

	if sess.Complete() {
		m.user = sess.Username
		switch sess.Role {
		case session.RoleVendor:
			m.items = append(m.items,
				item{icons.Booking, "Bookings on my listings", ActionBookings},
				item{icons.Settings, "Manage my listings", ActionManage})
		case session.RoleAdmin:
			m.items = append(m.items,
				item{icons.Booking, "All bookings", ActionBookings},
				item{icons.Settings, "Moderate listings", ActionManage})
		default:
			m.items = append(m.items,
				item{icons.Booking, "My bookings", ActionBookings})
		}
		m.items = append(m.items, item{icons.Logout, "Log out", ActionLogout})
	} else {
		m.items = append(m.items,
			item{icons.Login, "Log in", ActionLogin},
			item{icons.User, "Sign up", ActionSignup})
	}

	m.items = append(m.items, item{icons.Quit, "Quit", ActionQuit})
	return m
}

// Update handles keyboard input
func (m *Menu) Update(msg tea.Msg) (*Menu, tea.Cmd) {
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
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		action := m.items[m.cursor].action
		return m, func() tea.Msg { return ActionSelectedMsg{Action: action} }
	case "q", "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, nil
}

// View renders the menu
func (m *Menu) View() string {
	var sb strings.Builder

	greeting := "Welcome to StayHub"
	if m.user != "" {
		greeting = fmt.Sprintf("Welcome back, %s", m.user)
	}
	sb.WriteString(styles.Title.Render(greeting))
	sb.WriteString("\n\n")

	for i, it := range m.items {
		line := fmt.Sprintf("%s %s", it.icon.String(), it.label)
		if i == m.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Selected returns the action under the cursor
func (m *Menu) Selected() Action {
	return m.items[m.cursor].action
}

// Labels returns the visible entries, for tests and debugging
func (m *Menu) Labels() []string {
	labels := make([]string, len(m.items))
	for i, it := range m.items {
		labels[i] = it.label
	}
	return labels
}
