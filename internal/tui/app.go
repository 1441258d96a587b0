// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, role gating and network commands

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stayhub/internal/client"
	"stayhub/internal/payment"
	"stayhub/internal/rolegate"
	"stayhub/internal/session"
	"stayhub/internal/tui/authform"
	"stayhub/internal/tui/bookings"
	"stayhub/internal/tui/debuglog"
	"stayhub/internal/tui/detail"
	"stayhub/internal/tui/icons"
	"stayhub/internal/tui/listings"
	"stayhub/internal/tui/manage"
	"stayhub/internal/tui/menu"
	"stayhub/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenBrowse
	ScreenDetail
	ScreenAuth
	ScreenBookings
	ScreenManage
)

// Layout constants
const (
	minTerminalWidth = 80
	panelPadding     = 4
)

// listingsLoadedMsg is sent when the public catalogue is fetched
type listingsLoadedMsg struct {
	listings []client.Listing
	err      error
}

// unitsLoadedMsg is sent when a listing's units are fetched
type unitsLoadedMsg struct {
	listing client.Listing
	units   []client.Unit
	err     error
}

// authResultMsg is sent when a login or signup attempt returns
type authResultMsg struct {
	sess *session.Session
	err  error
}

// bookingsLoadedMsg is sent when the bookings screen data is fetched
type bookingsLoadedMsg struct {
	bookings []client.Booking
	manage   bool
	err      error
}

// bookingPlacedMsg is sent after create-charge-settle completes
type bookingPlacedMsg struct {
	booking *client.Booking
	receipt *payment.Receipt
	err     error
}

// bookingChangedMsg is sent after a booking update or delete
type bookingChangedMsg struct {
	err error
}

// manageLoadedMsg is sent when the management listings are fetched
type manageLoadedMsg struct {
	listings []client.Listing
	err      error
}

// listingChangedMsg is sent after a listing or unit mutation
type listingChangedMsg struct {
	note string
	err  error
}

// App is the root model for the TUI
type App struct {
	client   *client.Client
	store    session.Store
	payments payment.Provider

	screen  Screen
	width   int
	height  int
	err     error
	status  string
	sess    *session.Session
	loading bool
	spin    spinner.Model

	// Child models
	menu     *menu.Menu
	browser  *listings.Browser
	detail   *detail.Detail
	auth     *authform.AuthForm
	bookList *bookings.List
	manager  *manage.Manager
}

// New creates a new TUI application. The stored session, if any, is
// read once here; mutations go through the lifecycle commands.
func New(apiClient *client.Client, store session.Store, payments payment.Provider) *App {
	sess, _ := store.Get()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		client:   apiClient,
		store:    store,
		payments: payments,
		screen:   ScreenMenu,
		sess:     sess,
		spin:     sp,
		menu:     menu.New(sess),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.browser != nil {
			a.browser.SetSize(a.contentWidth())
		}
		if a.detail != nil {
			a.detail.SetSize(a.contentWidth())
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case menu.ActionSelectedMsg:
		return a.handleMenuAction(msg.Action)

	case menu.CancelledMsg:
		return a, tea.Quit

	case listings.ListingChosenMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.loadUnits(msg.Listing))

	case listings.BackMsg:
		a.toMenu()
		return a, nil

	case detail.BookingSubmittedMsg:
		return a.handleBookingSubmitted(msg)

	case detail.BackMsg:
		a.screen = ScreenBrowse
		a.detail = nil
		return a, nil

	case authform.LoginSubmittedMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.login(msg.Email, msg.Password))

	case authform.SignupSubmittedMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.signup(msg.Profile))

	case authform.CancelledMsg:
		a.toMenu()
		return a, nil

	case bookings.UpdateRequestedMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.updateBooking(msg.ID, msg.Status, msg.Payment))

	case bookings.DeleteRequestedMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.deleteBooking(msg.ID))

	case bookings.BackMsg:
		a.toMenu()
		return a, nil

	case manage.CreateListingMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.createListing(msg.Listing))

	case manage.CreateUnitMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.createUnit(msg.Unit))

	case manage.ToggleRequestedMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.toggleListing(msg.ID, msg.Active))

	case manage.DeleteRequestedMsg:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.deleteListing(msg.ID))

	case manage.BackMsg:
		a.toMenu()
		return a, nil

	case listingsLoadedMsg:
		a.loading = false
		if a.fail(msg.err) {
			return a, nil
		}
		a.browser = listings.New(msg.listings, a.contentWidth())
		a.screen = ScreenBrowse
		return a, nil

	case unitsLoadedMsg:
		a.loading = false
		if a.fail(msg.err) {
			return a, nil
		}
		a.detail = detail.New(msg.listing, msg.units, a.contentWidth())
		a.screen = ScreenDetail
		return a, nil

	case authResultMsg:
		a.loading = false
		if msg.err != nil {
			a.status = styles.StatusCritical.Render(msg.err.Error())
			return a, nil
		}
		a.sess = msg.sess
		a.auth = nil
		a.menu = menu.New(a.sess)
		// Land where the role belongs: vendors and admins on their
		// dashboards, customers on the catalogue.
		switch rolegate.RouteForRole(msg.sess.Role) {
		case rolegate.RouteVendor, rolegate.RouteAdmin:
			return a.openManage()
		default:
			a.loading = true
			return a, tea.Batch(a.spin.Tick, a.loadListings())
		}

	case bookingsLoadedMsg:
		a.loading = false
		if a.fail(msg.err) {
			return a, nil
		}
		a.bookList = bookings.New(msg.bookings, msg.manage, a.contentHeight()-6)
		a.screen = ScreenBookings
		return a, nil

	case bookingPlacedMsg:
		a.loading = false
		if a.fail(msg.err) {
			return a, nil
		}
		a.status = styles.StatusOK.Render(fmt.Sprintf(
			"Booked. Payment %s settled %.0f (ref %s).",
			msg.booking.PaymentDetails.PaymentStatus, msg.receipt.Amount, msg.receipt.Reference))
		a.screen = ScreenBrowse
		a.detail = nil
		return a, nil

	case bookingChangedMsg:
		a.loading = false
		if a.fail(msg.err) {
			return a, nil
		}
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.loadBookings())

	case manageLoadedMsg:
		a.loading = false
		if a.fail(msg.err) {
			return a, nil
		}
		a.manager = manage.New(msg.listings, a.sess != nil && a.sess.Role == session.RoleVendor)
		a.screen = ScreenManage
		return a, nil

	case listingChangedMsg:
		a.loading = false
		if a.fail(msg.err) {
			return a, nil
		}
		if msg.note != "" {
			a.status = styles.StatusOK.Render(msg.note)
		}
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.loadManageListings())

	default:
		// huh forms need every message while active
		switch a.screen {
		case ScreenAuth:
			if a.auth != nil {
				model, cmd := a.auth.Update(msg)
				a.auth = model.(*authform.AuthForm)
				return a, cmd
			}
		case ScreenDetail:
			if a.detail != nil && a.detail.Booking() {
				var cmd tea.Cmd
				a.detail, cmd = a.detail.Update(msg)
				return a, cmd
			}
		case ScreenManage:
			if a.manager != nil && a.manager.FormOpen() {
				var cmd tea.Cmd
				a.manager, cmd = a.manager.Update(msg)
				return a, cmd
			}
		}
	}

	return a, nil
}

// routeKey forwards keyboard input to the active screen
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	switch a.screen {
	case ScreenMenu:
		if a.menu == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		return a, cmd
	case ScreenBrowse:
		if a.browser == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.browser, cmd = a.browser.Update(msg)
		return a, cmd
	case ScreenDetail:
		if a.detail == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	case ScreenAuth:
		if a.auth == nil {
			return a, nil
		}
		model, cmd := a.auth.Update(msg)
		a.auth = model.(*authform.AuthForm)
		return a, cmd
	case ScreenBookings:
		if a.bookList == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.bookList, cmd = a.bookList.Update(msg)
		return a, cmd
	case ScreenManage:
		if a.manager == nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.manager, cmd = a.manager.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleMenuAction routes a menu selection, gating protected screens
// before any request is made.
func (a *App) handleMenuAction(action menu.Action) (tea.Model, tea.Cmd) {
	switch action {
	case menu.ActionBrowse:
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.loadListings())

	case menu.ActionBookings:
		if d := rolegate.Authorize(a.sess); !d.Allowed {
			a.status = styles.StatusWarning.Render(d.Message())
			return a, nil
		}
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.loadBookings())

	case menu.ActionManage:
		return a.openManage()

	case menu.ActionLogin:
		a.auth = authform.New(authform.ModeLogin)
		a.screen = ScreenAuth
		return a, a.auth.Init()

	case menu.ActionSignup:
		a.auth = authform.New(authform.ModeSignup)
		a.screen = ScreenAuth
		return a, a.auth.Init()

	case menu.ActionLogout:
		if err := a.client.Logout(); err != nil {
			a.status = styles.StatusCritical.Render(err.Error())
			return a, nil
		}
		a.sess = nil
		a.menu = menu.New(nil)
		a.status = styles.StatusOK.Render("Logged out.")
		return a, nil

	case menu.ActionQuit:
		return a, tea.Quit
	}
	return a, nil
}

// openManage gates and opens the management screen
func (a *App) openManage() (tea.Model, tea.Cmd) {
	if d := rolegate.Authorize(a.sess, session.RoleVendor, session.RoleAdmin); !d.Allowed {
		a.status = styles.StatusWarning.Render(d.Message())
		return a, nil
	}
	a.loading = true
	return a, tea.Batch(a.spin.Tick, a.loadManageListings())
}

// handleBookingSubmitted gates the booking before sending it
func (a *App) handleBookingSubmitted(msg detail.BookingSubmittedMsg) (tea.Model, tea.Cmd) {
	if d := rolegate.Authorize(a.sess, session.RoleCustomer); !d.Allowed {
		a.status = styles.StatusWarning.Render(d.Message())
		return a, nil
	}
	a.loading = true
	return a, tea.Batch(a.spin.Tick, a.placeBooking(msg.Booking))
}

// toMenu returns to the menu, rebuilding it from the current session
func (a *App) toMenu() {
	a.menu = menu.New(a.sess)
	a.screen = ScreenMenu
	a.browser = nil
	a.detail = nil
	a.auth = nil
	a.bookList = nil
	a.manager = nil
	a.err = nil
}

// fail records an error and handles terminal session expiry. Expiry
// logs the user out completely; they must log in again.
func (a *App) fail(err error) bool {
	if err == nil {
		return false
	}
	debuglog.Error("request", err)
	if errors.Is(err, client.ErrSessionExpired) || errors.Is(err, client.ErrNotLoggedIn) {
		_ = a.store.Clear()
		a.sess = nil
		a.toMenu()
		a.status = styles.StatusWarning.Render("Session expired, please log in again.")
		return true
	}
	a.status = styles.StatusCritical.Render(err.Error())
	return true
}

// Network commands

func (a *App) loadListings() tea.Cmd {
	return func() tea.Msg {
		found, err := a.client.Listings(context.Background(), client.SearchFilter{})
		return listingsLoadedMsg{listings: found, err: err}
	}
}

func (a *App) loadUnits(listing client.Listing) tea.Cmd {
	return func() tea.Msg {
		units, err := a.client.UnitsForListing(context.Background(), listing.ID)
		return unitsLoadedMsg{listing: listing, units: units, err: err}
	}
}

func (a *App) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := a.client.Login(context.Background(), email, password)
		return authResultMsg{sess: sess, err: err}
	}
}

func (a *App) signup(profile client.SignupProfile) tea.Cmd {
	return func() tea.Msg {
		sess, err := a.client.Signup(context.Background(), profile)
		return authResultMsg{sess: sess, err: err}
	}
}

// loadBookings picks the endpoint for the stored role: customers see
// their own, vendors and admins see their listings' bookings.
func (a *App) loadBookings() tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		if sess != nil && sess.Role != session.RoleCustomer {
			found, err := a.client.Bookings(context.Background())
			return bookingsLoadedMsg{bookings: found, manage: true, err: err}
		}
		found, err := a.client.CustomerBookings(context.Background())
		return bookingsLoadedMsg{bookings: found, err: err}
	}
}

// placeBooking creates the booking, settles the payment with the
// provider, and marks it paid. The booking itself stays pending until
// the vendor confirms.
func (a *App) placeBooking(booking client.NewBooking) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		created, err := a.client.CreateBooking(ctx, booking)
		if err != nil {
			return bookingPlacedMsg{err: err}
		}

		receipt, err := a.payments.Charge(ctx, booking.Amount)
		if err != nil {
			return bookingPlacedMsg{err: fmt.Errorf("payment failed: %w", err)}
		}

		settled, err := a.client.UpdateBooking(ctx, created.ID, created.Status, client.PaymentPaid)
		if err != nil {
			return bookingPlacedMsg{err: err}
		}
		return bookingPlacedMsg{booking: settled, receipt: receipt}
	}
}

func (a *App) updateBooking(id string, status client.BookingStatus, pay client.PaymentStatus) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.UpdateBooking(context.Background(), id, status, pay)
		return bookingChangedMsg{err: err}
	}
}

func (a *App) deleteBooking(id string) tea.Cmd {
	return func() tea.Msg {
		err := a.client.DeleteBooking(context.Background(), id)
		return bookingChangedMsg{err: err}
	}
}

// loadManageListings fetches the catalogue for the management screen.
// Vendors and admins both work from the public listing endpoint.
func (a *App) loadManageListings() tea.Cmd {
	return func() tea.Msg {
		found, err := a.client.Listings(context.Background(), client.SearchFilter{})
		return manageLoadedMsg{listings: found, err: err}
	}
}

func (a *App) createListing(listing client.NewListing) tea.Cmd {
	return func() tea.Msg {
		created, err := a.client.CreateListing(context.Background(), listing)
		if err != nil {
			return listingChangedMsg{err: err}
		}
		return listingChangedMsg{note: fmt.Sprintf("Created %s.", created.Name)}
	}
}

func (a *App) createUnit(unit client.NewUnit) tea.Cmd {
	return func() tea.Msg {
		created, err := a.client.CreateUnit(context.Background(), unit)
		if err != nil {
			return listingChangedMsg{err: err}
		}
		return listingChangedMsg{note: fmt.Sprintf("Added unit %s.", created.Type)}
	}
}

func (a *App) toggleListing(id string, active bool) tea.Cmd {
	return func() tea.Msg {
		err := a.client.ToggleListing(context.Background(), id, active)
		return listingChangedMsg{err: err}
	}
}

func (a *App) deleteListing(id string) tea.Cmd {
	return func() tea.Msg {
		err := a.client.DeleteListing(context.Background(), id)
		return listingChangedMsg{err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	if a.loading {
		content = fmt.Sprintf("%s Loading...", a.spin.View())
	} else {
		switch a.screen {
		case ScreenMenu:
			content = a.viewChild(a.menu != nil, func() string { return a.menu.View() })
		case ScreenBrowse:
			content = a.viewChild(a.browser != nil, func() string { return a.browser.View() })
		case ScreenDetail:
			content = a.viewChild(a.detail != nil, func() string { return a.detail.View() })
		case ScreenAuth:
			content = a.viewChild(a.auth != nil, func() string { return a.auth.View() })
		case ScreenBookings:
			content = a.viewChild(a.bookList != nil, func() string { return a.bookList.View() })
		case ScreenManage:
			content = a.viewChild(a.manager != nil, func() string { return a.manager.View() })
		}
	}

	if a.status != "" {
		content += "\n" + a.status
	}

	return a.wrapWithFrame(styles.ActivePanel.Width(a.contentWidth()).Render(content))
}

func (a *App) viewChild(ok bool, view func() string) string {
	if !ok {
		return ""
	}
	return view()
}

// contentWidth calculates the width available inside the panel
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - panelPadding
	}
	return a.width - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	return a.height - 8
}

// renderHeader creates the header bar with app branding and session
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("StayHub"))

	rightText := ""
	if a.sess != nil {
		rightText = contextStyle.Render(fmt.Sprintf("%s (%s)", a.sess.Username, a.sess.Role)) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenBrowse:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "t Filter", "b Back"}
	case ScreenDetail:
		shortcuts = []string{"↑↓ Navigate", "Enter Book", "b Back"}
	case ScreenAuth:
		shortcuts = []string{"Enter Next", "Esc Cancel"}
	case ScreenBookings:
		if a.bookList != nil && a.bookList.Manage() {
			shortcuts = []string{"c Confirm", "x Cancel", "p Paid", "d Delete", "b Back"}
		} else {
			shortcuts = []string{"↑↓ Navigate", "b Back"}
		}
	case ScreenManage:
		if a.manager != nil && a.manager.FormOpen() {
			shortcuts = []string{"Enter Next", "Esc Cancel"}
		} else if a.sess != nil && a.sess.Role == session.RoleVendor {
			shortcuts = []string{"n New listing", "u New unit", "a Toggle", "d Delete", "b Back"}
		} else {
			shortcuts = []string{"a Toggle", "d Delete", "b Back"}
		}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, store session.Store) error {
	if err := debuglog.Init(session.DefaultConfigDir()); err == nil {
		defer debuglog.Close()
	}

	app := New(apiClient, store, payment.Dummy{})

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
