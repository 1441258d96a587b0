// ABOUTME: Login and signup forms as a bubbletea model
// ABOUTME: Collects credentials with huh and hands them back to the app

package authform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"stayhub/internal/client"
	"stayhub/internal/session"
	"stayhub/internal/tui/styles"
)

// Mode selects which form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// LoginSubmittedMsg is sent when the login form completes
type LoginSubmittedMsg struct {
	Email    string
	Password string
}

// SignupSubmittedMsg is sent when the signup form completes
type SignupSubmittedMsg struct {
	Profile client.SignupProfile
}

// CancelledMsg is sent when the form is abandoned
type CancelledMsg struct{}

// AuthForm is the login/signup form model
type AuthForm struct {
	mode Mode
	form *huh.Form

	email    string
	password string
	username string
	phone    string
	address  string
	role     string
}

// createTheme returns a huh theme matching the app palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

// New creates the form for the given mode
func New(mode Mode) *AuthForm {
	f := &AuthForm{mode: mode, role: string(session.RoleCustomer)}
	if mode == ModeLogin {
		f.form = f.createLoginForm()
	} else {
		f.form = f.createSignupForm()
	}
	return f
}

func (f *AuthForm) createLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password),
		).Title("Log in").
			Description("Use the account you signed up with"),
	).WithTheme(createTheme())
}

func (f *AuthForm) createSignupForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&f.username),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password),
			huh.NewInput().
				Title("Phone").
				Value(&f.phone),
			huh.NewInput().
				Title("Address").
				Value(&f.address),
			huh.NewSelect[string]().
				Title("Account type").
				Options(
					huh.NewOption("Customer - book stays and tables", string(session.RoleCustomer)),
					huh.NewOption("Vendor - list properties", string(session.RoleVendor)),
				).
				Value(&f.role),
		).Title("Sign up").
			Description("Admin accounts are not self-service"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (f *AuthForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *AuthForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f, f.submit()
	}
	return f, cmd
}

func (f *AuthForm) submit() tea.Cmd {
	if f.mode == ModeLogin {
		return func() tea.Msg {
			return LoginSubmittedMsg{Email: f.email, Password: f.password}
		}
	}
	profile := client.SignupProfile{
		Username: f.username,
		Email:    f.email,
		Password: f.password,
		Phone:    f.phone,
		Address:  f.address,
		Role:     session.Role(f.role),
	}
	return func() tea.Msg {
		return SignupSubmittedMsg{Profile: profile}
	}
}

// Mode returns the form mode
func (f *AuthForm) Mode() Mode {
	return f.mode
}

// View implements tea.Model
func (f *AuthForm) View() string {
	return f.form.View()
}
