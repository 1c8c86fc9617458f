package tui

import (
	"strings"
	"time"

	"shoplist-cli/internal/auth"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type loginFocus int

const (
	loginFocusEmail loginFocus = iota
	loginFocusPassword
)

type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    loginFocus
	revealed bool

	spinner spinner.Model
	delay   time.Duration
	pending bool
	// seq invalidates timers from an earlier submission (after logout).
	seq int
}

func (f *loginForm) blur() {
	f.email.Blur()
	f.password.Blur()
}

func (f *loginForm) setFocus(focus loginFocus) {
	f.focus = focus
	f.blur()
	if focus == loginFocusPassword {
		f.password.Focus()
		return
	}
	f.email.Focus()
}

func (f *loginForm) toggleReveal() {
	f.revealed = !f.revealed
	if f.revealed {
		f.password.EchoMode = textinput.EchoNormal
		return
	}
	f.password.EchoMode = textinput.EchoPassword
}

// reset clears the password and reveal state; the email is kept for the next sign-in.
func (f *loginForm) reset() {
	f.password.SetValue("")
	if f.revealed {
		f.toggleReveal()
	}
	f.pending = false
	f.seq++
	f.setFocus(loginFocusEmail)
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.login.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.login.spinner, cmd = m.login.spinner.Update(msg)
		return m, cmd

	case loginTimerMsg:
		if !m.login.pending || msg.seq != m.login.seq {
			return m, nil
		}
		return m, m.authenticateCmd()

	case loginDoneMsg:
		m.login.pending = false
		if msg.err != nil {
			m.showError(msg.err)
			return m, nil
		}
		m.completeLogin(msg.session)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Single-shot: once submitted, the form waits for the timer.
		if m.login.pending {
			return m, nil
		}
		m.clearMinibuffer()

		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.login.setFocus((m.login.focus + 1) % 2)
			return m, nil
		case "ctrl+r":
			m.login.toggleReveal()
			return m, nil
		case "ctrl+f":
			m.requestPasswordReset()
			return m, nil
		case "enter":
			if m.login.focus == loginFocusEmail && m.login.password.Value() == "" {
				m.login.setFocus(loginFocusPassword)
				return m, nil
			}
			return m.submitLogin()
		}

		var cmd tea.Cmd
		if m.login.focus == loginFocusPassword {
			m.login.password, cmd = m.login.password.Update(msg)
		} else {
			m.login.email, cmd = m.login.email.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m appModel) submitLogin() (tea.Model, tea.Cmd) {
	if err := auth.ValidateCredentials(m.login.email.Value(), m.login.password.Value()); err != nil {
		m.showError(err)
		return m, nil
	}
	m.login.pending = true
	m.login.seq++
	seq := m.login.seq
	var timer tea.Cmd = func() tea.Msg { return loginTimerMsg{seq: seq} }
	if m.login.delay > 0 {
		timer = tea.Tick(m.login.delay, func(time.Time) tea.Msg { return loginTimerMsg{seq: seq} })
	}
	return m, tea.Batch(m.login.spinner.Tick, timer)
}

func (m appModel) authenticateCmd() tea.Cmd {
	a := m.auth
	email := strings.TrimSpace(m.login.email.Value())
	password := m.login.password.Value()
	return func() tea.Msg {
		if a == nil {
			return loginDoneMsg{session: auth.Session{Email: email}}
		}
		s, err := a.Authenticate(email, password)
		return loginDoneMsg{session: s, err: err}
	}
}

func (m *appModel) completeLogin(s auth.Session) {
	m.session = &s
	m.screen = screenDashboard
	m.login.blur()
	m.login.password.SetValue("")
	m.refreshLists()
	m.log.Info("signed in", zap.String("email", s.Email))
	if m.onLogin != nil {
		m.onLogin(s)
	}
}

func (m *appModel) logout() {
	email := m.signedInEmail()
	m.session = nil
	m.screen = screenLogin
	m.modal = modalNone
	m.login.reset()
	m.log.Info("signed out", zap.String("email", email))
	if m.onLogout != nil {
		m.onLogout()
	}
}

func (m *appModel) requestPasswordReset() {
	email := strings.TrimSpace(m.login.email.Value())
	if m.auth == nil {
		if email == "" {
			m.showError(auth.ErrEmailRequired)
			return
		}
	} else if err := m.auth.RequestPasswordReset(email); err != nil {
		m.showError(err)
		return
	}
	m.showMinibuffer("Password reset instructions would be sent to " + email)
}

func (m appModel) viewLogin() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	bodyW := modalBodyWidth(w)

	title := glyphCart() + " Shopping lists"
	lines := []string{
		styleMuted().Render("Sign in to manage your lists."),
		"",
		renderInputLine(bodyW, "Email", m.login.email.View(), m.login.focus == loginFocusEmail && !m.login.pending),
		"",
		renderInputLine(bodyW, "Password", m.login.password.View(), m.login.focus == loginFocusPassword && !m.login.pending),
		"",
	}
	if m.login.pending {
		lines = append(lines, m.login.spinner.View()+" Signing in…")
	} else {
		btn := lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Render("Sign in")
		lines = append(lines, btn)
	}
	if m.minibufferText != "" {
		lines = append(lines, "", m.renderMinibuffer())
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render(
		"enter: sign in   tab: next field   ctrl+r: show/hide password   ctrl+f: forgot password   ctrl+c: quit",
	))

	return placeCentered(m.width, m.height, renderModalBox(w, title, strings.Join(lines, "\n")))
}
