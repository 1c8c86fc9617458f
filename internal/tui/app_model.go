package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"shoplist-cli/internal/auth"
	"shoplist-cli/internal/editor"
	"shoplist-cli/internal/liststore"
	"shoplist-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"
)

type appModel struct {
	lists *liststore.Store
	auth  auth.Authenticator
	log   *zap.Logger

	onLogin  func(auth.Session)
	onLogout func()

	changes <-chan struct{}
	reload  func(context.Context) ([]model.ShoppingList, error)

	width  int
	height int

	screen  screen
	session *auth.Session

	login loginForm

	dashboard list.Model

	modal        modalKind
	confirmFocus confirmModalFocus
	// deleteForID is the list the confirm modal will delete.
	deleteForID string

	editor     *editor.Editor
	editorForm editorForm

	minibufferText string
	minibufferKind minibufferKind
}

const (
	maxContentW  = 96
	headerLines  = 2
	footerLines  = 2
	outerMarginW = 2
)

func newAppModel(opts Options) appModel {
	lg := opts.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	delay := opts.LoginDelay
	if delay < 0 {
		delay = 0
	}

	m := appModel{
		lists:    opts.Lists,
		auth:     opts.Auth,
		log:      lg,
		onLogin:  opts.OnLogin,
		onLogout: opts.OnLogout,
		changes:  opts.Changes,
		reload:   opts.Reload,
		screen:   screenLogin,
		editor:   editor.New(opts.IDs),
	}
	if m.lists == nil {
		m.lists = liststore.New()
	}
	m.login = newLoginForm(delay)
	m.login.email.SetValue(strings.TrimSpace(opts.Email))
	if opts.Session != nil {
		s := *opts.Session
		m.session = &s
		m.screen = screenDashboard
		m.login.blur()
	}

	m.dashboard = newList("Shopping lists", []list.Item{})
	m.dashboard.SetDelegate(newListCardDelegate())
	m.refreshLists()
	m.selectListByID(opts.SelectedListID)
	return m
}

func (m *appModel) selectListByID(id string) {
	if id == "" {
		return
	}
	for i, it := range m.dashboard.Items() {
		if c, ok := it.(listCardItem); ok && c.list.ID == id {
			m.dashboard.Select(i)
			return
		}
	}
}

func (m appModel) result() Result {
	r := Result{Email: m.signedInEmail()}
	if r.Email == "" {
		r.Email = strings.TrimSpace(m.login.email.Value())
	}
	if l, ok := m.selectedList(); ok {
		r.SelectedListID = l.ID
	}
	return r
}

func newLoginForm(delay time.Duration) loginForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styleSuccess()

	return loginForm{
		email:    email,
		password: password,
		spinner:  sp,
		delay:    delay,
	}
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = strings.TrimSpace(text)
	m.minibufferKind = minibufferInfo
}

func (m *appModel) showError(err error) {
	if err == nil {
		return
	}
	// Validation failures read better without the field prefix.
	var v liststore.ValidationError
	if errors.As(err, &v) {
		err = v.Err
	}
	m.minibufferText = err.Error()
	m.minibufferKind = minibufferError
}

func (m *appModel) clearMinibuffer() {
	m.minibufferText = ""
	m.minibufferKind = minibufferInfo
}

func (m appModel) contentWidth() int {
	w := m.width - 2*outerMarginW
	if w > maxContentW {
		w = maxContentW
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *appModel) resizeLists() {
	h := m.height - headerLines - footerLines - 2
	if h < 4 {
		h = 4
	}
	m.dashboard.SetSize(m.contentWidth(), h)
}

func (m appModel) signedInEmail() string {
	if m.session == nil {
		return ""
	}
	return m.session.Email
}
