package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bakdaulet/kassa/internal/api"
	"github.com/bakdaulet/kassa/internal/session"
)

// LoggedInMsg is emitted once the backend accepts the credentials.
type LoggedInMsg struct {
	Session *session.Session
}

type LoginModel struct {
	CommonModel
	sessionService *session.Service

	form    *huh.Form
	waiting bool
	errText string

	formLogin    string
	formPassword string
}

func NewLoginModel(sessionSvc *session.Service) LoginModel {
	m := LoginModel{sessionService: sessionSvc}
	m.form = m.newForm()

	return m
}

func (m LoginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("login").
				Title("Login").
				Value(&m.formLogin).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("login cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: submit | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.waiting = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				m.errText = "Wrong login or password."
			} else {
				m.errText = fmt.Sprintf("Login failed: %v", msg.err)
			}

			m.formPassword = ""
			m.form = m.newForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Session: msg.session} }
	}

	if m.waiting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.waiting = true
	m.errText = ""

	login := m.form.GetString("login")
	password := m.form.GetString("password")

	return m, m.loginCmd(login, password)
}

func (m LoginModel) View() string {
	if m.waiting {
		return padStyle.Render("Signing in...")
	}

	content := "Kassa\n\n" + m.form.View()
	if m.errText != "" {
		content += "\n" + errStyle(m.errText)
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

// Messages

type loginResultMsg struct {
	session *session.Session
	err     error
}

func (m LoginModel) loginCmd(login, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		sess, err := m.sessionService.Login(ctx, login, password)

		return loginResultMsg{session: sess, err: err}
	}
}
