package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field order in loginInputs. The name field only participates in
// register mode.
const (
	loginFieldName = iota
	loginFieldEmail
	loginFieldPassword
)

func newLoginInputs() []textinput.Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return []textinput.Model{name, email, password}
}

func (m *Model) resetLoginForm() {
	m.loginInputs = newLoginInputs()
	m.loginFocus = loginFieldEmail
	m.registerMode = false
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchMode):
		m.registerMode = !m.registerMode
		m.loginFocus = m.firstLoginField()
		m.focusLoginField()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.loginFocus = m.nextLoginField()
		m.focusLoginField()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitLogin()
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) firstLoginField() int {
	if m.registerMode {
		return loginFieldName
	}
	return loginFieldEmail
}

func (m Model) nextLoginField() int {
	next := m.loginFocus + 1
	if next > loginFieldPassword {
		next = m.firstLoginField()
	}
	return next
}

func (m *Model) focusLoginField() {
	for i := range m.loginInputs {
		if i == m.loginFocus {
			m.loginInputs[i].Focus()
		} else {
			m.loginInputs[i].Blur()
		}
	}
}

func (m Model) submitLogin() tea.Cmd {
	name := strings.TrimSpace(m.loginInputs[loginFieldName].Value())
	email := strings.TrimSpace(m.loginInputs[loginFieldEmail].Value())
	password := m.loginInputs[loginFieldPassword].Value()
	if email == "" || password == "" {
		return nil
	}

	ctx, session := m.ctx, m.session
	if m.registerMode {
		if name == "" {
			return nil
		}
		return func() tea.Msg {
			session.Register(ctx, name, email, password)
			return nil
		}
	}
	return func() tea.Msg {
		session.Login(ctx, email, password)
		return nil
	}
}

func (m Model) renderLogin() string {
	var b strings.Builder

	title := "Sign in to Lumina"
	if m.registerMode {
		title = "Create your Lumina account"
	}
	b.WriteString("\n  " + m.styles.AccentText.Render(title) + "\n\n")

	if m.registerMode {
		b.WriteString("  " + m.loginInputs[loginFieldName].View() + "\n")
	}
	b.WriteString("  " + m.loginInputs[loginFieldEmail].View() + "\n")
	b.WriteString("  " + m.loginInputs[loginFieldPassword].View() + "\n\n")

	if m.sess.Busy {
		b.WriteString("  " + m.styles.MutedText.Render("Signing in...") + "\n")
	}
	if m.sess.Err != "" {
		b.WriteString("  " + m.styles.DangerText.Render(m.sess.Err) + "\n")
	}

	hint := "enter submit · tab next field · ctrl+n register · ctrl+c quit"
	if m.registerMode {
		hint = "enter submit · tab next field · ctrl+n back to login · ctrl+c quit"
	}
	b.WriteString("\n  " + m.styles.MutedText.Render(hint) + "\n")
	return b.String()
}
