package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/identityhub/idhub/internal/client/form"
)

const (
	loginIdxEmail = iota
	loginIdxPassword
	loginIdxSubmit
)

var loginFieldKeys = []string{"email", "password"}

// loginDoneMsg delivers the resolved outcome of a login back to the event
// loop, where it is applied to the controller.
type loginDoneMsg struct {
	result form.LoginResult
}

// LoginModel is the interactive login screen. Like the registration screen,
// the controller is only ever mutated on the event loop.
type LoginModel struct {
	ctx        context.Context
	controller *form.LoginController
	inputs     []textinput.Model
	labels     []string
	focusIndex int
	done       bool
	rpName     string
}

// NewLoginModel builds the login screen around a controller. ctx bounds
// in-flight requests.
func NewLoginModel(ctx context.Context, controller *form.LoginController, rpName string) *LoginModel {
	labels := []string{"Email", "Password"}
	inputs := make([]textinput.Model, len(labels))

	for i := range inputs {
		t := textinput.New()
		t.Prompt = "> "
		t.Placeholder = labels[i]
		if i == loginIdxPassword {
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		inputs[i] = t
	}
	inputs[loginIdxEmail].Focus()

	return &LoginModel{
		ctx:        ctx,
		controller: controller,
		inputs:     inputs,
		labels:     labels,
		rpName:     rpName,
	}
}

// Done reports whether login completed.
func (m *LoginModel) Done() bool { return m.done }

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.controller.FinishSubmit(msg.result)
		if m.controller.State() == form.StateSuccess {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down", "enter":
			s := msg.String()

			if s == "enter" && m.focusIndex == loginIdxSubmit {
				return m, m.submit()
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > loginIdxSubmit {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = loginIdxSubmit
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					continue
				}
				m.inputs[i].Blur()
			}
			return m, tea.Batch(cmds...)
		}
	}

	return m, m.updateInputs(msg)
}

func (m *LoginModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	m.syncForm()
	return tea.Batch(cmds...)
}

func (m *LoginModel) syncForm() {
	m.controller.Form.Email = m.inputs[loginIdxEmail].Value()
	m.controller.Form.Password = m.inputs[loginIdxPassword].Value()
}

func (m *LoginModel) submit() tea.Cmd {
	m.syncForm()
	req, ok := m.controller.BeginSubmit()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		return loginDoneMsg{result: m.controller.Send(m.ctx, req)}
	}
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Sign in to %s", m.rpName)))
	b.WriteString("\n")

	errs := m.controller.FieldErrors()

	for i := range m.inputs {
		label := m.labels[i]
		if i == m.focusIndex {
			b.WriteString(focusedStyle.Render(label))
		} else {
			b.WriteString(blurredStyle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := errs[loginFieldKeys[i]]; ok {
			b.WriteString(errorStyle.Render("‣ " + msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.controller.Submitting():
		b.WriteString(blurredStyle.Render("Signing in..."))
	case m.focusIndex == loginIdxSubmit:
		b.WriteString(focusedButton)
	default:
		b.WriteString(blurredButton)
	}
	b.WriteString("\n")

	if banner := m.controller.Banner(); banner != "" {
		b.WriteString(errorStyle.Render(banner))
		b.WriteString("\n")
	}
	if m.done {
		b.WriteString(successStyle.Render("Signed in."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab/shift+tab move • enter submits • esc quits"))
	b.WriteString("\n")

	return b.String()
}
