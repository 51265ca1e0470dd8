// Package tui renders the registration and login screens in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/identityhub/idhub/internal/client/form"
)

// Input order on the registration screen; the terms checkbox and the
// submit button extend the focus cycle past the text inputs.
const (
	idxFullName = iota
	idxEmail
	idxPhone
	idxPassword
	idxConfirm
	idxTerms
	idxSubmit
)

// fullNameMaxLen is enforced at the input layer only.
const fullNameMaxLen = 50

var registrationFieldKeys = []string{
	"fullName", "email", "phone", "password", "confirmPassword", "agreeToTerms",
}

// submitDoneMsg delivers the resolved outcome of a submission back to the
// event loop, where it is applied to the controller.
type submitDoneMsg struct {
	result form.SubmitResult
}

// RegistrationModel is the interactive registration screen. The controller
// is only ever mutated on the event loop: the submit command issues the
// request and reports back via submitDoneMsg.
type RegistrationModel struct {
	ctx        context.Context
	controller *form.RegistrationController
	inputs     []textinput.Model
	labels     []string
	agreed     bool
	focusIndex int
	done       bool
	rpName     string
}

// NewRegistrationModel builds the registration screen around a controller.
// ctx bounds in-flight requests; cancelling it aborts a submission that is
// still on the wire when the program is torn down.
func NewRegistrationModel(ctx context.Context, controller *form.RegistrationController, rpName string) *RegistrationModel {
	labels := []string{"Full name", "Email", "Phone", "Password", "Confirm password"}
	inputs := make([]textinput.Model, len(labels))

	for i := range inputs {
		t := textinput.New()
		t.Prompt = "> "
		t.Placeholder = labels[i]
		switch i {
		case idxFullName:
			t.CharLimit = fullNameMaxLen
		case idxPassword, idxConfirm:
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		inputs[i] = t
	}
	inputs[idxFullName].Focus()

	return &RegistrationModel{
		ctx:        ctx,
		controller: controller,
		inputs:     inputs,
		labels:     labels,
		rpName:     rpName,
	}
}

// Done reports whether registration completed and the user should proceed
// to the login screen.
func (m *RegistrationModel) Done() bool { return m.done }

func (m *RegistrationModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegistrationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
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

		case " ":
			if m.focusIndex == idxTerms {
				m.agreed = !m.agreed
				m.controller.Form.AgreeToTerms = m.agreed
				return m, nil
			}

		case "tab", "shift+tab", "up", "down", "enter":
			s := msg.String()

			if s == "enter" && m.focusIndex == idxSubmit {
				return m, m.submit()
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > idxSubmit {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = idxSubmit
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

func (m *RegistrationModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	m.syncForm()
	return tea.Batch(cmds...)
}

// syncForm copies the input values into the controller's form state.
func (m *RegistrationModel) syncForm() {
	m.controller.Form.FullName = m.inputs[idxFullName].Value()
	m.controller.Form.Email = m.inputs[idxEmail].Value()
	m.controller.Form.Phone = m.inputs[idxPhone].Value()
	m.controller.Form.Password = m.inputs[idxPassword].Value()
	m.controller.Form.ConfirmPassword = m.inputs[idxConfirm].Value()
	m.controller.Form.AgreeToTerms = m.agreed
}

// submit claims the submission on the event loop, so a second enter while
// the request is in flight is refused before any goroutine starts. The
// returned command only performs the network call.
func (m *RegistrationModel) submit() tea.Cmd {
	m.syncForm()
	req, ok := m.controller.BeginSubmit()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		return submitDoneMsg{result: m.controller.Send(m.ctx, req)}
	}
}

func (m *RegistrationModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Create your %s account", m.rpName)))
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
		if msg, ok := errs[registrationFieldKeys[i]]; ok {
			b.WriteString(errorStyle.Render("‣ " + msg))
			b.WriteString("\n")
		}
	}

	check := "☐"
	if m.agreed {
		check = "☒"
	}
	termsLine := fmt.Sprintf("%s I agree to the terms and conditions", check)
	if m.focusIndex == idxTerms {
		b.WriteString(focusedStyle.Render(termsLine))
	} else {
		b.WriteString(blurredStyle.Render(termsLine))
	}
	b.WriteString("\n")
	if msg, ok := errs[registrationFieldKeys[idxTerms]]; ok {
		b.WriteString(errorStyle.Render("‣ " + msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.controller.Submitting():
		b.WriteString(blurredStyle.Render("Submitting..."))
	case m.focusIndex == idxSubmit:
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
		b.WriteString(successStyle.Render("Account created. You can now log in."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab/shift+tab move • space toggles • enter submits • esc quits"))
	b.WriteString("\n")

	return b.String()
}
