package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identityhub/idhub/internal/client/api"
	"github.com/identityhub/idhub/internal/client/form"
)

type fakeRegistrar struct {
	calls int
	err   error
}

func (f *fakeRegistrar) Register(ctx context.Context, req api.RegisterRequest) error {
	f.calls++
	return f.err
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestRegistrationView_ShowsAllFields(t *testing.T) {
	controller := form.NewRegistrationController(&fakeRegistrar{}, nil, nil)
	m := NewRegistrationModel(context.Background(), controller, "Digital Identity Hub")

	view := m.View()
	for _, label := range []string{
		"Create your Digital Identity Hub account",
		"Full name", "Email", "Phone", "Password", "Confirm password",
		"I agree to the terms and conditions",
		"Submit",
	} {
		assert.True(t, strings.Contains(view, label), "view should contain %q", label)
	}
}

func TestRegistrationSubmit_EmptyFormShowsErrors(t *testing.T) {
	registrar := &fakeRegistrar{}
	controller := form.NewRegistrationController(registrar, nil, nil)
	m := NewRegistrationModel(context.Background(), controller, "Digital Identity Hub")

	// Walk focus to the submit button and press enter. Validation runs on
	// the event loop, so the errors are visible immediately and no command
	// is issued.
	for i := 0; i < idxSubmit; i++ {
		model, _ := m.Update(keyMsg("tab"))
		m = model.(*RegistrationModel)
	}
	model, cmd := m.Update(keyMsg("enter"))
	m = model.(*RegistrationModel)
	assert.Nil(t, cmd, "invalid form must not start a request command")

	assert.Equal(t, 0, registrar.calls, "invalid form must not reach the backend")
	view := m.View()
	assert.Contains(t, view, "Full name is required")
	assert.Contains(t, view, "You must agree to the terms and conditions")
	assert.False(t, m.Done())
}

// fillRegistration types a complete valid form and leaves focus on the
// submit button.
func fillRegistration(t *testing.T, m *RegistrationModel) *RegistrationModel {
	t.Helper()
	steps := []tea.Msg{
		keyMsg("Jane Doe"), keyMsg("tab"),
		keyMsg("jane@example.com"), keyMsg("tab"),
		keyMsg("0771234567"), keyMsg("tab"),
		keyMsg("password123"), keyMsg("tab"),
		keyMsg("password123"), keyMsg("tab"),
		keyMsg(" "), keyMsg("tab"),
	}
	for _, s := range steps {
		model, _ := m.Update(s)
		m = model.(*RegistrationModel)
	}
	return m
}

func TestRegistrationSubmit_RepeatEnterWhileInFlight(t *testing.T) {
	registrar := &fakeRegistrar{}
	controller := form.NewRegistrationController(registrar, nil, nil)
	m := fillRegistration(t, NewRegistrationModel(context.Background(), controller, "Digital Identity Hub"))

	// First enter claims the submission on the event loop.
	model, cmd := m.Update(keyMsg("enter"))
	m = model.(*RegistrationModel)
	require.NotNil(t, cmd)
	assert.True(t, controller.Submitting())
	assert.Equal(t, 0, registrar.calls, "claim happens before the request runs")

	// A second enter before the first request resolves must be refused.
	model, repeat := m.Update(keyMsg("enter"))
	m = model.(*RegistrationModel)
	assert.Nil(t, repeat)

	// Resolve the first request and apply its outcome.
	model, _ = m.Update(cmd())
	m = model.(*RegistrationModel)

	assert.Equal(t, 1, registrar.calls, "exactly one request per submission")
	assert.False(t, controller.Submitting())
	assert.True(t, m.Done())
}

func TestRegistrationSubmit_RejectionShowsBanner(t *testing.T) {
	registrar := &fakeRegistrar{err: &api.Error{Status: 409, Message: "Email already registered"}}
	controller := form.NewRegistrationController(registrar, nil, nil)
	m := fillRegistration(t, NewRegistrationModel(context.Background(), controller, "Digital Identity Hub"))

	model, cmd := m.Update(keyMsg("enter"))
	m = model.(*RegistrationModel)
	require.NotNil(t, cmd)

	model, _ = m.Update(cmd())
	m = model.(*RegistrationModel)

	assert.Contains(t, m.View(), "Email already registered")
	assert.False(t, m.Done())
	assert.False(t, controller.Submitting(), "form is editable again after rejection")
}

func TestRegistrationTermsToggle(t *testing.T) {
	controller := form.NewRegistrationController(&fakeRegistrar{}, nil, nil)
	m := NewRegistrationModel(context.Background(), controller, "Digital Identity Hub")

	for i := 0; i < idxTerms; i++ {
		model, _ := m.Update(keyMsg("tab"))
		m = model.(*RegistrationModel)
	}
	model, _ := m.Update(keyMsg(" "))
	m = model.(*RegistrationModel)

	assert.True(t, controller.Form.AgreeToTerms)
	assert.Contains(t, m.View(), "☒")
}

func TestRegistrationFullNameCharLimit(t *testing.T) {
	controller := form.NewRegistrationController(&fakeRegistrar{}, nil, nil)
	m := NewRegistrationModel(context.Background(), controller, "Digital Identity Hub")

	long := strings.Repeat("a", fullNameMaxLen+10)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(long)})
	m = model.(*RegistrationModel)

	assert.Len(t, controller.Form.FullName, fullNameMaxLen)
}

func TestLoginView_ShowsFields(t *testing.T) {
	controller := form.NewLoginController(&fakeAuthenticator{}, nil, nil)
	m := NewLoginModel(context.Background(), controller, "Digital Identity Hub")

	view := m.View()
	assert.Contains(t, view, "Sign in to Digital Identity Hub")
	assert.Contains(t, view, "Email")
	assert.Contains(t, view, "Password")
}

type fakeAuthenticator struct{}

func (f *fakeAuthenticator) Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error) {
	return api.LoginResponse{Token: "tok"}, nil
}
