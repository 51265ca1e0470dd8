package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/identityhub/idhub/internal/client/api"
	"github.com/identityhub/idhub/internal/validation"
)

// Login holds the login form field state.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginMessages maps field.tag to the message shown inline.
var LoginMessages = map[string]string{
	"email.required":    "Email is required",
	"email.email":       "Please enter a valid email address",
	"password.required": "Password is required",
}

// Authenticator is the backend operation the login controller needs.
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error)
}

// LoginController drives the login form through the same submission cycle
// as registration.
type LoginController struct {
	Form Login

	errors    validation.Errors
	banner    string
	loading   bool
	succeeded bool
	auth      Authenticator
	onSuccess func(api.LoginResponse)
	log       *zap.Logger
}

// NewLoginController wires a controller to an authenticator and an optional
// hook invoked once with the issued session.
func NewLoginController(auth Authenticator, onSuccess func(api.LoginResponse), log *zap.Logger) *LoginController {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoginController{
		auth:      auth,
		onSuccess: onSuccess,
		log:       log,
	}
}

// State reports the controller's place in the submission cycle.
func (c *LoginController) State() State {
	switch {
	case c.loading:
		return StateSubmitting
	case c.succeeded:
		return StateSuccess
	default:
		return StateEditing
	}
}

// Submitting reports whether a request is in flight.
func (c *LoginController) Submitting() bool { return c.loading }

// FieldErrors returns the error map computed by the last submit attempt.
func (c *LoginController) FieldErrors() validation.Errors { return c.errors }

// Banner returns the current form-level failure message, if any.
func (c *LoginController) Banner() string { return c.banner }

// Validate recomputes the field error map from the current form state.
func (c *LoginController) Validate() validation.Errors {
	c.errors = validation.Validate(c.Form, LoginMessages)
	return c.errors
}

// LoginResult carries the resolved outcome of a login cycle back to the
// caller that claimed it.
type LoginResult struct {
	Success  bool
	Banner   string
	Response api.LoginResponse
}

// BeginSubmit validates the form and, when both fields pass, claims the
// in-flight slot and snapshots the request to send.
func (c *LoginController) BeginSubmit() (req api.LoginRequest, ok bool) {
	if c.loading {
		return api.LoginRequest{}, false
	}

	c.banner = ""
	if errs := c.Validate(); len(errs) > 0 {
		return api.LoginRequest{}, false
	}

	c.loading = true
	return api.LoginRequest{
		Email:    c.Form.Email,
		Password: c.Form.Password,
	}, true
}

// Send issues a request claimed by BeginSubmit. It touches no mutable
// controller state, so it may run off the event loop; the outcome must be
// handed back to FinishSubmit.
func (c *LoginController) Send(ctx context.Context, req api.LoginRequest) LoginResult {
	resp, err := c.auth.Login(ctx, req)
	if err != nil {
		return LoginResult{Banner: failureMessage(err, c.log, "login")}
	}
	return LoginResult{Success: true, Response: resp}
}

// FinishSubmit applies a resolved outcome. The loading flag is cleared in
// this one finalization step covering both paths, and the session hook
// fires at most once per controller.
func (c *LoginController) FinishSubmit(res LoginResult) {
	c.loading = false
	c.banner = res.Banner
	if res.Success && !c.succeeded {
		c.succeeded = true
		if c.onSuccess != nil {
			c.onSuccess(res.Response)
		}
	}
}

// Submit runs one synchronous login cycle.
func (c *LoginController) Submit(ctx context.Context) {
	req, ok := c.BeginSubmit()
	if !ok {
		return
	}
	c.FinishSubmit(c.Send(ctx, req))
}
