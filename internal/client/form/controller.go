// Package form implements the registration and login form controllers:
// field state, submit-time validation, and the single request cycle
// against the backend.
package form

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/identityhub/idhub/internal/client/api"
	"github.com/identityhub/idhub/internal/validation"
)

// State identifies where a form is in its submission cycle.
type State int

const (
	// StateEditing: fields are being edited, no request in flight.
	StateEditing State = iota
	// StateSubmitting: a request is in flight, submit is disabled.
	StateSubmitting
	// StateSuccess: the cycle resolved successfully and navigation was
	// signalled.
	StateSuccess
)

// GenericFailureMessage is shown when the backend gives no usable reason.
const GenericFailureMessage = "Something went wrong. Please try again later."

// Registration holds the registration form field state. FullName is
// additionally capped at 50 characters by the input layer; that cap is not
// a validation rule.
type Registration struct {
	FullName        string `json:"fullName" validate:"required,min=2,fullname"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,phone"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	AgreeToTerms    bool   `json:"agreeToTerms" validate:"required"`
}

// RegistrationMessages maps field.tag to the message shown inline.
var RegistrationMessages = map[string]string{
	"fullName.required":        "Full name is required",
	"fullName.min":             "Full name must be at least 2 characters",
	"fullName.fullname":        "Full name can only contain letters and spaces",
	"email.required":           "Email is required",
	"email.email":              "Please enter a valid email address",
	"phone.required":           "Phone number is required",
	"phone.phone":              "Phone number must be exactly 10 digits",
	"password.required":        "Password is required",
	"password.min":             "Password must be at least 8 characters",
	"confirmPassword.required": "Please confirm your password",
	"confirmPassword.eqfield":  "Passwords do not match",
	"agreeToTerms.required":    "You must agree to the terms and conditions",
}

// Registrar is the backend operation the registration controller needs.
type Registrar interface {
	Register(ctx context.Context, req api.RegisterRequest) error
}

// RegistrationController drives the registration form through
// editing, validating, submitting and the resolved outcome.
type RegistrationController struct {
	// Form is the current field state, mutated field-by-field while editing.
	Form Registration

	errors    validation.Errors
	banner    string
	loading   bool
	succeeded bool
	registrar Registrar
	onSuccess func()
	log       *zap.Logger
}

// NewRegistrationController wires a controller to a registrar and an
// optional navigation hook invoked once on success.
func NewRegistrationController(registrar Registrar, onSuccess func(), log *zap.Logger) *RegistrationController {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationController{
		registrar: registrar,
		onSuccess: onSuccess,
		log:       log,
	}
}

// State reports the controller's place in the submission cycle.
func (c *RegistrationController) State() State {
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
func (c *RegistrationController) Submitting() bool { return c.loading }

// FieldErrors returns the error map computed by the last submit attempt.
// It only ever contains fields that failed that pass.
func (c *RegistrationController) FieldErrors() validation.Errors { return c.errors }

// Banner returns the current form-level failure message, if any.
func (c *RegistrationController) Banner() string { return c.banner }

// Validate recomputes the field error map from the current form state.
func (c *RegistrationController) Validate() validation.Errors {
	c.errors = validation.Validate(c.Form, RegistrationMessages)
	return c.errors
}

// SubmitResult carries the resolved outcome of a submission cycle back to
// the caller that claimed it.
type SubmitResult struct {
	Success bool
	Banner  string
}

// BeginSubmit validates every field and, when all pass, claims the
// in-flight slot and snapshots the request to send. ok is false when the
// submit is blocked by field errors or an already in-flight request; no
// request may be issued then.
func (c *RegistrationController) BeginSubmit() (req api.RegisterRequest, ok bool) {
	if c.loading {
		return api.RegisterRequest{}, false
	}

	c.banner = ""
	if errs := c.Validate(); len(errs) > 0 {
		return api.RegisterRequest{}, false
	}

	c.loading = true
	return api.RegisterRequest{
		FullName: c.Form.FullName,
		Email:    c.Form.Email,
		Phone:    c.Form.Phone,
		Password: c.Form.Password,
	}, true
}

// Send issues a request claimed by BeginSubmit. It touches no mutable
// controller state, so it may run off the event loop; the outcome must be
// handed back to FinishSubmit.
func (c *RegistrationController) Send(ctx context.Context, req api.RegisterRequest) SubmitResult {
	if err := c.registrar.Register(ctx, req); err != nil {
		return SubmitResult{Banner: failureMessage(err, c.log, "registration")}
	}
	return SubmitResult{Success: true}
}

// FinishSubmit applies a resolved outcome. The loading flag is cleared in
// this one finalization step covering both paths, and the navigation hook
// fires at most once per controller.
func (c *RegistrationController) FinishSubmit(res SubmitResult) {
	c.loading = false
	c.banner = res.Banner
	if res.Success && !c.succeeded {
		c.succeeded = true
		if c.onSuccess != nil {
			c.onSuccess()
		}
	}
}

// Submit runs one synchronous submission cycle: every field is validated,
// and only if all pass is a single registration request issued. Re-entrant
// calls while a request is in flight are ignored.
func (c *RegistrationController) Submit(ctx context.Context) {
	req, ok := c.BeginSubmit()
	if !ok {
		return
	}
	c.FinishSubmit(c.Send(ctx, req))
}

// failureMessage converts a request error into the banner text: structured
// rejections surface the backend's message, transport failures surface the
// generic message and are logged with full detail.
func failureMessage(err error, log *zap.Logger, op string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		log.Warn(op+" rejected",
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message))
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return GenericFailureMessage
	}

	log.Error(op+" request failed", zap.Error(err))
	return GenericFailureMessage
}
