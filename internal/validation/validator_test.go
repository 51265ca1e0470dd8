package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required,min=2,fullname"`
	Phone string `json:"phone" validate:"phone"`
	Note  string `json:"note"`
}

var sampleMessages = map[string]string{
	"name.required": "name is required",
	"name.min":      "name is too short",
	"name.fullname": "name has invalid characters",
	"phone.phone":   "phone must be 10 digits",
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input sample
		want  Errors
	}{
		{
			name:  "all valid",
			input: sample{Name: "John Doe", Phone: "1234567890", Note: "anything at all"},
			want:  nil,
		},
		{
			name:  "required wins over later rules",
			input: sample{Name: "", Phone: "1234567890"},
			want:  Errors{"name": "name is required"},
		},
		{
			name:  "min checked before pattern",
			input: sample{Name: "1", Phone: "1234567890"},
			want:  Errors{"name": "name is too short"},
		},
		{
			name:  "pattern failure",
			input: sample{Name: "John123", Phone: "1234567890"},
			want:  Errors{"name": "name has invalid characters"},
		},
		{
			name:  "failures collected across fields",
			input: sample{Name: "", Phone: "12345"},
			want: Errors{
				"name":  "name is required",
				"phone": "phone must be 10 digits",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.input, sampleMessages))
		})
	}
}

func TestValidate_UntaggedFieldNeverErrors(t *testing.T) {
	errs := Validate(sample{Name: "Jane", Phone: "0000000000", Note: "!@#"}, sampleMessages)
	assert.Nil(t, errs)
}

func TestValidate_FallbackMessage(t *testing.T) {
	errs := Validate(sample{Name: "Jane", Phone: "bad"}, map[string]string{})
	assert.Equal(t, Errors{"phone": "Invalid value"}, errs)
}

func TestValidate_NonStructPanics(t *testing.T) {
	// A non-struct input is a programmer error and must never read as a
	// clean pass.
	assert.Panics(t, func() { Validate("not a struct", sampleMessages) })
	assert.Panics(t, func() { Validate(nil, sampleMessages) })
}
