// Package validation evaluates struct fields against their validate tags
// and maps failures to human-readable messages.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to the first validation failure for that field.
// Fields are reported under their json names.
type Errors map[string]string

var (
	// Use a singleton validator instance to avoid recreating it.
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

var (
	fullNameRe = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRe    = regexp.MustCompile(`^[0-9]{10}$`)
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()

		// Report fields under their json names.
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// fullname: letters and whitespace only.
		_ = validatorInstance.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
			return fullNameRe.MatchString(fl.Field().String())
		})

		// phone: exactly 10 digits.
		_ = validatorInstance.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
	})

	return validatorInstance
}

// Validate checks input against its validate tags. Failures are looked up
// in messages by "field.tag". The validator evaluates a field's tags in
// order and stops that field at the first failure while still collecting
// failures across fields, so at most one message is reported per field.
// A nil return means every field passed. Validate panics when input is not
// a struct.
func Validate(input any, messages map[string]string) Errors {
	err := getValidator().Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Anything else is an InvalidValidationError: the input was not a
		// struct. That is a programmer error, never a clean pass.
		panic(err)
	}

	errs := make(Errors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			errs[field] = msg
		} else {
			errs[field] = "Invalid value"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
