package validator

import (
	"errors"
	"unicode"

	locale "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps a go-playground validator with English translations and
// the custom rules used by request payloads.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with default English translations registered.
func New() (*Validator, error) {
	english := locale.New()
	uni := ut.New(english, english)

	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("failed to get english translator")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("password", validatePassword); err != nil {
		return nil, err
	}

	err := validate.RegisterTranslation(
		"password",
		trans,
		func(ut ut.Translator) error {
			return ut.Add(
				"password",
				"{0} must be at least 8 characters long and contain an uppercase and a lowercase letter",
				true,
			)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("password", fe.Field())
			return t
		},
	)
	if err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates the given struct and returns a field-to-message map of
// translated violations, or nil if the struct is valid.
func (v *Validator) Struct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"request": err.Error()}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = fieldError.Translate(v.trans)
	}

	return fields
}

// validatePassword enforces the signup password policy: minimum 8 characters
// with at least one lowercase and one uppercase letter.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	return hasLower && hasUpper
}
