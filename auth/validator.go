package auth

import (
	"fmt"
	"regexp"

	"chat-workspace/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// emailShape requires a local part, an @, and a dotted domain, with no
// whitespace anywhere. Stricter than the validator `email` tag, which
// accepts dotless domains like "hello@yahoo".
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegisterRequest struct {
	Email     string `validate:"required"`
	Password  string `validate:"required,min=6"`
	NameFirst string `validate:"required,min=1,max=50"`
	NameLast  string `validate:"required,min=1,max=50"`
}

// ValidateRegister applies the registration rules: dotted email shape,
// password of at least 6 characters, names between 1 and 50 characters.
func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return mapFieldError(err)
	}
	if !emailShape.MatchString(req.Email) {
		return errors.ErrInvalidEmail
	}
	return nil
}

func mapFieldError(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	switch fieldErrs[0].Field() {
	case "Email":
		return errors.ErrInvalidEmail
	case "Password":
		return errors.ErrInvalidPassword
	default:
		return errors.ErrInvalidName
	}
}
