package services

import (
	"context"
	"regexp"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EmailValidator rejects addresses registration should not accept. The email
// is already normalized when Validate is called.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

// LocalValidator checks the address syntax only.
type LocalValidator struct{}

func NewLocalValidator() *LocalValidator {
	return &LocalValidator{}
}

func (v *LocalValidator) Validate(_ context.Context, email string) error {
	if email == "" {
		return apperr.BadRequest("email is required")
	}
	if !emailRegex.MatchString(email) {
		return apperr.BadRequest("email must be an email")
	}
	return nil
}
