package httpapi

import (
	"errors"
	"net/mail"
	"time"
	"unicode"
)

const (
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 20
)

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"accessToken"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (r signUpRequest) validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := validatePassword(r.Password); err != nil {
		return err
	}
	if r.PasswordConfirm != r.Password {
		return errors.New("passwordConfirm does not match password")
	}
	return nil
}

func (r signInRequest) validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if len(email) > maxEmailLength {
		return errors.New("email too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email is invalid")
	}
	return nil
}

// validatePassword enforces the sign-up policy: 8-20 characters with at least one
// upper-case letter, one lower-case letter, and one digit or symbol.
func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) < minPasswordLength {
		return errors.New("password too short")
	}
	if len(password) > maxPasswordLength {
		return errors.New("password too long")
	}

	var hasUpper, hasLower, hasDigitOrSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasDigitOrSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigitOrSymbol {
		return errors.New("password too weak")
	}
	return nil
}
