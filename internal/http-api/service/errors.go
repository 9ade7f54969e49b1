package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidPassword    = errors.New("invalid password format")
	ErrUserNotFound       = errors.New("user not found")
)

// UserError carries a client-facing message for one of the sentinel errors above.
// errors.Is(err, ErrUserNotFound) keeps working through Unwrap.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

func invalidEmail() error {
	return &UserError{Kind: ErrInvalidEmail, Message: "El formato del correo es inválido"}
}

func invalidPassword() error {
	return &UserError{Kind: ErrInvalidPassword, Message: "El formato de la contraseña es inválido"}
}

func emailAlreadyExists(email string) error {
	return &UserError{Kind: ErrEmailAlreadyExists, Message: fmt.Sprintf("El correo %s ya está registrado", email)}
}

func userNotFound(email string) error {
	return &UserError{Kind: ErrUserNotFound, Message: fmt.Sprintf("No se encontró ningún usuario con el email: %s", email)}
}
