// Package apperrors defines the error taxonomy shared by handlers and
// services. Every store-facing operation returns one of these so the HTTP
// layer can map outcomes without inspecting driver errors.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrPersistence  = errors.New("persistence failure")
	ErrConflict     = errors.New("conflict")
	ErrAuth         = errors.New("unauthorized")
)

func InvalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

func Persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

func Auth(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuth, msg)
}
