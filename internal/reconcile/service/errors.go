package service

import (
	"errors"
	"fmt"
)

// ErrMisconfigured — сверка невозможна: профиль указывает на отсутствующую колонку.
var ErrMisconfigured = errors.New("reconcile: misconfigured field mapping")

// FieldError — колонка Field не найдена в наборе Dataset ("supplier" | "base").
type FieldError struct {
	Dataset string
	Field   string
	Role    string // article | price | name
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %q not found in %s dataset", e.Role, e.Field, e.Dataset)
}

// Is implements errors.Is support
func (e *FieldError) Is(target error) bool {
	return target == ErrMisconfigured
}

// IsMisconfigured reports whether err (or anything it wraps) is a mapping error.
func IsMisconfigured(err error) bool {
	return errors.Is(err, ErrMisconfigured)
}
