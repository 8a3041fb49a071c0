package errs

import "errors"

// Sentinels compartidos entre módulos de dominio.
// Antes cada módulo tenía los suyos; al repetirse en todos, se extrajeron aquí.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream provider error")
	ErrNoProvider   = errors.New("no provider configured")
)
