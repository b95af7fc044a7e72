package ports

import "fmt"

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errString("not found")

type errString string

func (e errString) Error() string { return string(e) }

// ValidationError rejects caller input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}
