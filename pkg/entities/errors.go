package entities

import "fmt"

// InvalidNameError is returned when a custom entity name contains characters
// other than ASCII alphanumerics.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid entity name %q: names must be ASCII alphanumeric", e.Name)
}

// UnknownNameError is returned when a legacy name has no replacement.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown entity name %q", e.Name)
}
