package column

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("invalid column configuration")

	// ErrLookup is matched by every *LookupError.
	ErrLookup = errors.New("sort column not found")

	ErrDuplicateColumn = errors.New("duplicate column")
)

// ConfigurationError reports a column declaration the model cannot use.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("column: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// LookupError reports a sort field that names no column in the set.
// It usually means sortBy points at a field nobody declared.
type LookupError struct {
	SortField string
	Column    string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("column %q: no column shows sort field %q", e.Column, e.SortField)
}

func (e *LookupError) Is(target error) bool { return target == ErrLookup }
