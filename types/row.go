package types

import (
	"strings"
	"time"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Toggle flips asc to desc and anything else to asc.
func (o SortOrder) Toggle() SortOrder {
	if o == Asc {
		return Desc
	}
	return Asc
}

// ParseSortOrder accepts "asc" and "desc" case-insensitively.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	}
	return "", false
}

// DataType names how a column's values compare.
// Any value starting with "date" is date-like; "date:<layout>" carries a Go time layout.
type DataType string

const (
	Text    DataType = "text"
	Numeric DataType = "numeric"
	Date    DataType = "date"
)

func (d DataType) IsNumeric() bool { return d == Numeric }

func (d DataType) IsDate() bool { return strings.HasPrefix(string(d), string(Date)) }

// Ordered reports whether values compare with plain < instead of collation.
func (d DataType) Ordered() bool { return d.IsNumeric() || d.IsDate() }

// DateLayout returns the layout after "date:", or RFC 3339.
func (d DataType) DateLayout() string {
	if layout, ok := strings.CutPrefix(string(d), string(Date)+":"); ok && layout != "" {
		return layout
	}
	return time.RFC3339
}

// Row is anything that can hand out a comparison-ready value for a field.
// Values are expected to be time.Time, a Go number, or a string.
type Row interface {
	SortableValue(field string) any
}

// Comparator orders two rows: negative, zero or positive.
type Comparator func(a, b Row) int

// Hook is an opaque rendering capability (formatter, class selector, template).
// Columns store and forward it but never call or inspect it.
type Hook = any
