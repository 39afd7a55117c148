package column

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/krisalay/tablesort/types"
)

type predicateOptions struct {
	locale language.Tag
}

// PredicateOption tunes SortPredicate.
type PredicateOption func(*predicateOptions)

// WithLocale selects the collation used for text columns. The default is the
// root collation (language.Und).
func WithLocale(tag language.Tag) PredicateOption {
	return func(o *predicateOptions) { o.locale = tag }
}

// SortPredicate returns the comparator for sorting rows by this column.
//
// The data type comes from the column in all whose Show equals SortFieldName,
// so a column can sort by a field declared (and typed) by another column.
// Descending order swaps the operands rather than negating the result.
func (c *Column) SortPredicate(order types.SortOrder, all []*Column, opts ...PredicateOption) (types.Comparator, error) {
	field := c.SortFieldName()
	sortCol, ok := Find(all, field)
	if !ok {
		return nil, &LookupError{SortField: field, Column: c.show}
	}

	o := predicateOptions{locale: language.Und}
	for _, opt := range opts {
		opt(&o)
	}

	var compare func(a, b any) int
	if sortCol.dataType.Ordered() {
		compare = compareOrdered
	} else {
		// A Collator keeps scratch buffers; one per comparator.
		coll := collate.New(o.locale)
		compare = func(a, b any) int {
			return coll.CompareString(toString(a), toString(b))
		}
	}

	if order == types.Desc {
		return func(r1, r2 types.Row) int {
			return compare(r2.SortableValue(field), r1.SortableValue(field))
		}, nil
	}
	return func(r1, r2 types.Row) int {
		return compare(r1.SortableValue(field), r2.SortableValue(field))
	}, nil
}

// Sort orders rows in place. Rows that compare equal keep their relative order.
func Sort[R types.Row](rows []R, compare types.Comparator) {
	slices.SortStableFunc(rows, func(a, b R) int { return compare(a, b) })
}

// compareOrdered compares numbers with numbers and times with times.
// Values of different kinds fall back to their string form.
func compareOrdered(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return cmp.Compare(fa, fb)
	}
	return cmp.Compare(toString(a), toString(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
