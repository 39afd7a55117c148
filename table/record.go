package table

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/krisalay/tablesort/column"
	"github.com/krisalay/tablesort/types"
)

// Record is one row of table data, kept as raw JSON. Fields are addressed
// by dotted paths ("address.city"), so a column can show a nested value.
type Record struct {
	raw     string
	columns []*column.Column
}

// NewRecord binds raw JSON to the column set that describes it.
func NewRecord(raw json.RawMessage, columns []*column.Column) *Record {
	return &Record{raw: string(raw), columns: columns}
}

// Value returns the raw field value, or nil when the path does not exist.
func (r *Record) Value(field string) any {
	res := gjson.Get(r.raw, field)
	if !res.Exists() {
		return nil
	}
	return res.Value()
}

// Text is the field as display text; missing fields render empty.
func (r *Record) Text(field string) string {
	res := gjson.Get(r.raw, field)
	if !res.Exists() || res.Type == gjson.Null {
		return ""
	}
	return res.String()
}

/*
SortableValue coerces the field to what the column's data type compares:
  - numeric → float64 (unparseable values sort as 0)
  - date    → time.Time parsed with the column's layout (zero when unparseable)
  - other   → string

The data type is taken from the column that shows field; a field no column
shows is compared as text.
*/
func (r *Record) SortableValue(field string) any {
	res := gjson.Get(r.raw, field)
	dt := types.Text
	if col, ok := column.Find(r.columns, field); ok {
		dt = col.DataType()
	}

	switch {
	case dt.IsNumeric():
		if res.Type == gjson.Number {
			return res.Float()
		}
		f, _ := strconv.ParseFloat(strings.TrimSpace(res.String()), 64)
		return f
	case dt.IsDate():
		t, err := time.Parse(dt.DateLayout(), res.String())
		if err != nil {
			return time.Time{}
		}
		return t
	}
	if !res.Exists() || res.Type == gjson.Null {
		return ""
	}
	return res.String()
}
