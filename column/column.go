// Package column turns declared column metadata into sort comparators.
package column

import (
	"fmt"

	"github.com/krisalay/tablesort/types"
)

// Config is a column as the caller declares it. Unknown keys in a JSON
// declaration are ignored.
type Config struct {
	Show     string `json:"show"     koanf:"show"`
	Label    string `json:"label"    koanf:"label"`
	DataType string `json:"dataType" koanf:"data_type"`
	Sortable bool   `json:"sortable" koanf:"sortable"`
	SortBy   string `json:"sortBy"   koanf:"sort_by"`
	Hidden   bool   `json:"hidden"   koanf:"hidden"`

	Formatter   types.Hook `json:"-" koanf:"-"`
	CellClass   types.Hook `json:"-" koanf:"-"`
	HeaderClass types.Hook `json:"-" koanf:"-"`
	Template    types.Hook `json:"-" koanf:"-"`
}

// Column is one displayable, possibly sortable field. It never changes after New.
type Column struct {
	show     string
	label    string
	dataType types.DataType
	sortable bool
	sortBy   string
	hidden   bool

	formatter   types.Hook
	cellClass   types.Hook
	headerClass types.Hook
	template    types.Hook
}

// New copies the recognized fields of cfg. A column without Show cannot be
// looked up or rendered, so it is rejected.
func New(cfg Config) (*Column, error) {
	if cfg.Show == "" {
		return nil, &ConfigurationError{Field: "show", Reason: "is required"}
	}
	dt := types.DataType(cfg.DataType)
	if dt == "" {
		dt = types.Text
	}
	return &Column{
		show:        cfg.Show,
		label:       cfg.Label,
		dataType:    dt,
		sortable:    cfg.Sortable,
		sortBy:      cfg.SortBy,
		hidden:      cfg.Hidden,
		formatter:   cfg.Formatter,
		cellClass:   cfg.CellClass,
		headerClass: cfg.HeaderClass,
		template:    cfg.Template,
	}, nil
}

// NewSet builds the columns of one table. Show values must be unique.
func NewSet(cfgs ...Config) ([]*Column, error) {
	seen := make(map[string]struct{}, len(cfgs))
	cols := make([]*Column, 0, len(cfgs))
	for i, cfg := range cfgs {
		col, err := New(cfg)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if _, dup := seen[col.show]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.show)
		}
		seen[col.show] = struct{}{}
		cols = append(cols, col)
	}
	return cols, nil
}

func (c *Column) Show() string             { return c.show }
func (c *Column) Label() string            { return c.label }
func (c *Column) DataType() types.DataType { return c.dataType }
func (c *Column) SortBy() string           { return c.sortBy }
func (c *Column) Hidden() bool             { return c.hidden }
func (c *Column) Formatter() types.Hook    { return c.formatter }
func (c *Column) CellClass() types.Hook    { return c.cellClass }
func (c *Column) HeaderClass() types.Hook  { return c.headerClass }
func (c *Column) Template() types.Hook     { return c.template }

func (c *Column) IsSortable() bool { return c.sortable }

// SortFieldName is the field actually compared: SortBy when set, else Show.
func (c *Column) SortFieldName() string {
	if c.sortBy != "" {
		return c.sortBy
	}
	return c.show
}

// Find returns the column in all whose Show equals name.
func Find(all []*Column, name string) (*Column, bool) {
	for _, col := range all {
		if col.show == name {
			return col, true
		}
	}
	return nil, false
}
