// Package table is the host side of the sort engine: it owns the columns and
// rows of one table, tracks which column is sorted in which direction, and
// remembers that choice in expiring storage between sessions.
package table

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/krisalay/tablesort/api"
	"github.com/krisalay/tablesort/column"
	"github.com/krisalay/tablesort/logger"
	"github.com/krisalay/tablesort/types"
)

const DefaultCacheLifetime = 5 * time.Minute

// SortState is what gets persisted under the table's cache key.
type SortState struct {
	FieldName string          `json:"fieldName"`
	Order     types.SortOrder `json:"order"`
}

type Option func(*Table)

// WithStorage enables persistence of the sort state. It needs WithCacheKey too.
func WithStorage(s api.Storage) Option {
	return func(t *Table) { t.storage = s }
}

func WithCacheKey(key string) Option {
	return func(t *Table) { t.cacheKey = key }
}

func WithCacheLifetime(d time.Duration) Option {
	return func(t *Table) { t.cacheLifetime = d }
}

func WithLocale(tag language.Tag) Option {
	return func(t *Table) { t.locale = tag }
}

// WithInitialSort sorts by field when no persisted state exists.
func WithInitialSort(field string, order types.SortOrder) Option {
	return func(t *Table) { t.sort = SortState{FieldName: field, Order: order} }
}

type Table struct {
	columns []*column.Column
	records []*Record
	sorted  []*Record

	sort SortState

	storage       api.Storage
	cacheKey      string
	cacheLifetime time.Duration
	locale        language.Tag
}

/*
New builds a table over rows (JSON objects). A persisted sort state, when
storage is configured and still live, wins over WithInitialSort. A persisted
state naming a column that no longer exists, or one that cannot be sorted on,
is ignored.
*/
func New(ctx context.Context, columns []*column.Column, rows []json.RawMessage, opts ...Option) (*Table, error) {
	t := &Table{
		columns:       columns,
		cacheLifetime: DefaultCacheLifetime,
		locale:        language.Und,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.records = make([]*Record, len(rows))
	for i, raw := range rows {
		t.records[i] = NewRecord(raw, columns)
	}

	initial := t.sort
	if !t.restore(ctx) {
		if err := t.resort(); err != nil {
			return nil, err
		}
		return t, nil
	}
	if err := t.resort(); err != nil {
		logger.FromContext(ctx).Debug("ignoring unusable sort state", "key", t.cacheKey, "field", t.sort.FieldName, "error", err)
		t.sort = initial
		if err := t.resort(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) Columns() []*column.Column { return t.columns }

// VisibleColumns returns the columns that are not hidden, in declaration order.
func (t *Table) VisibleColumns() []*column.Column {
	out := make([]*column.Column, 0, len(t.columns))
	for _, col := range t.columns {
		if !col.Hidden() {
			out = append(out, col)
		}
	}
	return out
}

// Rows returns the records in the current sort order.
func (t *Table) Rows() []*Record {
	return slices.Clone(t.sorted)
}

func (t *Table) Sort() SortState { return t.sort }

/*
SortBy handles a click on a column header.
Clicking the sorted column flips its direction; clicking another sortable
column sorts it ascending. Clicks on non-sortable or unknown columns are ignored.
*/
func (t *Table) SortBy(ctx context.Context, field string) error {
	col, ok := column.Find(t.columns, field)
	if !ok || !col.IsSortable() {
		return nil
	}
	order := types.Asc
	if t.sort.FieldName == field {
		order = t.sort.Order.Toggle()
	}
	return t.SetSort(ctx, field, order)
}

// SetSort sorts by field in the given order and persists the choice.
func (t *Table) SetSort(ctx context.Context, field string, order types.SortOrder) error {
	prev := t.sort
	t.sort = SortState{FieldName: field, Order: order}
	if err := t.resort(); err != nil {
		t.sort = prev
		return err
	}
	return t.save(ctx)
}

func (t *Table) resort() error {
	t.sorted = slices.Clone(t.records)
	if t.sort.FieldName == "" {
		return nil
	}
	col, ok := column.Find(t.columns, t.sort.FieldName)
	if !ok {
		return fmt.Errorf("table: sort by %q: %w", t.sort.FieldName, column.ErrLookup)
	}
	cmp, err := col.SortPredicate(t.sort.Order, t.columns, column.WithLocale(t.locale))
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	column.Sort(t.sorted, cmp)
	return nil
}

func (t *Table) persistent() bool {
	return t.storage != nil && t.cacheKey != ""
}

func (t *Table) save(ctx context.Context) error {
	if !t.persistent() {
		return nil
	}
	if err := t.storage.Set(ctx, t.cacheKey, t.sort, t.cacheLifetime); err != nil {
		return fmt.Errorf("table: save sort state: %w", err)
	}
	return nil
}

// restore loads the persisted sort state and reports whether it was applied.
func (t *Table) restore(ctx context.Context) bool {
	if !t.persistent() {
		return false
	}
	var state SortState
	if !t.storage.GetInto(ctx, t.cacheKey, &state) {
		return false
	}
	col, ok := column.Find(t.columns, state.FieldName)
	if !ok || !col.IsSortable() {
		logger.FromContext(ctx).Debug("ignoring stale sort state", "key", t.cacheKey, "field", state.FieldName)
		return false
	}
	order, ok := types.ParseSortOrder(string(state.Order))
	if !ok {
		order = types.Asc
	}
	t.sort = SortState{FieldName: state.FieldName, Order: order}
	return true
}
