package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/krisalay/tablesort/column"
	tbl "github.com/krisalay/tablesort/table"
	"github.com/krisalay/tablesort/types"
)

func newSortCmd() *cobra.Command {
	var (
		rowsFile    string
		columnsFile string
		by          string
		order       string
		cacheKey    string
	)

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Print rows sorted by a column",
		Long: `Print rows sorted by a column.

Without --by, the sort remembered under the cache key is reused, and
--order alone changes its direction. Passing --by for the column that is
already sorted flips its direction, the same way clicking a table header
twice does.`,
		RunE: runWithApp(func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()

			cols, err := readColumns(columnsFile)
			if err != nil {
				return err
			}
			rows, err := readRows(rowsFile)
			if err != nil {
				return err
			}
			key := cacheKey
			if key == "" {
				key = a.cfg.Table.CacheKey
			}

			t, err := tbl.New(ctx, cols, rows,
				tbl.WithStorage(a.storage),
				tbl.WithCacheKey(key),
				tbl.WithCacheLifetime(a.cfg.Storage.TTL),
				tbl.WithLocale(a.locale),
			)
			if err != nil {
				return err
			}

			switch {
			case order != "":
				o, ok := types.ParseSortOrder(order)
				if !ok {
					return fmt.Errorf("--order must be asc or desc, got %q", order)
				}
				field := by
				if field == "" {
					field = t.Sort().FieldName
				}
				if field == "" {
					return errors.New("--order needs --by when no sort is remembered")
				}
				err = t.SetSort(ctx, field, o)
			case by != "":
				err = t.SortBy(ctx, by)
			}
			if err != nil {
				return err
			}

			a.log.Debug("sorted rows", "field", t.Sort().FieldName, "order", t.Sort().Order, "rows", len(rows))
			return render(cmd.OutOrStdout(), t)
		}),
	}

	cmd.Flags().StringVar(&rowsFile, "rows", "", "JSON array of row objects (- for stdin)")
	cmd.Flags().StringVar(&columnsFile, "columns", "", "JSON array of column declarations")
	cmd.Flags().StringVar(&by, "by", "", "field to sort by")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc (default: toggle)")
	cmd.Flags().StringVar(&cacheKey, "cache-key", "", "key the sort state is remembered under")
	_ = cmd.MarkFlagRequired("rows")
	_ = cmd.MarkFlagRequired("columns")
	return cmd
}

func readColumns(path string) ([]*column.Column, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	var cfgs []column.Config
	if err := json.Unmarshal(raw, &cfgs); err != nil {
		return nil, fmt.Errorf("parse columns %s: %w", path, err)
	}
	return column.NewSet(cfgs...)
}

func readRows(path string) ([]json.RawMessage, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse rows %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("no rows to sort")
	}
	return rows, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func render(w io.Writer, t *tbl.Table) error {
	cols := t.VisibleColumns()
	headers := make([]string, len(cols))
	state := t.Sort()
	for i, col := range cols {
		h := col.Label()
		if h == "" {
			h = col.Show()
		}
		if col.Show() == state.FieldName {
			if state.Order == types.Desc {
				h += " ▼"
			} else {
				h += " ▲"
			}
		}
		headers[i] = h
	}

	out := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range t.Rows() {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = r.Text(col.Show())
		}
		out.Row(cells...)
	}
	_, err := fmt.Fprintln(w, out.Render())
	return err
}
