package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const columnsJSON = `[
	{"show": "firstName", "label": "First name", "dataType": "text", "sortable": true},
	{"show": "lastName", "label": "Last name", "dataType": "text"},
	{"show": "secret", "hidden": true}
]`

const rowsJSON = `[
	{"firstName": "Bob", "lastName": "Stone", "secret": "s1"},
	{"firstName": "Alice", "lastName": "Moss", "secret": "s2"},
	{"firstName": "Carol", "lastName": "Reed", "secret": "s3"}
]`

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cols := filepath.Join(dir, "columns.json")
	rows := filepath.Join(dir, "rows.json")
	require.NoError(t, os.WriteFile(cols, []byte(columnsJSON), 0o600))
	require.NoError(t, os.WriteFile(rows, []byte(rowsJSON), 0o600))
	return cols, rows
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func assertOrder(t *testing.T, out string, names ...string) {
	t.Helper()
	last := -1
	for _, n := range names {
		i := strings.Index(out, n)
		require.NotEqual(t, -1, i, "%s missing from output:\n%s", n, out)
		assert.Greater(t, i, last, "%s out of order in:\n%s", n, out)
		last = i
	}
}

func TestSortCommand(t *testing.T) {
	t.Run("Should print rows sorted ascending and hide hidden columns", func(t *testing.T) {
		cols, rows := writeFixtures(t)
		out, err := run(t, "--driver", "memory", "sort", "--columns", cols, "--rows", rows, "--by", "firstName")
		require.NoError(t, err)
		assertOrder(t, out, "Alice", "Bob", "Carol")
		assert.Contains(t, out, "First name ▲")
		assert.NotContains(t, out, "s1")
	})

	t.Run("Should honor an explicit order", func(t *testing.T) {
		cols, rows := writeFixtures(t)
		out, err := run(t, "--driver", "memory", "sort", "--columns", cols, "--rows", rows,
			"--by", "firstName", "--order", "desc")
		require.NoError(t, err)
		assertOrder(t, out, "Carol", "Bob", "Alice")
	})

	t.Run("Should toggle using the sort remembered in sqlite", func(t *testing.T) {
		cols, rows := writeFixtures(t)
		t.Setenv("TABLESORT_STORAGE_SQLITE_PATH", filepath.Join(t.TempDir(), "prefs.db"))

		_, err := run(t, "sort", "--columns", cols, "--rows", rows, "--by", "firstName")
		require.NoError(t, err)

		out, err := run(t, "sort", "--columns", cols, "--rows", rows, "--by", "firstName")
		require.NoError(t, err)
		assertOrder(t, out, "Carol", "Bob", "Alice")

		out, err = run(t, "sort", "--columns", cols, "--rows", rows)
		require.NoError(t, err)
		assertOrder(t, out, "Carol", "Bob", "Alice")
	})

	t.Run("Should apply --order alone to the remembered sort", func(t *testing.T) {
		cols, rows := writeFixtures(t)
		t.Setenv("TABLESORT_STORAGE_SQLITE_PATH", filepath.Join(t.TempDir(), "prefs.db"))

		_, err := run(t, "sort", "--columns", cols, "--rows", rows, "--by", "firstName")
		require.NoError(t, err)

		out, err := run(t, "sort", "--columns", cols, "--rows", rows, "--order", "desc")
		require.NoError(t, err)
		assertOrder(t, out, "Carol", "Bob", "Alice")
		assert.Contains(t, out, "First name ▼")
	})

	t.Run("Should reject --order when there is nothing to sort", func(t *testing.T) {
		cols, rows := writeFixtures(t)
		_, err := run(t, "--driver", "memory", "sort", "--columns", cols, "--rows", rows, "--order", "asc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--by")
	})

	t.Run("Should reject an invalid order", func(t *testing.T) {
		cols, rows := writeFixtures(t)
		_, err := run(t, "--driver", "memory", "sort", "--columns", cols, "--rows", rows,
			"--by", "firstName", "--order", "sideways")
		assert.Error(t, err)
	})
}

func TestPrefsCommand(t *testing.T) {
	t.Run("Should set, get and remove a preference", func(t *testing.T) {
		t.Setenv("TABLESORT_STORAGE_SQLITE_PATH", filepath.Join(t.TempDir(), "prefs.db"))

		_, err := run(t, "prefs", "set", "theme", `{"dark":true}`, "--ttl", "1h")
		require.NoError(t, err)

		out, err := run(t, "prefs", "get", "theme")
		require.NoError(t, err)
		assert.JSONEq(t, `{"dark":true}`, strings.TrimSpace(out))

		_, err = run(t, "prefs", "rm", "theme")
		require.NoError(t, err)

		_, err = run(t, "prefs", "get", "theme")
		assert.Error(t, err)
	})

	t.Run("Should reject a value that is not JSON", func(t *testing.T) {
		_, err := run(t, "--driver", "memory", "prefs", "set", "k", "{nope")
		assert.Error(t, err)
	})
}
