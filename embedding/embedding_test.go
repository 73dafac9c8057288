package embedding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "3 2\nboston 0.5 -1\njohn 1 2\n\ncaf\u00e9 3 4\n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Dims())
	require.Equal(t, 3, table.Len())

	require.Equal(t, []float64{0.5, -1}, table.Lookup("boston"))
	require.Equal(t, []float64{0.5, -1}, table.Lookup("Boston"), "lowercase fallback")
	require.Equal(t, []float64{1, 2}, table.Lookup("john"))
	require.Equal(t, []float64{0, 0}, table.Lookup("paris"))
	require.True(t, table.Has("JOHN"))
	require.False(t, table.Has("paris"))

	// decomposed e + combining acute resolves to the NFC entry
	require.Equal(t, []float64{3, 4}, table.Lookup("cafe\u0301"))
}

func TestLoadCRLF(t *testing.T) {
	path := writeFile(t, "1 3\r\nx 1 2 3\r\n")
	table, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, table.Lookup("x"))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"bad header", "two 2\n"},
		{"short header", "2\n"},
		{"wrong dims", "1 3\nx 1 2\n"},
		{"not a number", "1 2\nx 1 y\n"},
		{"count mismatch", "3 1\nx 1\ny 2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.content))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrFileLoad), "got %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, ErrFileLoad)
}

func TestFromMap(t *testing.T) {
	table, err := FromMap(2, map[string][]float64{
		"a": {1, 0},
		"b": {0, 1},
	})
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	require.Equal(t, []float64{0, 1}, table.Lookup("B"))

	_, err = FromMap(2, map[string][]float64{"a": {1}})
	require.Error(t, err)
}

func TestLookupIsReadOnlyView(t *testing.T) {
	table, err := FromMap(2, map[string][]float64{"a": {1, 2}, "b": {3, 4}})
	require.NoError(t, err)
	v := table.Lookup("a")
	require.Equal(t, 2, cap(v), "capacity is clipped so appends cannot overwrite the next row")
}
