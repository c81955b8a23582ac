package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/roach88/rowfilter/internal/source"
	"github.com/roach88/rowfilter/internal/translate"
)

func writeCUE(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoad_SortedEntries(t *testing.T) {
	tmpDir := t.TempDir()
	writeCUE(t, tmpDir, "people.cue", `
package test

predicates: {
	named:   #"row => row.Name.StartsWith("yy")"#
	active:  "row => row.Id != 1"
	missing: "row => row.Name == null"
}
`)

	cat, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 1, cat.FileCount)
	require.Len(t, cat.Entries, 3)
	assert.Equal(t, "active", cat.Entries[0].Name)
	assert.Equal(t, "missing", cat.Entries[1].Name)
	assert.Equal(t, "named", cat.Entries[2].Name)
	assert.Equal(t, `row => row.Name.StartsWith("yy")`, cat.Entries[2].Source)
	assert.True(t, cat.Entries[0].Pos.IsValid())
}

func TestLoad_MultipleFilesUnify(t *testing.T) {
	tmpDir := t.TempDir()
	writeCUE(t, tmpDir, "a.cue", "package test\n\npredicates: a: \"row => row.A == 1\"\n")
	writeCUE(t, tmpDir, "b.cue", "package test\n\npredicates: b: \"row => row.B == 2\"\n")

	cat, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 2, cat.FileCount)
	require.Len(t, cat.Entries, 2)

	e, ok := cat.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "row => row.B == 2", e.Source)

	_, ok = cat.Lookup("c")
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		code  string
	}{
		{"no files", map[string]string{"readme.txt": "hi"}, ErrCodeNoFiles},
		{"no predicates field", map[string]string{"x.cue": "package test\n\nother: 1\n"}, ErrCodeNoPredicates},
		{"empty predicates", map[string]string{"x.cue": "package test\n\npredicates: {}\n"}, ErrCodeNoPredicates},
		{"non-string predicate", map[string]string{"x.cue": "package test\n\npredicates: a: 42\n"}, ErrCodeNotString},
		{"conflict", map[string]string{
			"a.cue": "package test\n\npredicates: a: \"row => row.A == 1\"\n",
			"b.cue": "package test\n\npredicates: a: \"row => row.A == 2\"\n",
		}, ErrCodeBuildFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			for name, content := range tt.files {
				writeCUE(t, tmpDir, name, content)
			}

			cat, err := Load(tmpDir)
			require.Error(t, err)
			assert.Nil(t, cat)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.code, le.Code)
		})
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
	assert.Contains(t, le.Error(), "catalog directory not found")
}

func TestLoad_NotADirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.cue")
	writeCUE(t, tmpDir, "file.cue", "package test\n")

	_, err := Load(path)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestTranslateAll(t *testing.T) {
	cat := &Catalog{Entries: []Entry{
		{Name: "active", Source: "row => row.Id != 1"},
		{Name: "broken", Source: "row => row.Id =="},
		{Name: "pair", Source: "(a, b) => a.Id == b.Id"},
		{Name: "same", Source: "row  =>  row.Id != 1"},
		{Name: "trim", Source: `row => row.Name.Trim("x")`},
	}}

	results, err := cat.TranslateAll()
	require.Error(t, err)
	require.Len(t, results, 5)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "Id <> @Id", results[0].Statement.QueryText())
	assert.NotEmpty(t, results[0].Fingerprint)

	var se *source.SyntaxError
	assert.ErrorAs(t, results[1].Err, &se)
	assert.Contains(t, results[1].Err.Error(), `predicate "broken"`)
	assert.Nil(t, results[1].Statement)

	assert.True(t, translate.IsKind(results[2].Err, translate.ErrArity))
	assert.True(t, translate.IsKind(results[4].Err, translate.ErrUnsupportedCall))

	// Whitespace does not change the tree, so the statement is shared.
	assert.Equal(t, results[0].Fingerprint, results[3].Fingerprint)
	assert.Same(t, results[0].Statement, results[3].Statement)
}

func TestTranslateAll_AllValid(t *testing.T) {
	cat := &Catalog{Entries: []Entry{
		{Name: "a", Source: "row => row.A == 1"},
		{Name: "b", Source: "row => row.B == null"},
	}}

	results, err := cat.TranslateAll()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "B IS NULL", results[1].Statement.QueryText())
}

func TestLoadError_Format(t *testing.T) {
	assert.Equal(t, "E003: no CUE files found in x", (&LoadError{Code: ErrCodeNoFiles, Message: "no CUE files found in x"}).Error())
}
