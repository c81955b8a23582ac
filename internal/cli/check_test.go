package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rowfilter/internal/testutil"
)

const validCatalog = `package people

predicates: {
	not_equal_id: "row => row.Id != 1"
	name_is_null: "row => row.Name == null"
}
`

const mixedCatalog = `package people

predicates: {
	not_equal_id: "row => row.Id != 1"
	trimmed:      #"row => row.Name.Trim("x")"#
}
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "predicates.cue"), []byte(content), 0644))
	return dir
}

func runCheckCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format, IDGenerator: testutil.NewFixedIDGenerator("")}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestCheckCommand_AllValidText(t *testing.T) {
	dir := writeCatalog(t, validCatalog)

	out, err := runCheckCommand(t, "text", dir)
	require.NoError(t, err)

	expected := "✓ name_is_null: Name IS NULL\n" +
		"✓ not_equal_id: Id <> @Id\n" +
		"\n" +
		"Check Summary: 2 passed, 0 failed, 2 total\n"
	assert.Equal(t, expected, out)
}

func TestCheckCommand_FailureJSON(t *testing.T) {
	dir := writeCatalog(t, mixedCatalog)

	out, err := runCheckCommand(t, "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))

	var resp struct {
		Status  string      `json:"status"`
		Data    CheckResult `json:"data"`
		Error   *CLIError   `json:"error"`
		TraceID string      `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "test-trace-default", resp.TraceID)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeCheckFailed, resp.Error.Code)

	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Entries, 2)
	assert.Equal(t, "not_equal_id", resp.Data.Entries[0].Name)
	assert.Equal(t, "Id <> @Id", resp.Data.Entries[0].QueryText)
	assert.NotEmpty(t, resp.Data.Entries[0].Fingerprint)
	assert.Equal(t, "trimmed", resp.Data.Entries[1].Name)
	assert.Contains(t, resp.Data.Entries[1].Error, "UNSUPPORTED_CALL")
}

func TestCheckCommand_FailureText(t *testing.T) {
	dir := writeCatalog(t, mixedCatalog)

	out, err := runCheckCommand(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ trimmed")
	assert.Contains(t, out, "Check Summary: 1 passed, 1 failed, 2 total")
}

func TestCheckCommand_SingleEntry(t *testing.T) {
	dir := writeCatalog(t, mixedCatalog)

	out, err := runCheckCommand(t, "text", dir, "--entry", "not_equal_id")
	require.NoError(t, err)
	assert.Contains(t, out, "Check Summary: 1 passed, 0 failed, 1 total")
	assert.NotContains(t, out, "trimmed")
}

func TestCheckCommand_UnknownEntry(t *testing.T) {
	dir := writeCatalog(t, validCatalog)

	out, err := runCheckCommand(t, "text", dir, "--entry", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `no predicate named "nope"`)
}

func TestCheckCommand_MissingDirectory(t *testing.T) {
	out, err := runCheckCommand(t, "json", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
}

func TestCheckCommand_NoPredicatesField(t *testing.T) {
	dir := writeCatalog(t, "package people\n\nother: 1\n")

	out, err := runCheckCommand(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "Error [E201]")
}
