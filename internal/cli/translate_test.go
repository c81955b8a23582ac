package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rowfilter/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func runTranslateCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format, IDGenerator: testutil.NewFixedIDGenerator("")}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestTranslateCommand_Golden(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
	}{
		{"translate_not_equal_text", "text", []string{"row => row.Id != 1"}},
		{"translate_not_equal_json", "json", []string{"row => row.Id != 1"}},
		{"translate_mixed_logic_text", "text", []string{`row => row.Id != 1 || !row.Name.Contains("xyz") && row.Name.StartsWith("yy")`}},
		{"translate_lint_text", "text", []string{`row => row.Code.StartsWith("A_")`, "--lint"}},
		{"translate_unsupported_call_json", "json", []string{`row => row.Name.Trim("x")`}},
	}

	g := newGoldie(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := runTranslateCommand(t, tt.format, tt.args...)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestTranslateCommand_NullHasNoParameters(t *testing.T) {
	out, err := runTranslateCommand(t, "json", "row => row.Name == null")
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   TranslateOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Name IS NULL", resp.Data.QueryText)
	assert.Empty(t, resp.Data.Parameters)
}

func TestTranslateCommand_SyntaxError(t *testing.T) {
	out, err := runTranslateCommand(t, "json", "row => row.Id ==")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SYNTAX_ERROR", resp.Error.Code)
}

func TestTranslateCommand_ArityErrorText(t *testing.T) {
	out, err := runTranslateCommand(t, "text", "(a, b) => a.Id == b.Id")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [ARITY_ERROR]")
}

func TestTranslateCommand_UnboundReference(t *testing.T) {
	out, err := runTranslateCommand(t, "text", "row => other.Id == 1")
	require.Error(t, err)
	assert.Contains(t, out, "Error [UNBOUND_REFERENCE]")
}

func TestTranslateCommand_MissingArgs(t *testing.T) {
	_, err := runTranslateCommand(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTranslateCommand_LintCleanPredicate(t *testing.T) {
	out, err := runTranslateCommand(t, "text", "row => row.Id > 3", "--lint")
	require.NoError(t, err)
	assert.NotContains(t, out, "warnings:")
}
