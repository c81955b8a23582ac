package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(r Report) []WarningCode {
	out := make([]WarningCode, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, w.Code)
	}
	return out
}

func TestInspect_Clean(t *testing.T) {
	n := Or(
		Compare(OpNotEqual, Member("Id"), bound("@Id", int64(1))),
		And(
			Not(Compare(OpContains, Member("Name"), bound("@Name", "xyz"))),
			Compare(OpEqual, Member("Name"), nullString()),
		),
	)

	report := Inspect(n)

	assert.True(t, report.Clean)
	assert.Empty(t, report.Warnings)
}

func TestInspect_UnescapedWildcard(t *testing.T) {
	report := Inspect(Compare(OpStartsWith, Member("Code"), bound("@Code", "A_1%")))

	assert.False(t, report.Clean)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, WarnUnescapedWildcard, report.Warnings[0].Code)
	assert.Contains(t, report.Warnings[0].Message, `"A_1%"`)
}

func TestInspect_WildcardOnlyChecksPatternSide(t *testing.T) {
	// The receiver of a pattern call is the matched value, not the pattern.
	report := Inspect(Compare(OpContains, Value("100%"), Member("Name")))
	assert.True(t, report.Clean)

	report = Inspect(Compare(OpEqual, Member("Name"), bound("@Name", "50%")))
	assert.True(t, report.Clean, "equality does not use LIKE")
}

func TestInspect_NullOrdering(t *testing.T) {
	report := Inspect(Compare(OpGreaterThan, Member("Age"), nullString()))

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, WarnNullOrdering, report.Warnings[0].Code)
}

func TestInspect_DoubleNull(t *testing.T) {
	report := Inspect(Compare(OpEqual, nullString(), nullString()))

	assert.Equal(t, []WarningCode{WarnDoubleNull}, codes(report))
}

func TestInspect_LiteralComparison(t *testing.T) {
	report := Inspect(And(
		Compare(OpEqual, Value(1), Value(1)),
		Compare(OpLessThan, Value(1), nullString()),
	))

	assert.Equal(t, []WarningCode{WarnLiteralComparison, WarnLiteralComparison, WarnNullOrdering}, codes(report))
}

func TestInspect_NilNodes(t *testing.T) {
	assert.Equal(t, []WarningCode{WarnNilNode}, codes(Inspect(nil)))
	assert.Equal(t, []WarningCode{WarnNilNode}, codes(Inspect(Not(nil))))
	assert.Equal(t, []WarningCode{WarnNilNode}, codes(Inspect(&Comparison{Op: OpEqual, Left: Member("A")})))
}

func TestWarningString(t *testing.T) {
	w := Warning{Code: WarnDoubleNull, Message: "EQ compares NULL with NULL"}
	assert.Equal(t, "DOUBLE_NULL: EQ compares NULL with NULL", w.String())
}
