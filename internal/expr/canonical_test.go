package expr

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_KnownEncoding(t *testing.T) {
	row := Param("row")
	tree := Lambda(Equal(Field(row, "Id"), Const(int64(1))), row)

	data, err := MarshalCanonical(tree)
	require.NoError(t, err)

	want := `{"body":{"kind":"Equal","left":{"kind":"MemberAccess","name":"Id","x":{"kind":"Parameter","name":"row"}},` +
		`"right":{"kind":"Constant","type":"int64","value":"1"}},"kind":"Lambda","params":["row"]}`
	assert.Equal(t, want, string(data))
}

func TestMarshalCanonical_NullConstant(t *testing.T) {
	data, err := MarshalCanonical(Null(reflect.TypeOf("")))
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"Constant","type":"string"}`, string(data))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical(Const("<a&b>\n"))
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"Constant","type":"string","value":"\"<a&b>\\n\""}`, string(data))
}

func TestMarshalCanonical_NFC(t *testing.T) {
	// "é" as e + combining acute accent normalizes to the precomposed form.
	decomposed, err := MarshalCanonical(Field(Param("row"), "e\u0301"))
	require.NoError(t, err)
	composed, err := MarshalCanonical(Field(Param("row"), "\u00e9"))
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalCanonical_NilLambdaParam(t *testing.T) {
	_, err := MarshalCanonical(&LambdaExpr{Params: []*ParamExpr{nil}, Body: Const(true)})
	require.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	row := Param("row")
	build := func(v any) Node {
		return Lambda(NotEqual(Field(row, "Id"), Const(v)), row)
	}

	a, err := Fingerprint(build(int64(1)))
	require.NoError(t, err)
	b, err := Fingerprint(build(int64(1)))
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical trees share a fingerprint")
	assert.Len(t, a, 64)

	c, err := Fingerprint(build(int64(2)))
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different constant values")

	d, err := Fingerprint(build(int32(1)))
	require.NoError(t, err)
	assert.NotEqual(t, a, d, "different declared types")

	e, err := Fingerprint(Lambda(NotEqual(Field(row, "Id"), TypedConst(reflect.TypeOf(int64(0)), int32(1))), row))
	require.NoError(t, err)
	assert.NotEqual(t, a, e, "same declared type, different value type")
}

func TestMarshalCanonical_ValueTypeOnlyWhenItDiffers(t *testing.T) {
	data, err := MarshalCanonical(TypedConst(reflect.TypeOf(int64(0)), int32(1)))
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"Constant","type":"int64","value":"1","value_type":"int32"}`, string(data))

	data, err = MarshalCanonical(TypedConst(reflect.TypeOf(int64(0)), int64(1)))
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"Constant","type":"int64","value":"1"}`, string(data))
}

func TestMarshalCanonical_TypedNilNode(t *testing.T) {
	data, err := MarshalCanonical(Not((*BinaryExpr)(nil)))
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"Not","x":null}`, string(data))
}

func TestCompareUTF16(t *testing.T) {
	// U+FFFF sorts before U+10000 in UTF-8 byte order but after it in UTF-16.
	assert.Equal(t, 1, compareUTF16("\uFFFF", "\U00010000"))
	assert.Equal(t, 0, compareUTF16("a", "a"))
	assert.Equal(t, -1, compareUTF16("a", "b"))
}
