package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindName_Sequence(t *testing.T) {
	ctx := NewBuildContext("row")

	assert.Equal(t, "row", ctx.ParameterName)
	assert.Equal(t, "@Id", ctx.BindName("Id"))
	assert.Equal(t, "@Name", ctx.BindName("Name"))
	assert.Equal(t, "@Id_2", ctx.BindName("Id"))
	assert.Equal(t, "@Id_3", ctx.BindName("Id"))
	assert.Equal(t, "@Name_2", ctx.BindName("Name"))
}

func TestBindName_SkipsCollidingSuffix(t *testing.T) {
	ctx := NewBuildContext("row")

	assert.Equal(t, "@Name_2", ctx.BindName("Name_2"))
	assert.Equal(t, "@Name", ctx.BindName("Name"))
	assert.Equal(t, "@Name_3", ctx.BindName("Name"))
	assert.Equal(t, "@Name_2_2", ctx.BindName("Name_2"))
}

func TestBindName_ContextsAreIndependent(t *testing.T) {
	a := NewBuildContext("row")
	b := NewBuildContext("row")

	assert.Equal(t, "@Id", a.BindName("Id"))
	assert.Equal(t, "@Id", b.BindName("Id"))
	assert.Equal(t, "@Id_2", a.BindName("Id"))
}
