package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/value"
)

func call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	e, ok := Table()[name]
	require.True(t, ok, "no builtin named %q", name)
	v, err := e.Fn(args, nil)
	require.NoError(t, err)
	return v
}

func TestMathFunctions(t *testing.T) {
	assert.Equal(t, "3", call(t, "ceil", value.NewNumber(2.1)).String())
	assert.Equal(t, "4", call(t, "round", value.NewNumber(3.6)).String())
	assert.Equal(t, "5", call(t, "abs", value.NewNumber(-5)).String())
	assert.Equal(t, "10", call(t, "max", value.NewNumber(3), value.NewNumber(10), value.NewNumber(7)).String())
	assert.Equal(t, "50%", call(t, "percentage", value.NewNumber(0.5)).String())
}

func TestColorFunctions(t *testing.T) {
	red := value.ColorFromRGB(255, 0, 0, 1)
	lightened := call(t, "lighten", red, value.NewNumber(20))
	c, ok := lightened.(*value.Color)
	require.True(t, ok)
	_, _, l := c.HSL()
	assert.Greater(t, l, 0.5)

	hue := call(t, "hue", red)
	assert.Equal(t, "0deg", hue.String())
}

func TestStringFunctions(t *testing.T) {
	assert.Equal(t, "HELLO", call(t, "to-upper-case", &value.String{Text: "Hello"}).String())
	assert.Equal(t, "3", call(t, "str-length", &value.String{Text: "abc"}).String())
	idx := call(t, "str-index", &value.String{Text: "abcd"}, &value.String{Text: "cd"})
	assert.Equal(t, "3", idx.String())
}

func TestListFunctions(t *testing.T) {
	l := &value.List{Elems: []value.Value{value.NewNumber(1), value.NewNumber(2), value.NewNumber(3)}, Sep: value.SepComma}
	assert.Equal(t, "3", call(t, "length", l).String())
	assert.Equal(t, "2", call(t, "nth", l, value.NewNumber(2)).String())
	assert.Equal(t, "true", call(t, "is-bracketed", &value.List{Bracketed: true}).String())
}

func TestMapFunctions(t *testing.T) {
	m := value.NewMap()
	m.Set(&value.String{Text: "a"}, value.NewNumber(1))
	got := call(t, "get", m, &value.String{Text: "a"})
	assert.Equal(t, "1", got.String())
	assert.Equal(t, "false", call(t, "has-key", m, &value.String{Text: "b"}).String())
}

func TestMetaFunctions(t *testing.T) {
	assert.Equal(t, "number", call(t, "type-of", value.NewNumber(1)).String())
	assert.Equal(t, "string", call(t, "type-of", &value.String{Text: "x"}).String())
}

func TestSelectorFunctions(t *testing.T) {
	ok := call(t, "is-superselector", &value.String{Text: ".a"}, &value.String{Text: ".a.b"})
	assert.Equal(t, "true", ok.String())

	nested := call(t, "selector-nest", &value.String{Text: ".a"}, &value.String{Text: "&.b"})
	assert.Equal(t, ".a.b", nested.String())

	unified := call(t, "selector-unify", &value.String{Text: ".a"}, &value.String{Text: ".b"})
	assert.Equal(t, ".a.b", unified.String())
}
