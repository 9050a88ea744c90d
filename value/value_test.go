package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberArithmeticUnits(t *testing.T) {
	cases := []struct {
		name    string
		a, b    *Number
		op      string
		want    *Number
		wantErr bool
	}{
		{
			name: "add same unit",
			a:    NewNumberUnit(1, "px"),
			b:    NewNumberUnit(2, "px"),
			op:   "+",
			want: NewNumberUnit(3, "px"),
		},
		{
			name: "add unitless adopts units",
			a:    NewNumberUnit(1, "px"),
			b:    NewNumber(2),
			op:   "+",
			want: NewNumberUnit(3, "px"),
		},
		{
			name:    "add incompatible units errors",
			a:       NewNumberUnit(1, "px"),
			b:       NewNumberUnit(2, "deg"),
			op:      "+",
			wantErr: true,
		},
		{
			name: "multiply concatenates units",
			a:    NewNumberUnit(2, "px"),
			b:    NewNumberUnit(3, "px"),
			op:   "*",
			want: &Number{Val: 6, Numer: []string{"px", "px"}},
		},
		{
			name: "divide same unit cancels",
			a:    NewNumberUnit(10, "px"),
			b:    NewNumberUnit(2, "px"),
			op:   "/",
			want: NewNumber(5),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BinaryOp(tc.op, tc.a, tc.b)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			gn, ok := got.(*Number)
			require.True(t, ok)
			assert.True(t, FuzzyEquals(gn.Val, tc.want.Val))
			if diff := cmp.Diff(tc.want.Numer, gn.Numer, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("numer mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFuzzyEquals(t *testing.T) {
	assert.True(t, FuzzyEquals(1.0, 1.0+1e-13))
	assert.False(t, FuzzyEquals(1.0, 1.1))
}

func TestNumberEqualAcrossUnits(t *testing.T) {
	a := NewNumberUnit(1, "in")
	b := NewNumberUnit(96, "px")
	assert.True(t, NumberEqual(a, b))

	c := NewNumberUnit(1, "in")
	d := NewNumberUnit(1, "deg")
	assert.False(t, NumberEqual(c, d))
}

func TestColorRoundTripAndMath(t *testing.T) {
	c := ColorFromRGB(16, 32, 48, 1)
	assert.Equal(t, "#102030", c.Hex())

	lit := &Color{R: 16, G: 32, B: 48, A: 1, Repr: ReprHex6, Text: "#102030"}
	assert.Equal(t, "#102030", lit.String())

	sum, err := BinaryOp("+", ColorFromRGB(10, 10, 10, 1), ColorFromRGB(5, 5, 5, 1))
	require.NoError(t, err)
	sc, ok := sum.(*Color)
	require.True(t, ok)
	assert.Equal(t, uint8(15), sc.R)
}

func TestColorHSLConversion(t *testing.T) {
	red := ColorFromHSL(0, 1, 0.5, 1)
	assert.Equal(t, uint8(255), red.R)
	assert.InDelta(t, 0, red.Hue(), 0.01)
}

func TestStringQuoteAndAdd(t *testing.T) {
	s := NewString(`a"b`)
	assert.Equal(t, `'a"b'`, s.Quote())

	sum, err := BinaryOp("+", NewString("foo"), NewUnquoted("bar"))
	require.NoError(t, err)
	assert.Equal(t, "foobar", sum.String())
	assert.True(t, sum.(*String).Quoted)
}

func TestListEqualityIgnoresUndecidedSeparator(t *testing.T) {
	a := NewList([]Value{NewNumber(1), NewNumber(2)}, SepUndecided)
	b := NewList([]Value{NewNumber(1), NewNumber(2)}, SepComma)
	assert.True(t, Equal(a, b))

	c := NewList([]Value{NewNumber(1), NewNumber(2)}, SepComma)
	d := NewList([]Value{NewNumber(1), NewNumber(2)}, SepSpace)
	assert.False(t, Equal(c, d))
}

func TestMapSetOverwritesAndPreservesOrder(t *testing.T) {
	m := NewMap()
	m.Set(NewString("a"), NewNumber(1))
	m.Set(NewString("b"), NewNumber(2))
	m.Set(NewString("a"), NewNumber(3))

	require.Equal(t, 2, m.Len())
	assert.Equal(t, "a", m.Keys[0].String())

	v, ok := m.Get(NewString("a"))
	require.True(t, ok)
	assert.Equal(t, float64(3), v.(*Number).Val)
}

func TestMapEqualIgnoresOrder(t *testing.T) {
	m1 := NewMap()
	m1.Set(NewString("a"), NewNumber(1))
	m1.Set(NewString("b"), NewNumber(2))

	m2 := NewMap()
	m2.Set(NewString("b"), NewNumber(2))
	m2.Set(NewString("a"), NewNumber(1))

	assert.True(t, MapEqual(m1, m2))
}

func TestBinaryOpEqualityNeverErrors(t *testing.T) {
	got, err := BinaryOp("==", NewString("a"), NewNumber(1))
	require.NoError(t, err)
	assert.Equal(t, False, got)
}

func TestBinaryOpAndOr(t *testing.T) {
	got, err := BinaryOp("and", True, NewNumber(5))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(5).String(), got.String())

	got, err = BinaryOp("or", False, NewNumber(5))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(5).String(), got.String())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "number", TypeName(NewNumber(1)))
	assert.Equal(t, "color", TypeName(ColorFromRGB(0, 0, 0, 1)))
	assert.Equal(t, "list", TypeName(NewList(nil, SepComma)))
}
