package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FuzzTolerance is the relative slack applied to Sass number equality
// and integer detection, per the GLOSSARY's "Fuzz tolerance" entry.
const FuzzTolerance = 1e-11

// unitFactors maps every unit this compiler understands to a factor
// expressing it in terms of one canonical unit per compatibility
// group. Conversion between units just divides the two factors.
// Grounded on spec.md §4.2's named compatibility groups.
var unitFactors = map[string]float64{
	// lengths, canonical: px
	"px": 1, "in": 96, "cm": 96 / 2.54, "mm": 96 / 25.4, "q": 96 / 101.6,
	"pt": 96.0 / 72, "pc": 16,
	// angles, canonical: deg
	"deg": 1, "grad": 0.9, "rad": 180 / math.Pi, "turn": 360,
	// time, canonical: s
	"s": 1, "ms": 0.001,
	// frequency, canonical: Hz
	"hz": 1, "khz": 1000,
	// resolution, canonical: dpi
	"dpi": 1, "dpcm": 2.54, "dppx": 96, "x": 96,
}

// unitGroup maps a lowercased unit to the name of its compatibility
// group, so two units only convert if they share a group.
var unitGroup = map[string]string{
	"px": "length", "in": "length", "cm": "length", "mm": "length", "q": "length", "pt": "length", "pc": "length",
	"deg": "angle", "grad": "angle", "rad": "angle", "turn": "angle",
	"s": "time", "ms": "time",
	"hz": "frequency", "khz": "frequency",
	"dpi": "resolution", "dpcm": "resolution", "dppx": "resolution", "x": "resolution",
}

// Number is a finite float64 value with numerator and denominator unit
// multisets (spec.md §3.2). Repr is a slot for the literal text the
// number was parsed from; nothing in this module sets or reads it, and
// String formats the number from Val and its units alone.
type Number struct {
	Val   float64
	Numer []string
	Denom []string
	Repr  string
}

func (*Number) sassValue()   {}
func (*Number) Truthy() bool { return true }

// NewNumber builds a unitless number.
func NewNumber(v float64) *Number { return &Number{Val: v} }

// NewNumberUnit builds a number with a single numerator unit, the
// common case for literals like "10px".
func NewNumberUnit(v float64, unit string) *Number {
	n := &Number{Val: v}
	if unit != "" {
		n.Numer = []string{unit}
	}
	return n
}

// HasUnit reports whether the number carries exactly the given single
// numerator unit and no denominator, per SassNumber.has_unit.
func (n *Number) HasUnit(unit string) bool {
	return len(n.Numer) == 1 && n.Numer[0] == unit && len(n.Denom) == 0
}

// IsUnitless reports whether the number has no units at all.
func (n *Number) IsUnitless() bool {
	return len(n.Numer) == 0 && len(n.Denom) == 0
}

// CompatibleWithUnit reports whether this number's units could be
// converted to the given single unit (SassNumber.compatible_with_unit).
func (n *Number) CompatibleWithUnit(unit string) bool {
	if len(n.Numer) == 0 && len(n.Denom) == 0 {
		return true
	}
	if len(n.Numer) != 1 || len(n.Denom) != 0 {
		return false
	}
	return convertible(n.Numer[0], unit)
}

func convertible(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return true
	}
	ga, oka := unitGroup[a]
	gb, okb := unitGroup[b]
	return oka && okb && ga == gb
}

func factor(unit string) (float64, bool) {
	f, ok := unitFactors[strings.ToLower(unit)]
	return f, ok
}

// ConvertValueToUnit converts the number's value (ignoring units) into
// what it would be if its current single numerator unit were replaced
// by target, per SassNumber.convert_value_to_unit. Returns an error if
// the units aren't compatible.
func (n *Number) ConvertValueToUnit(target string) (float64, error) {
	if len(n.Numer) == 0 {
		return n.Val, nil
	}
	if len(n.Numer) != 1 || len(n.Denom) != 0 {
		return 0, fmt.Errorf("%s isn't compatible with %s", n.unitString(), target)
	}
	from, ok1 := factor(n.Numer[0])
	to, ok2 := factor(target)
	if !ok1 || !ok2 || !convertible(n.Numer[0], target) {
		return 0, fmt.Errorf("%s isn't compatible with %s", n.unitString(), target)
	}
	return n.Val * from / to, nil
}

// Convert returns a new Number expressed in target, converting value
// and replacing the unit.
func (n *Number) Convert(target string) (*Number, error) {
	v, err := n.ConvertValueToUnit(target)
	if err != nil {
		return nil, err
	}
	return NewNumberUnit(v, target), nil
}

// AssertUnit errors unless the number carries exactly unit.
func (n *Number) AssertUnit(unit, name string) error {
	if !n.HasUnit(unit) {
		return fmt.Errorf("$%s: Expected %s to have unit %q.", name, n.String(), unit)
	}
	return nil
}

// AssertInt errors unless the number is (fuzzily) an integer, and
// returns its rounded int64 value.
func (n *Number) AssertInt(name string) (int64, error) {
	r := math.Round(n.Val)
	if math.Abs(n.Val-r) > FuzzTolerance*math.Max(1, math.Abs(n.Val)) {
		return 0, fmt.Errorf("$%s: %s is not an integer.", name, n.String())
	}
	return int64(r), nil
}

// AssertInRange errors unless min <= value <= max (fuzzily).
func (n *Number) AssertInRange(min, max float64, name string) error {
	if n.Val < min-FuzzTolerance || n.Val > max+FuzzTolerance {
		return fmt.Errorf("$%s: %s must be between %v and %v.", name, n.String(), min, max)
	}
	return nil
}

// FuzzyEquals compares two floats within FuzzTolerance relative slack.
func FuzzyEquals(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= FuzzTolerance*scale
}

// IsInt reports whether the number is fuzzily an integer.
func (n *Number) IsInt() bool {
	r := math.Round(n.Val)
	return FuzzyEquals(n.Val, r)
}

func (n *Number) unitString() string {
	if len(n.Numer) == 0 && len(n.Denom) == 0 {
		return "no unit"
	}
	numer := strings.Join(n.Numer, "*")
	if len(n.Denom) == 0 {
		return numer
	}
	if numer == "" {
		numer = "1"
	}
	return numer + "/" + strings.Join(n.Denom, "*")
}

// String renders the number the way it would be interpolated -- the
// serializer applies further style-specific formatting on top of this.
func (n *Number) String() string {
	return formatFloat(n.Val) + n.unitSuffix()
}

func (n *Number) unitSuffix() string {
	if len(n.Numer) == 0 && len(n.Denom) == 0 {
		return ""
	}
	numer := strings.Join(n.Numer, "*")
	if len(n.Denom) == 0 {
		return numer
	}
	return numer + "/" + strings.Join(n.Denom, "*")
}

// formatFloat prints a float without exponential notation, trimming
// trailing zeros, matching the prior implementation's trimFloat rounding
// (expression/value.go) generalized to full round-trip precision
// instead of 9 significant figures, since Sass numbers need exact
// fuzz-tolerant equality rather than a fixed display precision.
func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}

// normalizeUnits cancels matching numerator/denominator units in
// place, e.g. multiplying "px" by "1/px" yields a unitless number.
func normalizeUnits(numer, denom []string) ([]string, []string) {
	n := append([]string(nil), numer...)
	d := append([]string(nil), denom...)
	for i := 0; i < len(n); i++ {
		for j := 0; j < len(d); j++ {
			if strings.EqualFold(n[i], d[j]) {
				n = append(n[:i], n[i+1:]...)
				d = append(d[:j], d[j+1:]...)
				i--
				break
			}
		}
	}
	sort.Strings(n)
	sort.Strings(d)
	return n, d
}

// Add, Subtract, Multiply, Divide implement the numeric half of the
// binary operator matrix in spec.md §4.2. Units follow dart-sass:
// +/- require compatible units (or one operand unitless); * concatenates
// unit multisets and then cancels; / does the same with denominators.
func (n *Number) Add(other *Number) (*Number, error) {
	return n.addSub(other, false)
}

func (n *Number) Subtract(other *Number) (*Number, error) {
	return n.addSub(other, true)
}

func (n *Number) addSub(other *Number, sub bool) (*Number, error) {
	op := "plus"
	if sub {
		op = "minus"
	}
	a, b := n, other
	if !sameUnits(a, b) {
		if a.IsUnitless() {
			conv, err := convertTo(b, a)
			if err != nil {
				return nil, unitErr(a, b, op)
			}
			a = conv
		} else if b.IsUnitless() {
			// leave as-is, unitless adopts a's units
		} else {
			conv, err := convertMatching(b, a)
			if err != nil {
				return nil, unitErr(a, b, op)
			}
			b = conv
		}
	}
	val := a.Val + b.Val
	if sub {
		val = a.Val - b.Val
	}
	return &Number{Val: val, Numer: a.Numer, Denom: a.Denom}, nil
}

func unitErr(a, b *Number, op string) error {
	return fmt.Errorf("Incompatible units %s and %s.", a.unitString(), b.unitString())
}

func sameUnits(a, b *Number) bool {
	return joinUnits(a.Numer) == joinUnits(b.Numer) && joinUnits(a.Denom) == joinUnits(b.Denom)
}

func joinUnits(u []string) string {
	s := append([]string(nil), u...)
	sort.Strings(s)
	return strings.Join(s, "*")
}

// convertTo converts a unitless number to have the same units as like.
func convertTo(a, like *Number) (*Number, error) {
	return &Number{Val: a.Val, Numer: like.Numer, Denom: like.Denom}, nil
}

// convertMatching converts b's units to a's units, erroring if they're
// from different compatibility groups.
func convertMatching(b, a *Number) (*Number, error) {
	if len(b.Numer) != len(a.Numer) || len(b.Denom) != len(a.Denom) {
		return nil, fmt.Errorf("incompatible")
	}
	val := b.Val
	for i := range a.Numer {
		f, err := (&Number{Val: 1, Numer: []string{b.Numer[i]}}).ConvertValueToUnit(a.Numer[i])
		if err != nil {
			return nil, err
		}
		val *= f
	}
	for i := range a.Denom {
		f, err := (&Number{Val: 1, Numer: []string{b.Denom[i]}}).ConvertValueToUnit(a.Denom[i])
		if err != nil {
			return nil, err
		}
		val /= f
	}
	return &Number{Val: val, Numer: a.Numer, Denom: a.Denom}, nil
}

func (n *Number) Multiply(other *Number) (*Number, error) {
	numer := append(append([]string(nil), n.Numer...), other.Numer...)
	denom := append(append([]string(nil), n.Denom...), other.Denom...)
	numer, denom = normalizeUnits(numer, denom)
	return &Number{Val: n.Val * other.Val, Numer: numer, Denom: denom}, nil
}

func (n *Number) Divide(other *Number) (*Number, error) {
	numer := append(append([]string(nil), n.Numer...), other.Denom...)
	denom := append(append([]string(nil), n.Denom...), other.Numer...)
	numer, denom = normalizeUnits(numer, denom)
	var val float64
	if other.Val != 0 {
		val = n.Val / other.Val
	} else {
		val = math.Inf(int(signOf(n.Val)))
	}
	return &Number{Val: val, Numer: numer, Denom: denom}, nil
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func (n *Number) Modulo(other *Number) (*Number, error) {
	if !sameUnits(n, other) && !n.IsUnitless() && !other.IsUnitless() {
		conv, err := convertMatching(other, n)
		if err != nil {
			return nil, unitErr(n, other, "modulo")
		}
		other = conv
	}
	val := math.Mod(n.Val, other.Val)
	if val != 0 && (val < 0) != (other.Val < 0) {
		val += other.Val
	}
	return &Number{Val: val, Numer: n.Numer, Denom: n.Denom}, nil
}

// CompareTo orders two numbers for </<=/>/>=, converting units first.
// Returns an error if the units are incompatible.
func (n *Number) CompareTo(other *Number) (int, error) {
	a, b := n, other
	if !sameUnits(a, b) {
		if a.IsUnitless() {
			a = &Number{Val: a.Val, Numer: b.Numer, Denom: b.Denom}
		} else if b.IsUnitless() {
			b = &Number{Val: b.Val, Numer: a.Numer, Denom: a.Denom}
		} else {
			conv, err := convertMatching(b, a)
			if err != nil {
				return 0, unitErr(a, b, "compare")
			}
			b = conv
		}
	}
	if FuzzyEquals(a.Val, b.Val) {
		return 0, nil
	}
	if a.Val < b.Val {
		return -1, nil
	}
	return 1, nil
}

// NumberEqual implements Sass number equality: fuzzy, unit-converting,
// and false across incompatible units (never an error).
func NumberEqual(a, b *Number) bool {
	c, err := a.CompareTo(b)
	return err == nil && c == 0
}
