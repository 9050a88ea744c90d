package value

// Map is an insertion-ordered mapping from value to value, keyed with
// the same equality used for `==` (spec.md §3.2). Parallel slices keep
// insertion order explicit rather than relying on Go map iteration,
// which is randomized and would make output nondeterministic --
// violating the determinism property in spec.md §8.
type Map struct {
	Keys []Value
	Vals []Value
}

func (*Map) sassValue()   {}
func (m *Map) Truthy() bool { return true }

func (m *Map) String() string {
	out := "("
	for i, k := range m.Keys {
		if i > 0 {
			out += ", "
		}
		out += k.String() + ": " + m.Vals[i].String()
	}
	return out + ")"
}

// NewMap builds an empty map.
func NewMap() *Map { return &Map{} }

// Get looks up a key using Sass equality, returning (value, true) if found.
func (m *Map) Get(key Value) (Value, bool) {
	for i, k := range m.Keys {
		if Equal(k, key) {
			return m.Vals[i], true
		}
	}
	return nil, false
}

// Set inserts or overwrites key -> val. A duplicate key overwrites in
// place rather than appending, per spec.md §4.2.
func (m *Map) Set(key, val Value) {
	for i, k := range m.Keys {
		if Equal(k, key) {
			m.Vals[i] = val
			return
		}
	}
	m.Keys = append(m.Keys, key)
	m.Vals = append(m.Vals, val)
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.Keys) }

// MapEqual compares two maps irrespective of insertion order.
func MapEqual(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, k := range a.Keys {
		v, ok := b.Get(k)
		if !ok || !Equal(v, a.Vals[i]) {
			return false
		}
	}
	return true
}
