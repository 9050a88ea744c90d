package value

// Equal is the single equality function every other component (map
// key lookup, `==`, @extend's specificity sets) uses, per spec.md
// §3.6: reflexive, symmetric, transitive, fuzzy and unit-aware for
// numbers, structural for strings/lists/maps, identity for the
// boolean/null singletons.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case *Number:
		bv, ok := b.(*Number)
		return ok && NumberEqual(av, bv)
	case *Color:
		bv, ok := b.(*Color)
		return ok && ColorEqual(av, bv)
	case *String:
		bv, ok := b.(*String)
		return ok && av.Text == bv.Text
	case *List:
		bv, ok := b.(*List)
		return ok && ListEqual(av, bv)
	case *ArgList:
		bv, ok := b.(*ArgList)
		return ok && ListEqual(&av.List, &bv.List)
	case *Map:
		bv, ok := b.(*Map)
		return ok && MapEqual(av, bv)
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Null:
		_, ok := b.(Null)
		return ok
	case *Calculation:
		bv, ok := b.(*Calculation)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *Callable:
		bv, ok := b.(*Callable)
		return ok && av.Name == bv.Name && av.Kind == bv.Kind
	default:
		return false
	}
}

// TypeName returns the Sass type name used in meta.type-of and in
// type-mismatch error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case *Number:
		return "number"
	case *Color:
		return "color"
	case *String:
		return "string"
	case *List, *ArgList:
		return "list"
	case *Map:
		return "map"
	case Bool:
		return "bool"
	case Null:
		return "null"
	case *Calculation:
		return "calculation"
	case *Callable:
		return "function"
	default:
		return "unknown"
	}
}
