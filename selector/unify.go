package selector

// Unify computes the compound selector matching every element that
// both a and b match, per spec.md's unification rules: at most one
// type-or-universal selector survives (the more specific of the two,
// with namespace mismatches failing outright), duplicate simple
// selectors collapse, and any pseudo-element is moved to the end since
// CSS requires pseudo-elements to trail the rest of a compound.
func Unify(a, b Compound) (Compound, bool) {
	aHead, aRest := splitTypeOrUniversal(a)
	bHead, bRest := splitTypeOrUniversal(b)

	head, ok := unifyHead(aHead, bHead)
	if !ok {
		return Compound{}, false
	}

	var simples []Simple
	if head != nil {
		simples = append(simples, head)
	}
	simples = append(simples, aRest...)
	for _, s := range bRest {
		if !containsEqual(simples, s) {
			simples = append(simples, s)
		}
	}
	return Compound{Simples: reorderPseudoElementsLast(simples)}, true
}

// splitTypeOrUniversal pulls the single type or universal selector out
// of a compound (there can be at most one, and it always leads), and
// returns the rest unchanged.
func splitTypeOrUniversal(c Compound) (Simple, []Simple) {
	for i, s := range c.Simples {
		switch s.(type) {
		case TypeSelector, UniversalSelector:
			rest := make([]Simple, 0, len(c.Simples)-1)
			rest = append(rest, c.Simples[:i]...)
			rest = append(rest, c.Simples[i+1:]...)
			return s, rest
		}
	}
	return nil, c.Simples
}

func unifyHead(a, b Simple) (Simple, bool) {
	if a == nil {
		return b, true
	}
	if b == nil {
		return a, true
	}
	at, aIsType := a.(TypeSelector)
	bt, bIsType := b.(TypeSelector)
	au, aIsUniv := a.(UniversalSelector)
	bu, bIsUniv := b.(UniversalSelector)

	switch {
	case aIsUniv && bIsUniv:
		if au.HasNS && bu.HasNS && au.Namespace != bu.Namespace {
			return nil, false
		}
		if au.HasNS {
			return au, true
		}
		return bu, true
	case aIsUniv && bIsType:
		if au.HasNS && bt.HasNS && au.Namespace != bt.Namespace {
			return nil, false
		}
		return bt, true
	case bIsUniv && aIsType:
		if bu.HasNS && at.HasNS && bu.Namespace != at.Namespace {
			return nil, false
		}
		return at, true
	case aIsType && bIsType:
		if at.Name != bt.Name {
			return nil, false
		}
		if at.HasNS && bt.HasNS && at.Namespace != bt.Namespace {
			return nil, false
		}
		if at.HasNS {
			return at, true
		}
		return bt, true
	}
	return nil, true
}

func containsEqual(list []Simple, s Simple) bool {
	for _, x := range list {
		if x.String() == s.String() {
			return true
		}
	}
	return false
}

func reorderPseudoElementsLast(simples []Simple) []Simple {
	out := make([]Simple, 0, len(simples))
	var elems []Simple
	for _, s := range simples {
		if ps, ok := s.(PseudoSelector); ok && ps.Element {
			elems = append(elems, s)
			continue
		}
		out = append(out, s)
	}
	return append(out, elems...)
}
