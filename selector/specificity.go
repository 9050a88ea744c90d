package selector

// Specificity is the (ids, classes, elements) triple CSS uses to order
// conflicting declarations. Classes also counts attribute selectors and
// non-element pseudo-classes; Elements counts type selectors and
// pseudo-elements. Universal selectors and "&" contribute nothing.
type Specificity struct {
	IDs      int
	Classes  int
	Elements int
}

// Compare returns -1, 0, or 1 as s sorts before, equal to, or after o,
// comparing IDs first, then Classes, then Elements.
func (s Specificity) Compare(o Specificity) int {
	if s.IDs != o.IDs {
		return sign(s.IDs - o.IDs)
	}
	if s.Classes != o.Classes {
		return sign(s.Classes - o.Classes)
	}
	return sign(s.Elements - o.Elements)
}

func (s Specificity) Less(o Specificity) bool { return s.Compare(o) < 0 }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Add returns the componentwise sum of two specificities, used when
// combining a compound's contribution into a running complex-selector
// total.
func (s Specificity) Add(o Specificity) Specificity {
	return Specificity{IDs: s.IDs + o.IDs, Classes: s.Classes + o.Classes, Elements: s.Elements + o.Elements}
}

// OfCompound computes the specificity contributed by one compound
// selector's simple selectors.
func OfCompound(c Compound) Specificity {
	var s Specificity
	for _, simple := range c.Simples {
		switch v := simple.(type) {
		case IDSelector:
			s.IDs++
		case ClassSelector, AttributeSelector:
			s.Classes++
		case PlaceholderSelector:
			// "%name" behaves like a class for specificity purposes --
			// it is stripped away (or replaced by whatever extends it)
			// before a rule ever reaches the CSS tree, but the rules
			// that reference it still need a well-defined ordering
			// while @extend is being resolved.
			s.Classes++
		case PseudoSelector:
			if v.Element {
				s.Elements++
			} else {
				s.Classes++
			}
		case TypeSelector:
			s.Elements++
		case UniversalSelector, ParentSelector:
			// contribute nothing
		}
	}
	return s
}

// OfComplex sums the specificity of every compound in a complex selector.
func OfComplex(cx Complex) Specificity {
	var s Specificity
	for _, comp := range cx.Components {
		s = s.Add(OfCompound(comp.Compound))
	}
	return s
}

// Max returns the highest specificity among a selector list's complex
// selectors -- the value CSS actually uses when a list matches.
func Max(l List) Specificity {
	var best Specificity
	for i, cx := range l.Complexes {
		sp := OfComplex(cx)
		if i == 0 || best.Less(sp) {
			best = sp
		}
	}
	return best
}
