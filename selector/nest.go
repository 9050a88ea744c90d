package selector

import "fmt"

// ResolveNesting expands inner (the selector list written inside a
// nested style rule) against outer (the already-resolved selector list
// of every ancestor rule), substituting "&" per spec.md line 173: each
// complex selector in inner is combined with each in outer, forming the
// full cross product. A bare "&" is replaced by the entire outer
// complex selector; "&" with a trailing suffix ("&.active") attaches
// the suffix to outer's last compound instead. When inner contains no
// "&" at all, the pair simply joins as a plain descendant combination.
func ResolveNesting(outer, inner List) (List, error) {
	if !inner.ContainsParent() {
		var out []Complex
		for _, o := range outer.Complexes {
			for _, i := range inner.Complexes {
				out = append(out, joinDescendant(o, i))
			}
		}
		return List{Complexes: out}, nil
	}

	var out []Complex
	for _, o := range outer.Complexes {
		for _, i := range inner.Complexes {
			resolved, err := substituteParent(o, i)
			if err != nil {
				return List{}, err
			}
			out = append(out, resolved)
		}
	}
	return List{Complexes: out}, nil
}

func joinDescendant(o, i Complex) Complex {
	comps := make([]Component, 0, len(o.Components)+len(i.Components))
	comps = append(comps, o.Components...)
	comps = append(comps, i.Components...)
	return Complex{Components: comps}
}

func substituteParent(o, i Complex) (Complex, error) {
	var out []Component
	for _, comp := range i.Components {
		if !comp.Compound.ContainsParent() {
			out = append(out, comp)
			continue
		}
		if len(comp.Compound.Simples) == 1 {
			// Bare "&": splice the entire outer complex selector in,
			// letting this component's own combinator (if explicit)
			// override the first spliced component's.
			if len(o.Components) == 0 {
				return Complex{}, fmt.Errorf("selector: %q has no parent selector to substitute", comp.Compound.String())
			}
			for k, oc := range o.Components {
				if k == 0 {
					oc.Combinator = comp.Combinator
				}
				out = append(out, oc)
			}
			continue
		}

		if len(o.Components) == 0 {
			return Complex{}, fmt.Errorf("selector: %q has no parent selector to substitute", comp.Compound.String())
		}
		var suffix []Simple
		for _, s := range comp.Compound.Simples {
			if _, ok := s.(ParentSelector); !ok {
				suffix = append(suffix, s)
			}
		}
		if !validSuffix(suffix) {
			return Complex{}, fmt.Errorf("selector: invalid parent selector suffix %q", comp.Compound.String())
		}

		merged := make([]Component, len(o.Components))
		copy(merged, o.Components)
		lastIdx := len(merged) - 1
		lastSimples := make([]Simple, 0, len(merged[lastIdx].Compound.Simples)+len(suffix))
		lastSimples = append(lastSimples, merged[lastIdx].Compound.Simples...)
		lastSimples = append(lastSimples, suffix...)
		merged[lastIdx] = Component{Combinator: merged[lastIdx].Combinator, Compound: Compound{Simples: lastSimples}}
		if lastIdx == 0 {
			merged[0].Combinator = comp.Combinator
		}
		out = append(out, merged...)
	}
	return Complex{Components: out}, nil
}

// validSuffix rejects a suffix that carries its own type/universal
// selector ("div&" or "&div") -- a compound can only ever lead with
// one element-naming simple selector, and the parent selector already
// occupies that slot.
func validSuffix(suffix []Simple) bool {
	for _, s := range suffix {
		switch s.(type) {
		case TypeSelector, UniversalSelector:
			return false
		}
	}
	return true
}
