// Package extend implements the `@extend` engine: given a CSS tree and
// a set of registered extensions, it rewrites each style rule's
// selector list to also match whatever extends it, per spec.md §4.3.
//
// Grounded on the prior implementation's two-pass renderer -- `collectExtends` in
// renderer/renderer.go builds a `map[string][]string` from an extended
// selector's text to the selectors extending it, then a later pass
// appends the extending selectors' text wherever the extended one is
// used. This package keeps that "register first, rewrite selectors in
// a second pass" shape but replaces LESS's single textual append with
// the full Sass algorithm: per-compound unification, fixed-point
// iteration over extensions-of-extensions, and placeholder removal.
package extend

import (
	"fmt"

	"github.com/titpetric/sassgo/css"
	"github.com/titpetric/sassgo/diag"
	"github.com/titpetric/sassgo/selector"
)

// Extension is one registered "@extend" directive: wherever Target
// appears as a simple-selector subset of some compound, Extender
// should also match there.
type Extension struct {
	Extender selector.Complex
	Target   selector.Compound
	Optional bool
	Span     diag.Span
}

// Registry accumulates the extensions visible within one extend
// boundary. spec.md §4.3 forbids `@extend` from crossing a
// media/supports boundary in either direction, so eval is expected to
// build one Registry per such boundary (the top-level stylesheet, and
// independently each `@media`/`@supports` block) rather than sharing a
// single global Registry across the whole tree.
type Registry struct {
	exts []Extension
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Register(ext Extension) { r.exts = append(r.exts, ext) }

func (r *Registry) Len() int { return len(r.exts) }

// Apply rewrites the selector of every top-level StyleRule in nodes to
// a fixed point over reg's extensions. It does not descend into nested
// AtRule bodies -- those belong to a different extend boundary and
// should be passed to their own Apply call with their own Registry.
func Apply(nodes []css.Node, reg *Registry) error {
	if reg.Len() == 0 {
		return nil
	}
	for _, n := range nodes {
		rule, ok := n.(*css.StyleRule)
		if !ok {
			continue
		}
		list, err := selector.Parse(rule.Selector)
		if err != nil {
			return fmt.Errorf("extend: parsing selector %q: %w", rule.Selector, err)
		}
		extended, err := extendList(list, reg)
		if err != nil {
			return err
		}
		rule.Selector = extended.String()
	}
	return nil
}

// extendList applies every extension in reg to every complex selector
// in list, iterating until no new complex selectors are produced
// (extensions-of-extensions), then trims selectors made redundant by a
// more general one already present in the result.
func extendList(list selector.List, reg *Registry) (selector.List, error) {
	seen := make(map[string]bool, len(list.Complexes))
	result := make([]selector.Complex, 0, len(list.Complexes))
	for _, cx := range list.Complexes {
		key := cx.String()
		if !seen[key] {
			seen[key] = true
			result = append(result, cx)
		}
	}

	for round := 0; ; round++ {
		if round > 10000 {
			return selector.List{}, fmt.Errorf("extend: extension fixed point did not converge")
		}
		var fresh []selector.Complex
		for _, cx := range result {
			for _, ext := range reg.exts {
				produced, matched := extendComplex(cx, ext)
				if !matched {
					continue
				}
				for _, p := range produced {
					key := p.String()
					if !seen[key] {
						seen[key] = true
						fresh = append(fresh, p)
					}
				}
			}
		}
		if len(fresh) == 0 {
			break
		}
		result = append(result, fresh...)
	}

	return selector.List{Complexes: trimRedundant(result)}, nil
}

// extendComplex substitutes ext.Extender for ext.Target at every
// component of cx whose compound contains Target's simple selectors,
// unifying Target's compound's remaining simple selectors into
// Extender's last compound. A component that fails to unify is
// skipped (spec.md §4.3 point 5: non-unifying extensions are dropped
// silently, not an error).
func extendComplex(cx selector.Complex, ext Extension) ([]selector.Complex, bool) {
	var results []selector.Complex
	matched := false
	extComps := ext.Extender.Components
	if len(extComps) == 0 {
		return nil, false
	}
	for k, comp := range cx.Components {
		if !compoundContainsTarget(comp.Compound, ext.Target) {
			continue
		}
		matched = true
		remainder := subtractSimples(comp.Compound, ext.Target)
		mergedLast, ok := selector.Unify(extComps[len(extComps)-1].Compound, selector.Compound{Simples: remainder})
		if !ok {
			continue
		}

		newComps := make([]selector.Component, 0, len(cx.Components)+len(extComps))
		newComps = append(newComps, cx.Components[:k]...)
		for i, ec := range extComps {
			spliced := ec
			if i == len(extComps)-1 {
				spliced.Compound = mergedLast
			}
			if i == 0 {
				spliced.Combinator = comp.Combinator
			}
			newComps = append(newComps, spliced)
		}
		newComps = append(newComps, cx.Components[k+1:]...)
		results = append(results, selector.Complex{Components: newComps})
	}
	return results, matched
}

func compoundContainsTarget(c, target selector.Compound) bool {
	for _, ts := range target.Simples {
		if !containsSimple(c.Simples, ts) {
			return false
		}
	}
	return true
}

func subtractSimples(c, target selector.Compound) []selector.Simple {
	var out []selector.Simple
	for _, s := range c.Simples {
		if !containsSimple(target.Simples, s) {
			out = append(out, s)
		}
	}
	return out
}

func containsSimple(list []selector.Simple, s selector.Simple) bool {
	for _, x := range list {
		if x.String() == s.String() {
			return true
		}
	}
	return false
}

// trimRedundant drops a complex selector when another surviving one is
// already a superselector of it -- every element it would match is
// already matched by the more general selector, so keeping both only
// bloats the output.
func trimRedundant(complexes []selector.Complex) []selector.Complex {
	var out []selector.Complex
	for i, cx := range complexes {
		redundant := false
		for j, other := range complexes {
			if i == j {
				continue
			}
			if selector.IsSuperselector(other, cx) && (j < i || !selector.IsSuperselector(cx, other)) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, cx)
		}
	}
	return out
}

// StripPlaceholders removes every style rule (recursively, through
// nested at-rule bodies) whose selector list consists entirely of
// complex selectors that still reference a placeholder ("%name"). A
// placeholder that was successfully extended already produced
// placeholder-free synthesized selectors via Apply; this only removes
// what's left over.
func StripPlaceholders(nodes []css.Node) []css.Node {
	out := make([]css.Node, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case *css.StyleRule:
			list, err := selector.Parse(v.Selector)
			if err != nil {
				out = append(out, v)
				continue
			}
			kept := make([]selector.Complex, 0, len(list.Complexes))
			for _, cx := range list.Complexes {
				if !containsPlaceholder(cx) {
					kept = append(kept, cx)
				}
			}
			if len(kept) == 0 {
				continue
			}
			v.Selector = selector.List{Complexes: kept}.String()
			v.Body = StripPlaceholders(v.Body)
			out = append(out, v)
		case *css.AtRule:
			v.Body = StripPlaceholders(v.Body)
			out = append(out, v)
		default:
			out = append(out, n)
		}
	}
	return out
}

func containsPlaceholder(cx selector.Complex) bool {
	for _, comp := range cx.Components {
		for _, s := range comp.Compound.Simples {
			if _, ok := s.(selector.PlaceholderSelector); ok {
				return true
			}
		}
	}
	return false
}
