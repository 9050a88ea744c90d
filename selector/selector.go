// Package selector implements the Sass selector model and its
// algebra: parsing, specificity, compound-selector unification,
// superselector testing, and "&" nesting resolution.
//
// The prior LESS implementation treated a selector as an opaque
// []string and matched extend targets with plain string comparison.
// This package keeps that string-oriented spirit -- simple selectors
// and combinators are small concrete structs walked with a plain Go
// switch, no parser-generator -- but builds out the structured model
// spec.md §3.3/§4.3 requires: complex/compound/simple selector types, a
// specificity triple, unification, and superselector testing.
package selector

import "strings"

// Combinator names how two compound selectors in a complex selector
// relate. CombinatorDescendant also stands for "no explicit
// combinator" on a complex selector's first component.
type Combinator int

const (
	CombinatorDescendant Combinator = iota
	CombinatorChild
	CombinatorNextSibling
	CombinatorFollowingSibling
)

func (c Combinator) String() string {
	switch c {
	case CombinatorChild:
		return ">"
	case CombinatorNextSibling:
		return "+"
	case CombinatorFollowingSibling:
		return "~"
	}
	return ""
}

// Simple is one simple selector: a type/universal/class/id/placeholder
// name, an attribute test, a pseudo-class/element, or the parent
// selector marker "&" used while nesting is still being resolved.
type Simple interface {
	simple()
	String() string
}

type TypeSelector struct {
	Namespace string // "" = no namespace constraint, "*" = explicit any-namespace
	HasNS     bool
	Name      string
}

func (TypeSelector) simple() {}
func (t TypeSelector) String() string {
	if t.HasNS {
		return t.Namespace + "|" + t.Name
	}
	return t.Name
}

type UniversalSelector struct {
	Namespace string
	HasNS     bool
}

func (UniversalSelector) simple() {}
func (u UniversalSelector) String() string {
	if u.HasNS {
		return u.Namespace + "|*"
	}
	return "*"
}

type ClassSelector struct{ Name string }

func (ClassSelector) simple()        {}
func (c ClassSelector) String() string { return "." + c.Name }

type IDSelector struct{ Name string }

func (IDSelector) simple()        {}
func (i IDSelector) String() string { return "#" + i.Name }

// PlaceholderSelector is "%name", a Sass-only selector that never
// itself reaches the CSS output -- every style rule that names one
// (directly or via nesting) is dropped unless something extends it.
type PlaceholderSelector struct{ Name string }

func (PlaceholderSelector) simple()        {}
func (p PlaceholderSelector) String() string { return "%" + p.Name }

type AttributeSelector struct {
	Namespace     string
	HasNS         bool
	Name          string
	Op            string // "", "=", "~=", "|=", "^=", "$=", "*="
	Value         string
	Quoted        bool
	CaseSensitive string // "", "i", "s"
}

func (AttributeSelector) simple() {}
func (a AttributeSelector) String() string {
	name := a.Name
	if a.HasNS {
		name = a.Namespace + "|" + a.Name
	}
	if a.Op == "" {
		return "[" + name + "]"
	}
	val := a.Value
	if a.Quoted {
		val = `"` + val + `"`
	}
	out := "[" + name + a.Op + val
	if a.CaseSensitive != "" {
		out += " " + a.CaseSensitive
	}
	return out + "]"
}

// PseudoSelector is a pseudo-class or pseudo-element. Argument holds
// raw unparsed text for forms sassgo doesn't structurally model
// (An+B expressions, :not(<selector list>) contents re-parsed lazily
// by the evaluator when it needs to manipulate them).
type PseudoSelector struct {
	Name     string
	Element  bool // true for "::", false for ":"
	Argument string
	HasArg   bool
}

func (PseudoSelector) simple() {}
func (ps PseudoSelector) String() string {
	prefix := ":"
	if ps.Element {
		prefix = "::"
	}
	if ps.HasArg {
		return prefix + ps.Name + "(" + ps.Argument + ")"
	}
	return prefix + ps.Name
}

// ParentSelector is "&", substituted away by ResolveNesting before a
// style rule's selector reaches the CSS tree.
type ParentSelector struct{}

func (ParentSelector) simple()        {}
func (ParentSelector) String() string { return "&" }

// Compound is a sequence of simple selectors with no combinator
// between them ("div.btn.btn--primary#submit").
type Compound struct {
	Simples []Simple
}

func (c Compound) String() string {
	var b strings.Builder
	for _, s := range c.Simples {
		b.WriteString(s.String())
	}
	return b.String()
}

// ContainsParent reports whether any simple selector in c is "&".
func (c Compound) ContainsParent() bool {
	for _, s := range c.Simples {
		if _, ok := s.(ParentSelector); ok {
			return true
		}
	}
	return false
}

// Component is one (combinator, compound) pair inside a complex
// selector; the combinator applies BEFORE the compound.
type Component struct {
	Combinator Combinator
	Compound   Compound
}

// Complex is a sequence of compound selectors joined by combinators
// ("div.a > span.b ~ .c").
type Complex struct {
	Components []Component
}

func (cx Complex) String() string {
	var b strings.Builder
	for i, c := range cx.Components {
		if i > 0 || c.Combinator != CombinatorDescendant {
			if i > 0 {
				b.WriteString(" ")
			}
			if c.Combinator != CombinatorDescendant {
				b.WriteString(c.Combinator.String())
				b.WriteString(" ")
			}
		}
		b.WriteString(c.Compound.String())
	}
	return b.String()
}

// ContainsParent reports whether any compound in cx contains "&".
func (cx Complex) ContainsParent() bool {
	for _, c := range cx.Components {
		if c.Compound.ContainsParent() {
			return true
		}
	}
	return false
}

// List is a selector list: a disjunction of complex selectors
// ("a.one, b.two").
type List struct {
	Complexes []Complex
}

func (l List) String() string {
	parts := make([]string, len(l.Complexes))
	for i, c := range l.Complexes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// ContainsParent reports whether any complex selector in l contains "&".
func (l List) ContainsParent() bool {
	for _, c := range l.Complexes {
		if c.ContainsParent() {
			return true
		}
	}
	return false
}
