package builtin

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/titpetric/sassgo/value"
)

// Grounded on functions/strings.go's Escape/Replace/Format string
// helpers. Case conversion routes through golang.org/x/text/cases
// rather than strings.ToUpper/ToLower -- the SPEC_FULL §2.1 ambient-
// stack wiring note promised this for case-insensitive/locale-aware
// identifier comparisons, and to-upper-case/to-lower-case are exactly
// that operation exposed as a user-facing function.
func stringFunctions() []*Entry {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	return []*Entry{
		{Module: "string", Name: "quote", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "quote")
			if err != nil {
				return nil, err
			}
			return &value.String{Text: s.Text, Quoted: true}, nil
		}},
		{Module: "string", Name: "unquote", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "unquote")
			if err != nil {
				return nil, err
			}
			return &value.String{Text: s.Text, Quoted: false}, nil
		}},
		{Module: "string", Name: "to-upper-case", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "to-upper-case")
			if err != nil {
				return nil, err
			}
			return &value.String{Text: upper.String(s.Text), Quoted: s.Quoted}, nil
		}},
		{Module: "string", Name: "to-lower-case", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "to-lower-case")
			if err != nil {
				return nil, err
			}
			return &value.String{Text: lower.String(s.Text), Quoted: s.Quoted}, nil
		}},
		{Module: "string", Name: "str-length", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "str-length")
			if err != nil {
				return nil, err
			}
			return value.NewNumber(float64(len([]rune(s.Text)))), nil
		}},
		{Module: "string", Name: "str-slice", MinArgs: 2, MaxArgs: 3, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "str-slice")
			if err != nil {
				return nil, err
			}
			runes := []rune(s.Text)
			start, err := sliceIndex(args, 1, len(runes), "str-slice")
			if err != nil {
				return nil, err
			}
			end := len(runes)
			if len(args) > 2 {
				end, err = sliceIndex(args, 2, len(runes), "str-slice")
				if err != nil {
					return nil, err
				}
				end++
			}
			if start < 0 {
				start = 0
			}
			if end > len(runes) {
				end = len(runes)
			}
			if start >= end {
				return &value.String{Quoted: s.Quoted}, nil
			}
			return &value.String{Text: string(runes[start:end]), Quoted: s.Quoted}, nil
		}},
		{Module: "string", Name: "str-index", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "str-index")
			if err != nil {
				return nil, err
			}
			sub, err := str(args, 1, "str-index")
			if err != nil {
				return nil, err
			}
			idx := strings.Index(s.Text, sub.Text)
			if idx < 0 {
				return value.NullValue, nil
			}
			return value.NewNumber(float64(len([]rune(s.Text[:idx])) + 1)), nil
		}},
		{Module: "string", Name: "str-insert", MinArgs: 3, MaxArgs: 3, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			s, err := str(args, 0, "str-insert")
			if err != nil {
				return nil, err
			}
			ins, err := str(args, 1, "str-insert")
			if err != nil {
				return nil, err
			}
			runes := []rune(s.Text)
			idx, err := sliceIndex(args, 2, len(runes), "str-insert")
			if err != nil {
				return nil, err
			}
			if idx < 0 {
				idx = 0
			}
			if idx > len(runes) {
				idx = len(runes)
			}
			out := string(runes[:idx]) + ins.Text + string(runes[idx:])
			return &value.String{Text: out, Quoted: s.Quoted}, nil
		}},
	}
}

// sliceIndex converts a 1-based (possibly negative) Sass string index
// into a 0-based Go rune index.
func sliceIndex(args []value.Value, i, length int, name string) (int, error) {
	n, err := number(args, i, name)
	if err != nil {
		return 0, err
	}
	idx, err := n.AssertInt(name)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		idx += int64(length) + 1
	}
	return int(idx) - 1, nil
}
