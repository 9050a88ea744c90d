package builtin

import "github.com/titpetric/sassgo/value"

// Grounded on functions/colors.go's RGB/RGBA/HSL/HSLA constructors and
// channel-extraction functions, and registry.go's lighten/darken/
// saturate/desaturate/spin/mix wrappers around expression/color.go's
// Color methods -- generalized to operate on value.Color directly
// (RGB-canonical, HSL computed on demand) instead of re-parsing a
// color string on every call.
func colorFunctions() []*Entry {
	channel := func(name string, fn func(*value.Color) float64, unit string) *Entry {
		return &Entry{Module: "color", Name: name, MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			c, err := color(args, 0, name)
			if err != nil {
				return nil, err
			}
			return value.NewNumberUnit(fn(c), unit), nil
		}}
	}

	return []*Entry{
		{Module: "color", Name: "rgb", MinArgs: 3, MaxArgs: 4, Fn: func(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
			return rgbFromArgs(args, kwargs)
		}},
		{Module: "color", Name: "rgba", MinArgs: 3, MaxArgs: 4, Fn: func(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
			return rgbFromArgs(args, kwargs)
		}},
		{Module: "color", Name: "hsl", MinArgs: 3, MaxArgs: 4, Fn: func(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
			return hslFromArgs(args, kwargs)
		}},
		{Module: "color", Name: "hsla", MinArgs: 3, MaxArgs: 4, Fn: func(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
			return hslFromArgs(args, kwargs)
		}},
		channel("red", func(c *value.Color) float64 { return float64(c.R) }, ""),
		channel("green", func(c *value.Color) float64 { return float64(c.G) }, ""),
		channel("blue", func(c *value.Color) float64 { return float64(c.B) }, ""),
		channel("alpha", func(c *value.Color) float64 { return c.A }, ""),
		channel("hue", (*value.Color).Hue, "deg"),
		channel("saturation", (*value.Color).Saturation, "%"),
		channel("lightness", (*value.Color).Lightness, "%"),
		{Module: "color", Name: "mix", MinArgs: 2, MaxArgs: 3, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			c1, err := color(args, 0, "mix")
			if err != nil {
				return nil, err
			}
			c2, err := color(args, 1, "mix")
			if err != nil {
				return nil, err
			}
			weight := optionalNumber(args, 2, 50) / 100
			return mixColors(c1, c2, weight), nil
		}},
		{Module: "color", Name: "lighten", MinArgs: 2, MaxArgs: 2, Fn: adjustLightness(1)},
		{Module: "color", Name: "darken", MinArgs: 2, MaxArgs: 2, Fn: adjustLightness(-1)},
		{Module: "color", Name: "saturate", MinArgs: 2, MaxArgs: 2, Fn: adjustSaturation(1)},
		{Module: "color", Name: "desaturate", MinArgs: 2, MaxArgs: 2, Fn: adjustSaturation(-1)},
		{Module: "color", Name: "adjust-hue", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			c, err := color(args, 0, "adjust-hue")
			if err != nil {
				return nil, err
			}
			deg, err := number(args, 1, "adjust-hue")
			if err != nil {
				return nil, err
			}
			h, s, l := c.HSL()
			return value.ColorFromHSL(h+deg.Val, s, l, c.A), nil
		}},
		{Module: "color", Name: "invert", MinArgs: 1, MaxArgs: 2, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			c, err := color(args, 0, "invert")
			if err != nil {
				return nil, err
			}
			weight := optionalNumber(args, 1, 100) / 100
			inverted := value.ColorFromRGB(255-int(c.R), 255-int(c.G), 255-int(c.B), c.A)
			return mixColors(inverted, c, weight), nil
		}},
		{Module: "color", Name: "grayscale", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			c, err := color(args, 0, "grayscale")
			if err != nil {
				return nil, err
			}
			h, _, l := c.HSL()
			return value.ColorFromHSL(h, 0, l, c.A), nil
		}},
		{Module: "color", Name: "complement", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			c, err := color(args, 0, "complement")
			if err != nil {
				return nil, err
			}
			h, s, l := c.HSL()
			return value.ColorFromHSL(h+180, s, l, c.A), nil
		}},
		{Module: "color", Name: "opacify", MinArgs: 2, MaxArgs: 2, Fn: adjustAlpha(1)},
		{Module: "color", Name: "fade-in", MinArgs: 2, MaxArgs: 2, Fn: adjustAlpha(1)},
		{Module: "color", Name: "transparentize", MinArgs: 2, MaxArgs: 2, Fn: adjustAlpha(-1)},
		{Module: "color", Name: "fade-out", MinArgs: 2, MaxArgs: 2, Fn: adjustAlpha(-1)},
	}
}

func adjustLightness(sign float64) Func {
	return func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := color(args, 0, "lighten")
		if err != nil {
			return nil, err
		}
		amount, err := number(args, 1, "lighten")
		if err != nil {
			return nil, err
		}
		h, s, l := c.HSL()
		l += sign * amount.Val / 100
		if l < 0 {
			l = 0
		}
		if l > 1 {
			l = 1
		}
		return value.ColorFromHSL(h, s, l, c.A), nil
	}
}

func adjustSaturation(sign float64) Func {
	return func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := color(args, 0, "saturate")
		if err != nil {
			return nil, err
		}
		amount, err := number(args, 1, "saturate")
		if err != nil {
			return nil, err
		}
		h, s, l := c.HSL()
		s += sign * amount.Val / 100
		if s < 0 {
			s = 0
		}
		if s > 1 {
			s = 1
		}
		return value.ColorFromHSL(h, s, l, c.A), nil
	}
}

func adjustAlpha(sign float64) Func {
	return func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := color(args, 0, "opacify")
		if err != nil {
			return nil, err
		}
		amount, err := number(args, 1, "opacify")
		if err != nil {
			return nil, err
		}
		a := c.A + sign*amount.Val
		if a < 0 {
			a = 0
		}
		if a > 1 {
			a = 1
		}
		return c.WithAlpha(a), nil
	}
}

func mixColors(c1, c2 *value.Color, weight float64) *value.Color {
	w := weight*2 - 1
	aDelta := c1.A - c2.A
	var w1 float64
	if w*aDelta == -1 {
		w1 = w
	} else {
		w1 = (w+aDelta)/(1+w*aDelta) + 1
		w1 /= 2
	}
	w2 := 1 - w1
	r := int(float64(c1.R)*w1 + float64(c2.R)*w2)
	g := int(float64(c1.G)*w1 + float64(c2.G)*w2)
	b := int(float64(c1.B)*w1 + float64(c2.B)*w2)
	a := c1.A*weight + c2.A*(1-weight)
	return value.ColorFromRGB(r, g, b, a)
}

func rgbFromArgs(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	r, err := number(args, 0, "rgb")
	if err != nil {
		return nil, err
	}
	g, err := number(args, 1, "rgb")
	if err != nil {
		return nil, err
	}
	b, err := number(args, 2, "rgb")
	if err != nil {
		return nil, err
	}
	alpha := 1.0
	if a, ok := kwargs["alpha"]; ok {
		if n, ok := a.(*value.Number); ok {
			alpha = n.Val
		}
	} else if len(args) > 3 {
		if n, ok := args[3].(*value.Number); ok {
			alpha = n.Val
		}
	}
	return value.ColorFromRGB(int(r.Val), int(g.Val), int(b.Val), alpha), nil
}

func hslFromArgs(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	h, err := number(args, 0, "hsl")
	if err != nil {
		return nil, err
	}
	s, err := number(args, 1, "hsl")
	if err != nil {
		return nil, err
	}
	l, err := number(args, 2, "hsl")
	if err != nil {
		return nil, err
	}
	alpha := 1.0
	if a, ok := kwargs["alpha"]; ok {
		if n, ok := a.(*value.Number); ok {
			alpha = n.Val
		}
	} else if len(args) > 3 {
		if n, ok := args[3].(*value.Number); ok {
			alpha = n.Val
		}
	}
	return value.ColorFromHSL(h.Val, s.Val/100, l.Val/100, alpha), nil
}
