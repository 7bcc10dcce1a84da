package homie

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IntegerRange is the "[min]:[max][:step]" format of an integer property.
// Nil bounds are open.
type IntegerRange struct {
	Min  *int64 `yaml:"min,omitempty"`
	Max  *int64 `yaml:"max,omitempty"`
	Step *int64 `yaml:"step,omitempty"`
}

// IntRange returns a closed integer range without a step.
func IntRange(min, max int64) IntegerRange {
	return IntegerRange{Min: &min, Max: &max}
}

// WithStep returns a copy of r with step set.
func (r IntegerRange) WithStep(step int64) IntegerRange {
	r.Step = &step
	return r
}

func (r IntegerRange) String() string {
	if r.Min == nil && r.Max == nil && r.Step == nil {
		return ""
	}
	var b strings.Builder
	if r.Min != nil {
		b.WriteString(strconv.FormatInt(*r.Min, 10))
	}
	b.WriteByte(':')
	if r.Max != nil {
		b.WriteString(strconv.FormatInt(*r.Max, 10))
	}
	if r.Step != nil {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(*r.Step, 10))
	}
	return b.String()
}

func (r IntegerRange) validate() error {
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("min %d greater than max %d", *r.Min, *r.Max)
	}
	if r.Step != nil && *r.Step <= 0 {
		return fmt.Errorf("step %d must be greater than 0", *r.Step)
	}
	return nil
}

// round snaps v onto the step grid. The grid starts at min, else max, else 0.
// Ties round away from the grid base. Offsets are taken in uint64 so values
// near the int64 limits never wrap.
func (r IntegerRange) round(v int64) int64 {
	if r.Step == nil {
		return v
	}
	var base int64
	switch {
	case r.Min != nil:
		base = *r.Min
	case r.Max != nil:
		base = *r.Max
	}
	step := uint64(*r.Step)
	if v >= base {
		n := nearest(uint64(v)-uint64(base), step, uint64(math.MaxInt64)-uint64(base))
		return int64(uint64(base) + n)
	}
	n := nearest(uint64(base)-uint64(v), step, uint64(base)+1<<63)
	return int64(uint64(base) - n)
}

// nearest rounds off to a multiple of step, ties up, without passing limit.
func nearest(off, step, limit uint64) uint64 {
	rem := off % step
	lo := off - rem
	if rem != 0 && rem >= step-rem && step <= limit-lo {
		return lo + step
	}
	return lo
}

// snap is round for a value already known to be inside the range. A grid
// point past max is pulled back one step.
func (r IntegerRange) snap(v int64) int64 {
	s := r.round(v)
	if r.Step != nil && r.Max != nil && s > *r.Max {
		s -= *r.Step
	}
	return s
}

func (r IntegerRange) contains(v int64) bool {
	return (r.Min == nil || v >= *r.Min) && (r.Max == nil || v <= *r.Max)
}

// FloatRange is the "[min]:[max][:step]" format of a float property.
type FloatRange struct {
	Min  *float64 `yaml:"min,omitempty"`
	Max  *float64 `yaml:"max,omitempty"`
	Step *float64 `yaml:"step,omitempty"`
}

// FltRange returns a closed float range without a step.
func FltRange(min, max float64) FloatRange {
	return FloatRange{Min: &min, Max: &max}
}

// WithStep returns a copy of r with step set.
func (r FloatRange) WithStep(step float64) FloatRange {
	r.Step = &step
	return r
}

func (r FloatRange) String() string {
	if r.Min == nil && r.Max == nil && r.Step == nil {
		return ""
	}
	var b strings.Builder
	if r.Min != nil {
		b.WriteString(formatFloat(*r.Min))
	}
	b.WriteByte(':')
	if r.Max != nil {
		b.WriteString(formatFloat(*r.Max))
	}
	if r.Step != nil {
		b.WriteByte(':')
		b.WriteString(formatFloat(*r.Step))
	}
	return b.String()
}

func (r FloatRange) validate() error {
	for _, p := range []*float64{r.Min, r.Max, r.Step} {
		if p != nil && (math.IsNaN(*p) || math.IsInf(*p, 0)) {
			return fmt.Errorf("bound %v is not finite", *p)
		}
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("min %s greater than max %s", formatFloat(*r.Min), formatFloat(*r.Max))
	}
	if r.Step != nil && *r.Step <= 0 {
		return fmt.Errorf("step %s must be greater than 0", formatFloat(*r.Step))
	}
	return nil
}

func (r FloatRange) round(v float64) float64 {
	if r.Step != nil {
		var base float64
		switch {
		case r.Min != nil:
			base = *r.Min
		case r.Max != nil:
			base = *r.Max
		}
		step := *r.Step
		v = base + math.Round((v-base)/step)*step
	}
	return roundPrecision(v)
}

// snap is round for a value already known to be inside the range. A grid
// point past either bound is pulled back one step.
func (r FloatRange) snap(v float64) float64 {
	s := r.round(v)
	if r.Step == nil {
		return s
	}
	if r.Max != nil && s > roundPrecision(*r.Max) {
		s = roundPrecision(s - *r.Step)
	}
	if r.Min != nil && s < roundPrecision(*r.Min) {
		s = roundPrecision(s + *r.Step)
	}
	return s
}

func (r FloatRange) contains(v float64) bool {
	return (r.Min == nil || v >= roundPrecision(*r.Min)) && (r.Max == nil || v <= roundPrecision(*r.Max))
}

// BooleanLabels is the optional "false-label,true-label" format of a boolean property.
type BooleanLabels struct {
	False string
	True  string
}

func (l BooleanLabels) String() string {
	return l.False + "," + l.True
}

// ColorSpace is one of the color formats a color property may accept.
type ColorSpace string

const (
	ColorRGB ColorSpace = "rgb"
	ColorHSV ColorSpace = "hsv"
	ColorXYZ ColorSpace = "xyz"
)

// ColorFormat joins color spaces into a color property format.
func ColorFormat(spaces ...ColorSpace) string {
	s := make([]string, len(spaces))
	for i, c := range spaces {
		s[i] = string(c)
	}
	return strings.Join(s, ",")
}

// EnumFormat joins enum tokens into an enum property format.
func EnumFormat(tokens ...string) string {
	return strings.Join(tokens, ",")
}

// constraint is the parsed form of a datatype/format pair.
type constraint struct {
	dt     Datatype
	ints   IntegerRange
	floats FloatRange
	enum   []string
	colors []ColorSpace
	labels *BooleanLabels
}

// parseFormat checks that format is legal for dt and returns its parsed form.
func parseFormat(dt Datatype, format string) (constraint, error) {
	c := constraint{dt: dt}

	switch dt {
	case DtString, DtDatetime, DtDuration:
		if format != "" {
			return c, fmt.Errorf("datatype %s does not take a format", dt)
		}
	case DtInteger:
		if format == "" {
			return c, nil
		}
		parts, err := splitRange(format)
		if err != nil {
			return c, err
		}
		vals := make([]*int64, 3)
		for i, p := range parts {
			if p == "" {
				continue
			}
			v, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return c, fmt.Errorf("integer format %q: %q is not an integer", format, p)
			}
			vals[i] = &v
		}
		c.ints = IntegerRange{Min: vals[0], Max: vals[1], Step: vals[2]}
		if err := c.ints.validate(); err != nil {
			return c, fmt.Errorf("integer format %q: %w", format, err)
		}
	case DtFloat:
		if format == "" {
			return c, nil
		}
		parts, err := splitRange(format)
		if err != nil {
			return c, err
		}
		vals := make([]*float64, 3)
		for i, p := range parts {
			if p == "" {
				continue
			}
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return c, fmt.Errorf("float format %q: %q is not a number", format, p)
			}
			vals[i] = &v
		}
		c.floats = FloatRange{Min: vals[0], Max: vals[1], Step: vals[2]}
		if err := c.floats.validate(); err != nil {
			return c, fmt.Errorf("float format %q: %w", format, err)
		}
	case DtBoolean:
		if format == "" {
			return c, nil
		}
		labels, err := splitList(format)
		if err != nil {
			return c, fmt.Errorf("boolean format: %w", err)
		}
		if len(labels) != 2 {
			return c, fmt.Errorf("boolean format %q needs exactly two labels", format)
		}
		c.labels = &BooleanLabels{False: labels[0], True: labels[1]}
	case DtEnum:
		tokens, err := splitList(format)
		if err != nil {
			return c, fmt.Errorf("enum format: %w", err)
		}
		c.enum = tokens
	case DtColor:
		tokens, err := splitList(format)
		if err != nil {
			return c, fmt.Errorf("color format: %w", err)
		}
		for _, t := range tokens {
			switch cs := ColorSpace(t); cs {
			case ColorRGB, ColorHSV, ColorXYZ:
				c.colors = append(c.colors, cs)
			default:
				return c, fmt.Errorf("color format: unknown color space %q", t)
			}
		}
	default:
		return c, fmt.Errorf("unknown datatype %d", int(dt))
	}

	return c, nil
}

func splitRange(format string) ([]string, error) {
	parts := strings.Split(format, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("range format %q must be [min]:[max][:step]", format)
	}
	return parts, nil
}

// splitList splits a comma separated token list. Tokens must be non-empty,
// unique and free of surrounding white space.
func splitList(format string) ([]string, error) {
	if format == "" {
		return nil, fmt.Errorf("empty list")
	}
	tokens := strings.Split(format, ",")
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if t == "" {
			return nil, fmt.Errorf("empty token in %q", format)
		}
		if strings.TrimSpace(t) != t {
			return nil, fmt.Errorf("token %q has surrounding white space", t)
		}
		if seen[t] {
			return nil, fmt.Errorf("duplicate token %q", t)
		}
		seen[t] = true
	}
	return tokens, nil
}

func (c constraint) hasEnum(token string) bool {
	for _, t := range c.enum {
		if t == token {
			return true
		}
	}
	return false
}

func (c constraint) hasColor(cs ColorSpace) bool {
	for _, t := range c.colors {
		if t == cs {
			return true
		}
	}
	return false
}
