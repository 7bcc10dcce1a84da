package homie

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"
)

// Wire format for datetime values.
const DatetimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Encode converts a typed value to the wire representation of a property with
// the given datatype and format.
//
// Accepted Go types: bool (boolean), any integer type (integer, float),
// float32/float64 (float), string (string, enum), fmt.Stringer (enum),
// RGB/HSV/XYZ (color), time.Time (datetime), time.Duration (duration).
func Encode(dt Datatype, format string, value any) (string, error) {
	c, err := parseFormat(dt, format)
	if err != nil {
		return "", &EncodeError{Kind: EncodeTypeMismatch, Value: value, Detail: err.Error()}
	}
	return c.encode(value)
}

// Decode converts a wire payload back to a typed value: bool, int64, float64,
// string, Color, time.Time or time.Duration depending on datatype.
func Decode(dt Datatype, format string, payload string) (any, error) {
	c, err := parseFormat(dt, format)
	if err != nil {
		return nil, &DecodeError{Kind: DecodeConstraintViolation, Payload: payload, Detail: err.Error()}
	}
	return c.decode(payload)
}

func (c constraint) encode(value any) (string, error) {
	mismatch := func() (string, error) {
		return "", &EncodeError{Kind: EncodeTypeMismatch, Value: value, Detail: fmt.Sprintf("%T for %s", value, c.dt)}
	}

	switch c.dt {
	case DtBoolean:
		b, ok := value.(bool)
		if !ok {
			return mismatch()
		}
		return strconv.FormatBool(b), nil

	case DtInteger:
		v, ok, inRange := toInt64(value)
		if !ok {
			return mismatch()
		}
		if !inRange {
			return "", &EncodeError{Kind: EncodeOutOfRange, Value: value, Detail: "does not fit int64"}
		}
		if !c.ints.contains(v) {
			return "", &EncodeError{Kind: EncodeOutOfRange, Value: value, Detail: "outside " + c.ints.String()}
		}
		return strconv.FormatInt(c.ints.snap(v), 10), nil

	case DtFloat:
		f, ok := toFloat64(value)
		if !ok {
			return mismatch()
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", &EncodeError{Kind: EncodeOutOfRange, Value: value, Detail: "not a finite number"}
		}
		if !c.floats.contains(roundPrecision(f)) {
			return "", &EncodeError{Kind: EncodeOutOfRange, Value: value, Detail: "outside " + c.floats.String()}
		}
		return formatFloat(c.floats.snap(f)), nil

	case DtString:
		s, ok := value.(string)
		if !ok {
			return mismatch()
		}
		if !utf8.ValidString(s) {
			return "", &EncodeError{Kind: EncodeTypeMismatch, Value: value, Detail: "invalid UTF-8"}
		}
		return s, nil

	case DtEnum:
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case fmt.Stringer:
			s = v.String()
		default:
			return mismatch()
		}
		if !c.hasEnum(s) {
			return "", &EncodeError{Kind: EncodeInvalidEnum, Value: value, Detail: "allowed " + EnumFormat(c.enum...)}
		}
		return s, nil

	case DtColor:
		col, ok := value.(Color)
		if !ok {
			return mismatch()
		}
		if !c.hasColor(col.Space()) {
			return "", &EncodeError{Kind: EncodeTypeMismatch, Value: value, Detail: fmt.Sprintf("color space %s not in %s", col.Space(), ColorFormat(c.colors...))}
		}
		if err := col.check(); err != nil {
			return "", &EncodeError{Kind: EncodeOutOfRange, Value: value, Detail: err.Error()}
		}
		return col.String(), nil

	case DtDatetime:
		t, ok := value.(time.Time)
		if !ok {
			return mismatch()
		}
		return t.UTC().Format(DatetimeLayout), nil

	case DtDuration:
		d, ok := value.(time.Duration)
		if !ok {
			return mismatch()
		}
		if d < 0 {
			return "", &EncodeError{Kind: EncodeOutOfRange, Value: value, Detail: "negative duration"}
		}
		return formatDuration(d), nil
	}

	return mismatch()
}

func (c constraint) decode(payload string) (any, error) {
	malformed := func(detail string) (any, error) {
		return nil, &DecodeError{Kind: DecodeMalformed, Payload: payload, Detail: detail}
	}
	violation := func(detail string) (any, error) {
		return nil, &DecodeError{Kind: DecodeConstraintViolation, Payload: payload, Detail: detail}
	}

	switch c.dt {
	case DtBoolean:
		switch payload {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return malformed("boolean must be true or false")

	case DtInteger:
		v, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return malformed("not an integer")
		}
		v = c.ints.round(v)
		if !c.ints.contains(v) {
			return violation("outside " + c.ints.String())
		}
		return v, nil

	case DtFloat:
		f, err := strconv.ParseFloat(payload, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return malformed("not a finite number")
		}
		f = c.floats.round(f)
		if !c.floats.contains(f) {
			return violation("outside " + c.floats.String())
		}
		return f, nil

	case DtString:
		if !utf8.ValidString(payload) {
			return malformed("invalid UTF-8")
		}
		return payload, nil

	case DtEnum:
		if !c.hasEnum(payload) {
			return violation("allowed " + EnumFormat(c.enum...))
		}
		return payload, nil

	case DtColor:
		col, err := ParseColor(payload)
		if err != nil {
			return nil, err
		}
		if !c.hasColor(col.Space()) {
			return violation(fmt.Sprintf("color space %s not in %s", col.Space(), ColorFormat(c.colors...)))
		}
		return col, nil

	case DtDatetime:
		t, err := time.Parse(time.RFC3339Nano, payload)
		if err != nil {
			return malformed("not an RFC 3339 datetime")
		}
		return t, nil

	case DtDuration:
		d, err := parseDuration(payload)
		if err != nil {
			return malformed(err.Error())
		}
		return d, nil
	}

	return malformed("unknown datatype")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(roundPrecision(f), 'f', -1, 64)
}

func roundPrecision(f float64) float64 {
	const scale = 1e6 // 10^FloatPrecision
	r := math.Round(f*scale) / scale
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return f
	}
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// toInt64 reports the value, whether it is an integer type at all, and whether
// it fits into int64.
func toInt64(v any) (int64, bool, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true, true
	case int8:
		return int64(n), true, true
	case int16:
		return int64(n), true, true
	case int32:
		return int64(n), true, true
	case int64:
		return n, true, true
	case uint:
		return int64(n), true, uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true, true
	case uint16:
		return int64(n), true, true
	case uint32:
		return int64(n), true, true
	case uint64:
		return int64(n), true, n <= math.MaxInt64
	default:
		return 0, false, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok, _ := toInt64(v); ok {
		if u, isU := v.(uint64); isU {
			return float64(u), true
		}
		if u, isU := v.(uint); isU {
			return float64(u), true
		}
		return float64(i), true
	}
	return 0, false
}
