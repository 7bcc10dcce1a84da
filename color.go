package homie

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a value of a color property. The wire form is prefixed with the
// color space, e.g. "rgb,255,128,0".
type Color interface {
	Space() ColorSpace
	String() string
	check() error
}

// RGB color, each channel 0-255.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Space() ColorSpace { return ColorRGB }

func (c RGB) String() string {
	return fmt.Sprintf("rgb,%d,%d,%d", c.R, c.G, c.B)
}

func (c RGB) check() error { return nil }

// HSV color, hue 0-360, saturation and value 0-100.
type HSV struct {
	H, S, V int
}

func (c HSV) Space() ColorSpace { return ColorHSV }

func (c HSV) String() string {
	return fmt.Sprintf("hsv,%d,%d,%d", c.H, c.S, c.V)
}

func (c HSV) check() error {
	if c.H < 0 || c.H > 360 {
		return fmt.Errorf("hue %d not in 0-360", c.H)
	}
	if c.S < 0 || c.S > 100 || c.V < 0 || c.V > 100 {
		return fmt.Errorf("saturation/value %d/%d not in 0-100", c.S, c.V)
	}
	return nil
}

// XYZ is a CIE 1931 color given by its x and y chromaticity; z is implied.
type XYZ struct {
	X, Y float64
}

func (c XYZ) Space() ColorSpace { return ColorXYZ }

func (c XYZ) String() string {
	return "xyz," + formatFloat(c.X) + "," + formatFloat(c.Y)
}

func (c XYZ) check() error {
	if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 {
		return fmt.Errorf("x/y %v/%v not in 0-1", c.X, c.Y)
	}
	if c.X+c.Y > 1 {
		return fmt.Errorf("x+y %v exceeds 1", c.X+c.Y)
	}
	return nil
}

// ParseColor parses the wire form of a color. Range problems are reported
// separately from syntax problems so callers can tell them apart.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	switch ColorSpace(parts[0]) {
	case ColorRGB:
		if len(parts) != 4 {
			return nil, &DecodeError{Kind: DecodeMalformed, Payload: s, Detail: "rgb needs 3 channels"}
		}
		var ch [3]int
		for i := range ch {
			v, err := strconv.Atoi(parts[i+1])
			if err != nil {
				return nil, &DecodeError{Kind: DecodeMalformed, Payload: s, Detail: "rgb channel is not an integer"}
			}
			if v < 0 || v > 255 {
				return nil, &DecodeError{Kind: DecodeConstraintViolation, Payload: s, Detail: "rgb channel not in 0-255"}
			}
			ch[i] = v
		}
		return RGB{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2])}, nil
	case ColorHSV:
		if len(parts) != 4 {
			return nil, &DecodeError{Kind: DecodeMalformed, Payload: s, Detail: "hsv needs 3 components"}
		}
		var ch [3]int
		for i := range ch {
			v, err := strconv.Atoi(parts[i+1])
			if err != nil {
				return nil, &DecodeError{Kind: DecodeMalformed, Payload: s, Detail: "hsv component is not an integer"}
			}
			ch[i] = v
		}
		c := HSV{H: ch[0], S: ch[1], V: ch[2]}
		if err := c.check(); err != nil {
			return nil, &DecodeError{Kind: DecodeConstraintViolation, Payload: s, Detail: err.Error()}
		}
		return c, nil
	case ColorXYZ:
		if len(parts) != 3 {
			return nil, &DecodeError{Kind: DecodeMalformed, Payload: s, Detail: "xyz needs x and y"}
		}
		x, errX := strconv.ParseFloat(parts[1], 64)
		y, errY := strconv.ParseFloat(parts[2], 64)
		if errX != nil || errY != nil {
			return nil, &DecodeError{Kind: DecodeMalformed, Payload: s, Detail: "xyz component is not a number"}
		}
		c := XYZ{X: x, Y: y}
		if err := c.check(); err != nil {
			return nil, &DecodeError{Kind: DecodeConstraintViolation, Payload: s, Detail: err.Error()}
		}
		return c, nil
	}
	return nil, &DecodeError{Kind: DecodeMalformed, Payload: s, Detail: "unknown color space"}
}
