package homie

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeInteger(t *testing.T) {
	tests := []struct {
		format string
		value  any
		want   string
		err    error
	}{
		{"", 42, "42", nil},
		{"", int64(-7), "-7", nil},
		{"0:100", 0, "0", nil},
		{"0:100", 100, "100", nil},
		{"0:100", 150, "", ErrOutOfRange},
		{"0:100", -1, "", ErrOutOfRange},
		{"0:100:5", 12, "10", nil},
		{"0:100:5", 13, "15", nil},
		{"1:", 0, "", ErrOutOfRange},
		{":10:3", 6, "7", nil},
		{"0:10:4", -1, "", ErrOutOfRange},
		{"0:10:4", 10, "8", nil},
		{"0:10:4", 9, "8", nil},
		{"0:10:4", 6, "8", nil},
		{"", uint64(1 << 63), "", ErrOutOfRange},
		{"", 1.5, "", ErrTypeMismatch},
		{"", "1", "", ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.format, tt.value), func(t *testing.T) {
			got, err := Encode(DtInteger, tt.format, tt.value)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeFloat(t *testing.T) {
	tests := []struct {
		format string
		value  any
		want   string
		err    error
	}{
		{"", 21.5, "21.5", nil},
		{"", 20, "20", nil},
		{"", 1.0 / 3, "0.333333", nil},
		{"", 2.0000004, "2", nil},
		{"5:32:0.5", 21.3, "21.5", nil},
		{"5:32:0.5", 4.9, "", ErrOutOfRange},
		{"5:32:0.5", 31.9, "32", nil},
		{"0:100:1", -0.4, "", ErrOutOfRange},
		{"0:10:4", 9.9, "8", nil},
		{"5:32:0.5", 40.0, "", ErrOutOfRange},
		{"0:", -0.0000001, "0", nil},
		{"", true, "", ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.format, tt.value), func(t *testing.T) {
			got, err := Encode(DtFloat, tt.format, tt.value)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloatRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.5, -12.25, 1013.123456, 99.999999} {
		wire, err := Encode(DtFloat, "-100:2000", v)
		require.NoError(t, err)
		back, err := Decode(DtFloat, "-100:2000", wire)
		require.NoError(t, err)
		assert.InDelta(t, v, back.(float64), 1e-6, wire)
	}
}

func TestIntegerRange(t *testing.T) {
	const format = "-10:10"
	for v := int64(-10); v <= 10; v++ {
		wire, err := Encode(DtInteger, format, v)
		require.NoError(t, err)
		back, err := Decode(DtInteger, format, wire)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
	for _, v := range []int64{-11, 11, 1000} {
		_, err := Encode(DtInteger, format, v)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func bound(v int64) *int64 { return &v }

func TestIntegerStepNearLimits(t *testing.T) {
	tests := []struct {
		r    IntegerRange
		v    int64
		want int64
	}{
		{IntegerRange{Min: bound(math.MinInt64 + 1)}.WithStep(10), math.MaxInt64 - 3, math.MaxInt64 - 4},
		{IntegerRange{Min: bound(-4)}.WithStep(4), math.MaxInt64, math.MaxInt64 - 3},
		{IntegerRange{Max: bound(math.MaxInt64)}.WithStep(3), math.MinInt64 + 1, math.MinInt64},
		{IntegerRange{}.WithStep(2), math.MinInt64 + 1, math.MinInt64},
		{IntegerRange{}.WithStep(2), math.MaxInt64, math.MaxInt64 - 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.r, tt.v), func(t *testing.T) {
			got, err := Encode(DtInteger, tt.r.String(), tt.v)
			require.NoError(t, err)
			assert.Equal(t, strconv.FormatInt(tt.want, 10), got)
		})
	}
}

type mode int

func (m mode) String() string { return [...]string{"auto", "manual"}[m] }

func TestEnum(t *testing.T) {
	const format = "open,close,stop"
	for _, tok := range []string{"open", "close", "stop"} {
		wire, err := Encode(DtEnum, format, tok)
		require.NoError(t, err)
		assert.Equal(t, tok, wire)

		back, err := Decode(DtEnum, format, wire)
		require.NoError(t, err)
		assert.Equal(t, tok, back)
	}

	_, err := Encode(DtEnum, format, "jump")
	assert.ErrorIs(t, err, ErrInvalidEnum)

	_, err = Decode(DtEnum, format, "jump")
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = Decode(DtEnum, format, "Open")
	assert.ErrorIs(t, err, ErrConstraintViolation)

	wire, err := Encode(DtEnum, "auto,manual", mode(1))
	require.NoError(t, err)
	assert.Equal(t, "manual", wire)
}

func TestBoolean(t *testing.T) {
	wire, err := Encode(DtBoolean, "off,on", true)
	require.NoError(t, err)
	assert.Equal(t, "true", wire)

	v, err := Decode(DtBoolean, "", "false")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	for _, bad := range []string{"", "1", "TRUE", "on"} {
		_, err := Decode(DtBoolean, "off,on", bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}

	_, err = Encode(DtBoolean, "", 1)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestColor(t *testing.T) {
	wire, err := Encode(DtColor, "rgb,hsv", RGB{R: 255, G: 128})
	require.NoError(t, err)
	assert.Equal(t, "rgb,255,128,0", wire)

	wire, err = Encode(DtColor, "hsv", HSV{H: 120, S: 50, V: 100})
	require.NoError(t, err)
	assert.Equal(t, "hsv,120,50,100", wire)

	_, err = Encode(DtColor, "hsv", HSV{H: 400})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Encode(DtColor, "rgb", XYZ{X: 0.3, Y: 0.3})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	v, err := Decode(DtColor, "rgb", "rgb,1,2,3")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 1, G: 2, B: 3}, v)

	v, err = Decode(DtColor, "xyz", "xyz,0.25,0.5")
	require.NoError(t, err)
	assert.Equal(t, XYZ{X: 0.25, Y: 0.5}, v)

	_, err = Decode(DtColor, "rgb", "rgb,1,2")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(DtColor, "rgb", "rgb,1,2,300")
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = Decode(DtColor, "rgb", "hsv,1,2,3")
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = Decode(DtColor, "xyz", "xyz,0.7,0.7")
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestDatetime(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("CET", 3600))
	wire, err := Encode(DtDatetime, "", ts)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T02:04:05.006Z", wire)

	v, err := Decode(DtDatetime, "", wire)
	require.NoError(t, err)
	assert.True(t, ts.Equal(v.(time.Time)))

	_, err = Decode(DtDatetime, "", "yesterday")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		wire string
	}{
		{0, "PT0S"},
		{90 * time.Minute, "PT1H30M"},
		{1500 * time.Millisecond, "PT1.5S"},
		{26*time.Hour + 5*time.Second, "PT26H5S"},
		{2562047*time.Hour + 47*time.Minute, "PT2562047H47M"},
	}
	for _, tt := range tests {
		wire, err := Encode(DtDuration, "", tt.d)
		require.NoError(t, err)
		assert.Equal(t, tt.wire, wire)

		back, err := Decode(DtDuration, "", tt.wire)
		require.NoError(t, err)
		assert.Equal(t, tt.d, back)
	}

	_, err := Encode(DtDuration, "", -time.Second)
	assert.ErrorIs(t, err, ErrOutOfRange)

	for _, bad := range []string{"", "PT", "P1D", "PT5M1H", "PT1.5H", "PT-1S", "PTNaNS", "1H",
		"PT4000000H", "PT1e300S", "PT2562047H48M", "PT2562047H47M17S"} {
		_, err := Decode(DtDuration, "", bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}

func TestString(t *testing.T) {
	wire, err := Encode(DtString, "", "hello, world")
	require.NoError(t, err)
	assert.Equal(t, "hello, world", wire)

	_, err = Encode(DtString, "", string([]byte{0xff}))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Decode(DtString, "", string([]byte{0xff}))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseFormat(t *testing.T) {
	bad := []struct {
		dt     Datatype
		format string
	}{
		{DtInteger, "10:0"},
		{DtInteger, "0:10:0"},
		{DtInteger, "0:10:-1"},
		{DtInteger, "a:b"},
		{DtInteger, "5"},
		{DtInteger, "1:2:3:4"},
		{DtFloat, "1.5:1.0"},
		{DtEnum, ""},
		{DtEnum, "a,,b"},
		{DtEnum, "a,b,a"},
		{DtEnum, "a, b"},
		{DtBoolean, "on"},
		{DtBoolean, "on,on"},
		{DtColor, ""},
		{DtColor, "cmyk"},
		{DtString, "x"},
		{DtDatetime, "x"},
		{Datatype(42), ""},
	}
	for _, tt := range bad {
		_, err := parseFormat(tt.dt, tt.format)
		assert.Error(t, err, "%s %q", tt.dt, tt.format)
	}

	good := []struct {
		dt     Datatype
		format string
	}{
		{DtInteger, ""},
		{DtInteger, "0:"},
		{DtInteger, ":0"},
		{DtInteger, "0:100:1"},
		{DtFloat, "5:32:0.5"},
		{DtBoolean, "off,on"},
		{DtEnum, "no water,water detected"},
		{DtColor, "rgb,hsv,xyz"},
	}
	for _, tt := range good {
		_, err := parseFormat(tt.dt, tt.format)
		assert.NoError(t, err, "%s %q", tt.dt, tt.format)
	}
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "0:100", IntRange(0, 100).String())
	assert.Equal(t, "5:32:0.5", FltRange(5, 32).WithStep(0.5).String())
	assert.Equal(t, "", IntegerRange{}.String())

	lo := int64(0)
	assert.Equal(t, "0:", IntegerRange{Min: &lo}.String())
}

func TestEncodeErrorUnwrap(t *testing.T) {
	_, err := Encode(DtInteger, "0:10", 11)
	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, EncodeOutOfRange, ee.Kind)
	assert.Equal(t, 11, ee.Value)
}
