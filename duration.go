package homie

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// formatDuration renders d as an ISO 8601 "PT#H#M#S" duration.
func formatDuration(d time.Duration) string {
	var b strings.Builder
	b.WriteString("PT")

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute

	if h > 0 {
		b.WriteString(strconv.FormatInt(int64(h), 10))
		b.WriteByte('H')
	}
	if m > 0 {
		b.WriteString(strconv.FormatInt(int64(m), 10))
		b.WriteByte('M')
	}
	if d > 0 || (h == 0 && m == 0) {
		b.WriteString(strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
		b.WriteByte('S')
	}
	return b.String()
}

var errDurationOverflow = errors.New("duration does not fit int64 nanoseconds")

// parseDuration accepts "PT#H#M#S" with each part optional but in order,
// at least one part present, and a fraction only on seconds.
func parseDuration(s string) (time.Duration, error) {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok || rest == "" {
		return 0, fmt.Errorf("duration must look like PT#H#M#S")
	}

	var total time.Duration
	order := "HMS"
	for rest != "" {
		i := strings.IndexAny(rest, "HMS")
		if i <= 0 {
			return 0, fmt.Errorf("missing number or unit in duration")
		}
		num, unit := rest[:i], rest[i]
		rest = rest[i+1:]

		pos := strings.IndexByte(order, unit)
		if pos < 0 {
			return 0, fmt.Errorf("unit %c out of order or repeated", unit)
		}
		order = order[pos+1:]

		var add time.Duration
		if unit != 'S' {
			n, err := strconv.ParseUint(num, 10, 32)
			if err != nil {
				return 0, fmt.Errorf("bad %c component %q", unit, num)
			}
			u := time.Minute
			if unit == 'H' {
				u = time.Hour
			}
			if n > uint64(math.MaxInt64/u) {
				return 0, errDurationOverflow
			}
			add = time.Duration(n) * u
		} else {
			if strings.HasPrefix(num, "-") || strings.HasPrefix(num, "+") {
				return 0, fmt.Errorf("bad seconds component %q", num)
			}
			f, err := strconv.ParseFloat(num, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, fmt.Errorf("bad seconds component %q", num)
			}
			if f > float64(math.MaxInt64/time.Second) {
				return 0, errDurationOverflow
			}
			add = time.Duration(f * float64(time.Second))
		}
		if add > math.MaxInt64-total {
			return 0, errDurationOverflow
		}
		total += add
	}
	return total, nil
}
