package stream

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// KeyString converts an event in key position to the string form used by
// formats whose keys are always strings. Null and non-finite float keys
// have no such form.
func KeyString(e *Event) (string, error) {
	switch e.Type {
	case EventKey:
		return e.Key, nil
	case EventString:
		return e.String, nil
	case EventInt:
		return strconv.FormatInt(e.Int, 10), nil
	case EventUint:
		return strconv.FormatUint(e.Uint, 10), nil
	case EventBool:
		return strconv.FormatBool(e.Bool), nil
	case EventFloat:
		if math.IsNaN(e.Float) || math.IsInf(e.Float, 0) {
			return "", fmt.Errorf("%w: %s key %v", ErrUnsupportedKeyType, e.Type, e.Float)
		}
		return FormatFloat(e.Float), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKeyType, e.Type)
	}
}

// FormatFloat formats a finite float so that it parses back as a float,
// never as an integer: 1 is written "1.0". Very large and very small
// magnitudes use exponent notation.
func FormatFloat(f float64) string {
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}
	s := strconv.FormatFloat(f, fmt, -1, 64)
	if fmt == 'e' {
		// clean up e-09 to e-9
		n := len(s)
		if n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
