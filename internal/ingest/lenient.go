package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the rendering used for spreadsheet date cells
const DateTimeLayout = "2006-01-02, 15:04"

// parseLenientFloat parses the longest numeric prefix of v.
// Anything that does not start with a number yields 0.
func parseLenientFloat(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case string:
		return floatPrefix(x)
	case fmt.Stringer:
		return floatPrefix(x.String())
	default:
		return 0
	}
}

// parseLenientInt parses the leading integer of v, truncating any fraction
func parseLenientInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return truncate(x)
	case float32:
		return truncate(float64(x))
	case int:
		return x
	case int64:
		return int(x)
	case int32:
		return int(x)
	case uint:
		return int(x)
	case uint64:
		return int(x)
	case string:
		return intPrefix(x)
	case fmt.Stringer:
		return intPrefix(x.String())
	default:
		return 0
	}
}

// stringValue renders a cell as text; blank cells yield ""
func stringValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(DateTimeLayout)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func truncate(f float64) int {
	f = finite(f)
	if f >= 1<<62 || f <= -(1<<62) {
		return 0
	}
	return int(f)
}

// floatPrefix scans [ws][sign]digits[.digits][(e|E)[sign]digits]
func floatPrefix(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n\v\f\u00a0\ufeff")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := i - intStart
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		digits += j - i - 1
		i = j
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

// intPrefix scans [ws][sign]digits
func intPrefix(s string) int {
	s = strings.TrimLeft(s, " \t\r\n\v\f\u00a0\ufeff")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
