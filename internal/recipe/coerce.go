package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// Coerce turns a textual selection key into the value a caller would pass
// for it: "true"/"false" become booleans, numeric text becomes a number and
// everything else stays a string. The empty string stays a string.
func Coerce(key string) Value {
	if key == "true" || key == "false" {
		return Bool(key == "true")
	}
	if key == "" {
		return String(key)
	}
	if n, ok := parseNumber(key); ok {
		return Number(n)
	}
	return String(key)
}

// parseNumber follows JavaScript's Number(text) for finite results.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			digits := s[2:]
			if strings.ContainsRune(digits, '_') {
				return 0, false
			}
			u, err := strconv.ParseUint(digits, base, 64)
			if err != nil {
				return 0, false
			}
			return float64(u), true
		}
	}

	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
