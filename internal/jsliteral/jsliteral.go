// Package jsliteral renders and decodes JavaScript literal text.
//
// Strings are quoted with JSON encoding, which produces the same text as
// JSON.stringify and is always a valid JavaScript string literal.
package jsliteral

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-json-experiment/json"
)

// Quote returns s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	b, err := json.Marshal(strings.ToValidUTF8(s, "\uFFFD"))
	if err != nil {
		// unreachable for valid UTF-8 input
		return strconv.Quote(s)
	}
	return string(b)
}

// Number renders f the way JavaScript's Number.prototype.toString does.
func Number(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	b, err := json.Marshal(f)
	if err != nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return string(b)
}

// UnquoteJSON decodes body as the contents of a JSON string literal.
func UnquoteJSON(body string) (string, error) {
	var out string
	if err := json.Unmarshal([]byte(`"`+body+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}

// ErrUnterminatedEscape is returned when body ends with a lone backslash.
var ErrUnterminatedEscape = errors.New("unterminated escape sequence")

// Unescape decodes the body of a JavaScript string (quote is ' or ") or
// no-substitution template (quote is `) literal into its cooked value.
func Unescape(body string, quote byte) (string, error) {
	if strings.IndexByte(body, '\\') < 0 && (quote != '`' || strings.IndexByte(body, '\r') < 0) {
		return body, nil
	}

	template := quote == '`'
	var sb strings.Builder
	sb.Grow(len(body))

	// pending high surrogate from a \u escape
	var high rune = -1
	flush := func() {
		if high >= 0 {
			sb.WriteRune(utf8.RuneError)
			high = -1
		}
	}
	writeUnit := func(r rune) {
		if high >= 0 {
			if utf16.IsSurrogate(r) && r >= 0xDC00 {
				sb.WriteRune(utf16.DecodeRune(high, r))
				high = -1
				return
			}
			flush()
		}
		if r >= 0xD800 && r < 0xDC00 {
			high = r
			return
		}
		if utf16.IsSurrogate(r) {
			sb.WriteRune(utf8.RuneError)
			return
		}
		sb.WriteRune(r)
	}

	for i := 0; i < len(body); {
		c := body[i]
		if c == '\r' && template {
			flush()
			sb.WriteByte('\n')
			i++
			if i < len(body) && body[i] == '\n' {
				i++
			}
			continue
		}
		if c != '\\' {
			flush()
			r, size := utf8.DecodeRuneInString(body[i:])
			sb.WriteRune(r)
			i += size
			continue
		}

		i++
		if i >= len(body) {
			return "", ErrUnterminatedEscape
		}
		c = body[i]
		switch c {
		case 'n':
			writeUnit('\n')
			i++
		case 't':
			writeUnit('\t')
			i++
		case 'r':
			writeUnit('\r')
			i++
		case 'b':
			writeUnit('\b')
			i++
		case 'f':
			writeUnit('\f')
			i++
		case 'v':
			writeUnit('\v')
			i++
		case '\r':
			// line continuation
			flush()
			i++
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case '\n':
			flush()
			i++
		case 'x':
			v, ok := parseHex(body, i+1, i+3)
			if !ok {
				return "", fmt.Errorf("invalid hexadecimal escape at offset %d", i-1)
			}
			writeUnit(v)
			i += 3
		case 'u':
			v, n, err := parseUnicodeEscape(body, i+1)
			if err != nil {
				return "", fmt.Errorf("%w at offset %d", err, i-1)
			}
			writeUnit(v)
			i += 1 + n
		case '0', '1', '2', '3', '4', '5', '6', '7':
			next := byte(0)
			if i+1 < len(body) {
				next = body[i+1]
			}
			if c == '0' && (next < '0' || next > '9') {
				writeUnit(0)
				i++
				continue
			}
			if template {
				return "", fmt.Errorf("octal escape sequence in template at offset %d", i-1)
			}
			limit := 3
			if c > '3' {
				limit = 2
			}
			j := i
			var v rune
			for j < len(body) && j-i < limit && body[j] >= '0' && body[j] <= '7' {
				v = v*8 + rune(body[j]-'0')
				j++
			}
			writeUnit(v)
			i = j
		case '8', '9':
			if template {
				return "", fmt.Errorf("invalid escape \\%c in template at offset %d", c, i-1)
			}
			writeUnit(rune(c))
			i++
		default:
			r, size := utf8.DecodeRuneInString(body[i:])
			if r == '\u2028' || r == '\u2029' {
				flush()
			} else {
				writeUnit(r)
			}
			i += size
		}
	}
	flush()
	return sb.String(), nil
}

func parseHex(s string, start, end int) (rune, bool) {
	if start >= end || end > len(s) {
		return 0, false
	}
	var v rune
	for i := start; i < end; i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return 0, false
		}
		v = v<<4 | d
		if v > utf8.MaxRune {
			return 0, false
		}
	}
	return v, true
}

func hexDigit(c byte) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0'), true
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}

// parseUnicodeEscape parses the part after "\u" starting at s[start] and
// returns the code point and the number of bytes consumed.
func parseUnicodeEscape(s string, start int) (rune, int, error) {
	if start < len(s) && s[start] == '{' {
		end := strings.IndexByte(s[start:], '}')
		if end < 2 {
			return 0, 0, errors.New("invalid unicode escape")
		}
		v, ok := parseHex(s, start+1, start+end)
		if !ok || v > utf8.MaxRune {
			return 0, 0, errors.New("invalid unicode escape")
		}
		return v, end + 1, nil
	}
	v, ok := parseHex(s, start, start+4)
	if !ok {
		return 0, 0, errors.New("invalid unicode escape")
	}
	return v, 4, nil
}
