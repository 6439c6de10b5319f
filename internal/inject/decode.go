package inject

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/yacobolo/cssvariant/internal/jsliteral"
)

// Decode returns the CSS carried by m with all escapes of its enclosing
// literal resolved.
//
// Double-quoted payloads are decoded as JSON strings, the form producers
// emit. Other literals, and double-quoted ones using JavaScript-only escapes,
// are re-lexed as a JavaScript literal and cooked with JavaScript rules.
func Decode(m Marker) (string, error) {
	raw := m.RawContent
	if !strings.Contains(raw, `\`) && !(m.Quote == '`' && strings.ContainsAny(raw, "\r$")) {
		return raw, nil
	}

	if m.Quote == '"' {
		if s, err := jsliteral.UnquoteJSON(raw); err == nil {
			return s, nil
		}
	}

	s, err := decodeLiteral(raw, m.Quote)
	if err != nil {
		return "", &MarkerDecodeError{Offset: m.ContentStart, Quote: m.Quote, Err: err}
	}
	return s, nil
}

// decodeLiteral lexes quote+raw+quote and requires it to be exactly one
// string or substitution-free template token.
func decodeLiteral(raw string, quote byte) (string, error) {
	lit := string(quote) + raw + string(quote)

	l := js.NewLexer(parse.NewInputString(lit))
	tt, text := l.Next()
	switch tt {
	case js.StringToken, js.TemplateToken:
	case js.TemplateStartToken:
		return "", errors.New("template literal contains a substitution")
	case js.ErrorToken:
		if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("lex literal: %w", err)
		}
		return "", errors.New("payload is not a valid literal")
	default:
		return "", fmt.Errorf("payload lexes as %s, not a literal", tt)
	}
	if len(text) != len(lit) {
		return "", errors.New("payload terminates its literal early")
	}

	return jsliteral.Unescape(raw, quote)
}
