// Package stylesheet post-processes the CSS of a compiled unit before it is
// embedded into an injection call.
package stylesheet

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	text string
}

// Minify removes comments and whitespace that does not change the meaning
// of css. It is a token-level pass: values are never rewritten.
func Minify(content string) string {
	lexer := css.NewLexer(parse.NewInputString(content))

	var tokens []token
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		if tt == css.CommentToken {
			tt, text = css.WhitespaceToken, []byte(" ")
		}
		if tt == css.WhitespaceToken && len(tokens) > 0 && tokens[len(tokens)-1].tt == css.WhitespaceToken {
			continue
		}
		tokens = append(tokens, token{tt: tt, text: string(text)})
	}

	var sb strings.Builder
	sb.Grow(len(content))
	for i, tok := range tokens {
		switch tok.tt {
		case css.WhitespaceToken:
			if i == 0 || i == len(tokens)-1 || tight(tokens[i-1]) || tight(tokens[i+1]) {
				continue
			}
			sb.WriteByte(' ')
		case css.SemicolonToken:
			if next := nextSignificant(tokens, i+1); next >= 0 && tokens[next].tt == css.RightBraceToken {
				continue
			}
			sb.WriteString(tok.text)
		default:
			sb.WriteString(tok.text)
		}
	}
	return sb.String()
}

// tight reports whether whitespace next to t can be dropped.
func tight(t token) bool {
	switch t.tt {
	case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken, css.CommaToken:
		return true
	case css.DelimToken:
		return t.text == ">" || t.text == "~"
	}
	return false
}

func nextSignificant(tokens []token, i int) int {
	for ; i < len(tokens); i++ {
		if tokens[i].tt != css.WhitespaceToken {
			return i
		}
	}
	return -1
}
