package expr

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenString
	tokenIdent
	tokenOperator
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var operators = []string{"**", "//", "+", "-", "*", "/", "%"}

func lex(input string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(input); {
		c := rune(input[i])

		switch {
		case unicode.IsSpace(c):
			i++

		case c == '(':
			tokens = append(tokens, token{tokenLParen, "(", i})
			i++

		case c == ')':
			tokens = append(tokens, token{tokenRParen, ")", i})
			i++

		case c == '"' || c == '\'':
			end := strings.IndexByte(input[i+1:], byte(c))
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated string at %d", ErrSyntax, i)
			}
			tokens = append(tokens, token{tokenString, input[i+1 : i+1+end], i})
			i += end + 2

		case unicode.IsDigit(c) || (c == '.' && i+1 < len(input) && unicode.IsDigit(rune(input[i+1]))):
			start := i
			for i < len(input) && (unicode.IsDigit(rune(input[i])) || input[i] == '.' || input[i] == '_') {
				i++
			}
			tokens = append(tokens, token{tokenNumber, input[start:i], start})

		case c == '_' || unicode.IsLetter(c):
			start := i
			for i < len(input) && (input[i] == '_' || unicode.IsLetter(rune(input[i])) || unicode.IsDigit(rune(input[i]))) {
				i++
			}
			tokens = append(tokens, token{tokenIdent, input[start:i], start})

		default:
			matched := false
			for _, op := range operators {
				if strings.HasPrefix(input[i:], op) {
					tokens = append(tokens, token{tokenOperator, op, i})
					i += len(op)
					matched = true
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrSyntax, c, i)
			}
		}
	}

	return append(tokens, token{tokenEOF, "", len(input)}), nil
}
