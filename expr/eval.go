// Package expr evaluates the small arithmetic language used by the exp command.
//
// The grammar is:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/" | "//" | "%") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "**" unary ]
//	primary = number | string | "true" | "false" | ident | "(" expr ")"
//
// Identifiers are resolved against the caller's environment. Values are
// int64, float64, string or bool.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSyntax         = errors.New("expr: syntax error")
	ErrUndefined      = errors.New("expr: undefined name")
	ErrType           = errors.New("expr: unsupported operand types")
	ErrDivisionByZero = errors.New("expr: division by zero")
)

// Env resolves identifiers during evaluation.
type Env interface {
	Get(name string) (any, bool)
}

// MapEnv adapts a plain map to Env.
type MapEnv map[string]any

func (m MapEnv) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Eval parses and evaluates input against env. env may be nil.
func Eval(input string, env Env) (any, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, env: env}
	v, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, tok.text, tok.pos)
	}
	return v, nil
}

type parser struct {
	tokens []token
	pos    int
	env    Env
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) operator(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.kind != tokenOperator {
		return "", false
	}
	for _, op := range ops {
		if tok.text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) expr() (any, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.operator("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if left, err = binary(op, left, right); err != nil {
			return nil, err
		}
	}
}

func (p *parser) term() (any, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.operator("*", "/", "//", "%")
		if !ok {
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		if left, err = binary(op, left, right); err != nil {
			return nil, err
		}
	}
}

func (p *parser) unary() (any, error) {
	if op, ok := p.operator("+", "-"); ok {
		v, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			return binary("+", int64(0), v)
		}
		return binary("-", int64(0), v)
	}
	return p.power()
}

func (p *parser) power() (any, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.operator("**"); !ok {
		return base, nil
	}
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return binary("**", base, exp)
}

func (p *parser) primary() (any, error) {
	tok := p.next()

	switch tok.kind {
	case tokenNumber:
		return parseNumber(tok)

	case tokenString:
		return tok.text, nil

	case tokenIdent:
		switch tok.text {
		case "true", "True":
			return true, nil
		case "false", "False":
			return false, nil
		}
		if p.env != nil {
			if v, ok := p.env.Get(tok.text); ok {
				return normalize(v)
			}
		}
		return nil, fmt.Errorf("%w: '%s'", ErrUndefined, tok.text)

	case tokenLParen:
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, fmt.Errorf("%w: expected ')' at %d", ErrSyntax, closing.pos)
		}
		return v, nil
	}

	if tok.kind == tokenEOF {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, tok.text, tok.pos)
}

func parseNumber(tok token) (any, error) {
	text := strings.ReplaceAll(tok.text, "_", "")
	if !strings.ContainsAny(text, ".eE") {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return v, nil
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid number %q at %d", ErrSyntax, tok.text, tok.pos)
	}
	return v, nil
}

// normalize converts environment values into the evaluator's value set.
func normalize(v any) (any, error) {
	switch n := v.(type) {
	case int64, float64, string, bool:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float32:
		return float64(n), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrType, v)
}

// Format renders a value the way exp prints it. Integral floats keep a
// trailing ".0" so they stay distinguishable from integers.
func Format(v any) string {
	switch n := v.(type) {
	case float64:
		s := strconv.FormatFloat(n, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case int64:
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprint(v)
}
