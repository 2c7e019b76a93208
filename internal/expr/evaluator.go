// Package expr evaluates free-form numeric entry from deal worksheets:
// plain numbers, currency ("$1,299.50"), percentages ("6.5%"), and simple
// arithmetic ("30000 - (10000 - 3000)").
//
// Malformed input is reported as an error value, never a panic, so a
// half-typed field can be re-evaluated on every keystroke.
package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Evaluation errors.
var (
	ErrEmptyExpression   = errors.New("empty expression")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrDivisionByZero    = errors.New("division by zero")
)

// Evaluate parses and evaluates an arithmetic expression. Supported
// syntax: + - * /, parenthesized groups, a leading $ and thousands
// separators on numbers, and a trailing % meaning "divide by 100".
func Evaluate(text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyExpression
	}

	p := &parser{input: text}
	value, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("%w: unexpected %q at position %d", ErrInvalidExpression, p.input[p.pos], p.pos)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: result is not finite", ErrInvalidExpression)
	}
	return value, nil
}

// EvaluateCurrency evaluates an expression as a dollar amount, rounding
// to cents half-up.
func EvaluateCurrency(text string) (float64, error) {
	value, err := Evaluate(text)
	if err != nil {
		return 0, err
	}
	return math.Round(value*100) / 100, nil
}

// EvaluatePercent evaluates an expression as a fractional rate. A bare
// number >= 1 is read as a whole percent ("6.5" means 0.065); a number
// below 1 is already fractional. Empty or unparsable input yields the
// fallback; this function never fails.
func EvaluatePercent(text string, fallback float64) float64 {
	value, err := Evaluate(text)
	if err != nil {
		return fallback
	}
	// An explicit % sign already divided by 100; only bare numbers are
	// reinterpreted.
	if strings.HasSuffix(strings.TrimSpace(text), "%") {
		return value
	}
	if value >= 1 {
		return value / 100
	}
	return value
}

// parser is a recursive-descent evaluator over the raw input string.
// Grammar, lowest precedence first:
//
//	expression := term (('+' | '-') term)*
//	term       := unary (('*' | '/') unary)*
//	unary      := '-' unary | postfix
//	postfix    := primary '%'?
//	primary    := number | '(' expression ')'
type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpression() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch {
		case p.peek('+'):
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		case p.peek('-'):
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value -= rhs
		default:
			return value, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	value, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch {
		case p.peek('*'):
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			value *= rhs
		case p.peek('/'):
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, ErrDivisionByZero
			}
			value /= rhs
		default:
			return value, nil
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	p.skipSpace()
	if p.peek('-') {
		p.pos++
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (float64, error) {
	value, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.peek('%') {
		p.pos++
		value /= 100
	}
	return value, nil
}

func (p *parser) parsePrimary() (float64, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrInvalidExpression)
	}

	if p.peek('(') {
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if !p.peek(')') {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		p.pos++
		return value, nil
	}

	// Currency prefix binds to the number that follows it.
	if p.peek('$') {
		p.pos++
		p.skipSpace()
	}

	return p.parseNumber()
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	sawDigit := false
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch >= '0' && ch <= '9' {
			sawDigit = true
			p.pos++
			continue
		}
		// Thousands separators are dropped; the decimal point is kept.
		if ch == ',' || ch == '.' {
			p.pos++
			continue
		}
		break
	}
	if !sawDigit {
		return 0, fmt.Errorf("%w: expected a number at position %d", ErrInvalidExpression, start)
	}

	token := strings.ReplaceAll(p.input[start:p.pos], ",", "")
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidExpression, token)
	}
	return value, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek(ch byte) bool {
	return p.pos < len(p.input) && p.input[p.pos] == ch
}
