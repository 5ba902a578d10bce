// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	errExprParse    = errors.New("expression syntax error")
	errDivideByZero = errors.New("division by zero")
)

// An operator is a unary or binary operation in an expression.
type operator struct {
	symbol     string
	precedence byte
	unary      bool
	eval       func(a, b int64) (int64, error)
}

var (
	opMultiply   = &operator{"*", 6, false, func(a, b int64) (int64, error) { return a * b, nil }}
	opDivide     = &operator{"/", 6, false, divide}
	opModulo     = &operator{"%", 6, false, modulo}
	opAdd        = &operator{"+", 5, false, func(a, b int64) (int64, error) { return a + b, nil }}
	opSubtract   = &operator{"-", 5, false, func(a, b int64) (int64, error) { return a - b, nil }}
	opShiftLeft  = &operator{"<<", 4, false, func(a, b int64) (int64, error) { return a << uint64(b), nil }}
	opShiftRight = &operator{">>", 4, false, func(a, b int64) (int64, error) { return a >> uint64(b), nil }}
	opBitwiseAnd = &operator{"&", 3, false, func(a, b int64) (int64, error) { return a & b, nil }}
	opBitwiseXor = &operator{"^", 2, false, func(a, b int64) (int64, error) { return a ^ b, nil }}
	opBitwiseOr  = &operator{"|", 1, false, func(a, b int64) (int64, error) { return a | b, nil }}

	opUnaryMinus = &operator{"-", 7, true, func(a, _ int64) (int64, error) { return -a, nil }}
	opUnaryPlus  = &operator{"+", 7, true, func(a, _ int64) (int64, error) { return a, nil }}
	opBitwiseNot = &operator{"~", 7, true, func(a, _ int64) (int64, error) { return ^a, nil }}
	opLowByte    = &operator{"<", 7, true, func(a, _ int64) (int64, error) { return a & 0xff, nil }}
	opHighByte   = &operator{">", 7, true, func(a, _ int64) (int64, error) { return (a >> 8) & 0xff, nil }}
)

var unaryOps = map[byte]*operator{
	'-': opUnaryMinus,
	'+': opUnaryPlus,
	'~': opBitwiseNot,
	'<': opLowByte,
	'>': opHighByte,
}

func divide(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errDivideByZero
	}
	return a / b, nil
}

func modulo(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errDivideByZero
	}
	return a % b, nil
}

// A resolver looks up the value of a named identifier, such as a register.
type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

//
// exprParser
//

// An exprParser evaluates infix expressions using two stacks, reducing
// operators as soon as precedence allows.
//
//	$1F, 0x1F   hexadecimal
//	%1010       binary
//	'A'         character
//	31          decimal (hexadecimal in hex mode)
//	pc, a, .    identifier
//	<v, >v      low and high byte of v
type exprParser struct {
	values    []int64
	operators []*operator // a nil entry marks a left parenthesis
	hexMode   bool
}

func newExprParser() *exprParser {
	return &exprParser{}
}

func (p *exprParser) reset() {
	p.values = p.values[:0]
	p.operators = p.operators[:0]
}

// Parse evaluates an expression, resolving identifiers through r.
func (p *exprParser) Parse(expr string, r resolver) (int64, error) {
	defer p.reset()

	t := tstring(expr)
	expectOperand := true
	for {
		t = t.consumeWhitespace()
		if len(t) == 0 {
			break
		}

		var err error
		if expectOperand {
			switch {
			case t[0] == '(':
				p.operators = append(p.operators, nil)
				t = t.consume(1)
			case unaryOps[t[0]] != nil:
				p.operators = append(p.operators, unaryOps[t[0]])
				t = t.consume(1)
			default:
				var v int64
				v, t, err = p.parseOperand(t, r)
				if err != nil {
					return 0, err
				}
				p.values = append(p.values, v)
				expectOperand = false
			}
			continue
		}

		if t[0] == ')' {
			if err = p.reduceParen(); err != nil {
				return 0, err
			}
			t = t.consume(1)
			continue
		}

		var op *operator
		op, t, err = parseBinaryOp(t)
		if err != nil {
			return 0, err
		}
		for p.collapsible(op) {
			if err = p.reduce(); err != nil {
				return 0, err
			}
		}
		p.operators = append(p.operators, op)
		expectOperand = true
	}

	if expectOperand {
		return 0, errExprParse
	}
	for len(p.operators) > 0 {
		if p.operators[len(p.operators)-1] == nil {
			return 0, errExprParse
		}
		if err := p.reduce(); err != nil {
			return 0, err
		}
	}
	if len(p.values) != 1 {
		return 0, errExprParse
	}
	return p.values[0], nil
}

// Binary operators are left-associative, so an operator of equal or higher
// precedence on the stack is applied first.
func (p *exprParser) collapsible(op *operator) bool {
	if len(p.operators) == 0 {
		return false
	}
	top := p.operators[len(p.operators)-1]
	return top != nil && top.precedence >= op.precedence
}

// Apply the operator at the top of the operator stack.
func (p *exprParser) reduce() error {
	top := len(p.operators) - 1
	op := p.operators[top]
	p.operators = p.operators[:top]

	args := 2
	if op.unary {
		args = 1
	}
	if len(p.values) < args {
		return errExprParse
	}

	n := len(p.values)
	var a, b int64
	if op.unary {
		a = p.values[n-1]
	} else {
		a, b = p.values[n-2], p.values[n-1]
	}
	p.values = p.values[:n-args]

	v, err := op.eval(a, b)
	if err != nil {
		return err
	}
	p.values = append(p.values, v)
	return nil
}

// Apply operators until the matching left parenthesis, then discard it.
func (p *exprParser) reduceParen() error {
	for {
		if len(p.operators) == 0 {
			return errExprParse
		}
		if p.operators[len(p.operators)-1] == nil {
			p.operators = p.operators[:len(p.operators)-1]
			return nil
		}
		if err := p.reduce(); err != nil {
			return err
		}
	}
}

func (p *exprParser) parseOperand(t tstring, r resolver) (v int64, remain tstring, err error) {
	switch {
	case t[0] == '$':
		return parseNumber(t.consume(1), 16, hexadecimal)
	case t[0] == '%':
		return parseNumber(t.consume(1), 2, binary)
	case t[0] == '\'':
		if len(t) < 3 || t[2] != '\'' {
			return 0, t, errExprParse
		}
		return int64(t[1]), t.consume(3), nil
	case len(t) > 2 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X'):
		return parseNumber(t.consume(2), 16, hexadecimal)
	case decimal(t[0]):
		if p.hexMode {
			return parseNumber(t, 16, hexadecimal)
		}
		return parseNumber(t, 10, decimal)
	case identifier(t[0]):
		var id tstring
		id, remain = t.consumeWhile(identifier)
		if p.hexMode && id.scanWhile(hexadecimal) == len(id) {
			return parseNumber(id, 16, hexadecimal)
		}
		v, err = r.resolveIdentifier(string(id))
		return v, remain, err
	default:
		return 0, t, errExprParse
	}
}

func parseNumber(t tstring, base int, fn func(c byte) bool) (v int64, remain tstring, err error) {
	var num tstring
	num, remain = t.consumeWhile(fn)
	if num == "" {
		return 0, t, errExprParse
	}
	if len(remain) > 0 && identifier(remain[0]) {
		word, _ := t.consumeWhile(identifier)
		return 0, t, fmt.Errorf("invalid number '%s'", word)
	}

	v, err = strconv.ParseInt(string(num), base, 64)
	if err != nil {
		return 0, t, errExprParse
	}
	return v, remain, nil
}

func parseBinaryOp(t tstring) (op *operator, remain tstring, err error) {
	switch t[0] {
	case '*':
		op = opMultiply
	case '/':
		op = opDivide
	case '%':
		op = opModulo
	case '+':
		op = opAdd
	case '-':
		op = opSubtract
	case '&':
		op = opBitwiseAnd
	case '^':
		op = opBitwiseXor
	case '|':
		op = opBitwiseOr
	case '<', '>':
		if len(t) < 2 || t[1] != t[0] {
			return nil, t, errExprParse
		}
		if t[0] == '<' {
			return opShiftLeft, t.consume(2), nil
		}
		return opShiftRight, t.consume(2), nil
	default:
		return nil, t, errExprParse
	}
	return op, t.consume(1), nil
}

//
// tstring
//

type tstring string

func (t tstring) consume(n int) tstring {
	return t[n:]
}

func (t tstring) consumeWhitespace() tstring {
	return t.consume(t.scanWhile(whitespace))
}

func (t tstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(t) && fn(t[i]); i++ {
	}
	return i
}

func (t tstring) consumeWhile(fn func(c byte) bool) (consumed, remain tstring) {
	i := t.scanWhile(fn)
	return t[:i], t[i:]
}

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexadecimal(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func binary(c byte) bool {
	return c == '0' || c == '1'
}

func identifier(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '.'
}
