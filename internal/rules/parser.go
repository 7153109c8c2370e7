package rules

import (
	"fmt"

	"maintenance_diagnosis/internal/models"
)

// Predicate is a compiled rule condition. It is immutable and safe for
// concurrent use.
type Predicate struct {
	source string
	root   node
}

// Compile parses a condition such as
//
//	vibration > 80 and (temperature >= 70 or oil_level_low)
//
// Only the reading fields may be referenced; anything else is rejected here
// rather than at evaluation time.
func Compile(src string) (*Predicate, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
	}
	return &Predicate{source: src, root: root}, nil
}

// Eval reports whether the reading satisfies the predicate. Numbers are
// truthy when non-zero.
func (p *Predicate) Eval(r models.SensorReading) (bool, error) {
	v, err := p.root.eval(&r)
	if err != nil {
		return false, err
	}
	return v.truthy(), nil
}

// Source returns the text the predicate was compiled from.
func (p *Predicate) Source() string { return p.source }

// String returns the fully parenthesized form of the parsed tree.
func (p *Predicate) String() string { return p.root.String() }

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// accept consumes the next token if it is one of the given operators or keywords.
func (p *parser) accept(texts ...string) (token, bool) {
	t := p.peek()
	if t.kind != tokOp && t.kind != tokIdent {
		return t, false
	}
	for _, s := range texts {
		if t.text == s {
			return p.next(), true
		}
	}
	return t, false
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept("or", "||"); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{and: false, l: left, r: right}
	}
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept("and", "&&"); !ok {
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{and: true, l: left, r: right}
	}
}

func (p *parser) parseNot() (node, error) {
	if _, ok := p.accept("not", "!"); ok {
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &notExpr{x: x}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	first, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	cmp := &compareExpr{operands: []node{first}}
	for {
		t, ok := p.accept("<", "<=", ">", ">=", "==", "!=")
		if !ok {
			break
		}
		operand, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		cmp.ops = append(cmp.ops, t.text)
		cmp.operands = append(cmp.operands, operand)
	}
	if len(cmp.ops) == 0 {
		return first, nil
	}
	return cmp, nil
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.accept("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryExpr{op: t.text, l: left, r: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.accept("*", "/", "//", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryExpr{op: t.text, l: left, r: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	if t, ok := p.accept("-", "+"); ok {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{op: t.text, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept("**"); ok {
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &binaryExpr{op: "**", l: base, r: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &literal{v: number(t.num)}, nil
	case tokLParen:
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &SyntaxError{Pos: closing.pos, Msg: fmt.Sprintf("expected \")\", found %s", closing)}
		}
		return x, nil
	case tokIdent:
		switch t.text {
		case "True", "true":
			return &literal{v: boolean(true)}, nil
		case "False", "false":
			return &literal{v: boolean(false)}, nil
		case "and", "or", "not":
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected keyword %q", t.text)}
		}
		if p.peek().kind == tokLParen {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("function calls are not supported: %s", t.text)}
		}
		f, ok := fieldsByName[t.text]
		if !ok {
			return nil, &UnknownFieldError{Name: t.text, Pos: t.pos}
		}
		return &fieldRef{name: t.text, f: f}, nil
	case tokEOF:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected end of expression"}
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
}
