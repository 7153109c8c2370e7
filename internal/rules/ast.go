package rules

import (
	"strings"

	"maintenance_diagnosis/internal/models"
)

type node interface {
	eval(r *models.SensorReading) (value, error)
	String() string
}

type literal struct {
	v value
}

func (n *literal) eval(*models.SensorReading) (value, error) { return n.v, nil }
func (n *literal) String() string                            { return n.v.String() }

type fieldRef struct {
	name string
	f    field
}

func (n *fieldRef) eval(r *models.SensorReading) (value, error) { return n.f.read(r), nil }
func (n *fieldRef) String() string                              { return n.name }

type unaryExpr struct {
	op string // "-" or "+"
	x  node
}

func (n *unaryExpr) eval(r *models.SensorReading) (value, error) {
	v, err := n.x.eval(r)
	if err != nil {
		return value{}, err
	}
	if n.op == "-" {
		return number(-v.num), nil
	}
	return number(v.num), nil
}

func (n *unaryExpr) String() string { return "(" + n.op + n.x.String() + ")" }

type notExpr struct {
	x node
}

func (n *notExpr) eval(r *models.SensorReading) (value, error) {
	v, err := n.x.eval(r)
	if err != nil {
		return value{}, err
	}
	return boolean(!v.truthy()), nil
}

func (n *notExpr) String() string { return "(not " + n.x.String() + ")" }

type binaryExpr struct {
	op   string
	l, r node
}

func (n *binaryExpr) eval(r *models.SensorReading) (value, error) {
	a, err := n.l.eval(r)
	if err != nil {
		return value{}, err
	}
	b, err := n.r.eval(r)
	if err != nil {
		return value{}, err
	}
	return arithmetic(n.op, a.num, b.num)
}

func (n *binaryExpr) String() string {
	return "(" + n.l.String() + " " + n.op + " " + n.r.String() + ")"
}

// logicalExpr short-circuits and yields the operand that decided the result.
type logicalExpr struct {
	and  bool
	l, r node
}

func (n *logicalExpr) eval(r *models.SensorReading) (value, error) {
	a, err := n.l.eval(r)
	if err != nil {
		return value{}, err
	}
	if n.and != a.truthy() {
		return a, nil
	}
	return n.r.eval(r)
}

func (n *logicalExpr) String() string {
	op := " or "
	if n.and {
		op = " and "
	}
	return "(" + n.l.String() + op + n.r.String() + ")"
}

// compareExpr holds a chain such as a < b <= c; every inner operand is
// evaluated at most once and the chain stops at the first false link.
type compareExpr struct {
	operands []node
	ops      []string
}

func (n *compareExpr) eval(r *models.SensorReading) (value, error) {
	left, err := n.operands[0].eval(r)
	if err != nil {
		return value{}, err
	}
	for i, op := range n.ops {
		right, err := n.operands[i+1].eval(r)
		if err != nil {
			return value{}, err
		}
		if !compare(op, left.num, right.num) {
			return boolean(false), nil
		}
		left = right
	}
	return boolean(true), nil
}

func (n *compareExpr) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(n.operands[0].String())
	for i, op := range n.ops {
		b.WriteString(" " + op + " ")
		b.WriteString(n.operands[i+1].String())
	}
	b.WriteString(")")
	return b.String()
}
