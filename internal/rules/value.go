package rules

import (
	"errors"
	"math"
	"strconv"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrMathDomain     = errors.New("math domain error")
)

type kind uint8

const (
	kindNumber kind = iota
	kindBool
)

// value is the result of evaluating a node. Booleans are stored as 0/1 so
// they can take part in arithmetic and comparisons.
type value struct {
	kind kind
	num  float64
}

func number(f float64) value { return value{kind: kindNumber, num: f} }

func boolean(b bool) value {
	if b {
		return value{kind: kindBool, num: 1}
	}
	return value{kind: kindBool, num: 0}
}

func (v value) truthy() bool { return v.num != 0 }

func (v value) String() string {
	if v.kind == kindBool {
		if v.truthy() {
			return "True"
		}
		return "False"
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

func arithmetic(op string, a, b float64) (value, error) {
	switch op {
	case "+":
		return number(a + b), nil
	case "-":
		return number(a - b), nil
	case "*":
		return number(a * b), nil
	case "/":
		if b == 0 {
			return value{}, ErrDivisionByZero
		}
		return number(a / b), nil
	case "//":
		if b == 0 {
			return value{}, ErrDivisionByZero
		}
		return number(math.Floor(a / b)), nil
	case "%":
		if b == 0 {
			return value{}, ErrDivisionByZero
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return number(m), nil
	case "**":
		if a == 0 && b < 0 {
			return value{}, ErrDivisionByZero
		}
		r := math.Pow(a, b)
		if math.IsNaN(r) {
			return value{}, ErrMathDomain
		}
		return number(r), nil
	}
	return value{}, errors.New("unsupported operator " + op)
}

func compare(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "==":
		return a == b
	case "!=":
		return a != b
	}
	return false
}
