package rules

import (
	"errors"
	"fmt"
	"strings"

	"maintenance_diagnosis/internal/models"
)

// Mode controls what happens to a rule whose condition does not compile.
type Mode int

const (
	// Strict rejects the whole rule set.
	Strict Mode = iota
	// Lenient keeps the rule; it fails every evaluation and never matches.
	Lenient
)

var (
	ErrEmptyCondition = errors.New("condition is empty")
	ErrEmptyStatus    = errors.New("status is empty")
)

// Definition is one entry of a rule source file.
type Definition struct {
	Condition string `json:"condition" yaml:"condition"`
	Status    string `json:"status" yaml:"status"`
	Action    string `json:"action" yaml:"action"`
}

// Rule is a compiled definition.
type Rule struct {
	Condition string `json:"condition"`
	Status    string `json:"status"`
	Action    string `json:"action"`

	predicate  *Predicate
	compileErr error
}

// Result returns the diagnosis this rule produces when it matches.
func (r Rule) Result() models.DiagnosisResult {
	return models.DiagnosisResult{Status: r.Status, Action: r.Action}
}

// Err returns the compile error of a rule kept in Lenient mode, or nil.
func (r Rule) Err() error { return r.compileErr }

// Matches evaluates the rule against a reading.
func (r Rule) Matches(reading models.SensorReading) (bool, error) {
	if r.compileErr != nil {
		return false, r.compileErr
	}
	if r.predicate == nil {
		return false, ErrEmptyCondition
	}
	return r.predicate.Eval(reading)
}

// RuleError ties a load failure to the position of the offending rule.
type RuleError struct {
	Index int
	Err   error
}

func (e *RuleError) Error() string { return fmt.Sprintf("rule %d: %v", e.Index, e.Err) }
func (e *RuleError) Unwrap() error { return e.Err }

// RuleSet is the ordered list of rules. It has no mutators.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet validates and compiles defs, preserving their order.
func NewRuleSet(defs []Definition, mode Mode) (*RuleSet, error) {
	set := &RuleSet{rules: make([]Rule, 0, len(defs))}
	for i, d := range defs {
		rule, err := compileDefinition(d, mode)
		if err != nil {
			return nil, &RuleError{Index: i, Err: err}
		}
		set.rules = append(set.rules, rule)
	}
	return set, nil
}

func compileDefinition(d Definition, mode Mode) (Rule, error) {
	rule := Rule{
		Condition: strings.TrimSpace(d.Condition),
		Status:    strings.TrimSpace(d.Status),
		Action:    strings.TrimSpace(d.Action),
	}
	if rule.Condition == "" {
		return Rule{}, ErrEmptyCondition
	}
	if rule.Status == "" {
		return Rule{}, ErrEmptyStatus
	}
	pred, err := Compile(rule.Condition)
	if err != nil {
		if mode != Lenient {
			return Rule{}, fmt.Errorf("compile %q: %w", rule.Condition, err)
		}
		rule.compileErr = err
		return rule, nil
	}
	rule.predicate = pred
	return rule, nil
}

// Len returns the number of rules. A nil set is empty.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// At returns the i-th rule in priority order.
func (s *RuleSet) At(i int) Rule { return s.rules[i] }

// Rules returns a copy of the rules in priority order.
func (s *RuleSet) Rules() []Rule {
	if s == nil {
		return nil
	}
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Invalid returns the indexes of rules kept despite a compile error.
func (s *RuleSet) Invalid() []int {
	var idx []int
	for i := 0; i < s.Len(); i++ {
		if s.rules[i].compileErr != nil {
			idx = append(idx, i)
		}
	}
	return idx
}
