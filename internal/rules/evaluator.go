package rules

import (
	"fmt"

	"maintenance_diagnosis/internal/logger"
	"maintenance_diagnosis/internal/models"
)

// Failure records a rule that could not be evaluated for a reading.
type Failure struct {
	Index     int
	Condition string
	Err       error
}

// Outcome is the detailed result of one pass over the rule set.
type Outcome struct {
	Result    models.DiagnosisResult
	RuleIndex int // -1 when the default was returned
	Failures  []Failure
}

// Matched reports whether a rule produced the result.
func (o Outcome) Matched() bool { return o.RuleIndex >= 0 }

// Evaluator applies a rule set to readings with first-match priority.
type Evaluator struct {
	rules *RuleSet
	log   *logger.Logger
}

// NewEvaluator returns an evaluator over rules. log may be nil.
func NewEvaluator(rules *RuleSet, log *logger.Logger) *Evaluator {
	return &Evaluator{rules: rules, log: log}
}

// RuleSet returns the rules the evaluator was built with.
func (e *Evaluator) RuleSet() *RuleSet { return e.rules }

// Evaluate returns the diagnosis of the first matching rule, or the
// Unknown/No action defined default. It never fails.
func (e *Evaluator) Evaluate(reading models.SensorReading) models.DiagnosisResult {
	return e.Inspect(reading).Result
}

// Inspect is Evaluate plus the index of the matching rule and every rule
// that errored before it. A rule that errors counts as not matching.
func (e *Evaluator) Inspect(reading models.SensorReading) Outcome {
	out := Outcome{Result: models.DefaultDiagnosis(), RuleIndex: -1}
	for i := 0; i < e.rules.Len(); i++ {
		rule := e.rules.At(i)
		ok, err := safeMatch(rule, reading)
		if err != nil {
			out.Failures = append(out.Failures, Failure{Index: i, Condition: rule.Condition, Err: err})
			if e.log != nil {
				e.log.Warnw("rule_evaluation_failed", "rule", i, "condition", rule.Condition, "err", err)
			}
			continue
		}
		if ok {
			out.Result = rule.Result()
			out.RuleIndex = i
			return out
		}
	}
	return out
}

func safeMatch(rule Rule, reading models.SensorReading) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ok, err = false, fmt.Errorf("panic evaluating rule: %v", rec)
		}
	}()
	return rule.Matches(reading)
}
