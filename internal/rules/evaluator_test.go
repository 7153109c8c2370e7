package rules

import (
	"errors"
	"testing"

	"maintenance_diagnosis/internal/models"
)

func mustRuleSet(t *testing.T, mode Mode, defs ...Definition) *RuleSet {
	t.Helper()
	set, err := NewRuleSet(defs, mode)
	if err != nil {
		t.Fatalf("NewRuleSet: %v", err)
	}
	return set
}

func TestEvaluator_HighVibrationScenario(t *testing.T) {
	t.Parallel()

	set := mustRuleSet(t, Strict,
		Definition{Condition: "vibration > 80", Status: "High Vibration", Action: "Inspect bearings"},
		Definition{Condition: "temperature > 90", Status: "Overheating", Action: "Check coolant"},
	)
	reading := models.SensorReading{
		Vibration: 90, Temperature: 40, UsageHours: 500, LastService: 200, Noise: 30,
	}

	got := NewEvaluator(set, nil).Evaluate(reading)
	want := models.DiagnosisResult{Status: "High Vibration", Action: "Inspect bearings"}
	if got != want {
		t.Fatalf("Evaluate = %+v, want %+v", got, want)
	}
}

func TestEvaluator_FirstMatchWins(t *testing.T) {
	t.Parallel()

	set := mustRuleSet(t, Strict,
		Definition{Condition: "noise > 100", Status: "Loud", Action: "Check muffler"},
		Definition{Condition: "vibration > 50", Status: "R1", Action: "A1"},
		Definition{Condition: "vibration > 80", Status: "R2", Action: "A2"},
	)
	out := NewEvaluator(set, nil).Inspect(sampleReading())
	if out.Result.Status != "R1" || out.Result.Action != "A1" {
		t.Fatalf("want R1/A1, got %+v", out.Result)
	}
	if out.RuleIndex != 1 || !out.Matched() {
		t.Fatalf("want rule index 1, got %d", out.RuleIndex)
	}
}

func TestEvaluator_NoMatchAndEmptySetFallBack(t *testing.T) {
	t.Parallel()

	cases := map[string]*RuleSet{
		"nil set":   nil,
		"empty set": mustRuleSet(t, Strict),
		"no match": mustRuleSet(t, Strict,
			Definition{Condition: "vibration > 1000", Status: "Extreme", Action: "Stop"},
			Definition{Condition: "sensor_error", Status: "Sensor Fault", Action: "Replace sensor"},
		),
	}
	for name, set := range cases {
		out := NewEvaluator(set, nil).Inspect(sampleReading())
		if out.Result != models.DefaultDiagnosis() {
			t.Fatalf("%s: got %+v, want default", name, out.Result)
		}
		if out.Result.Status != "Unknown" || out.Result.Action != "No action defined" {
			t.Fatalf("%s: default changed: %+v", name, out.Result)
		}
		if out.Matched() || out.RuleIndex != -1 {
			t.Fatalf("%s: expected no match, got index %d", name, out.RuleIndex)
		}
	}
}

func TestEvaluator_MalformedRuleDoesNotAbortPass(t *testing.T) {
	t.Parallel()

	set := mustRuleSet(t, Lenient,
		Definition{Condition: "vibration >> 3", Status: "Broken", Action: "never"},
		Definition{Condition: "humidity > 10", Status: "Unknown field", Action: "never"},
		Definition{Condition: "vibration > 80", Status: "High Vibration", Action: "Inspect bearings"},
	)
	if got := set.Invalid(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("Invalid() = %v, want [0 1]", got)
	}

	out := NewEvaluator(set, nil).Inspect(sampleReading())
	if out.Result.Status != "High Vibration" {
		t.Fatalf("got %+v, want High Vibration", out.Result)
	}
	if len(out.Failures) != 2 {
		t.Fatalf("want 2 failures, got %+v", out.Failures)
	}
	var uf *UnknownFieldError
	if !errors.As(out.Failures[1].Err, &uf) {
		t.Fatalf("second failure should be unknown field, got %v", out.Failures[1].Err)
	}
}

func TestEvaluator_RuntimeErrorCountsAsNoMatch(t *testing.T) {
	t.Parallel()

	set := mustRuleSet(t, Strict,
		Definition{Condition: "usage_hours / (noise - 30) > 1", Status: "Ratio", Action: "x"},
		Definition{Condition: "oil_level_low", Status: "Low Oil", Action: "Top up oil"},
	)
	out := NewEvaluator(set, nil).Inspect(sampleReading())
	if out.Result.Status != "Low Oil" {
		t.Fatalf("got %+v", out.Result)
	}
	if len(out.Failures) != 1 || !errors.Is(out.Failures[0].Err, ErrDivisionByZero) {
		t.Fatalf("want one division failure, got %+v", out.Failures)
	}
}

func TestEvaluator_AllRulesErrorYieldsDefault(t *testing.T) {
	t.Parallel()

	set := mustRuleSet(t, Lenient,
		Definition{Condition: "vibration / 0", Status: "A", Action: "a"},
		Definition{Condition: "bogus", Status: "B", Action: "b"},
	)
	got := NewEvaluator(set, nil).Evaluate(sampleReading())
	if !got.IsDefault() {
		t.Fatalf("want default, got %+v", got)
	}
}

func TestEvaluator_Deterministic(t *testing.T) {
	t.Parallel()

	set := mustRuleSet(t, Lenient,
		Definition{Condition: "vibration ** ", Status: "Broken", Action: "x"},
		Definition{Condition: "temperature > 30 and not sensor_error", Status: "Warm", Action: "Monitor"},
		Definition{Condition: "vibration > 80", Status: "High Vibration", Action: "Inspect bearings"},
	)
	ev := NewEvaluator(set, nil)
	first := ev.Evaluate(sampleReading())
	for i := 0; i < 100; i++ {
		if got := ev.Evaluate(sampleReading()); got != first {
			t.Fatalf("iteration %d: got %+v, want %+v", i, got, first)
		}
	}
	if first.Status != "Warm" {
		t.Fatalf("unexpected result %+v", first)
	}
}

func TestRuleSet_OrderPreservedAndCopied(t *testing.T) {
	t.Parallel()

	set := mustRuleSet(t, Strict,
		Definition{Condition: " noise > 1 ", Status: " A ", Action: "a"},
		Definition{Condition: "noise > 2", Status: "B", Action: ""},
	)
	rules := set.Rules()
	if len(rules) != 2 || rules[0].Status != "A" || rules[1].Status != "B" {
		t.Fatalf("unexpected rules %+v", rules)
	}
	if rules[0].Condition != "noise > 1" {
		t.Fatalf("condition not trimmed: %q", rules[0].Condition)
	}
	rules[0].Status = "mutated"
	if set.At(0).Status != "A" {
		t.Fatal("Rules() must return a copy")
	}
}

func TestNewRuleSet_StrictRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		defs  []Definition
		index int
		want  error
	}{
		{
			name:  "syntax",
			defs:  []Definition{{Condition: "noise > 1", Status: "ok"}, {Condition: "noise >", Status: "bad"}},
			index: 1,
		},
		{
			name:  "empty condition",
			defs:  []Definition{{Condition: "  ", Status: "x"}},
			index: 0,
			want:  ErrEmptyCondition,
		},
		{
			name:  "empty status",
			defs:  []Definition{{Condition: "noise > 1", Status: ""}},
			index: 0,
			want:  ErrEmptyStatus,
		},
	}
	for _, tc := range cases {
		_, err := NewRuleSet(tc.defs, Strict)
		var re *RuleError
		if !errors.As(err, &re) {
			t.Fatalf("%s: want *RuleError, got %v", tc.name, err)
		}
		if re.Index != tc.index {
			t.Fatalf("%s: index = %d, want %d", tc.name, re.Index, tc.index)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestNewRuleSet_LenientStillRejectsStructuralErrors(t *testing.T) {
	t.Parallel()

	_, err := NewRuleSet([]Definition{{Condition: "noise > 1", Status: " "}}, Lenient)
	if !errors.Is(err, ErrEmptyStatus) {
		t.Fatalf("want ErrEmptyStatus, got %v", err)
	}
}
