package rules

import (
	"errors"
	"testing"

	"maintenance_diagnosis/internal/models"
)

func sampleReading() models.SensorReading {
	return models.SensorReading{
		Vibration:        90,
		Temperature:      40,
		UsageHours:       500,
		LastService:      200,
		PowerFluctuation: false,
		Noise:            30,
		SensorError:      false,
		OilLevelLow:      true,
	}
}

func TestCompile_EvalSemantics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		expr string
		want bool
	}{
		{"vibration > 80", true},
		{"vibration > 90", false},
		{"vibration >= 90", true},
		{"temperature < 50 and noise == 30", true},
		{"temperature > 50 or noise != 30", false},
		{"not sensor_error", true},
		{"oil_level_low", true},
		{"power_fluctuation", false},
		{"oil_level_low == True", true},
		{"oil_level_low == 1", true},
		{"power_fluctuation == false", true},
		{"oil_level_low + oil_level_low == 2", true},
		{"30 < temperature < 50", true},
		{"30 < temperature < 35", false},
		{"usage_hours / last_service == 2.5", true},
		{"usage_hours // last_service == 2", true},
		{"usage_hours % 7 == 3", true},
		{"-7 % 3 == 2", true},
		{"-7 // 2 == -4", true},
		{"-2 ** 2 == -4", true},
		{"2 ** 3 ** 2 == 512", true},
		{"2 ** -1 == 0.5", true},
		{"(vibration + noise) * 2 > 200", true},
		{"vibration + noise * 2 > 200", false},
		{"vibration > 80 && !sensor_error", true},
		{"sensor_error || power_fluctuation", false},
		{"not not oil_level_low", true},
		{"0", false},
		{"0.5", true},
		{"noise - 30", false},
		{"(vibration > 80) and (temperature > 30 or usage_hours > 1000)", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()
			p, err := Compile(tc.expr)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tc.expr, err)
			}
			got, err := p.Eval(sampleReading())
			if err != nil {
				t.Fatalf("Eval(%q): %v", tc.expr, err)
			}
			if got != tc.want {
				t.Fatalf("Eval(%q) = %v, want %v (tree %s)", tc.expr, got, tc.want, p)
			}
		})
	}
}

func TestCompile_ShortCircuitSkipsRuntimeErrors(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{
		"sensor_error and vibration / 0 > 1",
		"oil_level_low or vibration / 0 > 1",
		"noise > 100 > vibration / 0",
	} {
		p, err := Compile(expr)
		if err != nil {
			t.Fatalf("Compile(%q): %v", expr, err)
		}
		if _, err := p.Eval(sampleReading()); err != nil {
			t.Fatalf("Eval(%q) should short-circuit, got %v", expr, err)
		}
	}
}

func TestCompile_RuntimeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		expr string
		want error
	}{
		{"vibration / 0 > 1", ErrDivisionByZero},
		{"vibration // sensor_error > 1", ErrDivisionByZero},
		{"noise % power_fluctuation", ErrDivisionByZero},
		{"0 ** -1", ErrDivisionByZero},
		{"(0 - 8) ** 0.5", ErrMathDomain},
	}
	for _, tc := range cases {
		p, err := Compile(tc.expr)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tc.expr, err)
		}
		if _, err := p.Eval(sampleReading()); !errors.Is(err, tc.want) {
			t.Fatalf("Eval(%q) err = %v, want %v", tc.expr, err, tc.want)
		}
	}
}

func TestCompile_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		expr        string
		unknownName string // empty means a syntax error is expected
	}{
		{name: "empty", expr: ""},
		{name: "dangling operator", expr: "vibration >"},
		{name: "unbalanced paren", expr: "(vibration > 1"},
		{name: "extra paren", expr: "vibration > 1)"},
		{name: "two operands", expr: "vibration 1"},
		{name: "python call", expr: "abs(vibration) > 1"},
		{name: "attribute access", expr: "vibration.real > 1"},
		{name: "string literal", expr: "status == 'x'"},
		{name: "assignment", expr: "vibration = 1"},
		{name: "bad number", expr: "12abc > 1"},
		{name: "keyword as operand", expr: "vibration > and"},
		{name: "not after comparison", expr: "vibration == not noise"},
		{name: "unknown field", expr: "humidity > 10", unknownName: "humidity"},
		{name: "builtin name", expr: "__import__ > 1", unknownName: "__import__"},
		{name: "case sensitive field", expr: "Vibration > 1", unknownName: "Vibration"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compile(tc.expr)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error", tc.expr)
			}
			if tc.unknownName != "" {
				var uf *UnknownFieldError
				if !errors.As(err, &uf) || uf.Name != tc.unknownName {
					t.Fatalf("Compile(%q) err = %v, want unknown field %q", tc.expr, err, tc.unknownName)
				}
				return
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Compile(%q) err = %T %v, want *SyntaxError", tc.expr, err, err)
			}
		})
	}
}

func TestPredicate_StringShowsPrecedence(t *testing.T) {
	t.Parallel()

	p, err := Compile("vibration > 80 or temperature > 70 and not oil_level_low")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := "((vibration > 80) or ((temperature > 70) and (not oil_level_low)))"
	if got := p.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if p.Source() != "vibration > 80 or temperature > 70 and not oil_level_low" {
		t.Fatalf("Source() = %q", p.Source())
	}
}

func TestFieldNames(t *testing.T) {
	t.Parallel()

	names := FieldNames()
	if len(names) != 8 {
		t.Fatalf("want 8 fields, got %d: %v", len(names), names)
	}
	for _, n := range names {
		if _, err := Compile(n); err != nil {
			t.Fatalf("field %q does not compile: %v", n, err)
		}
	}
}
