package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrEmptySource = errors.New("rule source is empty")

// LoadFile reads a rule definition file (JSON array or YAML sequence) and
// compiles it. Any error here is meant to stop the process from starting.
func LoadFile(path string, mode Mode) (*RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %q: %w", path, err)
	}
	defs, err := Decode(raw, formatOf(path, raw))
	if err != nil {
		return nil, fmt.Errorf("decode rules %q: %w", path, err)
	}
	set, err := NewRuleSet(defs, mode)
	if err != nil {
		return nil, fmt.Errorf("load rules %q: %w", path, err)
	}
	return set, nil
}

// Format is the encoding of a rule source.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string, raw []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a rule source. Unknown keys are rejected in both formats.
func Decode(raw []byte, format Format) ([]Definition, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptySource
	}
	var defs []Definition
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&defs); err != nil {
			return nil, err
		}
		if dec.More() {
			return nil, errors.New("unexpected data after rule list")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&defs); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported rule format %q", format)
	}
	if defs == nil {
		return nil, ErrEmptySource
	}
	return defs, nil
}
