package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is wrapped by every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Case operations.
const (
	OpEncode    = "encode"
	OpDecode    = "decode"
	OpRoundTrip = "roundtrip"
)

// Scenario is a named list of codec cases.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario covers.
	Description string `yaml:"description"`

	Cases []Case `yaml:"cases"`
}

// Case is a single codec invocation with its expectation.
type Case struct {
	// Op is one of encode, decode or roundtrip.
	Op string `yaml:"op"`

	// Exactly one of Input and InputCodepoints must be set.
	Input           *string `yaml:"input,omitempty"`
	InputCodepoints []rune  `yaml:"input_codepoints,omitempty"`

	// At most one of Want and WantCodepoints may be set. A roundtrip case
	// without either expects its input back.
	Want           *string `yaml:"want,omitempty"`
	WantCodepoints []rune  `yaml:"want_codepoints,omitempty"`

	// Trim drops the padding space from a roundtrip result.
	Trim bool `yaml:"trim,omitempty"`
}

// inputRunes returns the case input as code points.
func (c Case) inputRunes() []rune {
	if c.Input != nil {
		return []rune(*c.Input)
	}
	return c.InputCodepoints
}

// wantRunes returns the expected output, or nil if none was given.
func (c Case) wantRunes() []rune {
	switch {
	case c.Want != nil:
		return []rune(*c.Want)
	case c.WantCodepoints != nil:
		return c.WantCodepoints
	}
	return nil
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}

	if s.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidScenario)
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: cases list is required and must be non-empty", ErrInvalidScenario)
	}

	for i, c := range s.Cases {
		if err := validateCase(c); err != nil {
			return fmt.Errorf("%w: case %d: %v", ErrInvalidScenario, i, err)
		}
	}

	return nil
}

func validateCase(c Case) error {
	switch c.Op {
	case OpEncode, OpDecode, OpRoundTrip:
	case "":
		return errors.New("op is required")
	default:
		return fmt.Errorf("unknown op %q", c.Op)
	}

	if (c.Input == nil) == (c.InputCodepoints == nil) {
		return errors.New("exactly one of input and input_codepoints is required")
	}

	if c.Want != nil && c.WantCodepoints != nil {
		return errors.New("want and want_codepoints are mutually exclusive")
	}

	if c.Op != OpRoundTrip && c.Want == nil && c.WantCodepoints == nil {
		return fmt.Errorf("%s needs want or want_codepoints", c.Op)
	}

	if c.Trim && c.Op != OpRoundTrip {
		return errors.New("trim only applies to roundtrip")
	}

	return nil
}
