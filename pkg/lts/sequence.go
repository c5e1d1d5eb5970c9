package lts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one element of a move sequence: a target position with
// optional velocity and acceleration overrides. An acceleration
// override requires a velocity override, matching the positional
// (position, velocity, acceleration) tuple form.
type Step struct {
	Position     float64  `yaml:"position"`
	Velocity     *float64 `yaml:"velocity,omitempty"`
	Acceleration *float64 `yaml:"acceleration,omitempty"`
}

// Sequence is an ordered list of move steps.
type Sequence []Step

// params returns the step's overrides in positional form.
func (st Step) params() []float64 {
	if st.Velocity == nil {
		return nil
	}
	if st.Acceleration == nil {
		return []float64{*st.Velocity}
	}
	return []float64{*st.Velocity, *st.Acceleration}
}

func (st Step) validate() error {
	if st.Acceleration != nil && st.Velocity == nil {
		return fmt.Errorf("%w: acceleration override requires a velocity override", ErrInvalidSequence)
	}
	return nil
}

// Validate checks that every step of the sequence is well formed.
func (seq Sequence) Validate() error {
	for i, st := range seq {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// UnmarshalYAML accepts a step either as a 1-3 element numeric array
// [position, velocity, acceleration] or as a mapping with position,
// velocity and acceleration keys.
func (st *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var tuple []float64
		if err := value.Decode(&tuple); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSequence, err)
		}
		parsed, err := parseStep(tuple)
		if err != nil {
			return err
		}
		*st = parsed
		return nil
	}

	type rawStep Step // avoid recursing into UnmarshalYAML
	var raw rawStep
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSequence, err)
	}
	*st = Step(raw)
	return nil
}

func parseStep(tuple []float64) (Step, error) {
	switch len(tuple) {
	case 1:
		return Step{Position: tuple[0]}, nil
	case 2:
		return Step{Position: tuple[0], Velocity: &tuple[1]}, nil
	case 3:
		return Step{Position: tuple[0], Velocity: &tuple[1], Acceleration: &tuple[2]}, nil
	default:
		return Step{}, fmt.Errorf("%w: step has %d values, want 1 to 3", ErrInvalidSequence, len(tuple))
	}
}

// ParseSequence converts raw numeric tuples into a validated sequence.
// Each tuple is (position[, velocity[, acceleration]]).
func ParseSequence(tuples [][]float64) (Sequence, error) {
	seq := make(Sequence, 0, len(tuples))
	for i, tuple := range tuples {
		st, err := parseStep(tuple)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		seq = append(seq, st)
	}
	return seq, nil
}

// LoadSequence reads a YAML sequence file. The file holds a list of
// steps in either form accepted by Step:
//
//	- [10]
//	- [20, 5]
//	- position: 30
//	  velocity: 5
//	  acceleration: 10
func LoadSequence(path string) (Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence file: %w", err)
	}

	var seq Sequence
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSequence, err)
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return seq, nil
}
