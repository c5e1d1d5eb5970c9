package lts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence([][]float64{{10}, {20, 5}, {30, 5, 10}})
	require.NoError(t, err)
	require.Len(t, seq, 3)

	assert.Equal(t, 10.0, seq[0].Position)
	assert.Nil(t, seq[0].Velocity)

	assert.Equal(t, 20.0, seq[1].Position)
	require.NotNil(t, seq[1].Velocity)
	assert.Equal(t, 5.0, *seq[1].Velocity)
	assert.Nil(t, seq[1].Acceleration)

	require.NotNil(t, seq[2].Acceleration)
	assert.Equal(t, 10.0, *seq[2].Acceleration)
}

func TestParseSequence_BadArity(t *testing.T) {
	_, err := ParseSequence([][]float64{{}})
	assert.ErrorIs(t, err, ErrInvalidSequence)

	_, err = ParseSequence([][]float64{{1, 2, 3, 4}})
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestSequenceValidate_AccelerationWithoutVelocity(t *testing.T) {
	acc := 10.0
	seq := Sequence{{Position: 20, Acceleration: &acc}}
	assert.ErrorIs(t, seq.Validate(), ErrInvalidSequence)
}

func writeSequenceFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sequence.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadSequence_TupleForm(t *testing.T) {
	path := writeSequenceFile(t, `
- [10]
- [20, 5]
- [30, 5, 10]
`)

	seq, err := LoadSequence(path)
	require.NoError(t, err)
	require.Len(t, seq, 3)
	assert.Equal(t, 30.0, seq[2].Position)
	require.NotNil(t, seq[2].Velocity)
	assert.Equal(t, 5.0, *seq[2].Velocity)
}

func TestLoadSequence_MappingForm(t *testing.T) {
	path := writeSequenceFile(t, `
- position: 10
- position: 20
  velocity: 5
- position: 30
  velocity: 5
  acceleration: 10
`)

	seq, err := LoadSequence(path)
	require.NoError(t, err)
	require.Len(t, seq, 3)
	assert.Equal(t, 20.0, seq[1].Position)
	require.NotNil(t, seq[2].Acceleration)
	assert.Equal(t, 10.0, *seq[2].Acceleration)
}

func TestLoadSequence_Malformed(t *testing.T) {
	path := writeSequenceFile(t, `
- [10, 20, 30, 40]
`)
	_, err := LoadSequence(path)
	assert.ErrorIs(t, err, ErrInvalidSequence)

	path = writeSequenceFile(t, `
- position: 20
  acceleration: 10
`)
	_, err = LoadSequence(path)
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestLoadSequence_MissingFile(t *testing.T) {
	_, err := LoadSequence(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
