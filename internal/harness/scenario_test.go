package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/bored.yaml")
	require.NoError(t, err)

	assert.Equal(t, "bored", scenario.Name)
	require.Len(t, scenario.Cases, 6)

	first := scenario.Cases[0]
	assert.Equal(t, OpEncode, first.Op)
	require.NotNil(t, first.Input)
	assert.Equal(t, "bored", *first.Input)
	assert.Equal(t, []rune{0x626f, 0x7265, 0x6420}, first.WantCodepoints)
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: misspelt field
case:
  - op: encode
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\ncases:\n  - op: roundtrip\n    input: x\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\ncases:\n  - op: roundtrip\n    input: x\n",
			wantErr: "description is required",
		},
		{
			name:    "no cases",
			yaml:    "name: n\ndescription: d\n",
			wantErr: "cases list is required",
		},
		{
			name:    "missing op",
			yaml:    "name: n\ndescription: d\ncases:\n  - input: x\n",
			wantErr: "op is required",
		},
		{
			name:    "unknown op",
			yaml:    "name: n\ndescription: d\ncases:\n  - op: rot13\n    input: x\n",
			wantErr: `unknown op "rot13"`,
		},
		{
			name:    "no input",
			yaml:    "name: n\ndescription: d\ncases:\n  - op: roundtrip\n",
			wantErr: "exactly one of input and input_codepoints",
		},
		{
			name:    "both inputs",
			yaml:    "name: n\ndescription: d\ncases:\n  - op: roundtrip\n    input: x\n    input_codepoints: [0x78]\n",
			wantErr: "exactly one of input and input_codepoints",
		},
		{
			name:    "both wants",
			yaml:    "name: n\ndescription: d\ncases:\n  - op: encode\n    input: x\n    want: a\n    want_codepoints: [0x61]\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "encode without want",
			yaml:    "name: n\ndescription: d\ncases:\n  - op: encode\n    input: x\n",
			wantErr: "encode needs want",
		},
		{
			name:    "trim on decode",
			yaml:    "name: n\ndescription: d\ncases:\n  - op: decode\n    input: x\n    want: x\n    trim: true\n",
			wantErr: "trim only applies to roundtrip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScenario)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
