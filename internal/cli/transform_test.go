package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/widepack/internal/testutil"
)

type transformResponse struct {
	Status string          `json:"status"`
	Data   TransformResult `json:"data"`
	Error  *CLIError       `json:"error"`
}

func decodeTransformJSON(t *testing.T, stdout string) transformResponse {
	t.Helper()
	var resp transformResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), "stdout: %s", stdout)
	return resp
}

func TestTransform_Encode(t *testing.T) {
	stdout, stderr, code := runCLI(t, "-s", "bored")
	require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)
	assert.Equal(t, "扯牥搠\n", stdout)
}

func TestTransform_Decode(t *testing.T) {
	stdout, _, code := runCLI(t, "-d", "-s", "桥汬漠")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "hello \n", stdout)
}

func TestTransform_DecodeTrim(t *testing.T) {
	stdout, _, code := runCLI(t, "--decode", "--trim", "--string", "桥汬漠")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "hello\n", stdout)
}

func TestTransform_EmptyLiteral(t *testing.T) {
	stdout, _, code := runCLI(t, "-s", "")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "\n", stdout)
}

func TestTransform_NoInput(t *testing.T) {
	stdout, stderr, code := runCLI(t)
	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error [E001]")
	assert.Contains(t, stderr, "specify a source using the -s or -f options")
}

func TestTransform_NoInputJSON(t *testing.T) {
	stdout, _, code := runCLI(t, "--format", "json", "-d")
	assert.Equal(t, ExitCommandError, code)

	resp := decodeTransformJSON(t, stdout)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNoInput, resp.Error.Code)
}

func TestTransform_ConflictingSources(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "in.txt", []byte("hi"))

	_, stderr, code := runCLI(t, "-s", "hi", "-f", path)
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "none of the others can be")
}

func TestTransform_File(t *testing.T) {
	dir := t.TempDir()
	in := testutil.WriteFile(t, dir, "in.txt", []byte("hi\n"))

	stdout, _, code := runCLI(t, "-f", in)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, string([]rune{0x6869, 0x0a20})+"\n", stdout)
}

func TestTransform_FileLatin1(t *testing.T) {
	in := testutil.WriteFile(t, t.TempDir(), "in.txt", []byte{'c', 'a', 'f', 0xE9})

	stdout, _, code := runCLI(t, "-f", in, "--charset", "latin1")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, string([]rune{0x6361, 0x66e9})+"\n", stdout)
}

func TestTransform_UnknownCharset(t *testing.T) {
	in := testutil.WriteFile(t, t.TempDir(), "in.txt", []byte("hi"))

	_, stderr, code := runCLI(t, "-f", in, "--charset", "ebcdic")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "Error [E007]")
}

func TestTransform_MissingFile(t *testing.T) {
	_, stderr, code := runCLI(t, "-f", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "Error [E002]")
	assert.Contains(t, stderr, "input file not found")
}

func TestTransform_OutputFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := testutil.WriteFile(t, dir, "in.txt", []byte("the quick brown fox\n"))
	packed := filepath.Join(dir, "packed.txt")
	unpacked := filepath.Join(dir, "unpacked.txt")

	stdout, _, code := runCLI(t, "-f", in, "-o", packed)
	require.Equal(t, ExitSuccess, code)
	assert.Empty(t, stdout)

	stdout, _, code = runCLI(t, "-d", "-f", packed, "-o", unpacked)
	require.Equal(t, ExitSuccess, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(unpacked)
	require.NoError(t, err)
	assert.Equal(t, "the quick brown fox\n", string(data))
}

func TestTransform_OutputFileUnwritable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")

	_, stderr, code := runCLI(t, "-s", "hi", "-o", out)
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "Error [E003]")
}

func TestTransform_JSON(t *testing.T) {
	stdout, _, code := runCLI(t, "--format", "json", "-s", "bored")
	require.Equal(t, ExitSuccess, code)

	resp := decodeTransformJSON(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, TransformResult{
		Mode:         "encode",
		Source:       "string",
		InputLength:  5,
		OutputLength: 3,
		Padded:       true,
		Lossless:     true,
		Output:       "扯牥搠",
	}, resp.Data)
}

func TestTransform_Strict(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wide characters", "中文"},
		{"leading NUL", "\x00a"},
		{"surrogate packing", "\u00d8a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runCLI(t, "--strict", "-s", tt.input)
			assert.Equal(t, ExitFailure, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error [E005]")
		})
	}
}

func TestTransform_LossyWithoutStrict(t *testing.T) {
	stdout, _, code := runCLI(t, "--format", "json", "-s", "中a")
	require.Equal(t, ExitSuccess, code)

	resp := decodeTransformJSON(t, stdout)
	assert.False(t, resp.Data.Lossless)
	assert.Equal(t, string([]rune{0x2d61}), resp.Data.Output)
}

func TestTransform_Normalize(t *testing.T) {
	decomposed := "e\u0301x"

	stdout, _, code := runCLI(t, "-s", decomposed, "--normalize")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, string([]rune{0xe978})+"\n", stdout)

	stdout, _, code = runCLI(t, "-s", decomposed)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, string([]rune{0x6501, 0x7820})+"\n", stdout)
}

func TestTransform_Verbose(t *testing.T) {
	stdout, stderr, code := runCLI(t, "-v", "-s", "bored")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "扯牥搠\n", stdout)
	assert.Contains(t, stderr, "read input")
	assert.Contains(t, stderr, "transformed")
}

func TestTransform_Config(t *testing.T) {
	dir := t.TempDir()
	cfgPath := testutil.WriteFile(t, dir, "widepack.cue", []byte("mode: \"decode\"\ntrim: true\n"))

	stdout, _, code := runCLI(t, "--config", cfgPath, "-s", "桥汬漠")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "hello\n", stdout)

	// Flags set on the command line win over the config file.
	stdout, _, code = runCLI(t, "--config", cfgPath, "--decode=false", "-s", "hi")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, string([]rune{0x6869})+"\n", stdout)
}

func TestTransform_InvalidConfig(t *testing.T) {
	cfgPath := testutil.WriteFile(t, t.TempDir(), "bad.cue", []byte(`mode: "rot13"`))

	_, stderr, code := runCLI(t, "--config", cfgPath, "-s", "hi")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "Error [E004]")
}

func TestTransform_Journal(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	stdout, _, code := runCLI(t, "--format", "json", "--journal", db, "-s", "bored")
	require.Equal(t, ExitSuccess, code)

	resp := decodeTransformJSON(t, stdout)
	assert.Len(t, resp.Data.JournalID, 36)

	_, err := os.Stat(db)
	require.NoError(t, err)
}
