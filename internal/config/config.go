// Package config loads widepack settings from a CUE file.
//
// A config file is a plain CUE struct checked against the closed #Config
// definition in schema.cue:
//
//	mode:      "decode"
//	charset:   "latin1"
//	normalize: true
//	journal:   "widepack.db"
//
// Unknown fields and out-of-range values are errors. Omitted fields take the
// schema defaults, which match the command-line defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// FileName is the config file picked up from the working directory when no
// path is given explicitly.
const FileName = "widepack.cue"

// Modes.
const (
	ModeEncode = "encode"
	ModeDecode = "decode"
)

// Config holds the settings a config file may provide.
type Config struct {
	Mode      string `json:"mode"`
	Charset   string `json:"charset"`
	Normalize bool   `json:"normalize"`
	Trim      bool   `json:"trim"`
	Strict    bool   `json:"strict"`
	Journal   string `json:"journal"`
}

// Error is a config problem, with the CUE position when one is known.
type Error struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Default returns the settings used when there is no config file.
func Default() Config {
	return Config{Mode: ModeEncode, Charset: "utf-8"}
}

// Decoding reports whether the configured mode is decode.
func (c Config) Decoding() bool {
	return c.Mode == ModeDecode
}

// Find returns the path of FileName inside dir, or "" if there is none.
func Find(dir string) string {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Path: path, Message: fmt.Sprintf("reading config: %v", err)}
	}
	return Parse(path, data)
}

// Parse validates CUE source against the schema and decodes it. The name is
// used in error positions.
func Parse(name string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compiling config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.CompileBytes(src, cue.Filename(name))
	if err := v.Err(); err != nil {
		return Config{}, formatCUEError(name, err)
	}

	merged := def.Unify(v)
	if err := merged.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(name, err)
	}

	var cfg Config
	if err := merged.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(name, err)
	}
	return cfg, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(name string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Path: name, Message: err.Error()}
	}

	first := errs[0]
	cfgErr := &Error{Path: name, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		cfgErr.Pos = positions[0]
	}
	return cfgErr
}
