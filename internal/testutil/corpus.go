// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Latin1 returns every code point from 0x00 to 0xFF that keep accepts.
// A nil keep accepts everything.
func Latin1(keep func(r rune) bool) []rune {
	out := make([]rune, 0, 256)
	for r := rune(0); r <= 0xFF; r++ {
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// StringSafe accepts characters that survive both directions of the string
// codec in any position: no NUL, which packs below 0x100 when it leads a
// pair, and nothing in 0xD8..0xDF, which packs into a surrogate.
func StringSafe(r rune) bool {
	return r != 0 && (r < 0xD8 || r > 0xDF)
}

// WriteFile writes content to name under dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
