// Package textio reads input text for the codec and writes its output.
// Input files may be in a legacy charset; everything handed to the codec and
// written back out is UTF-8.
package textio

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownCharset is returned for a charset name not in Charsets.
var ErrUnknownCharset = errors.New("unknown charset")

// DefaultCharset is used when no charset is configured.
const DefaultCharset = "utf-8"

var charsets = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"latin1":       charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
}

// Charsets lists the accepted charset names in sorted order.
func Charsets() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsCharset reports whether name is an accepted charset.
func IsCharset(name string) bool {
	_, ok := charsets[strings.ToLower(name)]
	return ok
}

// DecodeBytes converts data in the named charset to a UTF-8 string.
// An empty name means DefaultCharset.
func DecodeBytes(data []byte, charset string) (string, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	enc, ok := charsets[strings.ToLower(charset)]
	if !ok {
		return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownCharset, charset, Charsets())
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", charset, err)
	}
	return string(out), nil
}

// ReadFile reads the whole file at path and decodes it from charset.
func ReadFile(path, charset string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading input file: %w", err)
	}
	return DecodeBytes(data, charset)
}

// WriteFile writes s to path as UTF-8.
func WriteFile(path, s string) error {
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// Normalize returns s in Unicode normalization form C, which folds combining
// sequences such as "e" + U+0301 into a single precomposed character.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
