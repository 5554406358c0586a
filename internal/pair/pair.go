package pair

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Padding is appended to odd-length input before pairing.
const Padding rune = ' '

const (
	minPacked = 0x100
	maxPacked = 0xFFFF
)

// Pair is one step of an encoding: two input characters and the code point
// they pack into.
type Pair struct {
	Hi     rune `json:"hi"`
	Lo     rune `json:"lo"`
	Packed rune `json:"packed"`
	Padded bool `json:"padded"` // Lo is the synthetic padding
}

// Encode packs text two characters at a time.
func Encode(text string) string {
	return string(EncodeRunes([]rune(text)))
}

// EncodeRunes is Encode over a rune slice. The result may contain surrogate
// values, which a Go string cannot hold.
func EncodeRunes(in []rune) []rune {
	if len(in) == 0 {
		return []rune{}
	}
	if len(in)%2 == 1 {
		padded := make([]rune, len(in)+1)
		copy(padded, in)
		padded[len(in)] = Padding
		in = padded
	}

	out := make([]rune, 0, len(in)/2)
	for i := 0; i < len(in); i += 2 {
		out = append(out, Pack(in[i], in[i+1]))
	}
	return out
}

// Pack combines the low bytes of hi and lo into 0xHHLL.
func Pack(hi, lo rune) rune {
	return lowByte(hi)<<8 | lowByte(lo)
}

// Decode expands every packed code point in text into two characters.
func Decode(text string) string {
	return string(DecodeRunes([]rune(text)))
}

// DecodeRunes is Decode over a rune slice.
func DecodeRunes(in []rune) []rune {
	out := make([]rune, 0, len(in)*2)
	for _, r := range in {
		if hi, lo, ok := Split(r); ok {
			out = append(out, hi, lo)
			continue
		}
		out = append(out, r)
	}
	return out
}

// Split reports whether r is a packed code point and, if so, returns its
// high and low bytes as characters. Values below 0x100 are plain characters;
// values above 0xFFFF cannot come from Encode and are treated as plain too.
func Split(r rune) (hi, lo rune, ok bool) {
	if r < minPacked || r > maxPacked {
		return 0, 0, false
	}
	return r >> 8, r & 0xFF, true
}

// Token renders the byte Encode uses for r as two lowercase hex digits.
func Token(r rune) string {
	if r == '\n' {
		return "0a"
	}
	return fmt.Sprintf("%02x", lowByte(r))
}

// Hex4 renders the low 16 bits of r as exactly four lowercase hex digits.
func Hex4(r rune) string {
	return fmt.Sprintf("%04x", r&maxPacked)
}

// Breakdown returns the pairs Encode forms from text, in order.
func Breakdown(text string) []Pair {
	in := []rune(text)
	pairs := make([]Pair, 0, (len(in)+1)/2)
	for i := 0; i < len(in); i += 2 {
		p := Pair{Hi: in[i], Lo: Padding, Padded: true}
		if i+1 < len(in) {
			p.Lo = in[i+1]
			p.Padded = false
		}
		p.Packed = Pack(p.Hi, p.Lo)
		pairs = append(pairs, p)
	}
	return pairs
}

// TrimPadding removes at most one trailing padding space from decoded text.
func TrimPadding(s string) string {
	return strings.TrimSuffix(s, string(Padding))
}

// Lossless reports whether Decode(Encode(text)) reproduces text, up to the
// padding space. Every character must fit in one byte, and no pair may start
// with NUL: such a pair packs below 0x100 and decodes as a single character.
func Lossless(text string) bool {
	for _, p := range Breakdown(text) {
		if p.Hi > 0xFF || p.Lo > 0xFF || p.Packed < minPacked {
			return false
		}
	}
	return true
}

// Representable reports whether Encode(text) can be held exactly by a Go
// string, i.e. no pair packs into a surrogate code point.
func Representable(text string) bool {
	for _, p := range Breakdown(text) {
		if !utf8.ValidRune(p.Packed) {
			return false
		}
	}
	return true
}

func lowByte(r rune) rune {
	if r == '\n' {
		return 0x0a
	}
	return r & 0xFF
}
