// Package pair implements the pair codec: a reversible transform that packs
// two characters into one wide code point and unpacks them again.
//
// # Encoding
//
// Every two consecutive input characters become one output character whose
// value is the concatenation of their low bytes:
//
//	b    o    r    e    d    (pad)
//	62   6f   72   65   64   20
//	 0x626f    0x7265    0x6420
//	   扯        牥        搠
//
// Odd-length input is padded with one space before pairing, so the output
// has ceil(N/2) characters.
//
// # Decoding
//
// A character in 0x100..0xFFFF is a packed code point and expands to its
// high byte and low byte. Anything else passes through unchanged. Decoding an
// odd-length encoding therefore yields one extra trailing space; callers that
// need the exact input use TrimPadding.
//
// Both directions are total: they never fail. Characters above 0xFF lose
// their high bits during encoding.
//
// # Strings and surrogates
//
// Packed values 0xD800..0xDFFF are UTF-16 surrogates and cannot be stored in
// a Go string. EncodeRunes and DecodeRunes carry them exactly; the string
// forms substitute U+FFFD. Representable reports whether the string form of
// an encoding is exact.
package pair
