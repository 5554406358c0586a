// Package harness runs conformance scenarios against the pair codec.
//
// A scenario is a YAML file listing codec cases:
//
//	name: bored
//	description: worked example from the codec docs
//	cases:
//	  - op: encode
//	    input: "bored"
//	    want_codepoints: [0x626f, 0x7265, 0x6420]
//	  - op: decode
//	    input_codepoints: [0x6865, 0x6c6c, 0x6f20]
//	    want: "hello "
//	  - op: roundtrip
//	    input: "odd"
//	    trim: true
//
// Inputs and expectations can be given as text or as code point lists; code
// points reach the codec's rune form directly, so surrogate values can be
// exercised too. Run produces a trace of every case that RunWithGolden
// snapshots under testdata/golden.
package harness
