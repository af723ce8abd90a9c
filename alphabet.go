package graco

import (
	"unicode/utf8"

	"github.com/coregx/graco/internal/simd"
)

// Wire-format constants, confirmed against the original GLZA/repair-navarro
// sources (original_source/external-overrides/glza/GLZAcompress.c): the
// two reserved escape bytes, the end-of-sequence sentinel, and the hard
// symbol-definition budget (spec §4.6, §6).
const (
	// InsertSymbolChar escapes a 3-byte big-endian reference to an
	// already-defined non-terminal inline in the residual stream.
	InsertSymbolChar byte = 0xFE

	// DefineSymbolChar prefixes a 3-byte big-endian index identifying a
	// newly appended rule definition.
	DefineSymbolChar byte = 0xFF

	// EndOfSequence terminates the internal int32 symbol stream.
	EndOfSequence int32 = -2 // 0xFFFFFFFE as a signed 32-bit value

	// MaxSymbolsDefined bounds the number of non-terminals the longest
	// string engine's outer loop (spec §4.6) may define in one run.
	MaxSymbolsDefined int32 = 0x00900000

	// capEncodedFlagBit is bit 0 of the input file's leading byte (spec §6).
	capEncodedFlagBit = 0x01
)

// Alphabet records the dense terminal mapping produced by EncodeBytes, so a
// Grammar's residual/rule symbols can be mapped back to the original bytes
// or code points for round-trip verification.
type Alphabet struct {
	UTF8Mode   bool
	CapEncoded bool
	// ByteOf maps a dense terminal id back to its original byte (non-UTF8
	// mode) or code point (UTF-8 mode, widened to int32).
	ByteOf []int32
}

// EncodeBytes is the pair/longest-string engines' shared Initializer /
// Preprocessor (spec §4.1 step 1, §4.2 step 1): it maps input bytes into
// the dense terminal range, decoding any INSERT_SYMBOL/DEFINE_SYMBOL escape
// markers already present in the input (spec §6) rather than treating them
// as literal data.
//
// The leading byte of data is interpreted as the format flag described in
// spec §6 (bit 0 = cap-encoded) and is not itself part of the symbol
// stream.
func EncodeBytes(data []byte) ([]int32, Alphabet, error) {
	if len(data) == 0 {
		return nil, Alphabet{}, nil
	}

	flag := data[0]
	body := data[1:]
	capEncoded := flag&capEncodedFlagBit != 0

	utf8Mode := capEncoded && utf8.Valid(body)

	symbols := make([]int32, 0, len(body))
	byteOf := make([]int32, 0, 256)
	index := make(map[int32]int32, 256)

	intern := func(v int32) int32 {
		if id, ok := index[v]; ok {
			return id
		}
		id := int32(len(byteOf))
		byteOf = append(byteOf, v)
		index[v] = id
		return id
	}

	i := 0
	for i < len(body) {
		b := body[i]
		switch {
		case b == InsertSymbolChar && i+3 < len(body) && body[i+1] != DefineSymbolChar:
			ref := decode24(body[i+1], body[i+2], body[i+3])
			symbols = append(symbols, ref)
			i += 4
		case b == DefineSymbolChar && i+3 < len(body):
			ref := decode24(body[i+1], body[i+2], body[i+3])
			symbols = append(symbols, -(ref + 1)) // negative marks a define-symbol back-reference
			i += 4
		case utf8Mode:
			r, size := utf8.DecodeRune(body[i:])
			if r == utf8.RuneError && size <= 1 {
				symbols = append(symbols, intern(int32(b)))
				i++
				continue
			}
			symbols = append(symbols, intern(int32(r)))
			i += size
		default:
			symbols = append(symbols, intern(int32(b)))
			i++
		}
	}

	return symbols, Alphabet{UTF8Mode: utf8Mode, CapEncoded: capEncoded, ByteOf: byteOf}, nil
}

func decode24(b0, b1, b2 byte) int32 {
	return int32(b0)<<16 | int32(b1)<<8 | int32(b2)
}

func encode24(v int32) [3]byte {
	return [3]byte{byte(v >> 16), byte(v >> 8), byte(v)}
}

// countSymbolHistogram builds the per-symbol occurrence histogram spec
// §4.2 step 1 requires ("symbol-count histogram") with a plain loop over
// symbols; values outside [0, numTerminals) are skipped.
func countSymbolHistogram(symbols []int32, numTerminals int) []int {
	hist := make([]int, numTerminals)
	for _, s := range symbols {
		if s >= 0 && int(s) < numTerminals {
			hist[s]++
		}
	}
	return hist
}

// countRawByte is a thin wrapper kept so callers that already hold a raw
// byte buffer (e.g. tests comparing against the escape-scanning path) can
// reuse the SWAR scanner directly instead of re-deriving symbols first.
func countRawByte(data []byte, b byte) int {
	return simd.CountByte(data, b)
}
