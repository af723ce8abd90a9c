// Package simd provides portable byte-scanning primitives. In this module
// its only caller is the root package's countRawByte helper; neither
// grammar engine imports it.
//
// This package carries over the teacher's SWAR (SIMD Within A Register)
// fallback technique verbatim in spirit: 8 bytes at a time via uint64
// bitwise tricks, with CPU feature detection from golang.org/x/sys/cpu used
// only to pick a wider unrolling stride, not to dispatch to assembly (no
// assembly sources for this algorithm were available to port).
package simd

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// wideStride reports whether the host CPU can retire two 8-byte SWAR
// chunks per loop iteration at negligible extra cost (a rough proxy: AVX2
// implies a wide enough front end that unrolling by 2 pays for itself).
var wideStride = cpu.X86.HasAVX2

// Memchr returns the index of the first instance of needle in haystack, or
// -1 if absent. See memchrGeneric for the algorithm.
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if len(haystack) == 0 {
		return -1
	}
	return memchr2Generic(haystack, needle1, needle2)
}

// memchrGeneric implements pure Go SWAR byte search: broadcast the needle
// into every byte of a uint64, XOR against 8 bytes of input at a time, and
// use the classic zero-byte detection formula to find the first match.
func memchrGeneric(haystack []byte, needle byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == needle {
				return i
			}
		}
		return -1
	}

	needleMask := uint64(needle) * 0x0101010101010101

	step := 8
	if wideStride {
		step = 16
	}

	i := 0
	for ; i+step <= n; i += step {
		for off := 0; off < step; off += 8 {
			chunk := binary.LittleEndian.Uint64(haystack[i+off : i+off+8])
			x := chunk ^ needleMask
			if pos, ok := firstZeroByte(x); ok {
				return i + off + pos
			}
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

func memchr2Generic(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == needle1 || haystack[i] == needle2 {
				return i
			}
		}
		return -1
	}

	mask1 := uint64(needle1) * 0x0101010101010101
	mask2 := uint64(needle2) * 0x0101010101010101

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i : i+8])
		x1 := chunk ^ mask1
		x2 := chunk ^ mask2
		p1, ok1 := firstZeroByte(x1)
		p2, ok2 := firstZeroByte(x2)
		switch {
		case ok1 && ok2:
			if p1 < p2 {
				return i + p1
			}
			return i + p2
		case ok1:
			return i + p1
		case ok2:
			return i + p2
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle1 || haystack[i] == needle2 {
			return i
		}
	}
	return -1
}

// firstZeroByte returns the byte index (0-7) of the first zero byte in x,
// using the well-known haszero formula, and whether one exists.
func firstZeroByte(x uint64) (int, bool) {
	y := (x - 0x0101010101010101) & ^x & 0x8080808080808080
	if y == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(y) / 8, true
}

// CountByte returns the number of occurrences of b in data, used to build
// the symbol-count histogram during preprocessing.
func CountByte(data []byte, b byte) int {
	count := 0
	for i := Memchr(data, b); i != -1; {
		count++
		data = data[i+1:]
		i = Memchr(data, b)
	}
	return count
}
