package deflate

import (
	"fmt"
	"math/bits"
)

// EncodeIntegers writes each value in v onto sink as a self-delimited
// unary-length-prefixed binary numeral: len(binary(v)) one-bits, a zero-bit
// separator, then the binary digits of v themselves. Zero is encoded as a
// bare zero-bit (zero ones, separator, empty payload) per spec §4.2/§9 —
// this is a deliberate deviation from the original Python reference, which
// encodes zero as "100"; see DESIGN.md.
func EncodeIntegers(sink *BitSink, v []uint32) {
	for _, n := range v {
		width := bitWidth(n)
		for i := 0; i < width; i++ {
			sink.WriteBit(1)
		}
		sink.WriteBit(0)
		if width > 0 {
			sink.WriteBits(n, width)
		}
	}
}

// DecodeIntegers reads count integers from src in the format EncodeIntegers
// produces.
func DecodeIntegers(src *BitSource, count int) ([]uint32, error) {
	out := make([]uint32, 0, count)
	for len(out) < count {
		width := 0
		for {
			bit, err := src.ReadBit()
			if err != nil {
				return nil, fmt.Errorf("%w: truncated integer unary prefix", ErrMalformedStream)
			}
			if bit == 0 {
				break
			}
			width++
		}
		var value uint32
		if width > 0 {
			v, err := src.ReadBits(width)
			if err != nil {
				return nil, fmt.Errorf("%w: truncated integer payload", ErrMalformedStream)
			}
			value = v
		}
		out = append(out, value)
	}
	return out, nil
}

// bitWidth returns the number of bits in the minimal binary representation
// of n, with bitWidth(0) == 0 (the empty string), matching spec §4.2.
func bitWidth(n uint32) int {
	return bits.Len32(n)
}
