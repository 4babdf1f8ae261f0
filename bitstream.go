package deflate

import (
	"encoding/binary"
	"fmt"
)

// BitSink accumulates an ordered sequence of single-bit values and, on
// Finish, packs them MSB-first into bytes prefixed with a 4-byte big-endian
// bit count (see spec §4.1 / §6 wire format). A BitSink is also used as a
// scratch buffer for building a single block's candidate bit string before
// it is spliced into the top-level sink via AppendBits, since block framing
// (fixed vs. dynamic) is chosen by comparing two candidate bit counts before
// either is committed.
type BitSink struct {
	bytes []byte
	nbits int
}

// NewBitSink returns an empty BitSink.
func NewBitSink() *BitSink {
	return &BitSink{}
}

// Len reports the number of bits written so far.
func (s *BitSink) Len() int {
	return s.nbits
}

// WriteBit appends a single bit (0 or nonzero, treated as 1).
func (s *BitSink) WriteBit(bit byte) {
	byteIdx := s.nbits / 8
	bitIdx := 7 - uint(s.nbits%8)
	if byteIdx == len(s.bytes) {
		s.bytes = append(s.bytes, 0)
	}
	if bit != 0 {
		s.bytes[byteIdx] |= 1 << bitIdx
	}
	s.nbits++
}

// WriteBits appends the low width bits of value, most-significant bit
// first.
func (s *BitSink) WriteBits(value uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		s.WriteBit(byte((value >> uint(i)) & 1))
	}
}

// bitAt returns the bit at logical position i (MSB-first within each byte).
func (s *BitSink) bitAt(i int) byte {
	byteIdx := i / 8
	bitIdx := 7 - uint(i%8)
	return (s.bytes[byteIdx] >> bitIdx) & 1
}

// AppendBits splices another BitSink's bits onto the end of s, bit-exact
// (no byte alignment is introduced at the splice point).
func (s *BitSink) AppendBits(other *BitSink) {
	for i := 0; i < other.nbits; i++ {
		s.WriteBit(other.bitAt(i))
	}
}

// Finish packs the accumulated bits into the wire format: a 4-byte
// big-endian bit count followed by ceil(nbits/8) bytes, MSB-first, with the
// final byte zero-padded on the low end.
func (s *BitSink) Finish() []byte {
	out := make([]byte, 4+len(s.bytes))
	binary.BigEndian.PutUint32(out[:4], uint32(s.nbits))
	copy(out[4:], s.bytes)
	return out
}

// BitSource is the inverse of BitSink: it parses the 4-byte bit count
// prefix and exposes bits one at a time, MSB-first.
type BitSource struct {
	data      []byte
	totalBits int
	pos       int
}

// NewBitSource parses the 4-byte length prefix of data and validates that
// enough trailing bytes are present to supply that many bits.
func NewBitSource(data []byte) (*BitSource, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: truncated bit-count prefix", ErrMalformedStream)
	}
	totalBits := int(binary.BigEndian.Uint32(data[:4]))
	need := (totalBits + 7) / 8
	payload := data[4:]
	if len(payload) < need {
		return nil, fmt.Errorf("%w: truncated bit payload", ErrMalformedStream)
	}
	return &BitSource{data: payload, totalBits: totalBits}, nil
}

// Remaining reports how many unread bits remain.
func (s *BitSource) Remaining() int {
	return s.totalBits - s.pos
}

// ReadBit returns the next bit, MSB-first.
func (s *BitSource) ReadBit() (byte, error) {
	if s.pos >= s.totalBits {
		return 0, fmt.Errorf("%w: truncated bit stream", ErrMalformedStream)
	}
	byteIdx := s.pos / 8
	bitIdx := 7 - uint(s.pos%8)
	bit := (s.data[byteIdx] >> bitIdx) & 1
	s.pos++
	return bit, nil
}

// ReadBits reads width bits and assembles them MSB-first into value.
func (s *BitSource) ReadBits(width int) (uint32, error) {
	var value uint32
	for i := 0; i < width; i++ {
		bit, err := s.ReadBit()
		if err != nil {
			return 0, err
		}
		value = (value << 1) | uint32(bit)
	}
	return value, nil
}
