package deflate

import "fmt"

// Alphabet sizes per spec §3/§4.4.
const (
	literalLengthAlphabetSize = 286
	distanceAlphabetSize      = 30
	endOfBlockSymbol          = 256
)

// alphabetEntry describes one (base, extraBits) row of the
// length/distance alphabets, per RFC 1951 §3.2.5.
type alphabetEntry struct {
	base  int
	extra int
}

// lengthTable has 29 entries mapping symbol 257+i to lengths in
// [base, base+2^extra), final entry (258, 0).
var lengthTable = [29]alphabetEntry{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distanceTable has 30 entries mapping symbol i to distances in
// [base, base+2^extra), covering 1-32768.
var distanceTable = [30]alphabetEntry{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// encodeLength maps a match length (3..258) to its symbol, 257+i, plus the
// extra-bits value and width needed to disambiguate within that symbol's
// range.
func encodeLength(length int) (symbol int, extraValue uint32, extraBits int, err error) {
	if length < 3 || length > 258 {
		return 0, 0, 0, fmt.Errorf("%w: length %d", ErrInvalidLength, length)
	}
	for i, e := range lengthTable {
		hi := e.base + (1 << uint(e.extra)) - 1
		if e.extra == 0 {
			hi = e.base
		}
		if length >= e.base && length <= hi {
			return 257 + i, uint32(length - e.base), e.extra, nil
		}
	}
	return 0, 0, 0, fmt.Errorf("%w: length %d", ErrInvalidLength, length)
}

// decodeLength reads the extra bits for a length symbol (257..285) from src and
// returns the reconstructed length.
func decodeLength(symbol int, src *BitSource) (int, error) {
	if symbol < 257 || symbol > 285 {
		return 0, fmt.Errorf("%w: length symbol %d", ErrInvalidSymbol, symbol)
	}
	e := lengthTable[symbol-257]
	if e.extra == 0 {
		return e.base, nil
	}
	extra, err := src.ReadBits(e.extra)
	if err != nil {
		return 0, err
	}
	return e.base + int(extra), nil
}

// encodeDistance maps a distance (1..32768) to its symbol (0..29) plus the
// extra-bits value and width.
func encodeDistance(distance int) (symbol int, extraValue uint32, extraBits int, err error) {
	if distance < 1 || distance > 32768 {
		return 0, 0, 0, fmt.Errorf("%w: distance %d", ErrInvalidDistance, distance)
	}
	for i, e := range distanceTable {
		hi := e.base + (1 << uint(e.extra)) - 1
		if e.extra == 0 {
			hi = e.base
		}
		if distance >= e.base && distance <= hi {
			return i, uint32(distance - e.base), e.extra, nil
		}
	}
	return 0, 0, 0, fmt.Errorf("%w: distance %d", ErrInvalidDistance, distance)
}

// decodeDistance reads the extra bits for a distance symbol (0..29) from
// src and returns the reconstructed distance.
func decodeDistance(symbol int, src *BitSource) (int, error) {
	if symbol < 0 || symbol >= distanceAlphabetSize {
		return 0, fmt.Errorf("%w: distance symbol %d", ErrInvalidSymbol, symbol)
	}
	e := distanceTable[symbol]
	if e.extra == 0 {
		return e.base, nil
	}
	extra, err := src.ReadBits(e.extra)
	if err != nil {
		return 0, err
	}
	return e.base + int(extra), nil
}

// Fixed code tables, built once at package init from the RFC 1951 §3.2.6
// length assignment via the same canonical-code algorithm used for dynamic
// blocks (the RFC's fixed codes are themselves the canonical assignment of
// that fixed length vector, so one code path produces both).
var (
	fixedLitLenLengths []int
	fixedLitLenCodes   []uint32
	fixedDistLengths   []int
	fixedDistCodes     []uint32
)

func init() {
	// The fixed literal/length length vector spans all 288 RFC symbols
	// (286 and 287 never occur in a block) so that its canonical codes
	// are exactly the RFC's.
	fixedLitLenLengths = make([]int, 288)
	for i := range fixedLitLenLengths {
		switch {
		case i <= 143:
			fixedLitLenLengths[i] = 8
		case i <= 255:
			fixedLitLenLengths[i] = 9
		case i <= 279:
			fixedLitLenLengths[i] = 7
		default: // 280-287
			fixedLitLenLengths[i] = 8
		}
	}
	fixedLitLenCodes = buildCanonicalCodes(fixedLitLenLengths)

	fixedDistLengths = make([]int, distanceAlphabetSize)
	for i := range fixedDistLengths {
		fixedDistLengths[i] = 5
	}
	fixedDistCodes = buildCanonicalCodes(fixedDistLengths)
}
