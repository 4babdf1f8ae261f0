package deflate

import "errors"

// Sentinel errors identifying the error kinds a malformed compressed buffer
// can surface. Callers should compare with errors.Is; the wrapped detail
// message is for humans only.
var (
	// ErrInvalidLength is returned when a length value falls outside the
	// range the length alphabet can represent.
	ErrInvalidLength = errors.New("deflate: invalid length")

	// ErrInvalidDistance is returned when a distance value falls outside
	// the range the distance alphabet can represent.
	ErrInvalidDistance = errors.New("deflate: invalid distance")

	// ErrInvalidSymbol is returned when a decoded symbol falls outside
	// its alphabet.
	ErrInvalidSymbol = errors.New("deflate: invalid symbol")

	// ErrMalformedStream covers truncated bit prefixes, truncated bit
	// payloads, malformed integer runs, Huffman decode-table misses, code
	// lengths above 15, and back-references reaching before the start of
	// the output.
	ErrMalformedStream = errors.New("deflate: malformed stream")

	// ErrInvalidBlockHeader is returned when a block begins with the
	// reserved 2-bit header 00 or 11.
	ErrInvalidBlockHeader = errors.New("deflate: invalid block header")
)
