package deflate

import "fmt"

// Block header values (spec §6).
const (
	blockHeaderFixed   = 0b01
	blockHeaderDynamic = 0b10
)

// litLenEvent is one entry of the per-block literal/length symbol stream
// (spec §4.7 step 1/2): either a plain literal, or a length symbol paired
// with its distance symbol.
type litLenEvent struct {
	symbol    int
	extra     uint32
	extraBits int

	hasDist       bool
	distSymbol    int
	distExtra     uint32
	distExtraBits int
}

// buildEvents converts a block's tokens into the literal/length event
// stream, terminated by the end-of-block sentinel.
func buildEvents(tokens []Token) ([]litLenEvent, error) {
	events := make([]litLenEvent, 0, len(tokens)+1)
	for _, t := range tokens {
		if t.Distance > 0 {
			lenSym, lenExtra, lenExtraBits, err := encodeLength(t.Length)
			if err != nil {
				return nil, err
			}
			distSym, distExtra, distExtraBits, err := encodeDistance(t.Distance)
			if err != nil {
				return nil, err
			}
			events = append(events, litLenEvent{
				symbol: lenSym, extra: lenExtra, extraBits: lenExtraBits,
				hasDist: true, distSymbol: distSym, distExtra: distExtra, distExtraBits: distExtraBits,
			})
		}
		if t.HasLiteral {
			events = append(events, litLenEvent{symbol: int(t.Literal)})
		}
	}
	events = append(events, litLenEvent{symbol: endOfBlockSymbol})
	return events, nil
}

// writeEvents writes each event's literal/length code and extra bits, and
// distance code and extra bits where present, onto sink using the given
// code tables.
func writeEvents(sink *BitSink, events []litLenEvent, litLenLengths []int, litLenCodes []uint32, distLengths []int, distCodes []uint32) {
	for _, e := range events {
		sink.WriteBits(litLenCodes[e.symbol], litLenLengths[e.symbol])
		if e.extraBits > 0 {
			sink.WriteBits(e.extra, e.extraBits)
		}
		if e.hasDist {
			sink.WriteBits(distCodes[e.distSymbol], distLengths[e.distSymbol])
			if e.distExtraBits > 0 {
				sink.WriteBits(e.distExtra, e.distExtraBits)
			}
		}
	}
}

// buildDynamicCandidate builds a block's dynamic-Huffman bit string: the
// code-length table (via IntegerCodec) followed by the coded event stream.
func buildDynamicCandidate(events []litLenEvent) *BitSink {
	litLenFreq := make(map[int]int)
	distFreq := make(map[int]int)
	for _, e := range events {
		litLenFreq[e.symbol]++
		if e.hasDist {
			distFreq[e.distSymbol]++
		}
	}

	litLenLengths := buildCodeLengths(litLenFreq, literalLengthAlphabetSize)
	distLengths := buildCodeLengths(distFreq, distanceAlphabetSize)
	litLenCodes := buildCanonicalCodes(litLenLengths)
	distCodes := buildCanonicalCodes(distLengths)

	cand := NewBitSink()
	vector := make([]uint32, 0, literalLengthAlphabetSize+distanceAlphabetSize)
	for _, l := range litLenLengths {
		vector = append(vector, uint32(l))
	}
	for _, l := range distLengths {
		vector = append(vector, uint32(l))
	}
	EncodeIntegers(cand, vector)
	writeEvents(cand, events, litLenLengths, litLenCodes, distLengths, distCodes)
	return cand
}

// buildFixedCandidate builds a block's fixed-Huffman bit string: just the
// coded event stream, using the precomputed fixed code tables.
func buildFixedCandidate(events []litLenEvent) *BitSink {
	cand := NewBitSink()
	writeEvents(cand, events, fixedLitLenLengths, fixedLitLenCodes, fixedDistLengths, fixedDistCodes)
	return cand
}

// Compress converts input into a self-describing compressed buffer. It
// never fails: every byte buffer, including the empty buffer, is accepted.
func Compress(input []byte) []byte {
	tokens := LZ77Encode(input)

	var blocks [][]Token
	var current []Token
	splitter := NewBlockSplitter()
	for _, tok := range tokens {
		if tok.Distance == 0 {
			splitter.ObserveLiteral(int(tok.Literal))
		} else {
			splitter.ObserveMatch(tok.Length)
		}
		current = append(current, tok)
		if splitter.ShouldEndBlock(len(current)) {
			blocks = append(blocks, current)
			current = nil
			splitter.Reset()
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	sink := NewBitSink()
	for _, blockTokens := range blocks {
		events, err := buildEvents(blockTokens)
		if err != nil {
			// encodeLength/encodeDistance only fail on out-of-range
			// values, which the matcher itself never produces.
			panic(err)
		}
		dynamic := buildDynamicCandidate(events)
		fixed := buildFixedCandidate(events)
		if fixed.Len() <= dynamic.Len() {
			sink.WriteBits(blockHeaderFixed, 2)
			sink.AppendBits(fixed)
		} else {
			sink.WriteBits(blockHeaderDynamic, 2)
			sink.AppendBits(dynamic)
		}
	}
	return sink.Finish()
}

// Decompress reconstructs the original byte buffer from one produced by
// Compress. On malformed input it returns an error satisfying errors.Is
// against one of the sentinel Err* values in errors.go; it never panics.
func Decompress(input []byte) ([]byte, error) {
	src, err := NewBitSource(input)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for src.Remaining() > 0 {
		header, err := src.ReadBits(2)
		if err != nil {
			return nil, err
		}

		var litLenTable, distTable *huffmanDecodeTable
		switch header {
		case blockHeaderFixed:
			litLenTable = buildHuffmanDecodeTable(fixedLitLenLengths)
			distTable = buildHuffmanDecodeTable(fixedDistLengths)
		case blockHeaderDynamic:
			lengths, err := DecodeIntegers(src, literalLengthAlphabetSize+distanceAlphabetSize)
			if err != nil {
				return nil, err
			}
			for _, v := range lengths {
				if v > maxCodeBits {
					return nil, fmt.Errorf("%w: code length %d exceeds %d", ErrMalformedStream, v, maxCodeBits)
				}
			}
			litLenLengths := make([]int, literalLengthAlphabetSize)
			for i, v := range lengths[:literalLengthAlphabetSize] {
				litLenLengths[i] = int(v)
			}
			distLengths := make([]int, distanceAlphabetSize)
			for i, v := range lengths[literalLengthAlphabetSize:] {
				distLengths[i] = int(v)
			}
			litLenTable = buildHuffmanDecodeTable(litLenLengths)
			distTable = buildHuffmanDecodeTable(distLengths)
		default:
			return nil, fmt.Errorf("%w: %02b", ErrInvalidBlockHeader, header)
		}

		for {
			sym, err := decodeSymbol(src, litLenTable)
			if err != nil {
				return nil, err
			}
			if sym < 256 {
				tokens = append(tokens, Token{Literal: byte(sym), HasLiteral: true})
				continue
			}
			if sym == endOfBlockSymbol {
				break
			}

			length, err := decodeLength(sym, src)
			if err != nil {
				return nil, err
			}
			distSym, err := decodeSymbol(src, distTable)
			if err != nil {
				return nil, err
			}
			distance, err := decodeDistance(distSym, src)
			if err != nil {
				return nil, err
			}

			next, err := decodeSymbol(src, litLenTable)
			if err != nil {
				return nil, err
			}
			if next == endOfBlockSymbol {
				tokens = append(tokens, Token{Distance: distance, Length: length})
				break
			}
			tokens = append(tokens, Token{Distance: distance, Length: length, Literal: byte(next), HasLiteral: true})
		}
	}

	// Reject back-references that reach before the start of the output,
	// which LZ77Decode would otherwise index out of range.
	outLen := 0
	for _, t := range tokens {
		if t.Distance > outLen {
			return nil, fmt.Errorf("%w: distance %d exceeds decoded length %d", ErrMalformedStream, t.Distance, outLen)
		}
		outLen += t.Length
		if t.HasLiteral {
			outLen++
		}
	}
	return LZ77Decode(tokens), nil
}
