package deflate

import (
	"container/heap"
	"fmt"
	"math/bits"

	"golang.org/x/exp/slices"
)

// maxCodeBits is the maximum canonical Huffman code length DEFLATE-style
// framing allows (spec §4.3 / §9).
const maxCodeBits = 15

// huffGroup is one node of the merge queue: a set of symbols that have been
// merged together so far, together with their combined weight. seq is a
// monotonically increasing insertion index used as a tie-break so the merge
// order (and therefore the resulting code lengths) is fully deterministic.
type huffGroup struct {
	weight  int
	seq     int
	symbols []int
}

type huffQueue []*huffGroup

func (q huffQueue) Len() int { return len(q) }
func (q huffQueue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].seq < q[j].seq
}
func (q huffQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *huffQueue) Push(x any)        { *q = append(*q, x.(*huffGroup)) }
func (q *huffQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// buildCodeLengths derives canonical code lengths for every symbol present
// in freq (a map from symbol to positive observation count), by repeatedly
// merging the two lowest-weight groups and incrementing the code length of
// every symbol in both (spec §4.3, grounded on
// original_source/compressors/huffman.py's _create_huffman_tree). The
// result is returned as a dense array of size alphabetSize, zero for any
// symbol absent from freq.
func buildCodeLengths(freq map[int]int, alphabetSize int) []int {
	lengths := make([]int, alphabetSize)
	if len(freq) == 0 {
		return lengths
	}
	if len(freq) == 1 {
		for sym := range freq {
			lengths[sym] = 1
		}
		return lengths
	}

	q := make(huffQueue, 0, len(freq))
	seq := 0
	// Iterate symbols in ascending order so seq (and therefore ties) are
	// deterministic across runs, independent of map iteration order.
	syms := make([]int, 0, len(freq))
	for sym := range freq {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	for _, sym := range syms {
		q = append(q, &huffGroup{weight: freq[sym], seq: seq, symbols: []int{sym}})
		seq++
	}
	heap.Init(&q)

	depth := make(map[int]int, len(freq))
	for q.Len() > 1 {
		a := heap.Pop(&q).(*huffGroup)
		b := heap.Pop(&q).(*huffGroup)
		for _, sym := range a.symbols {
			depth[sym]++
		}
		for _, sym := range b.symbols {
			depth[sym]++
		}
		merged := &huffGroup{
			weight:  a.weight + b.weight,
			seq:     seq,
			symbols: append(append([]int{}, a.symbols...), b.symbols...),
		}
		seq++
		heap.Push(&q, merged)
	}

	for sym, d := range depth {
		lengths[sym] = d
	}

	if max := maxInt(lengths); max > maxCodeBits {
		limitCodeLengths(lengths, depth)
	}
	return lengths
}

func maxInt(v []int) int {
	m := 0
	for _, x := range v {
		if x > m {
			m = x
		}
	}
	return m
}

// limitCodeLengths replaces an overflowing code-length assignment (any
// length > maxCodeBits) with a balanced "complete binary code": of the n
// active symbols, let m = ceil(log2(n)); the (2^m - n) most frequent active
// symbols get length m-1 and the rest get length m. This has Kraft sum
// exactly 1 (prefix-free and complete) for any n >= 2, satisfying spec §9's
// "detect overflow and re-flatten" option. depth holds the original
// (uncapped) tentative lengths, used only to rank symbols by frequency
// (shorter tentative length == more frequent == keeps the shorter of the two
// final lengths).
func limitCodeLengths(lengths []int, depth map[int]int) {
	active := make([]int, 0, len(depth))
	for sym := range depth {
		active = append(active, sym)
	}
	n := len(active)
	if n < 2 {
		for _, sym := range active {
			lengths[sym] = 1
		}
		return
	}
	slices.SortFunc(active, func(a, b int) int {
		if depth[a] != depth[b] {
			return depth[a] - depth[b]
		}
		return a - b
	})
	m := bits.Len(uint(n - 1))
	x := (1 << uint(m)) - n
	for i, sym := range active {
		if i < x {
			lengths[sym] = m - 1
		} else {
			lengths[sym] = m
		}
	}
}

// buildCanonicalCodes assigns a canonical bit-pattern to every symbol with a
// positive code length, per spec §4.3: count codes per length, derive the
// smallest code for each length, then assign ascending-symbol-order within
// each length class.
func buildCanonicalCodes(lengths []int) []uint32 {
	codes := make([]uint32, len(lengths))
	maxLen := maxInt(lengths)
	if maxLen == 0 {
		return codes
	}
	blCount := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}
	nextCode := make([]uint32, maxLen+1)
	var code uint32
	for bitLen := 1; bitLen <= maxLen; bitLen++ {
		code = (code + uint32(blCount[bitLen-1])) << 1
		nextCode[bitLen] = code
	}
	for sym, l := range lengths {
		if l > 0 {
			codes[sym] = nextCode[l]
			nextCode[l]++
		}
	}
	return codes
}

// huffmanDecodeTable is the canonical-Huffman streaming decode structure:
// count[l] is the number of codes of length l, and symbol holds the symbols
// ordered first by length then by ascending symbol value within a length,
// matching the JoshVarga-blast construct()/decode() canonical table shape
// (adapted here for standard MSB-first, non-bit-reversed codes, since
// blast's decode is specific to PKWare's bit-reversed convention).
type huffmanDecodeTable struct {
	count  []int // indexed 1..maxLen
	symbol []int
	maxLen int
}

func buildHuffmanDecodeTable(lengths []int) *huffmanDecodeTable {
	maxLen := maxInt(lengths)
	t := &huffmanDecodeTable{maxLen: maxLen}
	if maxLen == 0 {
		return t
	}
	t.count = make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			t.count[l]++
		}
	}
	// offset[l] is the position in t.symbol where length-l symbols begin.
	offset := make([]int, maxLen+2)
	for l := 1; l <= maxLen; l++ {
		offset[l+1] = offset[l] + t.count[l]
	}
	total := offset[maxLen+1]
	t.symbol = make([]int, total)
	cursor := append([]int{}, offset...)
	for sym, l := range lengths {
		if l > 0 {
			t.symbol[cursor[l]] = sym
			cursor[l]++
		}
	}
	return t
}

// decodeSymbol reads bits from src one at a time until they match a known
// code in t, returning the decoded symbol.
func decodeSymbol(src *BitSource, t *huffmanDecodeTable) (int, error) {
	if t.maxLen == 0 {
		return 0, fmt.Errorf("%w: empty huffman table", ErrMalformedStream)
	}
	code := 0
	first := 0
	index := 0
	for length := 1; length <= t.maxLen; length++ {
		bit, err := src.ReadBit()
		if err != nil {
			return 0, err
		}
		code = (code << 1) | int(bit)
		count := t.count[length]
		if code-first < count {
			return t.symbol[index+code-first], nil
		}
		index += count
		first += count
		first <<= 1
	}
	return 0, fmt.Errorf("%w: no matching huffman code", ErrMalformedStream)
}
