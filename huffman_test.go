package deflate

import (
	"testing"
)

func TestBuildCodeLengthsSingleSymbol(t *testing.T) {
	lengths := buildCodeLengths(map[int]int{42: 7}, 100)
	if lengths[42] != 1 {
		t.Fatalf("single-symbol code length = %d, want 1", lengths[42])
	}
	for i, l := range lengths {
		if i != 42 && l != 0 {
			t.Fatalf("unused symbol %d has nonzero length %d", i, l)
		}
	}
}

func TestBuildCodeLengthsMoreFrequentIsShorter(t *testing.T) {
	freq := map[int]int{0: 1, 1: 1, 2: 1, 3: 1, 4: 100}
	lengths := buildCodeLengths(freq, 5)
	for sym, l := range lengths {
		if sym == 4 {
			continue
		}
		if l < lengths[4] {
			t.Fatalf("rare symbol %d has shorter code (%d) than frequent symbol 4 (%d)", sym, l, lengths[4])
		}
	}
}

func TestCanonicalCodesPrefixFree(t *testing.T) {
	freq := map[int]int{0: 5, 1: 1, 2: 1, 3: 2, 4: 2, 5: 1, 6: 1, 7: 13}
	lengths := buildCodeLengths(freq, 8)
	codes := buildCanonicalCodes(lengths)

	type cw struct {
		code uint32
		len  int
	}
	var words []cw
	for sym, l := range lengths {
		if l > 0 {
			words = append(words, cw{codes[sym], l})
		}
	}
	for i := range words {
		for j := range words {
			if i == j {
				continue
			}
			a, b := words[i], words[j]
			if a.len > b.len {
				continue
			}
			// a is not longer than b: a must not be a prefix of b.
			shifted := b.code >> uint(b.len-a.len)
			if shifted == a.code {
				t.Fatalf("code %0*b is a prefix of code %0*b", a.len, a.code, b.len, b.code)
			}
		}
	}
}

func TestCanonicalOrderingShorterCodesPrecede(t *testing.T) {
	freq := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 8}
	lengths := buildCodeLengths(freq, 5)
	codes := buildCanonicalCodes(lengths)
	for a := 0; a < 5; a++ {
		for b := 0; b < 5; b++ {
			if lengths[a] == 0 || lengths[b] == 0 || lengths[a] >= lengths[b] {
				continue
			}
			// a has a strictly shorter code than b; left-aligned, a must
			// numerically precede b.
			leftA := codes[a] << uint(15-lengths[a])
			leftB := codes[b] << uint(15-lengths[b])
			if leftA >= leftB {
				t.Fatalf("shorter code %d (len %d) does not precede longer code %d (len %d) when left-aligned", codes[a], lengths[a], codes[b], lengths[b])
			}
		}
	}
}

func TestHuffmanDecodeTableRoundTrip(t *testing.T) {
	freq := map[int]int{10: 50, 20: 1, 30: 1, 40: 10, 50: 2}
	lengths := buildCodeLengths(freq, 60)
	codes := buildCanonicalCodes(lengths)
	table := buildHuffmanDecodeTable(lengths)

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		sink := NewBitSink()
		sink.WriteBits(codes[sym], l)
		src, err := NewBitSource(sink.Finish())
		if err != nil {
			t.Fatalf("NewBitSource: %v", err)
		}
		got, err := decodeSymbol(src, table)
		if err != nil {
			t.Fatalf("decodeSymbol(%d): %v", sym, err)
		}
		if got != sym {
			t.Fatalf("decodeSymbol() = %d, want %d", got, sym)
		}
	}
}

func TestLimitCodeLengthsStaysWithinCap(t *testing.T) {
	// A heavily skewed Zipf-like distribution over a small alphabet can
	// legitimately need long codes; force the overflow path directly.
	lengths := make([]int, 20)
	depth := make(map[int]int)
	for i := 0; i < 20; i++ {
		lengths[i] = 1
		depth[i] = i + 1
	}
	lengths[19] = 20 // pretend symbol 19 overflowed
	limitCodeLengths(lengths, depth)
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		if l > maxCodeBits {
			t.Fatalf("symbol %d has length %d after limiting, want <= %d", sym, l, maxCodeBits)
		}
	}
	codes := buildCanonicalCodes(lengths)
	// Kraft sum must equal 1 for a complete, prefix-free code.
	var kraftNum, kraftDen uint64 = 0, 1
	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	kraftDen = 1 << uint(maxLen)
	for _, l := range lengths {
		if l > 0 {
			kraftNum += 1 << uint(maxLen-l)
		}
	}
	if kraftNum != kraftDen {
		t.Fatalf("Kraft sum = %d/%d, want exactly 1", kraftNum, kraftDen)
	}
	_ = codes
}
