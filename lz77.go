package deflate

// Token is the LZ77 matcher's output unit: either a pure literal
// (Distance == 0, Literal valid) or a back-reference copying Length bytes
// from Distance bytes before the current output cursor, optionally followed
// by one trailing literal byte (spec §3/§4.5).
type Token struct {
	Distance   int
	Length     int
	Literal    byte
	HasLiteral bool
}

const (
	lz77WindowSize    = 512
	lz77LookaheadSize = 257
	lz77MinMatch      = 3
)

// LZ77Encode finds back-references over a bounded sliding window and
// returns the resulting token stream (spec §4.5, grounded on
// original_source/compressors/lz77.py's LZ77Compressor.encode).
func LZ77Encode(data []byte) []Token {
	n := len(data)
	tokens := make([]Token, 0)
	i := 0
	for i < n {
		searchStart := i - lz77WindowSize
		if searchStart < 0 {
			searchStart = 0
		}
		search := data[searchStart:i]
		lookEnd := i + lz77LookaheadSize
		if lookEnd > n {
			lookEnd = n
		}
		look := data[i:lookEnd]

		idx, length := partialKMPSearch(search, look, lz77MinMatch)
		if length > 0 && len(look) >= lz77MinMatch {
			distance := len(search) - idx
			tok := Token{Distance: distance, Length: length}
			if i+length < n {
				tok.Literal = data[i+length]
				tok.HasLiteral = true
			}
			tokens = append(tokens, tok)
			i += length + 1
		} else {
			tokens = append(tokens, Token{Literal: data[i], HasLiteral: true})
			i++
		}
	}
	return tokens
}

// LZ77Decode reconstructs the original byte sequence from a token stream.
// Copies are performed byte-by-byte so that overlapping back-references
// (distance < length, required for RLE-style runs) are handled correctly.
func LZ77Decode(tokens []Token) []byte {
	out := make([]byte, 0)
	for _, t := range tokens {
		if t.Length > 0 {
			start := len(out) - t.Distance
			for j := 0; j < t.Length; j++ {
				out = append(out, out[start+j])
			}
		}
		if t.HasLiteral {
			out = append(out, t.Literal)
		}
	}
	return out
}

// kmpFailureTable builds the standard KMP partial-match (failure function)
// table for pattern.
func kmpFailureTable(pattern []byte) []int {
	m := len(pattern)
	table := make([]int, m)
	i := 0
	for j := 1; j < m; {
		if pattern[i] == pattern[j] {
			i++
			table[j] = i
			j++
		} else if i == 0 {
			table[j] = 0
			j++
		} else {
			i = table[i-1]
		}
	}
	return table
}

// partialKMPSearch finds the longest prefix of pattern that occurs anywhere
// in search (KMP-style scanning of search against pattern, spec §4.5),
// returning the earliest (smallest) starting index among equal-length
// candidates. It returns (index, length) with length == 0 if no match of at
// least minMatchLength bytes is found.
//
// This corrects one gap in the original Python reference
// (original_source/compressors/lz77.py's _partial_kmp_search): that
// implementation only records a partial-match candidate inside its mismatch
// branch, so a run that matches all the way to the end of search without
// ever hitting a mismatch is silently dropped instead of being recorded as
// the longest candidate found so far. See DESIGN.md "Open Questions
// resolved" #3.
func partialKMPSearch(search, pattern []byte, minMatchLength int) (index int, length int) {
	n := len(search)
	m := len(pattern)
	if m == 0 || n == 0 {
		return -1, 0
	}
	table := kmpFailureTable(pattern)

	longestLen := 0
	longestIdx := -1
	i, j := 0, 0
	for j < n {
		if pattern[i] == search[j] {
			i++
			j++
			if i == m {
				break
			}
		} else {
			if i > longestLen {
				longestLen = i
				longestIdx = j - i
			}
			if i == 0 {
				j++
			} else {
				i = table[i-1]
			}
		}
	}
	if i > longestLen {
		longestLen = i
		longestIdx = j - i
	}
	if longestLen >= minMatchLength {
		return longestIdx, longestLen
	}
	return longestIdx, 0
}
