package deflate

import "testing"

func TestLengthAlphabetRoundTrip(t *testing.T) {
	for length := 3; length <= 258; length++ {
		sym, extra, extraBits, err := encodeLength(length)
		if err != nil {
			t.Fatalf("encodeLength(%d): %v", length, err)
		}
		sink := NewBitSink()
		sink.WriteBits(extra, extraBits)
		src, err := NewBitSource(sink.Finish())
		if err != nil {
			t.Fatalf("NewBitSource: %v", err)
		}
		got, err := decodeLength(sym, src)
		if err != nil {
			t.Fatalf("decodeLength(%d): %v", sym, err)
		}
		if got != length {
			t.Fatalf("length %d round-tripped to %d via symbol %d", length, got, sym)
		}
	}
}

func TestDistanceAlphabetRoundTrip(t *testing.T) {
	for _, distance := range []int{1, 2, 3, 4, 5, 100, 1000, 32767, 32768} {
		sym, extra, extraBits, err := encodeDistance(distance)
		if err != nil {
			t.Fatalf("encodeDistance(%d): %v", distance, err)
		}
		sink := NewBitSink()
		sink.WriteBits(extra, extraBits)
		src, err := NewBitSource(sink.Finish())
		if err != nil {
			t.Fatalf("NewBitSource: %v", err)
		}
		got, err := decodeDistance(sym, src)
		if err != nil {
			t.Fatalf("decodeDistance(%d): %v", sym, err)
		}
		if got != distance {
			t.Fatalf("distance %d round-tripped to %d via symbol %d", distance, got, sym)
		}
	}
}

func TestAlphabetOutOfRange(t *testing.T) {
	if _, _, _, err := encodeLength(2); err == nil {
		t.Fatal("expected error for length below minimum")
	}
	if _, _, _, err := encodeLength(259); err == nil {
		t.Fatal("expected error for length above maximum")
	}
	if _, _, _, err := encodeDistance(0); err == nil {
		t.Fatal("expected error for distance below minimum")
	}
	if _, _, _, err := encodeDistance(32769); err == nil {
		t.Fatal("expected error for distance above maximum")
	}
}

func TestFixedCodesAreCanonical(t *testing.T) {
	// Per RFC 1951 §3.2.6, the fixed literal/length codes for the first
	// length-7 symbol (256) start at 0000000, and the first length-8
	// symbol (0) starts at 00110000 (48 decimal).
	if got, want := fixedLitLenCodes[256], uint32(0); got != want {
		t.Fatalf("fixed code for symbol 256 = %d, want %d", got, want)
	}
	if got, want := fixedLitLenCodes[0], uint32(48); got != want {
		t.Fatalf("fixed code for symbol 0 = %d, want %d", got, want)
	}
	if got, want := fixedLitLenCodes[144], uint32(400); got != want {
		t.Fatalf("fixed code for symbol 144 = %d, want %d", got, want)
	}
	if got, want := fixedLitLenCodes[280], uint32(192); got != want {
		t.Fatalf("fixed code for symbol 280 = %d, want %d", got, want)
	}
	for i := 0; i < distanceAlphabetSize; i++ {
		if got, want := fixedDistCodes[i], uint32(i); got != want {
			t.Fatalf("fixed distance code for symbol %d = %d, want %d", i, got, want)
		}
	}
}
