package deflate

import (
	"bytes"
	"io"
)

// reader implements io.ReadCloser over an eagerly decompressed buffer. The
// wire format's 4-byte bit-count header makes streaming decompression
// impossible without buffering the whole input first, so, like
// JoshVarga-blast's blast reader, NewReader does the real work up front and
// Read simply drains the result.
type reader struct {
	data      []byte
	readIndex int
}

// NewReader creates a new ReadCloser. Reads from the returned ReadCloser
// read the decompressed form of r's contents. It is the caller's
// responsibility to call Close on the ReadCloser when done.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	decoded, err := Decompress(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return &reader{data: decoded}, nil
}

func (r *reader) Read(p []byte) (n int, err error) {
	if r.readIndex >= len(r.data) {
		return 0, io.EOF
	}
	n = copy(p, r.data[r.readIndex:])
	r.readIndex += n
	return n, nil
}

func (r *reader) Close() error {
	return nil
}
