package deflate

import "io"

// Writer buffers writes and compresses them as a single buffer when Close
// is called, mirroring JoshVarga-blast's Writer (see writer.go's NewWriter/
// Write/Close in the teacher repo): the wire format has no incremental/push
// form (spec §5 non-goals), so there is nothing useful to flush until the
// whole input is known.
type Writer struct {
	w    io.Writer
	data []byte
}

// NewWriter creates a new Writer. Writes to the returned Writer are
// compressed and written to w. It is the caller's responsibility to call
// Close on the Writer when done; writes are not flushed until Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends p to the pending buffer. The compressed bytes are not
// written to the underlying io.Writer until Close.
func (w *Writer) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

// Close compresses the buffered data and writes it to the underlying
// io.Writer.
func (w *Writer) Close() error {
	_, err := w.w.Write(Compress(w.data))
	return err
}
