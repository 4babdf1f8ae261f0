/*
Package deflate implements a lossless byte-stream compressor and matching
decompressor built from LZ77 sliding-window matching feeding canonical
Huffman coding with adaptive block boundaries, in the style of DEFLATE
(RFC 1951) but with a private, non-interoperable wire format.

The package exposes two total functions over byte buffers:

	Compress(data []byte) []byte
	Decompress(data []byte) ([]byte, error)

and Reader/Writer wrappers for callers that prefer an io.Reader/io.Writer
shape:

	var b bytes.Buffer
	w := deflate.NewWriter(&b)
	w.Write([]byte("hello hello hello"))
	w.Close()

	r, err := deflate.NewReader(&b)
	io.Copy(os.Stdout, r)
	r.Close()

The compressor is single-threaded and operates on owned byte buffers only;
callers may invoke Compress and Decompress concurrently on disjoint buffers
without coordination.
*/
package deflate
