// Package compression transparently decompresses palette table input.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Format identifies the compression detected on an input stream.
type Format string

const (
	FormatNone  Format = "none"
	FormatGzip  Format = "gzip"
	FormatBzip2 Format = "bzip2"
	FormatZstd  Format = "zstd"
	FormatXz    Format = "xz"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// maxDecompressedSize bounds how much a compressed table may expand to.
const maxDecompressedSize = 16 * 1024 * 1024

// Detect reports the compression format of a stream from its leading bytes.
func Detect(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(head, bzip2Magic):
		return FormatBzip2
	case bytes.HasPrefix(head, zstdMagic):
		return FormatZstd
	case bytes.HasPrefix(head, xzMagic):
		return FormatXz
	}
	return FormatNone
}

// NewReader returns a reader that decompresses input if it is compressed and
// passes it through unchanged otherwise.
func NewReader(input io.Reader) (io.ReadCloser, Format, error) {
	return newReader(input)
}

func newReader(input io.Reader) (*readCloser, Format, error) {
	br := bufio.NewReader(input)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, FormatNone, fmt.Errorf("failed to read input: %w", err)
	}

	format := Detect(head)
	var r io.Reader
	closer := func() error { return nil }

	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		r, closer = gzr, gzr.Close
	case FormatBzip2:
		r = bzip2.NewReader(br)
	case FormatZstd:
		decoder, err := zstd.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		r = decoder
		closer = func() error {
			decoder.Close()
			return nil
		}
	case FormatXz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	default:
		r = br
	}

	return &readCloser{
		Reader: &limitedReader{r: r, remaining: maxDecompressedSize},
		close:  closer,
	}, format, nil
}

// Open opens path and wraps it with NewReader. Closing the returned reader
// closes the file.
func Open(path string) (io.ReadCloser, Format, error) {
	f, err := os.Open(path) // #nosec G304 - user supplied input file
	if err != nil {
		return nil, FormatNone, fmt.Errorf("failed to open %s: %w", path, err)
	}

	rc, format, err := newReader(f)
	if err != nil {
		f.Close()
		return nil, format, fmt.Errorf("failed to read %s: %w", path, err)
	}

	innerClose := rc.close
	rc.close = func() error {
		err := innerClose()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return rc, format, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (rc *readCloser) Close() error {
	return rc.close()
}

// limitedReader fails once more than remaining bytes are available. A stream
// of exactly remaining bytes reads to io.EOF.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		var extra [1]byte
		n, err := l.r.Read(extra[:])
		if n == 0 {
			return 0, err
		}
		return 0, fmt.Errorf("decompressed input exceeds %d bytes", maxDecompressedSize)
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
