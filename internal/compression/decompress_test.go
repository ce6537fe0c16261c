package compression

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"gotest.tools/v3/assert"
)

const table = "static int palette[][3] = {\n  {255, 255, 255},\n  {0, 0, 0},\n};\n"

func compress(t *testing.T, format Format, data string) []byte {
	t.Helper()
	var buf bytes.Buffer

	var w io.WriteCloser
	var err error
	switch format {
	case FormatGzip:
		w = gzip.NewWriter(&buf)
	case FormatZstd:
		w, err = zstd.NewWriter(&buf)
	case FormatXz:
		w, err = xz.NewWriter(&buf)
	default:
		return []byte(data)
	}
	assert.NilError(t, err)

	_, err = io.WriteString(w, data)
	assert.NilError(t, err)
	assert.NilError(t, w.Close())
	return buf.Bytes()
}

func TestNewReader(t *testing.T) {
	for _, format := range []Format{FormatNone, FormatGzip, FormatZstd, FormatXz} {
		t.Run(string(format), func(t *testing.T) {
			rc, detected, err := NewReader(bytes.NewReader(compress(t, format, table)))
			assert.NilError(t, err)
			defer rc.Close()

			assert.Equal(t, detected, format)

			got, err := io.ReadAll(rc)
			assert.NilError(t, err)
			assert.Equal(t, string(got), table)
		})
	}
}

func TestNewReaderShortInput(t *testing.T) {
	for _, input := range []string{"", "x", "{};"} {
		rc, format, err := NewReader(bytes.NewReader([]byte(input)))
		assert.NilError(t, err)

		got, err := io.ReadAll(rc)
		assert.NilError(t, err)
		assert.Equal(t, string(got), input)
		assert.Equal(t, format, FormatNone)
		assert.NilError(t, rc.Close())
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.h.xz")
	assert.NilError(t, os.WriteFile(path, compress(t, FormatXz, table), 0o600))

	rc, format, err := Open(path)
	assert.NilError(t, err)

	got, err := io.ReadAll(rc)
	assert.NilError(t, err)
	assert.NilError(t, rc.Close())

	assert.Equal(t, format, FormatXz)
	assert.Equal(t, string(got), table)
}

func TestOpenMissing(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "nope.h"))
	assert.ErrorContains(t, err, "failed to open")
}

func TestDetect(t *testing.T) {
	assert.Equal(t, Detect([]byte{0x42, 0x5a, 0x68, 0x39}), FormatBzip2)
	assert.Equal(t, Detect([]byte("static")), FormatNone)
	assert.Equal(t, Detect(nil), FormatNone)
}

func TestLimitedReader(t *testing.T) {
	l := &limitedReader{r: bytes.NewReader(make([]byte, 10)), remaining: 4}
	buf := make([]byte, 10)

	n, err := l.Read(buf)
	assert.NilError(t, err)
	assert.Equal(t, n, 4)

	_, err = l.Read(buf)
	assert.ErrorContains(t, err, "exceeds")
}

func TestLimitedReaderExactSize(t *testing.T) {
	data := []byte("abcd")
	l := &limitedReader{r: bytes.NewReader(data), remaining: int64(len(data))}

	got, err := io.ReadAll(l)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, data)
}
