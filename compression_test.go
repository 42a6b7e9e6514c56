package sqlcell

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closeRecorder is a writer that remembers whether it was closed.
type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestCompress_RoundTrip(t *testing.T) {
	t.Parallel()

	data := []byte(strings.Repeat("id,name\n1,alice\n", 64))

	for _, c := range []CompressionType{CompressionNone, CompressionGZ, CompressionXZ, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			var sink closeRecorder
			w, err := compress(&sink, c)
			require.NoError(t, err)
			_, err = w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())
			assert.False(t, sink.closed, "the underlying writer stays open")

			if c == CompressionNone {
				assert.Equal(t, data, sink.Bytes())
			} else {
				assert.NotEqual(t, data, sink.Bytes())
			}

			r, err := decompress(bytes.NewReader(sink.Bytes()), c)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestCompress_Errors(t *testing.T) {
	t.Parallel()

	t.Run("bzip2 is read-only", func(t *testing.T) {
		t.Parallel()

		_, err := compress(io.Discard, CompressionBZ2)
		require.ErrorIs(t, err, ErrUnsupportedFormat)

		r, err := decompress(bytes.NewReader(nil), CompressionBZ2)
		require.NoError(t, err)
		require.NoError(t, r.Close())
	})

	t.Run("invalid compressed data", func(t *testing.T) {
		t.Parallel()

		for _, c := range []CompressionType{CompressionGZ, CompressionXZ} {
			_, err := decompress(strings.NewReader("not compressed"), c)
			assert.Error(t, err, c.String())
		}
	})

	t.Run("unknown compression", func(t *testing.T) {
		t.Parallel()

		_, err := decompress(bytes.NewReader(nil), CompressionType(99))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
		_, err = compress(io.Discard, CompressionType(99))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestCompressedFile_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := []byte(strings.Repeat("test data line\n", 100))

	for _, c := range []CompressionType{CompressionNone, CompressionGZ, CompressionXZ, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			// openFile detects the compression from the extension
			path := filepath.Join(dir, "lines_"+c.String()+".txt"+c.Extension())

			w, err := createFile(path, c)
			require.NoError(t, err)
			_, err = w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := openFile(path)
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Equal(t, data, got)
		})
	}
}

func TestCreateFile_Bzip2LeavesNothing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv.bz2")
	_, err := createFile(path, CompressionBZ2)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := openFile(filepath.Join(t.TempDir(), "missing.csv.gz"))
	assert.Error(t, err)
}
