package sqlcell

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/nao1215/sqlcell/domain/model"
	"github.com/ulikunitz/xz"
)

// codec opens and creates the streams of one compression type. A codec
// without create is read-only.
type codec struct {
	open   func(r io.Reader) (io.ReadCloser, error)
	create func(w io.Writer) (io.WriteCloser, error)
}

var codecs = map[CompressionType]codec{
	CompressionNone: {
		open:   func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil },
		create: func(w io.Writer) (io.WriteCloser, error) { return nopWriteCloser{w}, nil },
	},
	CompressionGZ: {
		open: func(r io.Reader) (io.ReadCloser, error) {
			gr, err := gzip.NewReader(r)
			if err != nil {
				return nil, fmt.Errorf("failed to create gzip reader: %w", err)
			}
			return gr, nil
		},
		create: func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil },
	},
	CompressionBZ2: {
		open: func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(bzip2.NewReader(r)), nil },
	},
	CompressionXZ: {
		open: func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r)
			if err != nil {
				return nil, fmt.Errorf("failed to create xz reader: %w", err)
			}
			return io.NopCloser(xr), nil
		},
		create: func(w io.Writer) (io.WriteCloser, error) {
			xw, err := xz.NewWriter(w)
			if err != nil {
				return nil, fmt.Errorf("failed to create xz writer: %w", err)
			}
			return xw, nil
		},
	},
	CompressionZSTD: {
		open: func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, fmt.Errorf("failed to create zstd reader: %w", err)
			}
			return d.IOReadCloser(), nil
		},
		create: func(w io.Writer) (io.WriteCloser, error) {
			e, err := zstd.NewWriter(w)
			if err != nil {
				return nil, fmt.Errorf("failed to create zstd writer: %w", err)
			}
			return e, nil
		},
	},
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// decompress returns a reader of the data of r decompressed as c. Closing it
// leaves r open.
func decompress(r io.Reader, c CompressionType) (io.ReadCloser, error) {
	cd, ok := codecs[c]
	if !ok {
		return nil, fmt.Errorf("%w: compression %v", ErrUnsupportedFormat, c)
	}
	return cd.open(r)
}

// compress returns a writer that compresses into w as c. Close flushes the
// compressed stream and leaves w open.
func compress(w io.Writer, c CompressionType) (io.WriteCloser, error) {
	cd, ok := codecs[c]
	if !ok {
		return nil, fmt.Errorf("%w: compression %v", ErrUnsupportedFormat, c)
	}
	if cd.create == nil {
		return nil, fmt.Errorf("%w: %s compression is read-only", ErrUnsupportedFormat, c)
	}
	return cd.create(w)
}

// compressedFile closes the stream and then the file under it.
type compressedFile struct {
	stream io.Closer
	file   *os.File
}

func (f compressedFile) close(sync bool) error {
	err := f.stream.Close()
	if sync {
		err = errors.Join(err, f.file.Sync())
	}
	return errors.Join(err, f.file.Close())
}

type fileReader struct {
	io.Reader
	compressedFile
}

func (f fileReader) Close() error { return f.close(false) }

type fileWriter struct {
	io.Writer
	compressedFile
}

func (f fileWriter) Close() error { return f.close(true) }

// openFile opens path and decompresses it according to its extension.
func openFile(path string) (io.ReadCloser, error) {
	file, err := os.Open(path) //nolint:gosec // User-provided path is necessary for file operations
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	rc, err := decompress(file, model.DetectCompression(path))
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return fileReader{Reader: rc, compressedFile: compressedFile{stream: rc, file: file}}, nil
}

// createFile creates path and compresses everything written to it as c.
// Nothing is left on disk when c cannot be written.
func createFile(path string, c CompressionType) (io.WriteCloser, error) {
	file, err := os.Create(path) //nolint:gosec // User-provided path is necessary for file operations
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	wc, err := compress(file, c)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, err
	}
	return fileWriter{Writer: wc, compressedFile: compressedFile{stream: wc, file: file}}, nil
}
