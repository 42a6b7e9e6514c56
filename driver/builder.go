package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/domain/model"
)

// Builder collects row sets from files, file systems, readers and other
// backends and opens one database over them.
//
// The typical usage pattern is:
//
//	builder, err := driver.NewBuilder().
//		AddPath("users.csv").
//		AddFS(embeddedFS).
//		AddRowSet(ordersFromPostgres).
//		Build(ctx)
//	if err != nil {
//		return err
//	}
//	db, err := builder.Open(ctx)
//	defer db.Close()
type Builder struct {
	paths       []string
	filesystems []fs.FS
	readers     []readerInput
	rowSets     []*sqlcell.RowSet

	// loaded holds every row set after Build
	loaded []*sqlcell.RowSet
}

type readerInput struct {
	r        io.Reader
	name     string
	fileType sqlcell.FileType
	options  sqlcell.LoadOptions
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPath adds a file or a directory. Directories contribute the supported
// files directly inside them.
func (b *Builder) AddPath(path string) *Builder {
	b.paths = append(b.paths, path)
	return b
}

// AddPaths adds several files or directories.
func (b *Builder) AddPaths(paths ...string) *Builder {
	b.paths = append(b.paths, paths...)
	return b
}

// AddFS adds every supported file of filesystem, searched recursively. This
// is meant for embedded data:
//
//	//go:embed testdata/*.csv
//	var dataFS embed.FS
//
//	builder := driver.NewBuilder().AddFS(dataFS)
func (b *Builder) AddFS(filesystem fs.FS) *Builder {
	b.filesystems = append(b.filesystems, filesystem)
	return b
}

// AddReader adds data of fileType read from r as table name. Compressed
// readers declare their compression in options.
func (b *Builder) AddReader(r io.Reader, name string, fileType sqlcell.FileType, options ...sqlcell.LoadOptions) *Builder {
	input := readerInput{r: r, name: name, fileType: fileType, options: sqlcell.NewLoadOptions()}
	if len(options) > 0 {
		input.options = options[0]
	}
	b.readers = append(b.readers, input)
	return b
}

// AddRowSet adds a row set that is already in memory, for example the
// result of QueryRowSet on another backend.
func (b *Builder) AddRowSet(rs *sqlcell.RowSet) *Builder {
	b.rowSets = append(b.rowSets, rs)
	return b
}

// Build loads every input into memory and checks that no two inputs create
// the same table. Readers are consumed, so Build runs once per builder.
func (b *Builder) Build(ctx context.Context) (*Builder, error) {
	if len(b.paths) == 0 && len(b.filesystems) == 0 && len(b.readers) == 0 && len(b.rowSets) == 0 {
		return nil, ErrNoPathsProvided
	}

	var loaded []*sqlcell.RowSet
	if len(b.paths) > 0 {
		files, err := collectFiles(b.paths)
		if err != nil {
			return nil, err
		}
		for _, p := range files {
			rs, err := sqlcell.LoadFile(ctx, p)
			if err != nil {
				return nil, fmt.Errorf("failed to load file %s: %w", p, err)
			}
			loaded = append(loaded, rs)
		}
	}

	for _, filesystem := range b.filesystems {
		if filesystem == nil {
			return nil, errors.New("sqlcell driver: FS cannot be nil")
		}
		sets, err := loadFS(ctx, filesystem)
		if err != nil {
			return nil, fmt.Errorf("failed to process FS input: %w", err)
		}
		loaded = append(loaded, sets...)
	}

	for _, input := range b.readers {
		rs, err := sqlcell.LoadReader(ctx, input.r, input.name, input.fileType, input.options)
		if err != nil {
			return nil, fmt.Errorf("failed to load reader %s: %w", input.name, err)
		}
		loaded = append(loaded, rs)
	}
	b.readers = nil
	loaded = append(loaded, b.rowSets...)

	seen := make(map[string]bool, len(loaded))
	for _, rs := range loaded {
		if seen[rs.Name()] {
			return nil, fmt.Errorf("%w: table '%s'", ErrDuplicateTableName, rs.Name())
		}
		seen[rs.Name()] = true
	}
	if len(loaded) == 0 {
		return nil, ErrNoFilesLoaded
	}

	b.loaded = loaded
	return b, nil
}

// Open creates an in-memory database holding one table per row set. Build
// must have succeeded first. Every connection gets its own copy of the
// tables; the pool is limited to one connection.
func (b *Builder) Open(ctx context.Context) (*sql.DB, error) {
	if len(b.loaded) == 0 {
		return nil, errors.New("sqlcell driver: no row sets loaded, did you call Build()?")
	}

	db := sql.OpenDB(&Connector{driver: NewDriver(), rowSets: b.loaded})
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(err, closeErr)
	}
	return db, nil
}

// loadFS loads every supported file of filesystem. A table found both
// compressed and uncompressed comes from the uncompressed file.
func loadFS(ctx context.Context, filesystem fs.FS) ([]*sqlcell.RowSet, error) {
	chosen := make(map[string]string) // table name -> path
	var order []string

	err := fs.WalkDir(filesystem, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsValidFileName(d.Name()) || !model.IsSupportedFile(d.Name()) {
			return nil
		}
		table := model.TableFromFilePath(p)
		existing, ok := chosen[table]
		switch {
		case !ok:
			chosen[table] = p
			order = append(order, table)
		case path.Dir(existing) != path.Dir(p) || model.DetectFileType(existing) != model.DetectFileType(p):
			return fmt.Errorf("%w: table '%s' from files '%s' and '%s'", ErrDuplicateTableName, table, existing, p)
		case model.DetectCompression(p) == model.CompressionNone:
			chosen[table] = p
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk filesystem: %w", err)
	}
	if len(order) == 0 {
		return nil, errors.New("sqlcell driver: no supported files found in filesystem")
	}

	sets := make([]*sqlcell.RowSet, 0, len(order))
	for _, table := range order {
		rs, err := loadFSFile(ctx, filesystem, chosen[table])
		if err != nil {
			return nil, err
		}
		sets = append(sets, rs)
	}
	return sets, nil
}

func loadFSFile(ctx context.Context, filesystem fs.FS, p string) (*sqlcell.RowSet, error) {
	f, err := filesystem.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open FS file: %w", err)
	}
	defer f.Close()

	options := sqlcell.NewLoadOptions().WithCompression(model.DetectCompression(p))
	rs, err := sqlcell.LoadReader(ctx, f, model.TableFromFilePath(p), model.DetectFileType(p), options)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", p, err)
	}
	return rs, nil
}
