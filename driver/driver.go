package driver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/domain/model"
	"github.com/nao1215/sqlcell/internal/logger"
	"modernc.org/sqlite"
)

// DriverName is the name the driver is registered under with database/sql
const DriverName = "sqlcell"

func init() {
	sql.Register(DriverName, NewDriver())
}

// Driver implements database/sql/driver.Driver interface for typed files.
// It serves as the entry point for creating connections to file-based databases.
type Driver struct{}

// Connector implements database/sql/driver.Connector interface.
// The dsn field contains file or directory paths separated by semicolons.
// A connector created by Builder carries its row sets instead.
type Connector struct {
	driver  *Driver
	dsn     string
	rowSets []*sqlcell.RowSet
}

// Connection implements database/sql/driver.Conn interface.
// It wraps an in-memory SQLite connection holding the loaded row sets.
type Connection struct {
	conn driver.Conn
}

// Transaction implements database/sql/driver.Tx interface.
type Transaction struct {
	tx driver.Tx
}

// NewDriver creates a new driver
func NewDriver() *Driver {
	return &Driver{}
}

// Open implements driver.Driver interface
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.Background())
}

// OpenConnector implements driver.DriverContext interface
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	return &Connector{
		driver: d,
		dsn:    dsn,
	}, nil
}

// Open opens a database over the given files and directories. Every file is
// loaded with sqlcell.LoadFile and becomes a table with typed columns. The
// pool is limited to one connection so that writes stay visible to later
// queries.
func Open(ctx context.Context, paths ...string) (*sql.DB, error) {
	if len(paths) == 0 {
		return nil, ErrNoPathsProvided
	}
	connector, err := NewDriver().OpenConnector(strings.Join(paths, ";"))
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() // Ignore close error
		return nil, err
	}
	return db, nil
}

// Connect implements driver.Connector interface
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	sqliteDriver := &sqlite.Driver{}
	conn, err := sqliteDriver.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}

	if err := c.load(ctx, conn); err != nil {
		_ = conn.Close() // Ignore close error since we're already returning an error
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return &Connection{conn: conn}, nil
}

// Driver implements driver.Connector interface
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// load creates the tables of the connector in conn: its row sets, or else
// the files named by the DSN.
func (c *Connector) load(ctx context.Context, conn driver.Conn) error {
	e := &connExecer{conn: conn}
	if len(c.rowSets) > 0 {
		for _, rs := range c.rowSets {
			if err := storeRowSet(ctx, e, rs); err != nil {
				return fmt.Errorf("failed to store row set %s: %w", rs.Name(), err)
			}
		}
		return nil
	}

	files, err := collectFiles(strings.Split(c.dsn, ";"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoFilesLoaded
	}

	for _, path := range files {
		if err := loadFile(ctx, e, path); err != nil {
			return fmt.Errorf("failed to load file %s: %w", path, err)
		}
	}
	return nil
}

// collectFiles resolves paths into the files to load, rejecting two files
// that would create the same table.
func collectFiles(paths []string) ([]string, error) {
	tableNames := make(map[string]string) // table name -> file path
	var filesToLoad []string
	given := 0

	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		given++
		if err := ValidatePath(path); err != nil {
			return nil, fmt.Errorf("%w: %s", err, path)
		}

		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("path does not exist: %s", path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}

		if info.IsDir() {
			files, err := collectDirectoryFiles(path, tableNames)
			if err != nil {
				return nil, err
			}
			filesToLoad = append(filesToLoad, files...)
			continue
		}

		if !model.IsSupportedFile(filepath.Base(path)) {
			continue
		}
		tableName := model.TableFromFilePath(path)
		if existingFile, exists := tableNames[tableName]; exists {
			return nil, fmt.Errorf("%w: table '%s' from files '%s' and '%s'",
				ErrDuplicateTableName, tableName, existingFile, path)
		}
		tableNames[tableName] = path
		filesToLoad = append(filesToLoad, path)
	}

	if given == 0 {
		return nil, ErrNoPathsProvided
	}
	return filesToLoad, nil
}

// collectDirectoryFiles collects the supported files directly inside dirPath.
// When the same table comes from files differing only in compression, the
// least compressed file wins.
func collectDirectoryFiles(dirPath string, tableNames map[string]string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if err := ValidateFileCount(len(entries)); err != nil {
		return nil, fmt.Errorf("%w: %s", err, dirPath)
	}

	var filesToLoad []string
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !IsValidFileName(fileName) || !model.IsSupportedFile(fileName) {
			continue
		}

		filePath := filepath.Join(dirPath, fileName)
		tableName := model.TableFromFilePath(filePath)
		existingFile, exists := tableNames[tableName]
		if !exists {
			tableNames[tableName] = filePath
			filesToLoad = append(filesToLoad, filePath)
			continue
		}

		if filepath.Clean(filepath.Dir(existingFile)) != filepath.Clean(dirPath) ||
			model.DetectFileType(existingFile) != model.DetectFileType(filePath) {
			return nil, fmt.Errorf("%w: table '%s' from files '%s' and '%s'",
				ErrDuplicateTableName, tableName, existingFile, filePath)
		}

		if model.DetectCompression(filePath) == model.CompressionNone {
			for i, f := range filesToLoad {
				if f == existingFile {
					filesToLoad[i] = filePath
				}
			}
			tableNames[tableName] = filePath
		}
	}
	return filesToLoad, nil
}

// loadFile loads one file into a table of the same name.
func loadFile(ctx context.Context, e Execer, path string) error {
	rs, err := sqlcell.LoadFile(ctx, path)
	if err != nil {
		if errors.Is(err, sqlcell.ErrDuplicateColumnName) {
			logger.Warn("file has duplicate column names", "path", SanitizeForLog(path))
		}
		return err
	}
	return storeRowSet(ctx, e, rs)
}

// storeRowSet creates the table of rs and inserts its rows.
func storeRowSet(ctx context.Context, e Execer, rs *sqlcell.RowSet) error {
	if err := CreateTable(ctx, e, model.DialectSQLite, rs); err != nil {
		return err
	}
	return InsertRowSet(ctx, e, model.DialectSQLite, rs)
}

// connExecer runs statements on a driver connection during loading, before
// the connection is handed to database/sql.
type connExecer struct {
	conn driver.Conn
}

// ExecContext implements Execer. driver.Result has the method set of sql.Result.
func (e *connExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	execer, ok := e.conn.(driver.ExecerContext)
	if !ok {
		return nil, ErrExecContextNotSupported
	}

	named := make([]driver.NamedValue, len(args))
	for i, arg := range args {
		v, err := driver.DefaultParameterConverter.ConvertValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return execer.ExecContext(ctx, query, named)
}

// Close implements driver.Conn interface
func (conn *Connection) Close() error {
	if conn.conn != nil {
		return conn.conn.Close()
	}
	return nil
}

// Begin implements driver.Conn interface (deprecated, use BeginTx instead)
func (conn *Connection) Begin() (driver.Tx, error) {
	return conn.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx interface
func (conn *Connection) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if connBeginTx, ok := conn.conn.(driver.ConnBeginTx); ok {
		tx, err := connBeginTx.BeginTx(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Transaction{tx: tx}, nil
	}
	return nil, ErrBeginTxNotSupported
}

// Commit implements driver.Tx interface
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback implements driver.Tx interface
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

// Prepare implements driver.Conn interface (deprecated, use PrepareContext instead)
func (conn *Connection) Prepare(query string) (driver.Stmt, error) {
	return conn.PrepareContext(context.Background(), query)
}

// PrepareContext implements driver.ConnPrepareContext interface
func (conn *Connection) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if connPrepareCtx, ok := conn.conn.(driver.ConnPrepareContext); ok {
		return connPrepareCtx.PrepareContext(ctx, query)
	}
	return nil, ErrPrepareContextNotSupported
}
