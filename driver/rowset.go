package driver

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/domain/model"
	"github.com/nao1215/sqlcell/internal/logger"
)

// Execer runs statements. *sql.DB, *sql.Tx and *sql.Conn satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Querier runs queries. *sql.DB, *sql.Tx and *sql.Conn satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ScanRowSet reads every remaining row of rows into a new row set named name.
// Column infos come from the result metadata, see InfosFromColumnType. rows is
// not closed.
func ScanRowSet(ctx context.Context, backend sqlcell.Dialect, name string, rows *sql.Rows) (*sqlcell.RowSet, error) {
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	columns := make([]*sqlcell.ValuedObjectInfos, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = InfosFromColumnType(backend, ct)
	}

	rs, err := sqlcell.NewRowSet(name, columns)
	if err != nil {
		return nil, err
	}

	for n := 0; rows.Next(); n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := rs.AddRow()
		if err != nil {
			return nil, err
		}
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", n+1, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// QueryRowSet runs query and reads its result into a row set named name.
func QueryRowSet(ctx context.Context, q Querier, backend sqlcell.Dialect, name, query string, args ...any) (*sqlcell.RowSet, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return ScanRowSet(ctx, backend, name, rows)
}

// CreateTable creates a table named after rs with one column per row set
// column, declared in the DDL syntax of backend.
func CreateTable(ctx context.Context, e Execer, backend sqlcell.Dialect, rs *sqlcell.RowSet) error {
	query, err := buildCreateTableQuery(backend, rs)
	if err != nil {
		return err
	}
	if _, err := e.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", rs.Name(), err)
	}
	return nil
}

func buildCreateTableQuery(backend sqlcell.Dialect, rs *sqlcell.RowSet) (string, error) {
	columns := rs.Columns()
	if err := ValidateColumnCount(len(columns)); err != nil {
		return "", err
	}
	if err := ValidateIdentifier(rs.Name()); err != nil {
		return "", fmt.Errorf("%w: table %q", err, rs.Name())
	}

	definitions := make([]string, len(columns))
	for i, infos := range columns {
		if err := ValidateIdentifier(infos.Name()); err != nil {
			return "", fmt.Errorf("%w: column %q", err, infos.Name())
		}
		definitions[i] = model.QuoteIdentifier(backend, infos.Name()) + " " + infos.DefinitionFor(backend)
	}

	return fmt.Sprintf(
		"CREATE TABLE %s (%s)",
		model.QuoteIdentifier(backend, rs.Name()),
		strings.Join(definitions, ", "),
	), nil
}

// InsertRowSet inserts every row of rs into the table named after it, one
// statement per row with bound parameters.
func InsertRowSet(ctx context.Context, e Execer, backend sqlcell.Dialect, rs *sqlcell.RowSet) error {
	if rs.Len() == 0 {
		return nil
	}
	query := buildInsertQuery(backend, rs)

	for i, row := range rs.Rows() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if _, err := e.ExecContext(ctx, query, bindValues(row)...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i+1, rs.Name(), err)
		}
	}

	logger.Debug("row set inserted", "table", rs.Name(), "rows", rs.Len(), "backend", backend.String())
	return nil
}

func buildInsertQuery(backend sqlcell.Dialect, rs *sqlcell.RowSet) string {
	header := rs.Header()
	names := make([]string, len(header))
	placeholders := make([]string, len(header))
	for i, name := range header {
		names[i] = model.QuoteIdentifier(backend, name)
		placeholders[i] = placeholder(backend, i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		model.QuoteIdentifier(backend, rs.Name()),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)
}

func placeholder(backend sqlcell.Dialect, ordinal int) string {
	if backend == model.DialectPostgreSQL {
		return "$" + strconv.Itoa(ordinal)
	}
	return "?"
}

// bindValues returns the statement arguments of row. database/sql rejects
// uint64 values with the high bit set, so those are bound as decimal text.
func bindValues(row *sqlcell.Row) []any {
	values := row.Values()
	for i, v := range values {
		if u, ok := v.(uint64); ok {
			if u > math.MaxInt64 {
				values[i] = strconv.FormatUint(u, 10)
			} else {
				values[i] = int64(u)
			}
		}
	}
	return values
}

// TableNames lists the user tables of an SQLite database in name order.
func TableNames(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DumpDatabase writes every table of an SQLite database into outputDir, one
// file per table in the format of options. It returns the written paths.
func DumpDatabase(ctx context.Context, q Querier, outputDir string, options sqlcell.DumpOptions) ([]string, error) {
	names, err := TableNames(ctx, q)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		query := "SELECT * FROM " + model.QuoteIdentifier(model.DialectSQLite, name)
		rs, err := QueryRowSet(ctx, q, model.DialectSQLite, name, query)
		if err != nil {
			return nil, fmt.Errorf("failed to export table %s: %w", name, err)
		}
		path, err := sqlcell.DumpFile(ctx, outputDir, rs, options)
		if err != nil {
			return nil, fmt.Errorf("failed to export table %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
