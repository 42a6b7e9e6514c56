package model

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Dialect selects the SQL literal syntax of a backend.
type Dialect int

const (
	// DialectGeneric is ANSI-flavoured SQL understood by most backends
	DialectGeneric Dialect = iota
	// DialectMySQL is MySQL / MariaDB
	DialectMySQL
	// DialectPostgreSQL is PostgreSQL
	DialectPostgreSQL
	// DialectSQLite is SQLite
	DialectSQLite
	// DialectODBC is a generic ODBC target
	DialectODBC
)

// String returns the string representation of Dialect
func (d Dialect) String() string {
	switch d {
	case DialectGeneric:
		return "generic"
	case DialectMySQL:
		return "mysql"
	case DialectPostgreSQL:
		return "postgres"
	case DialectSQLite:
		return "sqlite"
	case DialectODBC:
		return "odbc"
	default:
		return "unknown"
	}
}

// ParseDialect converts a backend name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "generic", "ansi":
		return DialectGeneric, nil
	case "mysql", "mariadb":
		return DialectMySQL, nil
	case "postgres", "postgresql", "pgx", "pg":
		return DialectPostgreSQL, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "odbc":
		return DialectODBC, nil
	default:
		return DialectGeneric, fmt.Errorf("%w: dialect %q", ErrUnsupportedType, name)
	}
}

// QuoteIdentifier quotes a table or column name for d.
func QuoteIdentifier(d Dialect, name string) string {
	if d == DialectMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// renderLiteral renders a non-null payload.
func renderLiteral(d Dialect, payload any) string {
	switch x := payload.(type) {
	case bool:
		if d == DialectPostgreSQL {
			if x {
				return "TRUE"
			}
			return "FALSE"
		}
		if x {
			return "1"
		}
		return "0"
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case Int24:
		return x.String()
	case UInt24:
		return x.String()
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return floatLiteral(d, float64(x), 32)
	case float64:
		return floatLiteral(d, x, 64)
	case FixedPoint:
		return x.String()
	case string:
		return quoteString(d, x, false)
	case WString:
		return quoteString(d, x.String(), true)
	case []byte:
		return binaryLiteral(d, x)
	case Date:
		return "'" + x.String() + "'"
	case TimeOfDay:
		return "'" + x.String() + "'"
	case time.Time:
		return "'" + formatDateTime(x) + "'"
	default:
		return "NULL"
	}
}

// floatLiteral renders NaN and infinities as quoted text, the form PostgreSQL accepts.
func floatLiteral(d Dialect, f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return quoteString(d, "NaN", false)
	case math.IsInf(f, 1):
		return quoteString(d, "Infinity", false)
	case math.IsInf(f, -1):
		return quoteString(d, "-Infinity", false)
	default:
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
}

func quoteString(d Dialect, s string, wide bool) string {
	if d == DialectMySQL {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	quoted := "'" + strings.ReplaceAll(s, "'", "''") + "'"
	if wide && (d == DialectMySQL || d == DialectODBC) {
		return "N" + quoted
	}
	return quoted
}

func binaryLiteral(d Dialect, b []byte) string {
	h := hex.EncodeToString(b)
	switch d {
	case DialectPostgreSQL:
		return `'\x` + h + `'::bytea`
	case DialectODBC:
		if len(b) == 0 {
			return "''"
		}
		return "0x" + strings.ToUpper(h)
	default:
		return "X'" + strings.ToUpper(h) + "'"
	}
}
