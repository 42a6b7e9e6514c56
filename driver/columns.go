package driver

import (
	"math"
	"strings"

	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/domain/model"
	"github.com/nao1215/sqlcell/internal/logger"
)

// ColumnType is the column metadata reported by a database/sql driver.
// *sql.ColumnType satisfies it.
type ColumnType interface {
	Name() string
	DatabaseTypeName() string
	DecimalSize() (precision, scale int64, ok bool)
	Length() (length int64, ok bool)
}

// Backend-specific type names that ParseInfos does not know. Keys are upper
// case with blanks collapsed.
var (
	postgresTypeNames = map[string]string{
		"BPCHAR":      "CHAR",
		"TIMESTAMPTZ": "DATETIME",
		"TIMETZ":      "TIME",
		"NAME":        "VARCHAR(63)",
		"UUID":        "CHAR(36)",
		"JSON":        "TEXT",
		"JSONB":       "TEXT",
		"XML":         "TEXT",
		"OID":         "INTEGER UNSIGNED",
		"SMALLSERIAL": "SMALLINT",
		"MONEY":       "DECIMAL(18,2)",
		"INET":        "VARCHAR(43)",
	}
	mysqlTypeNames = map[string]string{
		"YEAR":       "SMALLINT",
		"TINYTEXT":   "TEXT",
		"TINYBLOB":   "BLOB",
		"JSON":       "TEXT",
		"ENUM":       "VARCHAR",
		"SET":        "VARCHAR",
		"GEOMETRY":   "BLOB",
		"NULL":       "VARCHAR",
		"DOUBLE":     "DOUBLE",
		"FIXED":      "DECIMAL",
		"LONG":       "TEXT",
		"VAR_STRING": "VARCHAR",
	}
	odbcTypeNames = map[string]string{
		"GUID":           "CHAR(36)",
		"TYPE_DATE":      "DATE",
		"TYPE_TIME":      "TIME",
		"TYPE_TIMESTAMP": "DATETIME",
		"BIT":            "BIT",
	}
)

// InfosFromColumnType maps the column metadata of a query result to cell
// infos. The declared type name is parsed first, then looked up in the names
// specific to backend. Length and decimal size fill in what the name leaves
// out. Unknown types are read as TEXT so any value can still be scanned.
func InfosFromColumnType(backend sqlcell.Dialect, ct ColumnType) *sqlcell.ValuedObjectInfos {
	name := ct.Name()
	typeName := normalizeTypeName(backend, ct.DatabaseTypeName())

	infos, err := model.ParseInfos(name, typeName)
	if err != nil {
		if alias, ok := backendTypeName(backend, typeName); ok {
			infos, err = model.ParseInfos(name, alias)
		}
	}
	if err != nil && backend == model.DialectSQLite {
		infos, err = model.ParseInfos(name, sqliteAffinity(typeName))
	}
	if err != nil {
		if precision, scale, ok := ct.DecimalSize(); ok && precision > model.MaxPrecision {
			return wideDecimalInfos(name, precision, scale)
		}
		logger.Warn("unknown column type read as TEXT",
			"column", SanitizeForLog(name), "type", ct.DatabaseTypeName(), "backend", backend.String())
		return model.NewValuedObjectInfos(name, model.TypeText)
	}

	return refineInfos(infos, typeName, ct)
}

// normalizeTypeName upper-cases the name, collapses blanks and moves a MySQL
// style "UNSIGNED" prefix to the end.
func normalizeTypeName(backend sqlcell.Dialect, typeName string) string {
	normalized := strings.Join(strings.Fields(strings.ToUpper(typeName)), " ")
	if backend == model.DialectODBC {
		normalized = strings.TrimPrefix(normalized, "SQL_")
	}
	if rest, ok := strings.CutPrefix(normalized, "UNSIGNED "); ok {
		normalized = rest + " UNSIGNED"
	}
	return normalized
}

func backendTypeName(backend sqlcell.Dialect, typeName string) (string, bool) {
	var names map[string]string
	switch backend {
	case model.DialectPostgreSQL:
		names = postgresTypeNames
	case model.DialectMySQL:
		names = mysqlTypeNames
	case model.DialectODBC:
		names = odbcTypeNames
	default:
		return "", false
	}
	base, unsigned := strings.CutSuffix(typeName, " UNSIGNED")
	alias, ok := names[base]
	if ok && unsigned {
		alias += " UNSIGNED"
	}
	return alias, ok
}

// sqliteAffinity follows the SQLite column affinity rules for a declared type
// that is not a known type name. Expressions have no declared type and, like
// NUMERIC affinity columns, may hold anything, so both are read as text.
func sqliteAffinity(typeName string) string {
	switch {
	case strings.Contains(typeName, "INT"):
		return "BIGINT"
	case strings.Contains(typeName, "CHAR"), strings.Contains(typeName, "CLOB"), strings.Contains(typeName, "TEXT"):
		return "TEXT"
	case strings.Contains(typeName, "BLOB"):
		return "BLOB"
	case strings.Contains(typeName, "REAL"), strings.Contains(typeName, "FLOA"), strings.Contains(typeName, "DOUB"):
		return "DOUBLE"
	default:
		return "VARCHAR"
	}
}

// wideDecimalInfos handles decimals wider than FixedPoint: NUMERIC(20,0)
// holds any BIGINT UNSIGNED, anything else is kept as text.
func wideDecimalInfos(name string, precision, scale int64) *sqlcell.ValuedObjectInfos {
	if precision == 20 && scale == 0 {
		return model.NewValuedObjectInfos(name, model.TypeUInt64)
	}
	return model.NewValuedObjectInfos(name, model.TypeVarChar)
}

// refineInfos applies the length or decimal size reported by the driver when
// the type name did not carry one.
func refineInfos(infos *sqlcell.ValuedObjectInfos, typeName string, ct ColumnType) *sqlcell.ValuedObjectInfos {
	hasArgs := strings.Contains(typeName, "(")
	tag := infos.Tag()

	switch {
	case tag == model.TypeFixedPoint && !hasArgs:
		precision, scale, ok := ct.DecimalSize()
		if !ok || precision <= 0 {
			return infos
		}
		if precision > model.MaxPrecision {
			return wideDecimalInfos(infos.Name(), precision, scale)
		}
		refined, err := model.NewValuedObjectInfosWithPrecision(infos.Name(), int(precision), int(scale))
		if err != nil {
			return infos
		}
		return refined
	case tag.HasLimit() && !hasArgs:
		length, ok := ct.Length()
		if !ok || length <= 0 || length >= math.MaxUint32 {
			return infos
		}
		return model.NewValuedObjectInfosWithLimit(infos.Name(), tag, uint32(length))
	default:
		return infos
	}
}
