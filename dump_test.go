package sqlcell

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allKindsColumns(t *testing.T) []*ValuedObjectInfos {
	t.Helper()
	definitions := []struct{ name, definition string }{
		{"flag", "BIT"},
		{"tiny", "TINYINT"},
		{"medium", "MEDIUMINT"},
		{"umedium", "MEDIUMINT UNSIGNED"},
		{"big", "BIGINT UNSIGNED"},
		{"ratio", "FLOAT"},
		{"price", "DECIMAL(12,3)"},
		{"label", "NVARCHAR(20)"},
		{"born", "DATE"},
		{"alarm", "TIME"},
		{"seen", "DATETIME"},
		{"payload", "VARBINARY(8)"},
	}
	columns := make([]*ValuedObjectInfos, len(definitions))
	for i, d := range definitions {
		infos, err := ParseInfos(d.name, d.definition)
		require.NoError(t, err)
		columns[i] = infos
	}
	return columns
}

func allKindsRowSet(t *testing.T) *RowSet {
	t.Helper()
	rs, err := NewRowSet("kinds", allKindsColumns(t))
	require.NoError(t, err)
	require.NoError(t, rs.AppendText([]string{
		"1", "-5", "-8388608", "16777215", "18446744073709551615", "1.5", "-1234.567",
		"Zoë", "2024-02-29", "12:34:56.5", "2024-03-01 10:20:30", "00FF10",
	}))
	require.NoError(t, rs.AppendText([]string{
		"0", "7", "42", "0", "1", "", "0.001", "plain", "", "", "", "",
	}))
	return rs
}

func TestDumpFile_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		options  DumpOptions
		wantFile string
	}{
		{"csv", NewDumpOptions(), "kinds.csv"},
		{"csv gzip", NewDumpOptions().WithCompression(CompressionGZ), "kinds.csv.gz"},
		{"tsv xz", NewDumpOptions().WithFormat(OutputFormatTSV).WithCompression(CompressionXZ), "kinds.tsv.xz"},
		{"ltsv zstd", NewDumpOptions().WithFormat(OutputFormatLTSV).WithCompression(CompressionZSTD), "kinds.ltsv.zst"},
		{"parquet", NewDumpOptions().WithFormat(OutputFormatParquet), "kinds.parquet"},
		{"parquet zstd codec", NewDumpOptions().WithFormat(OutputFormatParquet).WithCompression(CompressionZSTD), "kinds.parquet"},
		{"xlsx", NewDumpOptions().WithFormat(OutputFormatXLSX), "kinds.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			rs := allKindsRowSet(t)

			path, err := DumpFile(ctx, t.TempDir(), rs, tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, filepath.Base(path))

			loaded, err := LoadFile(ctx, path, NewLoadOptions().WithColumns(allKindsColumns(t)...))
			require.NoError(t, err)
			assert.Equal(t, "kinds", loaded.Name())
			assert.Equal(t, rs.Header(), loaded.Header())
			assert.Equal(t, rs.Records(), loaded.Records())
		})
	}
}

func TestDumpFile_TypedFormatsKeepColumnTypes(t *testing.T) {
	t.Parallel()

	for _, format := range []OutputFormat{OutputFormatParquet, OutputFormatXLSX} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			rs := allKindsRowSet(t)

			path, err := DumpFile(ctx, t.TempDir(), rs, NewDumpOptions().WithFormat(format))
			require.NoError(t, err)

			loaded, err := LoadFile(ctx, path)
			require.NoError(t, err)

			want := make([]string, 0, len(rs.Columns()))
			for _, infos := range rs.Columns() {
				want = append(want, infos.String())
			}
			got := make([]string, 0, len(loaded.Columns()))
			for _, infos := range loaded.Columns() {
				got = append(got, infos.String())
			}
			assert.Equal(t, want, got)
			assert.Equal(t, rs.Records(), loaded.Records())

			medium, err := loaded.Cell(0, "medium")
			require.NoError(t, err)
			v, err := GetValue[Int24](medium)
			require.NoError(t, err)
			assert.Equal(t, int32(MinInt24), v.Int32())
		})
	}
}

func TestLoadFile_InfersTypes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("id,total,placed,note\n1,9.99,2024-01-02,first\n2,,2024-01-03 08:00:00,\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))

	rs, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "orders", rs.Name())
	require.Equal(t, 2, rs.Len())

	tags := make([]TypeTag, 0, 4)
	for _, infos := range rs.Columns() {
		tags = append(tags, infos.Tag())
	}
	assert.Equal(t, []TypeTag{TypeSInt64, TypeFloat64, TypeDateTime, TypeVarChar}, tags)

	total, err := rs.Cell(1, "total")
	require.NoError(t, err)
	assert.True(t, total.IsNull())

	placed, err := rs.Cell(0, "placed")
	require.NoError(t, err)
	at, err := GetValue[time.Time](placed)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), at)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	_, err := LoadFile(ctx, filepath.Join(dir, "data.json"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(ctx, filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	path := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0600))
	_, err = LoadFile(ctx, path, NewLoadOptions().WithColumns(NewValuedObjectInfos("a", TypeSInt32)))
	require.ErrorIs(t, err, ErrInvalidData)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("n\n12\nx\n"), 0600))
	_, err = LoadFile(ctx, bad, NewLoadOptions().WithColumns(NewValuedObjectInfos("n", TypeSInt16)))
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "record 2")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = LoadFile(canceled, path)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadReader(t *testing.T) {
	t.Parallel()

	data := "time:2024-01-01T00:00:00Z\tlevel:info\n" +
		"level:warn\ttime:2024-01-01T00:00:01Z\tcode:7\n"

	rs, err := LoadReader(context.Background(), strings.NewReader(data), "logs", FileTypeLTSV)
	require.NoError(t, err)
	assert.Equal(t, "logs", rs.Name())
	assert.Equal(t, Header{"time", "level", "code"}, rs.Header())

	code, err := rs.Cell(0, "code")
	require.NoError(t, err)
	assert.True(t, code.IsNull())

	renamed, err := LoadReader(context.Background(), strings.NewReader("a\n1\n"), "ignored", FileTypeCSV,
		NewLoadOptions().WithTableName("numbers"))
	require.NoError(t, err)
	assert.Equal(t, "numbers", renamed.Name())

	_, err = LoadReader(context.Background(), strings.NewReader("{}"), "x", FileTypeUnsupported)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDump_SQL(t *testing.T) {
	t.Parallel()

	rs, err := NewRowSet("people", peopleColumns(t))
	require.NoError(t, err)
	require.NoError(t, rs.AppendText([]string{"1", "O'Hara", "30", "9.5"}))
	require.NoError(t, rs.AppendText([]string{"2", "Bob", "", ""}))

	tests := []struct {
		dialect Dialect
		want    string
	}{
		{
			dialect: DialectPostgreSQL,
			want: `CREATE TABLE "people" (
  "id" INTEGER,
  "name" VARCHAR(16),
  "age" SMALLINT,
  "score" NUMERIC(5,1)
);
INSERT INTO "people" ("id", "name", "age", "score") VALUES (1, 'O''Hara', 30, 9.5);
INSERT INTO "people" ("id", "name", "age", "score") VALUES (2, 'Bob', NULL, NULL);
`,
		},
		{
			dialect: DialectMySQL,
			want: "CREATE TABLE `people` (\n" +
				"  `id` INTEGER,\n" +
				"  `name` NVARCHAR(16),\n" +
				"  `age` TINYINT UNSIGNED,\n" +
				"  `score` DECIMAL(5,1)\n" +
				");\n" +
				"INSERT INTO `people` (`id`, `name`, `age`, `score`) VALUES (1, N'O''Hara', 30, 9.5);\n" +
				"INSERT INTO `people` (`id`, `name`, `age`, `score`) VALUES (2, N'Bob', NULL, NULL);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			options := NewDumpOptions().WithFormat(OutputFormatSQL).WithDialect(tt.dialect)
			require.NoError(t, Dump(context.Background(), &buf, rs, options))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDump_CompressedStream(t *testing.T) {
	t.Parallel()

	rs, err := NewRowSet("people", peopleColumns(t))
	require.NoError(t, err)
	require.NoError(t, rs.AppendText([]string{"1", "Ann", "30", "9.5"}))

	var buf bytes.Buffer
	require.NoError(t, Dump(context.Background(), &buf, rs, NewDumpOptions().WithCompression(CompressionGZ)))

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	plain, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "id,name,age,score\n1,Ann,30,9.5\n", string(plain))
}

func TestDump_ParquetLeavesWriterOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kinds.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	rs := allKindsRowSet(t)
	require.NoError(t, Dump(ctx, f, rs, NewDumpOptions().WithFormat(OutputFormatParquet)))

	// the caller still owns f
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	loaded, err := LoadFile(ctx, path, NewLoadOptions().WithColumns(allKindsColumns(t)...))
	require.NoError(t, err)
	assert.Equal(t, rs.Records(), loaded.Records())
}

func TestDump_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rs, err := NewRowSet("notes", []*ValuedObjectInfos{NewValuedObjectInfos("text", TypeText)})
	require.NoError(t, err)
	require.NoError(t, rs.AppendText([]string{"line one\nline two"}))

	err = Dump(ctx, io.Discard, rs, NewDumpOptions().WithFormat(OutputFormatLTSV))
	require.ErrorIs(t, err, ErrInvalidData)
	assert.Contains(t, err.Error(), "table: notes")

	err = Dump(ctx, io.Discard, rs, NewDumpOptions().WithCompression(CompressionBZ2))
	require.Error(t, err)

	dir := t.TempDir()
	_, err = DumpFile(ctx, dir, rs, NewDumpOptions().WithCompression(CompressionBZ2))
	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	unnamed, err := NewRowSet("", rs.Columns())
	require.NoError(t, err)
	_, err = DumpFile(ctx, dir, unnamed)
	require.ErrorIs(t, err, ErrInvalidData)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err = Dump(canceled, io.Discard, rs)
	require.ErrorIs(t, err, context.Canceled)
}
