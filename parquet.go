package sqlcell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	pqcompress "github.com/apache/arrow/go/v18/parquet/compress"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/sqlcell/domain/model"
	"github.com/nao1215/sqlcell/internal/logger"
)

// typeMetadataKey is the Arrow field metadata key holding the column definition,
// so that a dumped file loads back with its exact types.
const typeMetadataKey = "sqlcell.type"

// arrowType maps a column to the Arrow type it is stored as.
func arrowType(infos *ValuedObjectInfos) arrow.DataType {
	switch infos.Tag() {
	case TypeBit:
		return arrow.FixedWidthTypes.Boolean
	case TypeSInt8:
		return arrow.PrimitiveTypes.Int8
	case TypeUInt8:
		return arrow.PrimitiveTypes.Uint8
	case TypeSInt16:
		return arrow.PrimitiveTypes.Int16
	case TypeUInt16:
		return arrow.PrimitiveTypes.Uint16
	case TypeSInt24, TypeSInt32:
		return arrow.PrimitiveTypes.Int32
	case TypeUInt24, TypeUInt32:
		return arrow.PrimitiveTypes.Uint32
	case TypeSInt64:
		return arrow.PrimitiveTypes.Int64
	case TypeUInt64:
		return arrow.PrimitiveTypes.Uint64
	case TypeFloat32:
		return arrow.PrimitiveTypes.Float32
	case TypeFloat64:
		return arrow.PrimitiveTypes.Float64
	case TypeFixedPoint:
		return &arrow.Decimal128Type{Precision: int32(infos.Precision()), Scale: int32(infos.Scale())}
	case TypeDate:
		return arrow.FixedWidthTypes.Date32
	case TypeDateTime:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
	case TypeTime:
		return arrow.FixedWidthTypes.Time64us
	case TypeBinary, TypeVarBinary, TypeBlob:
		return arrow.BinaryTypes.Binary
	default:
		return arrow.BinaryTypes.String
	}
}

// arrowSchema builds the schema of a row set.
func arrowSchema(columns []*ValuedObjectInfos) *arrow.Schema {
	fields := make([]arrow.Field, len(columns))
	for i, infos := range columns {
		fields[i] = arrow.Field{
			Name:     infos.Name(),
			Type:     arrowType(infos),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{typeMetadataKey}, []string{infos.Definition()}),
		}
	}
	return arrow.NewSchema(fields, nil)
}

// parquetCodec maps the dump compression onto a Parquet page codec.
// Parquet files are never wrapped in an outer compression stream.
func parquetCodec(c CompressionType) pqcompress.Compression {
	switch c {
	case CompressionGZ:
		return pqcompress.Codecs.Gzip
	case CompressionZSTD:
		return pqcompress.Codecs.Zstd
	case CompressionNone:
		return pqcompress.Codecs.Uncompressed
	default:
		return pqcompress.Codecs.Snappy
	}
}

func sinceMidnight(tod TimeOfDay) time.Duration {
	return time.Duration(tod.Hour)*time.Hour +
		time.Duration(tod.Minute)*time.Minute +
		time.Duration(tod.Second)*time.Second +
		time.Duration(tod.Nanosecond)
}

// appendArrowValue appends one cell to the builder of its column.
func appendArrowValue(b array.Builder, cell *ValuedObject) error {
	if cell.IsNull() {
		b.AppendNull()
		return nil
	}

	v := cell.value
	var err error
	switch b := b.(type) {
	case *array.BooleanBuilder:
		var x bool
		x, err = model.ReadAs[bool](v)
		b.Append(x)
	case *array.Int8Builder:
		var x int8
		x, err = model.ReadAs[int8](v)
		b.Append(x)
	case *array.Uint8Builder:
		var x uint8
		x, err = model.ReadAs[uint8](v)
		b.Append(x)
	case *array.Int16Builder:
		var x int16
		x, err = model.ReadAs[int16](v)
		b.Append(x)
	case *array.Uint16Builder:
		var x uint16
		x, err = model.ReadAs[uint16](v)
		b.Append(x)
	case *array.Int32Builder:
		var x int32
		x, err = model.ReadAs[int32](v)
		b.Append(x)
	case *array.Uint32Builder:
		var x uint32
		x, err = model.ReadAs[uint32](v)
		b.Append(x)
	case *array.Int64Builder:
		var x int64
		x, err = model.ReadAs[int64](v)
		b.Append(x)
	case *array.Uint64Builder:
		var x uint64
		x, err = model.ReadAs[uint64](v)
		b.Append(x)
	case *array.Float32Builder:
		var x float32
		x, err = model.ReadAs[float32](v)
		b.Append(x)
	case *array.Float64Builder:
		var x float64
		x, err = model.ReadAs[float64](v)
		b.Append(x)
	case *array.Decimal128Builder:
		var x FixedPoint
		x, err = model.ReadAs[FixedPoint](v)
		b.Append(x.Decimal128())
	case *array.Date32Builder:
		var x Date
		x, err = model.ReadAs[Date](v)
		b.Append(arrow.Date32FromTime(x.Time()))
	case *array.TimestampBuilder:
		var x time.Time
		x, err = model.ReadAs[time.Time](v)
		b.Append(arrow.Timestamp(x.UnixMicro()))
	case *array.Time64Builder:
		var x TimeOfDay
		x, err = model.ReadAs[TimeOfDay](v)
		b.Append(arrow.Time64(sinceMidnight(x) / time.Microsecond))
	case *array.BinaryBuilder:
		var x []byte
		x, err = model.ReadAs[[]byte](v)
		b.Append(x)
	case *array.StringBuilder:
		b.Append(model.Text(v))
	default:
		return fmt.Errorf("%w: no Arrow builder for %s", ErrUnsupportedType, cell.Tag())
	}
	return err
}

// writeParquet writes rs as a single Parquet row group.
func writeParquet(ctx context.Context, w io.Writer, rs *RowSet, options DumpOptions) error {
	schema := arrowSchema(rs.columns)
	mem := memory.NewGoAllocator()

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for i, row := range rs.rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for j, cell := range row.cells {
			if err := appendArrowValue(builder.Field(j), cell); err != nil {
				return newCellErrorContext("Dump", cell.infos).WithTable(rs.name).Error(err)
			}
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(parquetCodec(options.Compression)),
		parquet.WithAllocator(mem),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	// pqarrow closes its sink on Close; w belongs to the caller.
	writer, err := pqarrow.NewFileWriter(schema, struct{ io.Writer }{w}, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.Write(record); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet record: %w", err)
	}
	return writer.Close()
}

// infosFromArrowField recovers the column metadata of a Parquet column.
func infosFromArrowField(field arrow.Field) *ValuedObjectInfos {
	if i := field.Metadata.FindKey(typeMetadataKey); i >= 0 {
		if infos, err := model.ParseInfos(field.Name, field.Metadata.Values()[i]); err == nil {
			return infos
		}
	}

	if dt, ok := field.Type.(*arrow.Decimal128Type); ok {
		infos, err := NewValuedObjectInfosWithPrecision(field.Name, int(dt.Precision), int(dt.Scale))
		if err == nil {
			return infos
		}
		logger.Debug("decimal column read as text", "column", field.Name, "type", dt.String())
		return NewValuedObjectInfos(field.Name, TypeVarChar)
	}

	switch field.Type.ID() {
	case arrow.BOOL:
		return NewValuedObjectInfos(field.Name, TypeBit)
	case arrow.INT8:
		return NewValuedObjectInfos(field.Name, TypeSInt8)
	case arrow.UINT8:
		return NewValuedObjectInfos(field.Name, TypeUInt8)
	case arrow.INT16:
		return NewValuedObjectInfos(field.Name, TypeSInt16)
	case arrow.UINT16:
		return NewValuedObjectInfos(field.Name, TypeUInt16)
	case arrow.INT32:
		return NewValuedObjectInfos(field.Name, TypeSInt32)
	case arrow.UINT32:
		return NewValuedObjectInfos(field.Name, TypeUInt32)
	case arrow.INT64:
		return NewValuedObjectInfos(field.Name, TypeSInt64)
	case arrow.UINT64:
		return NewValuedObjectInfos(field.Name, TypeUInt64)
	case arrow.FLOAT32:
		return NewValuedObjectInfos(field.Name, TypeFloat32)
	case arrow.FLOAT64:
		return NewValuedObjectInfos(field.Name, TypeFloat64)
	case arrow.STRING, arrow.LARGE_STRING:
		return NewValuedObjectInfos(field.Name, TypeVarChar)
	case arrow.BINARY, arrow.LARGE_BINARY:
		return NewValuedObjectInfos(field.Name, TypeVarBinary)
	case arrow.DATE32, arrow.DATE64:
		return NewValuedObjectInfos(field.Name, TypeDate)
	case arrow.TIMESTAMP:
		return NewValuedObjectInfos(field.Name, TypeDateTime)
	case arrow.TIME32, arrow.TIME64:
		return NewValuedObjectInfos(field.Name, TypeTime)
	default:
		logger.Warn("unsupported parquet column read as text", "column", field.Name, "type", field.Type.String())
		return NewValuedObjectInfos(field.Name, TypeVarChar)
	}
}

// arrowValue extracts element i of col as a value Populate accepts.
func arrowValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}

	switch a := col.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return uint64(a.Value(i))
	case *array.Uint16:
		return uint64(a.Value(i))
	case *array.Uint32:
		return uint64(a.Value(i))
	case *array.Uint64:
		return a.Value(i)
	case *array.Float32:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Decimal128:
		dt := a.DataType().(*arrow.Decimal128Type)
		if fp, err := model.FixedPointFromDecimal128(a.Value(i), int(dt.Precision), int(dt.Scale)); err == nil {
			return fp
		}
		return a.ValueStr(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Binary:
		return a.Value(i)
	case *array.LargeBinary:
		return a.Value(i)
	case *array.Date32:
		return a.Value(i).ToTime()
	case *array.Date64:
		return a.Value(i).ToTime()
	case *array.Timestamp:
		return a.Value(i).ToTime(a.DataType().(*arrow.TimestampType).Unit)
	case *array.Time32:
		return a.Value(i).ToTime(a.DataType().(*arrow.Time32Type).Unit)
	case *array.Time64:
		return a.Value(i).ToTime(a.DataType().(*arrow.Time64Type).Unit)
	default:
		return col.ValueStr(i)
	}
}

// readParquet loads a Parquet stream. Parquet needs random access, so the
// stream is read into memory first.
func readParquet(ctx context.Context, r io.Reader, name string, columns []*ValuedObjectInfos) (*RowSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty parquet data %s", ErrEmptyData, name)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	schema := table.Schema()
	if columns == nil {
		columns = make([]*ValuedObjectInfos, schema.NumFields())
		for i, field := range schema.Fields() {
			columns[i] = infosFromArrowField(field)
		}
	} else if len(columns) != schema.NumFields() {
		return nil, fmt.Errorf("%w: %d columns declared, parquet has %d", ErrInvalidData, len(columns), schema.NumFields())
	}

	rs, err := NewRowSet(name, columns)
	if err != nil {
		return nil, err
	}

	tableReader := array.NewTableReader(table, 0)
	defer tableReader.Release()

	for tableReader.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch := tableReader.Record()
		for i := range int(batch.NumRows()) {
			row, err := rs.AddRow()
			if err != nil {
				return nil, err
			}
			for j, col := range batch.Columns() {
				cell := row.cells[j]
				if err := cell.Scan(arrowValue(col, i)); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("error reading table records: %w", err)
	}

	return rs, nil
}
