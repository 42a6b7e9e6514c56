package sqlcell

import (
	"testing"

	"github.com/nao1215/sqlcell/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleColumns(t *testing.T) []*ValuedObjectInfos {
	t.Helper()
	age, err := ParseInfos("age", "TINYINT UNSIGNED")
	require.NoError(t, err)
	score, err := ParseInfos("score", "DECIMAL(5,1)")
	require.NoError(t, err)
	return []*ValuedObjectInfos{
		NewValuedObjectInfos("id", TypeSInt32),
		NewValuedObjectInfosWithLimit("name", TypeNVarChar, 16),
		age,
		score,
	}
}

func TestNewRowSet(t *testing.T) {
	t.Parallel()

	t.Run("duplicate column", func(t *testing.T) {
		t.Parallel()

		_, err := NewRowSet("t", []*ValuedObjectInfos{
			NewValuedObjectInfos("id", TypeSInt32),
			NewValuedObjectInfos("id", TypeText),
		})
		assert.ErrorIs(t, err, ErrDuplicateColumnName)
	})

	t.Run("unsupported tag", func(t *testing.T) {
		t.Parallel()

		_, err := NewRowSet("t", []*ValuedObjectInfos{NewValuedObjectInfos("x", TypeNull)})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("columns are copied", func(t *testing.T) {
		t.Parallel()

		columns := peopleColumns(t)
		rs, err := NewRowSet("people", columns)
		require.NoError(t, err)
		columns[0] = NewValuedObjectInfos("other", TypeText)
		assert.Equal(t, Header{"id", "name", "age", "score"}, rs.Header())
		assert.Equal(t, 0, rs.Len())
	})
}

func TestRowSet_AppendText(t *testing.T) {
	t.Parallel()

	rs, err := NewRowSet("people", peopleColumns(t))
	require.NoError(t, err)

	require.NoError(t, rs.AppendText([]string{"1", "Zoë", "30", "9.5"}))
	require.NoError(t, rs.AppendText([]string{"2", "", "", ""}))

	err = rs.AppendText([]string{"3", "Bob", "300", "1"})
	require.ErrorIs(t, err, ErrIntegerOverflow)
	err = rs.AppendText([]string{"3", "Bob"})
	require.ErrorIs(t, err, ErrInvalidData)
	assert.Equal(t, 2, rs.Len(), "failed appends add nothing")

	assert.Equal(t, []Record{
		{"1", "Zoë", "30", "9.5"},
		{"2", "", "", ""},
	}, rs.Records())

	age, err := rs.Cell(1, "age")
	require.NoError(t, err)
	assert.True(t, age.IsNull())

	name, err := rs.Cell(1, "name")
	require.NoError(t, err)
	assert.False(t, name.IsNull(), "empty text in a character column is a value")

	_, err = rs.Cell(5, "age")
	require.ErrorIs(t, err, ErrInvalidData)
	_, err = rs.Cell(0, "missing")
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestRow_Accessors(t *testing.T) {
	t.Parallel()

	rs, err := NewRowSet("people", peopleColumns(t))
	require.NoError(t, err)

	row, err := rs.AddRow()
	require.NoError(t, err)
	require.Equal(t, 4, row.Len())
	assert.Nil(t, row.Cell(4))
	assert.Nil(t, rs.Row(1))

	id, ok := row.Get("id")
	require.True(t, ok)
	require.NoError(t, SetValue(id, int32(7)))
	_, ok = row.Get("missing")
	assert.False(t, ok)

	score, _ := row.Get("score")
	fp, err := ParseFixedPoint("2.5", 5, 1)
	require.NoError(t, err)
	require.NoError(t, SetValue(score, fp))

	assert.Equal(t, []any{int64(7), nil, nil, "2.5"}, row.Values())

	targets := row.ScanTargets()
	require.Len(t, targets, 4)
	assert.Same(t, id, targets[0])
	assert.Len(t, row.Cells(), 4)
	idx, ok := rs.Column("age")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestRowSetFromTable(t *testing.T) {
	t.Parallel()

	table := model.NewTable("scores",
		Header{"id", "score", "at"},
		[]Record{
			{"1", "1.25", "2024-01-01"},
			{"2", "", "2024-02-01"},
		})

	rs, err := RowSetFromTable(table)
	require.NoError(t, err)
	assert.Equal(t, "scores", rs.Name())
	assert.Equal(t, 2, rs.Len())

	columns := rs.Columns()
	assert.True(t, columns[0].Tag().IsInteger())
	assert.Equal(t, TypeDate, columns[2].Tag())

	score, err := rs.Cell(1, "score")
	require.NoError(t, err)
	assert.True(t, score.IsNull())
}
