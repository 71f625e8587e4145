package tabular

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"id", "name"}, [][]any{{int64(1), "x"}, {int64(2)}})
	assert.Error(t, err)
}

func TestFrame_Accessors(t *testing.T) {
	f := FromRecords([]string{"id", "name"}, []map[string]any{
		{"id": int64(1), "name": "Celtics"},
		{"id": int64(2)},
	})

	assert.Equal(t, 2, f.Len())
	names, ok := f.Column("name")
	require.True(t, ok)
	assert.Equal(t, []any{"Celtics", nil}, names)

	_, ok = f.Column("missing")
	assert.False(t, ok)

	records := f.Records()
	assert.Equal(t, int64(2), records[1]["id"])
	assert.Nil(t, records[1]["name"])
}

func TestFrame_WriteCSV(t *testing.T) {
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	f, err := New([]string{"id", "name", "created_at", "active"}, [][]any{
		{int64(1), "Maple Leafs, Toronto", at, true},
		{int64(2), nil, nil, false},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))

	want := "id,name,created_at,active\n" +
		"1,\"Maple Leafs, Toronto\",2026-10-01T12:00:00Z,true\n" +
		"2,,,false\n"
	assert.Equal(t, want, buf.String())
}
