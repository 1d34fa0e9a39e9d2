package generator

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelGenerator_Generate(t *testing.T) {
	g := NewExcelGenerator()

	out, err := g.Generate(context.Background(), batchData())
	require.NoError(t, err)

	// XLSX это zip архив
	require.Greater(t, len(out), 4)
	assert.Equal(t, "PK", string(out[:2]))

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{summarySheet, routesSheet}, f.GetSheetList())

	rows, err := f.GetRows(routesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Query ID", rows[0][0])
	assert.Equal(t, "q-1", rows[1][0])
	assert.Equal(t, "Shortest", rows[1][3])
	assert.Equal(t, "5", rows[1][5])
	assert.Equal(t, "1 --> 2(C) --> 3", rows[1][6])

	found, err := f.GetCellValue(summarySheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "2", found)
}
