package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildXLSX(t *testing.T) {
	data, err := BuildXLSX(exportFixture())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per expense line")

	assert.Equal(t, "申請NO", rows[0][0])
	assert.Equal(t, "却下日", rows[0][14])
	assert.Equal(t, "sub-001", rows[1][1])
	assert.Equal(t, "定期", rows[2][5])
}

func TestBuildXLSX_Empty(t *testing.T) {
	data, err := BuildXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
