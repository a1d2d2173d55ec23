package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/wallcalc/internal/engine"
)

func TestExportCutListXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutlist.xlsx")
	require.NoError(t, ExportCutListXLSX(path, halfDropPreview(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, CutListSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	values := map[string]string{}
	for _, row := range summary {
		if len(row) >= 2 {
			values[row[0]] = row[1]
		}
	}
	assert.Equal(t, "test-preview", values["Preview"])
	assert.Equal(t, "19 yds", values["Total yardage"])
	assert.Equal(t, "4", values["Strips needed"])

	rows, err := f.GetRows(CutListSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5, "header plus four strips")
	assert.Equal(t, "#", rows[0][0])
	assert.Equal(t, []string{"Strip 2", "W-MEG-RUS", "167.5", `13'11.5"`, "27", "16.75"}, rows[2])
	assert.Equal(t, "0", rows[1][5])
}

func TestExportCutListXLSX_EmptyPlan(t *testing.T) {
	err := ExportCutListXLSX(filepath.Join(t.TempDir(), "empty.xlsx"), engine.PreviewContext{})
	assert.True(t, errors.Is(err, ErrEmptyPlan))
}
