package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TapePlanner/internal/planner"
)

func TestExportExcel_Plan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	report := planner.New().Run(context.Background(), []string{"600", "361"})
	require.True(t, report.Solved())

	require.NoError(t, ExportExcel(path, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(PlanSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, planHeaders, rows[0])
	assert.Equal(t, []string{"1", "600", "A", "300", "2", "600"}, rows[1])
	assert.Equal(t, []string{"2", "361", "B", "361", "1", "361"}, rows[2])

	ratio, err := f.GetCellValue(SummarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "2:1", ratio)

	tapes, err := f.GetCellValue(SummarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2", tapes)
}

func TestExportExcel_UnsolvedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.xlsx")
	report := planner.New().Run(context.Background(), []string{"abc"})
	assert.Error(t, ExportExcel(path, report))
}
