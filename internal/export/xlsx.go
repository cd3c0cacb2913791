package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
)

// Sheet names used in exported workbooks.
const (
	PlanSheet    = "Plan"
	SummarySheet = "Summary"
)

var planHeaders = []string{"Tape", "Tape length (m)", "Class", "Piece length (m)", "Count", "Subtotal (m)"}

// ExportExcel writes the allocation to an XLSX workbook with one row per
// segment on the Plan sheet and the totals on the Summary sheet.
func ExportExcel(path string, report planner.Report) error {
	if !report.Solved() {
		return fmt.Errorf("no allocation to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PlanSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writePlanSheet(f, report.Allocation); err != nil {
		return err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, report); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writePlanSheet(f *excelize.File, alloc model.Allocation) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	classStyles := map[model.SizeClass]int{}
	for class, c := range map[model.SizeClass]string{model.ClassA: "C8E6C9", model.ClassB: "FFCDD2"} {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{c}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to create class style: %w", err)
		}
		classStyles[class] = id
	}

	if err := setRow(f, PlanSheet, 1, toCells(planHeaders)); err != nil {
		return err
	}
	if err := f.SetRowStyle(PlanSheet, 1, 1, header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for i, g := range alloc.Groups {
		for _, s := range g.Segments {
			values := []interface{}{i + 1, g.TapeLength, s.Class.String(), s.Length, s.Count, s.Total()}
			if err := setRow(f, PlanSheet, row, values); err != nil {
				return err
			}
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(PlanSheet, first, last, classStyles[s.Class]); err != nil {
				return fmt.Errorf("failed to style row %d: %w", row, err)
			}
			row++
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report planner.Report) error {
	alloc := report.Allocation
	rows := [][]interface{}{
		{"Tapes", len(alloc.Groups)},
		{"Total length (m)", alloc.TotalLength()},
		{"Class A pieces", alloc.CountA},
		{"Class B pieces", alloc.CountB},
		{"Ratio", alloc.Ratio.String()},
		{"Search nodes", report.Stats.Nodes},
	}
	for i, values := range rows {
		if err := setRow(f, SummarySheet, i+1, values); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes values into consecutive cells starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
