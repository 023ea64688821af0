package report

import (
	"fmt"
	"io"

	"github.com/alexiusacademia/gorcd/internal/detailing"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook.
const (
	SheetSchedule     = "Schedule"
	SheetSections     = "Sections"
	SheetConnectivity = "Connectivity"
	SheetInfo         = "Info"
)

// WriteXLSX writes the bar schedule, the section grids and the connectivity
// table of res as an Excel workbook.
func WriteXLSX(w io.Writer, res *detailing.Result, meta Meta) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSchedule); err != nil {
		return err
	}
	for _, name := range []string{SheetSections, SheetConnectivity, SheetInfo} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	schedule := BuildSchedule(res)
	rows := [][]any{{"Mark", "Span", "Face", "Group", "Zone", "Qty", "Diameter", "Diameter (cm)", "Length (m)", "Mass (kg)", "Note"}}
	for _, r := range schedule {
		rows = append(rows, []any{
			r.Mark, nameOr(r.SpanName, fmt.Sprintf("span %d", r.Span+1)), string(r.Face), r.Group.String(), string(r.Zone),
			r.Qty, r.Diameter, r.DiameterCm, r.LengthM, r.MassKg, r.Note,
		})
	}
	rows = append(rows, []any{"Total", "", "", "", "", "", "", "", "", TotalMassKg(schedule)})
	if err := writeRows(f, SheetSchedule, rows, bold); err != nil {
		return err
	}

	rows = [][]any{{"Span", "Face", "b x h (cm)", "Main", "L1", "L2", "Grid", "Pitch (cm)"}}
	for _, r := range sectionRows(res) {
		row := make([]any, len(r))
		for i, c := range r {
			row[i] = c
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, SheetSections, rows, bold); err != nil {
		return err
	}

	rows = [][]any{{"Node", "Face", "End", "Group", "Kind", "Active", "Length (m)", "Leg (m)", "Clipped"}}
	for _, c := range res.Connections {
		rows = append(rows, []any{
			nodeName(res.Development, c.Node), string(c.Face), c.End.String(), c.Group.String(), string(c.Kind),
			c.Active, c.LengthM, c.LegM, c.Clipped,
		})
	}
	if err := writeRows(f, SheetConnectivity, rows, bold); err != nil {
		return err
	}

	rows = [][]any{
		{"Title", meta.Title},
		{"Report", meta.ID.String()},
		{"Generated", meta.Generated.Format("2006-01-02 15:04:05")},
		{"Development", nameOr(res.Development.Name, "unnamed")},
	}
	for _, warn := range res.Warnings() {
		rows = append(rows, []any{"Warning", warn})
	}
	if err := writeRows(f, SheetInfo, rows, 0); err != nil {
		return err
	}

	return f.Write(w)
}

// writeRows writes rows from A1 down, styling the first row when style is set.
func writeRows(f *excelize.File, sheet string, rows [][]any, style int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if style == 0 || len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "K", 14)
}
