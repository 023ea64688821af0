package report

import (
	"fmt"
	"io"

	"github.com/alexiusacademia/gorcd/internal/detailing"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/phpdave11/gofpdf"
)

// WritePDF writes the detailing report of res as a PDF document.
func WritePDF(w io.Writer, res *detailing.Result, meta Meta) error {
	dev := res.Development

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.ID.String(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Development: %s", nameOr(dev.Name, "unnamed")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Report: %s", meta.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Generated.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Cover: %.0f mm   Lc: %.2f m   f'c: %.1f MPa   fy: %.0f MPa",
		dev.CoverM*1000, dev.LcM, dev.FcMPa, dev.FyMPa))
	pdf.Ln(10)

	section(pdf, "Sections")
	table(pdf,
		[]string{"Span", "Face", "b x h (cm)", "Main", "L1", "L2", "Grid", "Pitch (cm)"},
		[]float64{22, 16, 26, 22, 18, 18, 20, 24},
		sectionRows(res))

	if warnings := res.Warnings(); len(warnings) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, "Warnings")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		for _, warn := range warnings {
			pdf.MultiCell(0, 5, "- "+warn, "", "L", false)
		}
	}

	pdf.Ln(4)
	section(pdf, "Connectivity")
	var conns [][]string
	for _, c := range res.Connections {
		if !c.Active {
			continue
		}
		conns = append(conns, []string{
			nodeName(dev, c.Node), string(c.Face), c.End.String(), c.Group.String(), string(c.Kind),
			fmt.Sprintf("%.3f", c.LengthM), fmt.Sprintf("%.3f", c.LegM),
		})
	}
	table(pdf,
		[]string{"Node", "Face", "End", "Group", "Kind", "Length (m)", "Leg (m)"},
		[]float64{22, 18, 18, 22, 28, 26, 22},
		conns)

	pdf.Ln(4)
	section(pdf, "Bar schedule")
	schedule := BuildSchedule(res)
	var bars [][]string
	for _, r := range schedule {
		bars = append(bars, []string{
			r.Mark, fmt.Sprint(r.Qty), r.Diameter, fmt.Sprintf("%.2f", r.LengthM), fmt.Sprintf("%.2f", r.MassKg),
		})
	}
	table(pdf,
		[]string{"Mark", "Qty", "Dia", "Length (m)", "Mass (kg)"},
		[]float64{40, 16, 20, 28, 28},
		bars)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Total steel: %.2f kg", TotalMassKg(schedule)))
	pdf.Ln(6)

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func table(pdf *gofpdf.Fpdf, header []string, widths []float64, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 5, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func sectionRows(res *detailing.Result) [][]string {
	dev := res.Development
	var rows [][]string
	for i := range res.Spans {
		sr := &res.Spans[i]
		sp := dev.Spans[i]
		for _, f := range development.Faces {
			fr := sr.Face(f)
			st := sp.Steel(f)
			row := []string{
				nameOr(sr.Name, fmt.Sprintf("span %d", i+1)),
				string(f),
				fmt.Sprintf("%.0f x %.0f", sp.B*100, sp.H*100),
				fmt.Sprintf("%d-%s", st.Qty, st.Diameter),
			}
			if fr.Layout == nil {
				row = append(row, "-", "-", "failed", "-")
			} else {
				row = append(row,
					fmt.Sprint(len(fr.Layout.L1)),
					fmt.Sprint(len(fr.Layout.L2)),
					fmt.Sprintf("%dx%d", fr.Layout.Rows, fr.Layout.Cols),
					fmt.Sprintf("%.2f", fr.Layout.PitchCm))
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func nodeName(dev *development.Development, i int) string {
	if i >= 0 && i < len(dev.Nodes) && dev.Nodes[i].Name != "" {
		return dev.Nodes[i].Name
	}
	return fmt.Sprintf("node %d", i)
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
