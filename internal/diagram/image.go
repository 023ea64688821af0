package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/demand"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/layout"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrUnsupportedFormat is returned for image extensions other than png, svg
// and pdf.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var roleColors = map[layout.Role]color.Color{
	layout.RoleMain: color.RGBA{R: 139, G: 69, B: 19, A: 255},
	layout.RoleL1:   color.RGBA{R: 0, G: 100, B: 200, A: 255},
	layout.RoleL2:   color.RGBA{R: 0, G: 150, B: 60, A: 255},
}

// ExportSectionDiagram exports a detailed section to an image file
func ExportSectionDiagram(data SectionDiagramData, filename string) error {
	p, err := SectionPlot(data)
	if err != nil {
		return err
	}
	return save(p, 6*vg.Inch, 6*vg.Inch*vg.Length(data.Height/data.Width), filename)
}

// SectionPlot builds the plot of a detailed section: outline, hoop, and one
// scatter per bar role of each face.
func SectionPlot(data SectionDiagramData) (*plot.Plot, error) {
	if data.Width <= 0 || data.Height <= 0 {
		return nil, fmt.Errorf("invalid section dimensions: b=%.2f, h=%.2f", data.Width, data.Height)
	}

	p := plot.New()
	p.Title.Text = "Beam Section"
	if data.Title != "" {
		p.Title.Text = data.Title
	}
	p.X.Label.Text = "Width (cm)"
	p.Y.Label.Text = "Height (cm)"

	half := data.Width / 2
	outline, err := plotter.NewLine(rect(-half, 0, half, data.Height))
	if err != nil {
		return nil, err
	}
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Color = color.Black
	p.Add(outline)

	if c := data.CoverEffCm; c > 0 && 2*c < data.Width && 2*c < data.Height {
		hoop, err := plotter.NewLine(rect(-half+c, c, half-c, data.Height-c))
		if err != nil {
			return nil, err
		}
		hoop.LineStyle.Width = vg.Points(1)
		hoop.LineStyle.Color = color.Gray{Y: 100}
		hoop.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(hoop)
	}

	if data.NeutralAxisY != nil {
		y := *data.NeutralAxisY
		na, err := plotter.NewLine(plotter.XYs{{X: -half - 5, Y: y}, {X: half + 5, Y: y}})
		if err != nil {
			return nil, err
		}
		na.LineStyle.Width = vg.Points(1.5)
		na.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		na.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(na)
		p.Legend.Add("N.A.", na)
	}

	for _, role := range []layout.Role{layout.RoleMain, layout.RoleL1, layout.RoleL2} {
		var pts plotter.XYs
		var db float64
		for _, res := range []*layout.Result{data.Top, data.Bottom} {
			if res.Empty() {
				continue
			}
			for _, b := range res.Bars(role) {
				pts = append(pts, plotter.XY{X: b.Z, Y: b.Y})
			}
			db = max(db, diameterOf(res, role))
		}
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = roleColors[role]
		sc.GlyphStyle.Radius = vg.Points(max(3, 2.5*db))
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(role.String(), sc)
	}

	p.Legend.Top = true
	p.X.Min, p.X.Max = -half-5, half+5
	p.Y.Min, p.Y.Max = -5, data.Height+5
	return p, nil
}

// ExportDemandDiagram plots the number of running cut-off bars of each line
// along the span, clipped to the layout when one is given.
func ExportDemandDiagram(d demand.Demand, lay *layout.Result, filename string) error {
	if d.LengthM <= 0 {
		return fmt.Errorf("span length must be positive, got %.2f", d.LengthM)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cut-off bars, %s face", d.Face)
	p.X.Label.Text = "Distance from left support (m)"
	p.Y.Label.Text = "Bars"

	colors := map[development.Line]color.Color{
		development.L1: roleColors[layout.RoleL1],
		development.L2: roleColors[layout.RoleL2],
	}
	steps := int(d.LengthM/demand.GridM + 0.5)
	for _, l := range development.Lines {
		placed := lay.CutoffPool(l)
		pts := make(plotter.XYs, 0, steps+1)
		for i := 0; i <= steps; i++ {
			x := min(float64(i)*demand.GridM, d.LengthM)
			n := d.ActiveAt(x, l)
			if lay != nil {
				n = d.VisibleAt(x, l, placed)
			}
			pts = append(pts, plotter.XY{X: x, Y: float64(n)})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.StepStyle = plotter.PostStep
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = colors[l]
		p.Add(line)
		p.Legend.Add(l.String(), line)
	}
	p.Y.Min = 0
	p.X.Min, p.X.Max = 0, d.LengthM

	return save(p, 8*vg.Inch, 3*vg.Inch, filename)
}

func diameterOf(res *layout.Result, role layout.Role) float64 {
	switch role {
	case layout.RoleL1:
		return res.L1DiameterCm
	case layout.RoleL2:
		return res.L2DiameterCm
	}
	return res.MainDiameterCm
}

func rect(x0, y0, x1, y1 float64) plotter.XYs {
	return plotter.XYs{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
		{X: x0, Y: y0},
	}
}

func save(p *plot.Plot, width, height vg.Length, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return p.Save(width, height, filename)
}
