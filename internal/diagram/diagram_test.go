package diagram

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/connectivity"
	"github.com/alexiusacademia/gorcd/internal/demand"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/layout"
	"github.com/alexiusacademia/gorcd/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTwoSpan(t *testing.T) *development.Development {
	t.Helper()
	dev, err := development.LoadFromFile(filepath.Join("..", "development", "testdata", "two_span.json"))
	require.NoError(t, err)
	return dev
}

func section(t *testing.T) SectionDiagramData {
	t.Helper()
	s := settings.Default()
	stirrups := development.StirrupsSection{Diameter: "3/8", Loops: 1}
	top, err := layout.ComputeFaceLayout(layout.FaceInput{
		Face: development.Top, WidthCm: 30, HeightCm: 50, CoverCm: 4,
		Stirrups: stirrups,
		Main:     development.SteelMeta{Qty: 2, Diameter: "5/8"},
		Cutoff:   layout.CutoffDemand{L1Qty: 2, L1DiameterCm: 1.588},
	}, s)
	require.NoError(t, err)
	bottom, err := layout.ComputeFaceLayout(layout.FaceInput{
		Face: development.Bottom, WidthCm: 30, HeightCm: 50, CoverCm: 4,
		Stirrups: stirrups,
		Main:     development.SteelMeta{Qty: 3, Diameter: "5/8"},
	}, s)
	require.NoError(t, err)

	return SectionDiagramData{
		Title:      "Span A-B",
		Width:      30,
		Height:     50,
		CoverEffCm: top.CoverEffCm,
		Top:        top,
		Bottom:     bottom,
	}
}

func TestDrawASCIISection(t *testing.T) {
	data := section(t)
	na := 38.0
	data.NeutralAxisY = &na

	out := DrawASCIISection(data)
	assert.Contains(t, out, "Span A-B")
	assert.Contains(t, out, "◄─ N.A.")
	assert.Contains(t, out, "·")
	assert.Equal(t, 5, strings.Count(out, "M")-strings.Count("M = main bar", "M"))
	assert.Equal(t, 2, strings.Count(out, "1")-strings.Count(legendLines(out), "1"))
}

// legendLines returns the text after the drawing, where digits also appear.
func legendLines(out string) string {
	i := strings.Index(out, "└")
	if i < 0 {
		return ""
	}
	return out[i:]
}

func TestDrawASCIISection_Degenerate(t *testing.T) {
	assert.Empty(t, DrawASCIISection(SectionDiagramData{}))
	out := DrawASCIISection(SectionDiagramData{Width: 30, Height: 50})
	assert.Contains(t, out, "b = 30.0 cm, h = 50.0 cm")
	assert.NotContains(t, out, "│M")
}

func TestDrawDemandStrip(t *testing.T) {
	dev := loadTwoSpan(t)
	d := demand.ComputeCutoffDemand(dev, 0, development.Top)

	out := DrawDemandStrip(d, nil, 40)
	assert.Contains(t, out, "L1 │2")
	assert.Contains(t, out, "L2 │")
	assert.Contains(t, out, "6.00 m")
	assert.NotContains(t, out, "placed")

	// the section only holds one L1 bar
	lay := &layout.Result{L1: make([]layout.Bar, 1), L2: make([]layout.Bar, 1)}
	out = DrawDemandStrip(d, lay, 40)
	assert.Contains(t, out, "L1 │1")
	assert.NotContains(t, out, "L1 │2")
	assert.Contains(t, out, "peak 2, placed 1")

	assert.Empty(t, DrawDemandStrip(demand.Demand{}, nil, 40))
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("Span 1 top", []string{"rows: 1", "φMn = 120.5 kN-m"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}

func TestExportSectionDiagram(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"section.png", "section.svg", "nested/section.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportSectionDiagram(section(t), path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	err := ExportSectionDiagram(section(t), filepath.Join(dir, "section.bmp"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = SectionPlot(SectionDiagramData{})
	assert.Error(t, err)
}

func TestExportDemandDiagram(t *testing.T) {
	dev := loadTwoSpan(t)
	d := demand.ComputeCutoffDemand(dev, 0, development.Top)
	path := filepath.Join(t.TempDir(), "demand.svg")

	require.NoError(t, ExportDemandDiagram(d, nil, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, ExportDemandDiagram(demand.Demand{}, nil, path))
}

func TestConnectivityDOT(t *testing.T) {
	dev := loadTwoSpan(t)
	conns := connectivity.NewResolver(dev, nil).ResolveAll()

	dot := ConnectivityDOT(dev, conns)
	assert.True(t, strings.HasPrefix(dot, "digraph G {"))
	assert.Contains(t, dot, `"N0"`)
	assert.Contains(t, dot, `"S2"`)
	assert.Contains(t, dot, "A-B")
	assert.Equal(t, 8, strings.Count(dot, "->"))
	assert.Contains(t, dot, "main: continuous")
}

func TestRenderSVG(t *testing.T) {
	dev := loadTwoSpan(t)
	dot := ConnectivityDOT(dev, connectivity.NewResolver(dev, nil).ResolveAll())

	svg, err := RenderSVG(context.Background(), dot)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	_, err = RenderSVG(context.Background(), "digraph {")
	assert.Error(t, err)
}
