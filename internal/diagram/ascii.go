package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/gorcd/internal/demand"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/layout"
)

// SectionDiagramData holds data for drawing a detailed beam section
type SectionDiagramData struct {
	Title string

	// Section dimensions
	Width  float64 // cm
	Height float64 // cm

	CoverEffCm float64 // outside of the hoop, 0 to omit it

	// Layouts of both faces, either may be nil
	Top    *layout.Result
	Bottom *layout.Result

	// Neutral axis from a capacity check, cm up from the bottom
	NeutralAxisY *float64
}

// Markers used for each bar role in the ASCII grid.
var roleMarkers = map[layout.Role]rune{
	layout.RoleMain: 'M',
	layout.RoleL1:   '1',
	layout.RoleL2:   '2',
}

// DrawASCIISection draws the section outline, the hoop and every placed bar
func DrawASCIISection(data SectionDiagramData) string {
	if data.Width <= 0 || data.Height <= 0 {
		return ""
	}

	// Terminal cells are roughly twice as tall as they are wide
	widthChars := 30
	heightChars := int(math.Round(float64(widthChars) * data.Height / data.Width / 2))
	heightChars = min(max(heightChars, 8), 30)

	grid := make([][]rune, heightChars)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", widthChars))
	}
	col := func(z float64) int {
		c := int(math.Round((z + data.Width/2) / data.Width * float64(widthChars-1)))
		return min(max(c, 0), widthChars-1)
	}
	row := func(y float64) int {
		r := int(math.Round((data.Height - y) / data.Height * float64(heightChars-1)))
		return min(max(r, 0), heightChars-1)
	}

	// Hoop
	if c := data.CoverEffCm; c > 0 && 2*c < data.Width && 2*c < data.Height {
		left, right := col(-data.Width/2+c), col(data.Width/2-c)
		top, bottom := row(data.Height-c), row(c)
		for j := left; j <= right; j++ {
			grid[top][j] = '·'
			grid[bottom][j] = '·'
		}
		for i := top; i <= bottom; i++ {
			grid[i][left] = '·'
			grid[i][right] = '·'
		}
	}

	naLine := -1
	if data.NeutralAxisY != nil {
		naLine = row(*data.NeutralAxisY)
		for j, r := range grid[naLine] {
			if r == ' ' {
				grid[naLine][j] = '-'
			}
		}
	}

	for _, res := range []*layout.Result{data.Top, data.Bottom} {
		if res.Empty() {
			continue
		}
		for _, role := range []layout.Role{layout.RoleMain, layout.RoleL1, layout.RoleL2} {
			mark := roleMarkers[role]
			for _, b := range res.Bars(role) {
				i, j := row(b.Y), col(b.Z)
				switch grid[i][j] {
				case 'M', '1', '2':
					if grid[i][j] != mark {
						grid[i][j] = '*'
					}
				default:
					grid[i][j] = mark
				}
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	if data.Title != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", data.Title))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", utf8.RuneCountInString(data.Title))))
	}
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for i, line := range grid {
		sb.WriteString(fmt.Sprintf("  │%s│", string(line)))
		if i == naLine {
			sb.WriteString(" ◄─ N.A.")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))
	sb.WriteString(fmt.Sprintf("   b = %.1f cm, h = %.1f cm\n", data.Width, data.Height))

	// Legend
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  M = main bar, 1 = L1 cut-off, 2 = L2 cut-off, * = overlapping marks\n")
	if data.CoverEffCm > 0 {
		sb.WriteString(fmt.Sprintf("  ··· = hoop, effective cover %.2f cm\n", data.CoverEffCm))
	}
	if data.NeutralAxisY != nil {
		sb.WriteString(fmt.Sprintf("  N.A. = Neutral Axis at %.1f cm from the bottom\n", *data.NeutralAxisY))
	}
	return sb.String()
}

// DrawDemandStrip draws how many cut-off bars of each line run at each point
// along the span. With a layout the counts are clipped to the bars it placed.
func DrawDemandStrip(d demand.Demand, lay *layout.Result, width int) string {
	if d.LengthM <= 0 || width < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  CUT-OFF BARS ALONG SPAN (%s)\n", d.Face))
	sb.WriteString("  ──────────────────────────\n")
	for _, l := range development.Lines {
		placed := lay.CutoffPool(l)
		cells := make([]rune, width)
		for i := range cells {
			x := d.LengthM * float64(i) / float64(width-1)
			n := d.ActiveAt(x, l)
			if lay != nil {
				n = d.VisibleAt(x, l, placed)
			}
			switch {
			case n <= 0:
				cells[i] = ' '
			case n > 9:
				cells[i] = '+'
			default:
				cells[i] = rune('0' + n)
			}
		}
		sb.WriteString(fmt.Sprintf("  %s │%s│ peak %d", l, string(cells), d.Peak(l)))
		if lay != nil {
			sb.WriteString(fmt.Sprintf(", placed %d", placed))
		}
		sb.WriteString("\n")
	}
	right := fmt.Sprintf("%.2f m", d.LengthM)
	pad := max(width+2-len("0.00")-len(right), 1)
	sb.WriteString(fmt.Sprintf("     0.00%s%s\n", strings.Repeat(" ", pad), right))
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	pad := func(s string) string {
		return s + strings.Repeat(" ", maxLen-2-utf8.RuneCountInString(s))
	}

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
