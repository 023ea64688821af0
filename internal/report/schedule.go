package report

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcd/internal/connectivity"
	"github.com/alexiusacademia/gorcd/internal/detailing"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/rebar"
)

// SteelDensity is the unit mass of reinforcing steel in kg/m³.
const SteelDensity = 7850.0

// ScheduleRow is one bar mark of the bar schedule.
type ScheduleRow struct {
	Mark     string
	Span     int
	SpanName string
	Face     development.Face
	Group    development.BarGroup
	Zone     development.Zone // empty for main bars

	Qty        int
	Diameter   string
	DiameterCm float64
	LengthM    float64 // cut length of one bar
	MassKg     float64 // all bars of the mark
	Note       string
}

// BuildSchedule lists every bar of a detailed development. Main bars run the
// clear span plus their terminals at both nodes; continuous terminals count
// half the node width on each side. Cut-off bars run their interval plus the
// terminal at the support they start from.
func BuildSchedule(res *detailing.Result) []ScheduleRow {
	dev := res.Development
	terms := map[termKey]connectivity.Resolution{}
	for _, c := range res.Connections {
		terms[termKey{c.Node, c.Face, c.End, c.Group}] = c
	}
	terminal := func(node int, f development.Face, e development.End, g development.BarGroup) float64 {
		c, ok := terms[termKey{node, f, e, g}]
		if !ok || !c.Active {
			return 0
		}
		if c.Kind == development.Continuous {
			return c.LengthM / 2
		}
		return c.LengthM + c.LegM
	}

	var rows []ScheduleRow
	for i, sr := range res.Spans {
		sp := dev.Spans[i]
		for _, f := range development.Faces {
			fr := sr.Face(f)
			st := sp.Steel(f)
			if st.Qty > 0 {
				db := st.Diameter.Cm(dev.Settings)
				length := sp.L + terminal(i, f, development.End2, development.Main) +
					terminal(i+1, f, development.End1, development.Main)
				rows = append(rows, ScheduleRow{
					Mark:       fmt.Sprintf("S%d-%s-M", i+1, faceCode(f)),
					Span:       i,
					SpanName:   sr.Name,
					Face:       f,
					Group:      development.Main,
					Qty:        st.Qty,
					Diameter:   st.Diameter.String(),
					DiameterCm: db,
					LengthM:    length,
					MassKg:     barMass(db, length, st.Qty),
				})
			}

			for n, iv := range fr.Demand.Intervals {
				g := development.Cutoff1
				if iv.Line == development.L2 {
					g = development.Cutoff2
				}
				length := iv.End - iv.Start
				switch {
				case iv.Zone == development.Z1 && iv.Start <= 0:
					length += terminal(i, f, development.End2, g)
				case iv.Zone == development.Z3 && iv.End >= sp.L:
					length += terminal(i+1, f, development.End1, g)
				}
				row := ScheduleRow{
					Mark:       fmt.Sprintf("S%d-%s-%s-%d", i+1, faceCode(f), iv.Line, n+1),
					Span:       i,
					SpanName:   sr.Name,
					Face:       f,
					Group:      g,
					Zone:       iv.Zone,
					Qty:        iv.Weight,
					Diameter:   sp.Baston(f, iv.Zone).Line(iv.Line).Diameter.String(),
					DiameterCm: iv.DiameterCm,
					LengthM:    length,
					MassKg:     barMass(iv.DiameterCm, length, iv.Weight),
				}
				if placed := fr.Layout.CutoffPool(iv.Line); placed < fr.Demand.Peak(iv.Line) {
					row.Note = fmt.Sprintf("section holds %d of %d %s bars", placed, fr.Demand.Peak(iv.Line), iv.Line)
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// TotalMassKg sums the mass of every row.
func TotalMassKg(rows []ScheduleRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.MassKg
	}
	return total
}

type termKey struct {
	node  int
	face  development.Face
	end   development.End
	group development.BarGroup
}

func faceCode(f development.Face) string {
	if f == development.Bottom {
		return "B"
	}
	return "T"
}

func barMass(dbCm, lengthM float64, qty int) float64 {
	areaM2 := rebar.AreaCm2(dbCm) / 1e4
	return math.Round(areaM2*lengthM*SteelDensity*float64(qty)*100) / 100
}
