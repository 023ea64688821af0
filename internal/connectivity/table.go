package connectivity

import (
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/nscp"
)

// LengthTable gives the anchorage length (m) of a bar of diameter dbCm
// terminating with kind on face.
type LengthTable interface {
	LengthM(dbCm float64, kind development.SteelKind, face development.Face) float64
}

// LengthTableFunc adapts a function to LengthTable.
type LengthTableFunc func(dbCm float64, kind development.SteelKind, face development.Face) float64

func (f LengthTableFunc) LengthM(dbCm float64, kind development.SteelKind, face development.Face) float64 {
	return f(dbCm, kind, face)
}

// CodeTable is the default LengthTable: NSCP 2015 simplified development
// lengths, with the top-bar factor on straight top bars.
type CodeTable struct {
	nscp.AnchorageTable
}

// NewCodeTable returns the code table for the given material strengths.
func NewCodeTable(fc, fy float64) CodeTable {
	return CodeTable{nscp.AnchorageTable{Fc: fc, Fy: fy}}
}

func (t CodeTable) LengthM(dbCm float64, kind development.SteelKind, face development.Face) float64 {
	if kind == development.Continuous {
		return 0
	}
	return t.LengthMm(dbCm*10, kind == development.Hook, face == development.Top) / 1000
}
