// Package connectivity decides how every bar group ends at every node
// (continuous through the joint, hooked, or developed straight) and computes
// the terminal geometry in development elevation coordinates.
package connectivity

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/layout"
	"github.com/alexiusacademia/gorcd/internal/nscp"
	"github.com/alexiusacademia/gorcd/internal/rebar"
)

// Point is a position in the elevation: X from the outer face of the first
// node, Y up from the reference level, both in drawing units.
type Point struct {
	X float64
	Y float64
}

// Resolution is the outcome for one (node, face, end, group).
type Resolution struct {
	Node  int
	Face  development.Face
	End   development.End
	Group development.BarGroup

	Kind   development.SteelKind
	Active bool // false when the bar group has no bars on that side

	Anchor   Point  // where the bar meets the node face on the span side
	Terminal Point  // far end of the straight terminal segment
	Leg      *Point // end of the hook leg, hooks only

	LengthM    float64 // straight terminal length, metres
	LegM       float64 // hook leg length, metres
	DiameterCm float64
	Clipped    bool // terminal was clipped to the opposite node face
}

// Resolver answers connectivity queries for one development snapshot.
type Resolver struct {
	dev   *development.Development
	table LengthTable
}

// NewResolver returns a resolver over dev. A nil table selects the code table
// for the development's material strengths.
func NewResolver(dev *development.Development, table LengthTable) *Resolver {
	if table == nil {
		fc, fy := dev.FcMPa, dev.FyMPa
		if fc <= 0 {
			fc = nscp.DefaultFc
		}
		if fy <= 0 {
			fy = nscp.DefaultFy
		}
		table = NewCodeTable(fc, fy)
	}
	return &Resolver{dev: dev, table: table}
}

func (r *Resolver) checkQuery(op string, node int, face development.Face, end development.End, group development.BarGroup) bool {
	switch {
	case node < 0 || node >= len(r.dev.Nodes):
		violate(op, "node %d out of range [0,%d)", node, len(r.dev.Nodes))
	case !face.Valid():
		violate(op, "unknown face %q", face)
	case !group.Valid():
		violate(op, "unknown bar group %d", int(group))
	case !end.Valid():
		violate(op, "unknown end %d", int(end))
	case !r.dev.HasEnd(node, end):
		violate(op, "node %d has no %s", node, end)
	default:
		return true
	}
	return false
}

// Kind returns the effective kind at (node, face, end, group). On internal
// nodes a Continuous decision on either end makes both ends Continuous, so
// the answer does not depend on which end was set last. Undecided ends take
// the defaults of development.Normalize.
func (r *Resolver) Kind(node int, face development.Face, end development.End, group development.BarGroup) development.SteelKind {
	if !r.checkQuery("Kind", node, face, end, group) {
		return ""
	}
	return r.kind(node, face, end, group)
}

func (r *Resolver) kind(node int, face development.Face, end development.End, group development.BarGroup) development.SteelKind {
	n := r.dev.Nodes[node]
	if r.dev.IsInternal(node) {
		if n.Decision(face, end, group).Kind == development.Continuous ||
			n.Decision(face, end.Other(), group).Kind == development.Continuous {
			return development.Continuous
		}
	}
	if k := n.Decision(face, end, group).Kind; k.Valid() {
		return k
	}
	switch {
	case group != development.Main:
		return development.Anchorage
	case r.dev.IsInternal(node):
		return development.Continuous
	default:
		return development.Hook
	}
}

// Resolve computes the decision and terminal geometry at (node, face, end,
// group). Main steel at end 1 belongs to the span left of the node and at end
// 2 to the span right of it; cut-off line l at end 1 belongs to zone z3 of the
// left span and at end 2 to zone z1 of the right span.
//
// The terminal segment starts at the node face on the span side and runs
// toward the opposite face. With to_face set it is clipped to the opposite
// face less the cover; otherwise its length is the explicit one or the table
// length. Hooks add a leg of hook_leg (12 db when unset) toward mid-depth.
func (r *Resolver) Resolve(node int, face development.Face, end development.End, group development.BarGroup) Resolution {
	if !r.checkQuery("Resolve", node, face, end, group) {
		return Resolution{}
	}

	res := Resolution{
		Node:  node,
		Face:  face,
		End:   end,
		Group: group,
		Kind:  r.kind(node, face, end, group),
	}

	spanIdx := r.dev.SpanAt(node, end)
	span := r.dev.Spans[spanIdx]
	res.DiameterCm, res.Active = r.barOf(span, face, end, group)

	n := r.dev.Nodes[node]
	anchorX, targetX, dir := r.dev.NodeLeftX(node), r.dev.NodeRightX(node), 1.0
	if end == development.End2 {
		anchorX, targetX, dir = targetX, anchorX, -1.0
	}
	y := r.barLevel(n, span, face, end, group, res.DiameterCm)
	anchor := Point{X: anchorX, Y: y}

	var terminal Point
	switch res.Kind {
	case development.Continuous:
		terminal = Point{X: targetX, Y: y}
		res.LengthM = math.Abs(targetX - anchorX)
	default:
		dec := n.Decision(face, end, group)
		if dec.ToFace && n.Width() > 0 {
			far := targetX - dir*r.dev.CoverM
			if dir > 0 {
				far = clamp(far, anchorX, targetX)
			} else {
				far = clamp(far, targetX, anchorX)
			}
			res.Clipped = true
			res.LengthM = math.Abs(far - anchorX)
		} else if dec.LengthM != nil {
			res.LengthM = *dec.LengthM
		} else {
			res.LengthM = r.table.LengthM(res.DiameterCm, res.Kind, face)
		}
		terminal = Point{X: anchorX + dir*res.LengthM, Y: y}

		if res.Kind == development.Hook {
			leg := r.hookLegM(res.DiameterCm)
			res.LegM = leg
			ly := y - leg
			if face == development.Bottom {
				ly = y + leg
			}
			res.Leg = &Point{X: terminal.X, Y: ly}
		}
	}

	res.Anchor = r.scale(anchor)
	res.Terminal = r.scale(terminal)
	if res.Leg != nil {
		p := r.scale(*res.Leg)
		res.Leg = &p
	}
	return res
}

// ResolveAll resolves every valid (node, face, end, group), node by node.
func (r *Resolver) ResolveAll() []Resolution {
	var out []Resolution
	for i := range r.dev.Nodes {
		for _, f := range development.Faces {
			for _, e := range []development.End{development.End1, development.End2} {
				if !r.dev.HasEnd(i, e) {
					continue
				}
				for _, g := range development.BarGroups {
					out = append(out, r.Resolve(i, f, e, g))
				}
			}
		}
	}
	return out
}

// barOf returns the diameter of the bar group on the span side of the node
// and whether it carries any bars.
func (r *Resolver) barOf(span development.Span, face development.Face, end development.End, group development.BarGroup) (float64, bool) {
	if group == development.Main {
		st := span.Steel(face)
		return st.Diameter.Cm(r.dev.Settings), st.Qty > 0
	}
	zone := development.Z3
	if end == development.End2 {
		zone = development.Z1
	}
	line := span.Baston(face, zone).Line(group.Line())
	return line.Diameter.Cm(r.dev.Settings), line.Active()
}

// barLevel returns the Y (metres) of the bar axis where it enters the node.
// L2 cut-offs sit one bar pitch inside the outer layer.
func (r *Resolver) barLevel(n development.Node, span development.Span, face development.Face, end development.End, group development.BarGroup, dbCm float64) float64 {
	coverCm := layout.EffectiveCoverCm(r.dev.CoverM*100, span.Stirrups, r.dev.Settings) + dbCm/2
	inset := coverCm / 100
	if group == development.Cutoff2 {
		inset += (dbCm + rebar.MinClearSpacingCm(dbCm, r.dev.Settings)) / 100
	}
	top := -n.Drop(end)
	if face == development.Top {
		return top - inset
	}
	return top - span.H + inset
}

func (r *Resolver) hookLegM(dbCm float64) float64 {
	if r.dev.HookLegM > 0 {
		return r.dev.HookLegM
	}
	return nscp.StandardHookTail(dbCm*10) / 1000
}

func (r *Resolver) scale(p Point) Point {
	k := r.dev.UnitScale
	if k <= 0 {
		k = 1
	}
	return Point{X: p.X * k, Y: p.Y * k}
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
