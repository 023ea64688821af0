// Package development holds the multi-span beam model the detailing engine
// works on: spans, nodes, cut-off bar configuration and the per-node steel
// decisions, together with loading, validation and default filling.
package development

import (
	"github.com/alexiusacademia/gorcd/internal/nscp"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/alexiusacademia/gorcd/internal/settings"
)

// Defaults applied by Normalize to unset development fields.
const (
	DefaultUnitScale = 1.0
	DefaultCoverM    = 0.04
	DefaultLcM       = 0.60
)

// Development is a full multi-span beam elevation.
// Lengths are in metres unless a field name says otherwise.
type Development struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Spans []Span `json:"spans" yaml:"spans"`
	Nodes []Node `json:"nodes" yaml:"nodes"`

	UnitScale float64 `json:"unit_scale,omitempty" yaml:"unit_scale,omitempty"` // drawing units per metre
	CoverM    float64 `json:"cover_m,omitempty" yaml:"cover_m,omitempty"`
	LcM       float64 `json:"lc_m,omitempty" yaml:"lc_m,omitempty"`             // offset between L1 and L2 cut-off ends
	HookLegM  float64 `json:"hook_leg_m,omitempty" yaml:"hook_leg_m,omitempty"` // 0 = 12 db of the bar

	FcMPa float64 `json:"fc_mpa,omitempty" yaml:"fc_mpa,omitempty"`
	FyMPa float64 `json:"fy_mpa,omitempty" yaml:"fy_mpa,omitempty"`

	Settings settings.SteelLayoutSettings `json:"settings" yaml:"settings"`
}

// Span is one beam segment between two adjacent nodes.
type Span struct {
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
	L    float64 `json:"length_m" yaml:"length_m"`
	H    float64 `json:"height_m" yaml:"height_m"`
	B    float64 `json:"width_m" yaml:"width_m"`

	Top      SteelMeta       `json:"top" yaml:"top"`
	Bottom   SteelMeta       `json:"bottom" yaml:"bottom"`
	Stirrups StirrupsSection `json:"stirrups" yaml:"stirrups"`

	Bastones  FaceZones     `json:"bastones" yaml:"bastones"`
	Overrides FaceOverrides `json:"overrides,omitempty" yaml:"overrides,omitempty"`

	Moments SpanMoments `json:"moments,omitempty" yaml:"moments,omitempty"`
}

// SpanMoments are the unfactored design moments of a span, used to check
// the detailed sections. Positive is the mid-span moment (bottom in
// tension), Negative the support moment (top in tension).
type SpanMoments struct {
	Positive nscp.LoadMoments `json:"positive,omitempty" yaml:"positive,omitempty"`
	Negative nscp.LoadMoments `json:"negative,omitempty" yaml:"negative,omitempty"`
}

// SteelMeta is the main longitudinal steel of one face.
type SteelMeta struct {
	Qty      int            `json:"qty" yaml:"qty"`
	Diameter rebar.Diameter `json:"diameter" yaml:"diameter"`
}

// StirrupsSection describes the hoops wrapping the longitudinal bars.
type StirrupsSection struct {
	Diameter rebar.Diameter `json:"diameter" yaml:"diameter"`
	Loops    int            `json:"loops" yaml:"loops"` // concentric hoop loops
}

// FaceZones holds the cut-off configuration of both faces.
type FaceZones struct {
	Top    ZoneSet `json:"top" yaml:"top"`
	Bottom ZoneSet `json:"bottom" yaml:"bottom"`
}

// ZoneSet holds the cut-off configuration of the three zones of one face.
type ZoneSet struct {
	Z1 BastonCfg `json:"z1" yaml:"z1"`
	Z2 BastonCfg `json:"z2" yaml:"z2"`
	Z3 BastonCfg `json:"z3" yaml:"z3"`
}

// BastonCfg configures the cut-off bars of one zone of one face.
// Z2 reads its extents from L1M and L2M (reach from the left and right
// supports into the zone); Z1 and Z3 read L3M (reach from the nearest support).
// Nil extents take their defaults when the demand is computed.
type BastonCfg struct {
	Line1 BastonLine `json:"l1" yaml:"l1"`
	Line2 BastonLine `json:"l2" yaml:"l2"`

	L1M *float64 `json:"l1_m,omitempty" yaml:"l1_m,omitempty"`
	L2M *float64 `json:"l2_m,omitempty" yaml:"l2_m,omitempty"`
	L3M *float64 `json:"l3_m,omitempty" yaml:"l3_m,omitempty"`
}

// BastonLine is one cut-off line of a zone.
type BastonLine struct {
	Enabled  bool           `json:"enabled" yaml:"enabled"`
	Qty      int            `json:"qty" yaml:"qty"`
	Diameter rebar.Diameter `json:"diameter" yaml:"diameter"`
}

// Active reports whether the line contributes bars.
func (b BastonLine) Active() bool { return b.Enabled && b.Qty > 0 }

// Line returns the configuration of line l.
func (c BastonCfg) Line(l Line) BastonLine {
	if l == L2 {
		return c.Line2
	}
	return c.Line1
}

// AnyActive reports whether either line of the zone contributes bars.
func (c BastonCfg) AnyActive() bool { return c.Line1.Active() || c.Line2.Active() }

// FaceOverrides forces the grid shape per face. Zero leaves the choice to the
// layout engine.
type FaceOverrides struct {
	Top    LayoutOverride `json:"top" yaml:"top"`
	Bottom LayoutOverride `json:"bottom" yaml:"bottom"`
}

// LayoutOverride forces the number of rows and/or columns of a face grid.
type LayoutOverride struct {
	Rows int `json:"rows,omitempty" yaml:"rows,omitempty"`
	Cols int `json:"cols,omitempty" yaml:"cols,omitempty"`
}

// Steel returns the main steel of face f.
func (s Span) Steel(f Face) SteelMeta {
	if f == Bottom {
		return s.Bottom
	}
	return s.Top
}

// Zones returns the cut-off configuration of face f.
func (s Span) Zones(f Face) ZoneSet {
	if f == Bottom {
		return s.Bastones.Bottom
	}
	return s.Bastones.Top
}

// Baston returns the cut-off configuration of zone z on face f.
func (s Span) Baston(f Face, z Zone) BastonCfg {
	zs := s.Zones(f)
	switch z {
	case Z1:
		return zs.Z1
	case Z3:
		return zs.Z3
	}
	return zs.Z2
}

// Override returns the forced grid shape of face f.
func (s Span) Override(f Face) LayoutOverride {
	if f == Bottom {
		return s.Overrides.Bottom
	}
	return s.Overrides.Top
}

// Node is the joint at a span boundary or a free end of the development.
type Node struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	A1 float64 `json:"a1" yaml:"a1"` // node axis to left face
	A2 float64 `json:"a2" yaml:"a2"` // node axis to right face
	B1 float64 `json:"b1" yaml:"b1"` // drop of the end-1 span top below the reference level
	B2 float64 `json:"b2" yaml:"b2"` // drop of the end-2 span top below the reference level

	Top    NodeFace `json:"top" yaml:"top"`
	Bottom NodeFace `json:"bottom" yaml:"bottom"`
}

// NodeFace holds the decisions of both ends of one face of a node.
type NodeFace struct {
	End1 NodeEnd `json:"end1" yaml:"end1"`
	End2 NodeEnd `json:"end2" yaml:"end2"`
}

// NodeEnd holds the decisions of every bar group at one end of a node face.
type NodeEnd struct {
	Main  SteelDecision `json:"main" yaml:"main"`
	Line1 SteelDecision `json:"l1" yaml:"l1"`
	Line2 SteelDecision `json:"l2" yaml:"l2"`
}

// SteelDecision is how one bar group ends at one side of a node.
type SteelDecision struct {
	Kind    SteelKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	ToFace  bool      `json:"to_face,omitempty" yaml:"to_face,omitempty"`
	LengthM *float64  `json:"length_m,omitempty" yaml:"length_m,omitempty"` // explicit anchorage length
}

// Width returns the horizontal extent of the node.
func (n Node) Width() float64 { return n.A1 + n.A2 }

// Drop returns the b offset of end e.
func (n Node) Drop(e End) float64 {
	if e == End1 {
		return n.B1
	}
	return n.B2
}

// Decision returns the decision stored for (face, end, group).
func (n Node) Decision(f Face, e End, g BarGroup) SteelDecision {
	if p := n.decision(f, e, g); p != nil {
		return *p
	}
	return SteelDecision{}
}

func (n *Node) decision(f Face, e End, g BarGroup) *SteelDecision {
	nf := &n.Top
	if f == Bottom {
		nf = &n.Bottom
	}
	ne := &nf.End1
	if e == End2 {
		ne = &nf.End2
	}
	switch g {
	case Main:
		return &ne.Main
	case Cutoff1:
		return &ne.Line1
	case Cutoff2:
		return &ne.Line2
	}
	return nil
}

// IsInternal reports whether node i sits between two spans.
func (d *Development) IsInternal(i int) bool {
	return i > 0 && i < len(d.Nodes)-1
}

// HasEnd reports whether node i exposes end e: the first node only has end 2,
// the last node only end 1.
func (d *Development) HasEnd(i int, e End) bool {
	if i < 0 || i >= len(d.Nodes) || !e.Valid() {
		return false
	}
	if e == End1 && i == 0 {
		return false
	}
	if e == End2 && i == len(d.Nodes)-1 {
		return false
	}
	return true
}

// SpanAt returns the index of the span on side e of node i, or -1.
func (d *Development) SpanAt(i int, e End) int {
	if !d.HasEnd(i, e) {
		return -1
	}
	if e == End1 {
		return i - 1
	}
	return i
}

// Clone returns a deep copy, so callers can derive a new snapshot without
// touching the one the engine is reading.
func (d Development) Clone() Development {
	out := d
	out.Spans = make([]Span, len(d.Spans))
	for i, s := range d.Spans {
		out.Spans[i] = s.clone()
	}
	out.Nodes = make([]Node, len(d.Nodes))
	for i, n := range d.Nodes {
		out.Nodes[i] = n.clone()
	}
	out.Settings.ColumnRules = append([]settings.ColumnRule(nil), d.Settings.ColumnRules...)
	if d.Settings.RebarDiametersCm != nil {
		out.Settings.RebarDiametersCm = make(map[string]float64, len(d.Settings.RebarDiametersCm))
		for k, v := range d.Settings.RebarDiametersCm {
			out.Settings.RebarDiametersCm[k] = v
		}
	}
	return out
}

func (s Span) clone() Span {
	for _, zs := range []*ZoneSet{&s.Bastones.Top, &s.Bastones.Bottom} {
		for _, c := range []*BastonCfg{&zs.Z1, &zs.Z2, &zs.Z3} {
			c.L1M = cloneFloat(c.L1M)
			c.L2M = cloneFloat(c.L2M)
			c.L3M = cloneFloat(c.L3M)
		}
	}
	return s
}

func (n Node) clone() Node {
	for _, f := range Faces {
		for _, e := range []End{End1, End2} {
			for _, g := range BarGroups {
				p := n.decision(f, e, g)
				p.LengthM = cloneFloat(p.LengthM)
			}
		}
	}
	return n
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Normalize returns a copy with every documented default filled in: unit
// scale 1, cover 0.04 m, Lc 0.60 m, f'c 21 MPa, fy 420 MPa, layout settings
// defaults, and undecided node kinds set to Continuous for main steel at
// internal nodes, Hook for main steel at the first and last node, and
// Development for cut-off lines.
func (d Development) Normalize() Development {
	out := d.Clone()
	if out.UnitScale <= 0 {
		out.UnitScale = DefaultUnitScale
	}
	if out.CoverM <= 0 {
		out.CoverM = DefaultCoverM
	}
	if out.LcM <= 0 {
		out.LcM = DefaultLcM
	}
	if out.FcMPa <= 0 {
		out.FcMPa = nscp.DefaultFc
	}
	if out.FyMPa <= 0 {
		out.FyMPa = nscp.DefaultFy
	}
	out.Settings = out.Settings.WithDefaults()

	for i := range out.Nodes {
		for _, f := range Faces {
			for _, e := range []End{End1, End2} {
				if !out.HasEnd(i, e) {
					continue
				}
				for _, g := range BarGroups {
					p := out.Nodes[i].decision(f, e, g)
					if p.Kind != "" {
						continue
					}
					p.Kind = out.defaultKind(i, g)
				}
			}
		}
	}
	return out
}

func (d *Development) defaultKind(i int, g BarGroup) SteelKind {
	if g != Main {
		return Anchorage
	}
	if d.IsInternal(i) {
		return Continuous
	}
	return Hook
}

// WithKind returns a copy of d with the decision at (node, face, end, group)
// set to kind. On internal nodes Continuous always applies to both ends, and
// leaving Continuous releases both ends together.
func (d Development) WithKind(node int, f Face, e End, g BarGroup, kind SteelKind) Development {
	out := d.Clone()
	if !out.HasEnd(node, e) || !f.Valid() || !g.Valid() {
		return out
	}
	n := &out.Nodes[node]
	p := n.decision(f, e, g)
	p.Kind = kind
	if out.IsInternal(node) {
		other := n.decision(f, e.Other(), g)
		if kind == Continuous || other.Kind == Continuous {
			other.Kind = kind
		}
	}
	return out
}
