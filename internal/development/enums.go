package development

import (
	"fmt"
	"strings"
)

// Face is the beam face a bar group belongs to.
type Face string

const (
	Top    Face = "top"
	Bottom Face = "bottom"
)

// Faces lists both faces in report order.
var Faces = []Face{Top, Bottom}

// ParseFace reads a face name, case-insensitively.
func ParseFace(s string) (Face, error) {
	f := Face(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown face %q (want top or bottom)", s)
	}
	return f, nil
}

// Valid reports whether f is one of the declared faces.
func (f Face) Valid() bool { return f == Top || f == Bottom }

// Opposite returns the other face.
func (f Face) Opposite() Face {
	if f == Top {
		return Bottom
	}
	return Top
}

func (f *Face) UnmarshalText(text []byte) error {
	v, err := ParseFace(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Zone is one of the three along-span regions configured for cut-off bars.
type Zone string

const (
	Z1 Zone = "z1" // near the left support
	Z2 Zone = "z2" // mid-span
	Z3 Zone = "z3" // near the right support
)

// Zones lists the zones from left to right.
var Zones = []Zone{Z1, Z2, Z3}

// ParseZone reads a zone name.
func ParseZone(s string) (Zone, error) {
	z := Zone(strings.ToLower(strings.TrimSpace(s)))
	if !z.Valid() {
		return "", fmt.Errorf("unknown zone %q (want z1, z2 or z3)", s)
	}
	return z, nil
}

// Valid reports whether z is one of the declared zones.
func (z Zone) Valid() bool { return z == Z1 || z == Z2 || z == Z3 }

func (z *Zone) UnmarshalText(text []byte) error {
	v, err := ParseZone(string(text))
	if err != nil {
		return err
	}
	*z = v
	return nil
}

// SteelKind is how a bar end is treated at a node.
type SteelKind string

const (
	Continuous SteelKind = "continuous"
	Hook       SteelKind = "hook"
	Anchorage  SteelKind = "development" // straight development length
)

// ParseSteelKind reads a kind name. The empty string is accepted and means
// "not decided yet"; Normalize replaces it with the documented default.
func ParseSteelKind(s string) (SteelKind, error) {
	k := SteelKind(strings.ToLower(strings.TrimSpace(s)))
	if k != "" && !k.Valid() {
		return "", fmt.Errorf("unknown steel kind %q (want continuous, hook or development)", s)
	}
	return k, nil
}

// Valid reports whether k is one of the declared kinds.
func (k SteelKind) Valid() bool {
	return k == Continuous || k == Hook || k == Anchorage
}

func (k *SteelKind) UnmarshalText(text []byte) error {
	v, err := ParseSteelKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Line identifies a cut-off line: L1 is the outer line, L2 the inner one.
type Line int

const (
	L1 Line = 1
	L2 Line = 2
)

// Lines lists both cut-off lines, outer first.
var Lines = []Line{L1, L2}

func (l Line) Valid() bool { return l == L1 || l == L2 }

func (l Line) String() string {
	switch l {
	case L1:
		return "L1"
	case L2:
		return "L2"
	}
	return fmt.Sprintf("Line(%d)", int(l))
}

// End selects the side of a node: End1 faces the span on the left, End2 the
// span on the right.
type End int

const (
	End1 End = 1
	End2 End = 2
)

func (e End) Valid() bool { return e == End1 || e == End2 }

// Other returns the opposite end.
func (e End) Other() End {
	if e == End1 {
		return End2
	}
	return End1
}

func (e End) String() string { return fmt.Sprintf("end %d", int(e)) }

// ParseEnd reads "1", "2", "end1" or "end2".
func ParseEnd(s string) (End, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "end1":
		return End1, nil
	case "2", "end2":
		return End2, nil
	}
	return 0, fmt.Errorf("unknown end %q (want 1 or 2)", s)
}

// BarGroup is the bar family a connectivity decision applies to.
type BarGroup int

const (
	Main BarGroup = iota
	Cutoff1
	Cutoff2
)

// BarGroups lists every group in report order.
var BarGroups = []BarGroup{Main, Cutoff1, Cutoff2}

func (g BarGroup) Valid() bool { return g >= Main && g <= Cutoff2 }

func (g BarGroup) String() string {
	switch g {
	case Main:
		return "main"
	case Cutoff1:
		return "cutoff1"
	case Cutoff2:
		return "cutoff2"
	}
	return fmt.Sprintf("BarGroup(%d)", int(g))
}

// Line returns the cut-off line of g. It is only meaningful for Cutoff1 and Cutoff2.
func (g BarGroup) Line() Line {
	if g == Cutoff2 {
		return L2
	}
	return L1
}

// ParseBarGroup reads a group name: main, cutoff1/l1 or cutoff2/l2.
func ParseBarGroup(s string) (BarGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main", "m":
		return Main, nil
	case "cutoff1", "l1", "1":
		return Cutoff1, nil
	case "cutoff2", "l2", "2":
		return Cutoff2, nil
	}
	return 0, fmt.Errorf("unknown bar group %q (want main, l1 or l2)", s)
}
