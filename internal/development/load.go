package development

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/nscp"
	"github.com/alexiusacademia/gorcd/internal/settings"
	"gopkg.in/yaml.v3"
)

// LoadFromFile loads a development from a JSON or YAML file, validates it and
// fills defaults.
func LoadFromFile(path string) (*Development, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = "json"
	case ".yaml", ".yml":
		format = "yaml"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	dev, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return dev, nil
}

// Decode parses a development document in the given format ("json" or
// "yaml"), validates it and returns the normalised model.
func Decode(data []byte, format string) (*Development, error) {
	dev := Development{Settings: settings.Default()}

	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&dev); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&dev); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err := dev.Validate(); err != nil {
		return nil, err
	}
	if err := dev.Settings.Validate(); err != nil {
		return nil, err
	}
	out := dev.Normalize()
	return &out, nil
}

// Validate checks the model once at the boundary.
func (d *Development) Validate() error {
	if len(d.Spans) == 0 {
		return &ValidationError{Field: "spans", Msg: "must contain at least one span"}
	}
	if len(d.Nodes) != len(d.Spans)+1 {
		return &ValidationError{
			Field: "nodes",
			Msg:   fmt.Sprintf("must hold len(spans)+1 = %d entries, got %d", len(d.Spans)+1, len(d.Nodes)),
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"unit_scale", d.UnitScale},
		{"cover_m", d.CoverM},
		{"lc_m", d.LcM},
		{"hook_leg_m", d.HookLegM},
		{"fc_mpa", d.FcMPa},
		{"fy_mpa", d.FyMPa},
	} {
		if f.v < 0 {
			return &ValidationError{Field: f.name, Msg: "must not be negative"}
		}
	}

	for i, s := range d.Spans {
		if err := s.validate(fmt.Sprintf("spans[%d]", i)); err != nil {
			return err
		}
	}
	for i, n := range d.Nodes {
		if err := n.validate(fmt.Sprintf("nodes[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (s Span) validate(path string) error {
	if s.L <= 0 {
		return &ValidationError{Field: path + ".length_m", Msg: "must be positive"}
	}
	if s.H <= 0 {
		return &ValidationError{Field: path + ".height_m", Msg: "must be positive"}
	}
	if s.B <= 0 {
		return &ValidationError{Field: path + ".width_m", Msg: "must be positive"}
	}
	for _, f := range Faces {
		fp := fmt.Sprintf("%s.%s", path, f)
		if s.Steel(f).Qty < 0 {
			return &ValidationError{Field: fp + ".qty", Msg: "must not be negative"}
		}
		o := s.Override(f)
		if o.Rows < 0 || o.Rows > settings.MaxRowsPerFaceLimit {
			return &ValidationError{
				Field: fmt.Sprintf("%s.overrides.%s.rows", path, f),
				Msg:   fmt.Sprintf("must be between 0 and %d", settings.MaxRowsPerFaceLimit),
			}
		}
		if o.Cols < 0 {
			return &ValidationError{Field: fmt.Sprintf("%s.overrides.%s.cols", path, f), Msg: "must not be negative"}
		}
		for _, z := range Zones {
			if err := s.Baston(f, z).validate(fmt.Sprintf("%s.bastones.%s.%s", path, f, z)); err != nil {
				return err
			}
		}
	}
	if s.Stirrups.Loops < 0 {
		return &ValidationError{Field: path + ".stirrups.loops", Msg: "must not be negative"}
	}
	for _, m := range []struct {
		name string
		m    nscp.LoadMoments
	}{{"positive", s.Moments.Positive}, {"negative", s.Moments.Negative}} {
		if m.m.Dead < 0 || m.m.Live < 0 || m.m.Roof < 0 || m.m.Rain < 0 {
			return &ValidationError{Field: fmt.Sprintf("%s.moments.%s", path, m.name), Msg: "gravity moments must not be negative"}
		}
	}
	return nil
}

func (c BastonCfg) validate(path string) error {
	for _, l := range Lines {
		bl := c.Line(l)
		if bl.Qty < 0 || bl.Qty > 3 {
			return &ValidationError{
				Field: fmt.Sprintf("%s.%s.qty", path, strings.ToLower(l.String())),
				Msg:   "must be between 0 and 3",
			}
		}
		if bl.Enabled && bl.Qty == 0 {
			return &ValidationError{
				Field: fmt.Sprintf("%s.%s.qty", path, strings.ToLower(l.String())),
				Msg:   "must be at least 1 when the line is enabled",
			}
		}
	}
	for _, name := range []string{"l1_m", "l2_m", "l3_m"} {
		p := c.extent(name)
		if p != nil && *p < 0 {
			return &ValidationError{Field: path + "." + name, Msg: "must not be negative"}
		}
	}
	return nil
}

func (n Node) validate(path string) error {
	if n.A1 < 0 || n.A2 < 0 {
		return &ValidationError{Field: path + ".a1/a2", Msg: "must not be negative"}
	}
	for _, f := range Faces {
		for _, e := range []End{End1, End2} {
			for _, g := range BarGroups {
				dec := n.Decision(f, e, g)
				if dec.Kind != "" && !dec.Kind.Valid() {
					return &ValidationError{
						Field: fmt.Sprintf("%s.%s.end%d.%s.kind", path, f, e, g),
						Msg:   fmt.Sprintf("unknown kind %q", dec.Kind),
					}
				}
				if dec.LengthM != nil && *dec.LengthM < 0 {
					return &ValidationError{
						Field: fmt.Sprintf("%s.%s.end%d.%s.length_m", path, f, e, g),
						Msg:   "must not be negative",
					}
				}
			}
		}
	}
	return nil
}

func (c BastonCfg) extent(name string) *float64 {
	switch name {
	case "l1_m":
		return c.L1M
	case "l2_m":
		return c.L2M
	}
	return c.L3M
}
