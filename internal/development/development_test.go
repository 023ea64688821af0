package development

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSpan() Development {
	span := Span{
		L: 5, H: 0.5, B: 0.3,
		Top:    SteelMeta{Qty: 2, Diameter: "5/8"},
		Bottom: SteelMeta{Qty: 2, Diameter: "5/8"},
	}
	return Development{
		Spans: []Span{span, span, span},
		Nodes: []Node{
			{A1: 0.15, A2: 0.15},
			{A1: 0.2, A2: 0.2},
			{A1: 0.2, A2: 0.2},
			{A1: 0.15, A2: 0.15},
		},
	}
}

func TestLoadFromFile_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := LoadFromFile(filepath.Join("testdata", "two_span.json"))
	require.NoError(t, err)
	fromYAML, err := LoadFromFile(filepath.Join("testdata", "two_span.yaml"))
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Spans, fromYAML.Spans)
	assert.Equal(t, fromJSON.Nodes, fromYAML.Nodes)
	assert.Equal(t, fromJSON.LcM, fromYAML.LcM)
}

func TestLoadFromFile_Normalised(t *testing.T) {
	dev, err := LoadFromFile(filepath.Join("testdata", "two_span.json"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, dev.UnitScale)
	assert.Equal(t, rebar.Diameter("5/8"), dev.Spans[0].Top.Diameter)
	require.NotNil(t, dev.Spans[0].Bastones.Top.Z3.L3M)
	assert.Equal(t, 1.5, *dev.Spans[0].Bastones.Top.Z3.L3M)

	// first node: hook main steel on end 2, cut-offs develop
	assert.Equal(t, Hook, dev.Nodes[0].Decision(Top, End2, Main).Kind)
	assert.Equal(t, Anchorage, dev.Nodes[0].Decision(Top, End2, Cutoff1).Kind)
	// end 1 of the first node does not exist and stays undecided
	assert.Equal(t, SteelKind(""), dev.Nodes[0].Decision(Top, End1, Main).Kind)

	assert.Equal(t, Continuous, dev.Nodes[1].Decision(Top, End2, Main).Kind)

	last := dev.Nodes[2].Decision(Bottom, End1, Main)
	assert.Equal(t, Anchorage, last.Kind)
	require.NotNil(t, last.LengthM)
	assert.Equal(t, 0.5, *last.LengthM)

	assert.Equal(t, 25.0, dev.Spans[0].Moments.Positive.Live)
	assert.Equal(t, 60.0, dev.Spans[0].Moments.Negative.Dead)
	assert.True(t, dev.Spans[1].Moments.Positive.IsZero())
}

func TestLoadFromFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := LoadFromFile(path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecode_RejectsUnknownKind(t *testing.T) {
	doc := `{"spans":[{"length_m":1,"height_m":0.4,"width_m":0.2}],
	"nodes":[{"top":{"end2":{"main":{"kind":"welded"}}}},{}]}`

	_, err := Decode([]byte(doc), "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "welded")
}

func TestDecode_RejectsUnknownField(t *testing.T) {
	doc := "spans: []\nnodes: []\nbogus: 1\n"
	_, err := Decode([]byte(doc), "yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(d *Development)
		field string
	}{
		{"node count", func(d *Development) { d.Nodes = d.Nodes[:3] }, "nodes"},
		{"no spans", func(d *Development) { d.Spans = nil; d.Nodes = d.Nodes[:1] }, "spans"},
		{"span length", func(d *Development) { d.Spans[1].L = 0 }, "spans[1].length_m"},
		{"negative qty", func(d *Development) { d.Spans[0].Bottom.Qty = -1 }, "spans[0].bottom.qty"},
		{"baston qty", func(d *Development) {
			d.Spans[2].Bastones.Top.Z2.Line2 = BastonLine{Enabled: true, Qty: 4}
		}, "spans[2].bastones.top.z2.l2.qty"},
		{"enabled empty line", func(d *Development) {
			d.Spans[0].Bastones.Bottom.Z1.Line1 = BastonLine{Enabled: true}
		}, "spans[0].bastones.bottom.z1.l1.qty"},
		{"rows override", func(d *Development) { d.Spans[0].Overrides.Top.Rows = 4 }, "spans[0].overrides.top.rows"},
		{"negative cover", func(d *Development) { d.CoverM = -0.01 }, "cover_m"},
		{"negative dead moment", func(d *Development) { d.Spans[1].Moments.Negative.Dead = -5 }, "spans[1].moments.negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := threeSpan().Clone()
			tt.edit(&d)

			err := d.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	d := threeSpan()
	assert.NoError(t, d.Validate())
}

func TestNormalize_Defaults(t *testing.T) {
	d := threeSpan().Normalize()

	assert.Equal(t, DefaultCoverM, d.CoverM)
	assert.Equal(t, DefaultLcM, d.LcM)
	assert.Equal(t, 21.0, d.FcMPa)
	assert.Equal(t, 420.0, d.FyMPa)
	assert.Equal(t, 3, d.Settings.MaxRowsPerFace)

	for _, f := range Faces {
		assert.Equal(t, Hook, d.Nodes[0].Decision(f, End2, Main).Kind)
		assert.Equal(t, Hook, d.Nodes[3].Decision(f, End1, Main).Kind)
		assert.Equal(t, Continuous, d.Nodes[1].Decision(f, End1, Main).Kind)
		assert.Equal(t, Continuous, d.Nodes[2].Decision(f, End2, Main).Kind)
		assert.Equal(t, Anchorage, d.Nodes[2].Decision(f, End2, Cutoff2).Kind)
	}
}

func TestNormalize_DoesNotTouchInput(t *testing.T) {
	in := threeSpan()
	l3 := 1.2
	in.Spans[0].Bastones.Top.Z1.L3M = &l3

	out := in.Normalize()
	*out.Spans[0].Bastones.Top.Z1.L3M = 9

	assert.Equal(t, SteelKind(""), in.Nodes[1].Decision(Top, End1, Main).Kind)
	assert.Equal(t, 1.2, *in.Spans[0].Bastones.Top.Z1.L3M)
}

func TestWithKind_ContinuousIsSymmetric(t *testing.T) {
	base := threeSpan().Normalize()
	base = base.WithKind(1, Top, End1, Main, Hook)
	require.Equal(t, Hook, base.Nodes[1].Decision(Top, End1, Main).Kind)
	require.Equal(t, Hook, base.Nodes[1].Decision(Top, End2, Main).Kind)

	for _, e := range []End{End1, End2} {
		d := base.WithKind(1, Top, e, Main, Continuous)
		assert.Equal(t, Continuous, d.Nodes[1].Decision(Top, End1, Main).Kind)
		assert.Equal(t, Continuous, d.Nodes[1].Decision(Top, End2, Main).Kind)
	}

	// a hook on one side of a non-continuous pair leaves the other side alone
	d := base.WithKind(1, Top, End2, Main, Anchorage)
	assert.Equal(t, Hook, d.Nodes[1].Decision(Top, End1, Main).Kind)
	assert.Equal(t, Anchorage, d.Nodes[1].Decision(Top, End2, Main).Kind)
}

func TestWithKind_IgnoresMissingEnd(t *testing.T) {
	base := threeSpan().Normalize()
	d := base.WithKind(0, Top, End1, Main, Anchorage)
	assert.Equal(t, base.Nodes[0], d.Nodes[0])
}

func TestGeometry(t *testing.T) {
	d := threeSpan()

	assert.InDelta(t, 0.0, d.NodeLeftX(0), 1e-12)
	assert.InDelta(t, 0.3, d.NodeRightX(0), 1e-12)
	assert.InDelta(t, 0.3, d.SpanStartX(0), 1e-12)
	assert.InDelta(t, 5.3, d.SpanEndX(0), 1e-12)
	assert.InDelta(t, 5.7, d.NodeRightX(1), 1e-12)
	assert.InDelta(t, 0.3+5+0.4+5+0.4+5+0.3, d.TotalLength(), 1e-12)
}

func TestEnds(t *testing.T) {
	d := threeSpan()

	assert.False(t, d.HasEnd(0, End1))
	assert.True(t, d.HasEnd(0, End2))
	assert.True(t, d.HasEnd(3, End1))
	assert.False(t, d.HasEnd(3, End2))
	assert.False(t, d.HasEnd(4, End1))

	assert.Equal(t, 1, d.SpanAt(2, End1))
	assert.Equal(t, 2, d.SpanAt(2, End2))
	assert.Equal(t, -1, d.SpanAt(0, End1))
}

func TestParseEnums(t *testing.T) {
	f, err := ParseFace(" Bottom ")
	require.NoError(t, err)
	assert.Equal(t, Bottom, f)
	_, err = ParseFace("side")
	assert.Error(t, err)

	g, err := ParseBarGroup("L2")
	require.NoError(t, err)
	assert.Equal(t, Cutoff2, g)
	assert.Equal(t, L2, g.Line())

	e, err := ParseEnd("end1")
	require.NoError(t, err)
	assert.Equal(t, End1, e)

	k, err := ParseSteelKind("")
	require.NoError(t, err)
	assert.Equal(t, SteelKind(""), k)
}

func TestParseSteelKind_StraightDevelopmentWireName(t *testing.T) {
	k, err := ParseSteelKind(" Development ")
	require.NoError(t, err)
	assert.Equal(t, Anchorage, k)

	var decoded struct {
		Kind SteelKind `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"development"}`), &decoded))
	assert.Equal(t, Anchorage, decoded.Kind)

	out, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"development"}`, string(out))

	_, err = ParseSteelKind("anchorage")
	assert.Error(t, err)
}
