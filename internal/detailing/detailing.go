// Package detailing runs the whole engine over a development: cut-off demand
// and grid layout for both faces of every span, then the connectivity table
// of every node.
package detailing

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/alexiusacademia/gorcd/internal/connectivity"
	"github.com/alexiusacademia/gorcd/internal/demand"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/layout"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// FaceResult is the detailing of one face of one span.
type FaceResult struct {
	Face    development.Face
	Demand  demand.Demand
	Layout  *layout.Result   // nil when the layout failed
	Failure *layout.Failure  // set when no grid fits
	Input   layout.FaceInput // what the grid search was given
}

// Warnings returns the human-readable problems of the face.
func (f FaceResult) Warnings() []string {
	var out []string
	if f.Failure != nil {
		out = append(out, f.Failure.Reason)
	}
	if f.Layout != nil {
		for _, sf := range f.Layout.Shortfalls {
			out = append(out, sf.String())
		}
	}
	return out
}

// SpanResult holds both faces of one span.
type SpanResult struct {
	Index  int
	Name   string
	Top    FaceResult
	Bottom FaceResult
}

// Face returns the result of face f.
func (s *SpanResult) Face(f development.Face) *FaceResult {
	if f == development.Bottom {
		return &s.Bottom
	}
	return &s.Top
}

// Result is the detailing of a whole development.
type Result struct {
	Development *development.Development
	Spans       []SpanResult
	Connections []connectivity.Resolution
}

// Warnings lists every face warning, prefixed with its span and face.
func (r *Result) Warnings() []string {
	var out []string
	for i := range r.Spans {
		sp := &r.Spans[i]
		for _, f := range development.Faces {
			for _, w := range sp.Face(f).Warnings() {
				out = append(out, fmt.Sprintf("span %d %s: %s", sp.Index+1, f, w))
			}
		}
	}
	return out
}

// ConnectionsAt returns the resolutions of node i.
func (r *Result) ConnectionsAt(node int) []connectivity.Resolution {
	var out []connectivity.Resolution
	for _, c := range r.Connections {
		if c.Node == node {
			out = append(out, c)
		}
	}
	return out
}

type options struct {
	logger      *log.Logger
	concurrency int
	table       connectivity.LengthTable
}

// Option configures Detail.
type Option func(*options)

// WithLogger reports layout failures and shortfalls to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConcurrency caps the number of spans detailed at once.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithLengthTable replaces the code anchorage table.
func WithLengthTable(t connectivity.LengthTable) Option {
	return func(o *options) { o.table = t }
}

// Detail details every span and node of dev. Spans are processed in parallel;
// each writes only its own slot, so the result does not depend on scheduling.
// Layout failures are recorded on the face and never stop the run.
func Detail(dev *development.Development, opts ...Option) *Result {
	o := options{
		logger:      log.New(io.Discard),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	res := &Result{
		Development: dev,
		Spans:       make([]SpanResult, len(dev.Spans)),
	}

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i := range dev.Spans {
		g.Go(func() error {
			res.Spans[i] = detailSpan(dev, i, o.logger)
			return nil
		})
	}
	_ = g.Wait()

	if len(dev.Nodes) == len(dev.Spans)+1 {
		res.Connections = connectivity.NewResolver(dev, o.table).ResolveAll()
	} else {
		o.logger.Warn("skipping connectivity", "nodes", len(dev.Nodes), "spans", len(dev.Spans))
	}
	return res
}

func detailSpan(dev *development.Development, i int, logger *log.Logger) SpanResult {
	sp := dev.Spans[i]
	out := SpanResult{Index: i, Name: sp.Name}
	for _, f := range development.Faces {
		fr := DetailFace(dev, i, f)
		l := logger.With("span", i+1, "face", f)
		switch {
		case fr.Failure != nil:
			l.Warn("layout failed", "reason", fr.Failure.Reason)
		case fr.Layout.Empty():
			l.Debug("nothing to place")
		default:
			l.Debug("layout", "rows", fr.Layout.Rows, "cols", fr.Layout.Cols,
				"pitch_cm", fmt.Sprintf("%.2f", fr.Layout.PitchCm),
				"l1", fr.Demand.L1Peak, "l2", fr.Demand.L2Peak)
			for _, sf := range fr.Layout.Shortfalls {
				l.Warn("cut-off shortfall", "line", sf.Line, "requested", sf.Requested, "placed", sf.Placed)
			}
		}
		*out.Face(f) = fr
	}
	return out
}

// DetailFace computes the cut-off demand and the grid of one face of one span.
func DetailFace(dev *development.Development, span int, face development.Face) FaceResult {
	fr := FaceResult{Face: face}
	if span < 0 || span >= len(dev.Spans) {
		return fr
	}
	sp := dev.Spans[span]

	fr.Demand = demand.ComputeCutoffDemand(dev, span, face)
	fr.Input = layout.FaceInput{
		Face:     face,
		WidthCm:  sp.B * 100,
		HeightCm: sp.H * 100,
		CoverCm:  dev.CoverM * 100,
		Stirrups: sp.Stirrups,
		Main:     sp.Steel(face),
		Cutoff:   fr.Demand.LayoutDemand(),
		Override: sp.Override(face),
	}

	lay, err := layout.ComputeFaceLayout(fr.Input, dev.Settings)
	if err != nil {
		var f *layout.Failure
		if !errors.As(err, &f) {
			f = &layout.Failure{Reason: err.Error()}
		}
		fr.Failure = f
		return fr
	}
	fr.Layout = lay
	return fr
}
