package diagram

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/connectivity"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/goccy/go-graphviz"
)

var kindStyles = map[development.SteelKind]string{
	development.Continuous:  "solid",
	development.Hook:        "bold",
	development.Anchorage:  "dashed",
}

// ConnectivityDOT converts the connectivity table of a development into a
// Graphviz DOT graph: nodes and spans alternate along the development, and
// every (node, end, face) gets one edge labelled with its bar group decisions.
func ConnectivityDOT(dev *development.Development, conns []connectivity.Resolution) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for i, n := range dev.Nodes {
		label := n.Name
		if label == "" {
			label = fmt.Sprintf("node %d", i)
		}
		fmt.Fprintf(&buf, "  %q [shape=circle, label=%q];\n", nodeID(i), label)
	}
	for i, sp := range dev.Spans {
		name := sp.Name
		if name == "" {
			name = fmt.Sprintf("span %d", i+1)
		}
		label := fmt.Sprintf("%s\nL=%.2f m\nb×h=%.0f×%.0f cm", name, sp.L, sp.B*100, sp.H*100)
		fmt.Fprintf(&buf, "  %q [shape=box, style=\"rounded,filled\", fillcolor=white, label=%q];\n", spanID(i), label)
	}

	buf.WriteString("\n")
	type edgeKey struct {
		node int
		end  development.End
		face development.Face
	}
	groups := map[edgeKey][]connectivity.Resolution{}
	var order []edgeKey
	for _, c := range conns {
		if !c.Active {
			continue
		}
		k := edgeKey{c.Node, c.End, c.Face}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], c)
	}

	for _, k := range order {
		span := dev.SpanAt(k.node, k.end)
		if span < 0 {
			continue
		}
		rs := groups[k]
		parts := make([]string, 0, len(rs))
		for _, r := range rs {
			parts = append(parts, fmt.Sprintf("%s: %s", r.Group, r.Kind))
		}
		label := fmt.Sprintf("%s\n%s", k.face, strings.Join(parts, "\n"))
		style := kindStyles[rs[0].Kind]
		if style == "" {
			style = "solid"
		}
		from, to := spanID(span), nodeID(k.node)
		if k.end == development.End2 {
			from, to = nodeID(k.node), spanID(span)
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=%s];\n", from, to, label, style)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return fmt.Sprintf("N%d", i) }
func spanID(i int) string { return fmt.Sprintf("S%d", i+1) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
