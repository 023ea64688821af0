package development

// Elevation geometry. x runs from the outer (left) face of the first node,
// in metres; node i occupies [NodeLeftX(i), NodeRightX(i)] and span i runs
// from NodeRightX(i) to NodeLeftX(i+1).

// NodeLeftX returns the x of the left face of node i.
func (d *Development) NodeLeftX(i int) float64 {
	x := 0.0
	for k := 0; k < i && k < len(d.Nodes); k++ {
		x += d.Nodes[k].Width()
		if k < len(d.Spans) {
			x += d.Spans[k].L
		}
	}
	return x
}

// NodeRightX returns the x of the right face of node i.
func (d *Development) NodeRightX(i int) float64 {
	if i < 0 || i >= len(d.Nodes) {
		return d.NodeLeftX(i)
	}
	return d.NodeLeftX(i) + d.Nodes[i].Width()
}

// SpanStartX returns the x where span i leaves its left node.
func (d *Development) SpanStartX(i int) float64 { return d.NodeRightX(i) }

// SpanEndX returns the x where span i enters its right node.
func (d *Development) SpanEndX(i int) float64 { return d.NodeLeftX(i + 1) }

// TotalLength returns the overall length of the development.
func (d *Development) TotalLength() float64 {
	if len(d.Nodes) == 0 {
		return 0
	}
	return d.NodeRightX(len(d.Nodes) - 1)
}

// SpanTopY returns the level of the top of span i, measured up from the
// reference level (so it is zero or negative).
func (d *Development) SpanTopY(i int) float64 {
	if i < 0 || i >= len(d.Nodes) {
		return 0
	}
	return -d.Nodes[i].B2
}
