package raster

// Point is a position in cell space: one unit per grid cell, with the
// centre of column j on row i at (j+0.5, i+0.5).
type Point struct {
	X, Y float64
}

// Edge is a non-horizontal line segment prepared for scanline
// traversal. Endpoints are stored bottom-up (y0 < y1).
type Edge struct {
	x0, y0 float64
	x1, y1 float64
	dx     float64 // change in x per unit y
}

// NewEdge creates an edge from two points. Callers drop horizontal
// segments before construction; they carry no crossings.
func NewEdge(p0, p1 Point) Edge {
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}
	dy := p1.Y - p0.Y
	var dx float64
	if dy != 0 {
		dx = (p1.X - p0.X) / dy
	}
	return Edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y, dx: dx}
}

// XAtY calculates the x coordinate where the edge crosses the
// horizontal line at y.
func (e *Edge) XAtY(y float64) float64 {
	if e.y1 == e.y0 {
		return e.x0
	}
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + (e.x1-e.x0)*t
}

// ActiveEdge is an edge currently intersected by the scanline.
type ActiveEdge struct {
	x    float64 // x at the current scanline
	dx   float64 // change in x per scanline
	yMax float64 // scanline value at which the edge retires
}

// ActiveEdgeTable tracks the edges intersecting the current scanline.
type ActiveEdgeTable struct {
	edges []ActiveEdge
}

// NewActiveEdgeTable creates an empty active edge table.
func NewActiveEdgeTable() *ActiveEdgeTable {
	return &ActiveEdgeTable{
		edges: make([]ActiveEdge, 0, 32),
	}
}

// AddAtY inserts an edge with its x position computed for the
// scanline at y.
func (aet *ActiveEdgeTable) AddAtY(edge Edge, y float64) {
	aet.edges = append(aet.edges, ActiveEdge{
		x:    edge.XAtY(y),
		dx:   edge.dx,
		yMax: edge.y1,
	})
}

// Remove retires edges that end at or below the scanline y. An edge
// is active while y0 <= y < y1, so a vertex shared by two chained
// edges produces exactly one crossing.
func (aet *ActiveEdgeTable) Remove(y float64) {
	j := 0
	for i := range aet.edges {
		if y < aet.edges[i].yMax {
			aet.edges[j] = aet.edges[i]
			j++
		}
	}
	aet.edges = aet.edges[:j]
}

// Update advances the x positions by one scanline.
func (aet *ActiveEdgeTable) Update() {
	for i := range aet.edges {
		aet.edges[i].x += aet.edges[i].dx
	}
}

// Sort orders the edges by x coordinate. Insertion sort: the table
// stays nearly sorted from one scanline to the next.
func (aet *ActiveEdgeTable) Sort() {
	for i := 1; i < len(aet.edges); i++ {
		key := aet.edges[i]
		j := i - 1
		for j >= 0 && aet.edges[j].x > key.x {
			aet.edges[j+1] = aet.edges[j]
			j--
		}
		aet.edges[j+1] = key
	}
}

// Edges returns the active edges.
func (aet *ActiveEdgeTable) Edges() []ActiveEdge {
	return aet.edges
}

// Clear empties the table.
func (aet *ActiveEdgeTable) Clear() {
	aet.edges = aet.edges[:0]
}
