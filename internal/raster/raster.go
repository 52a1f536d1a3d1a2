// Package raster burns polygon interiors onto regular grids with an
// even-odd scanline rasterizer.
package raster

import (
	"math"
	"sort"
)

// SpanFiller receives the horizontal runs of cells covered by a
// polygon, one grid row at a time. A run covers columns x1 <= j < x2
// of row y.
type SpanFiller interface {
	FillSpan(x1, x2, y int)
}

// Rasterizer rasterizes polygons onto a grid of width x height cells.
// A cell is covered when its centre lies inside the polygon under the
// even-odd rule, with edges active on the half-open interval
// [y0, y1); together these make coverage decisions agree exactly with
// parity-based point-in-polygon tests at the cell centres.
//
// A Rasterizer is reusable across polygons but not safe for
// concurrent use.
type Rasterizer struct {
	width  int
	height int
	aet    *ActiveEdgeTable
	edges  []Edge
}

// NewRasterizer creates a rasterizer for a grid of the given
// dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		aet:    NewActiveEdgeTable(),
	}
}

// Fill rasterizes one polygon given as its rings (exterior first,
// then holes; holes subtract by parity). Rings may be open or closed.
// Degenerate rings and horizontal segments are dropped; a polygon
// with no usable edges covers nothing.
func (r *Rasterizer) Fill(f SpanFiller, rings [][]Point) {
	r.edges = r.edges[:0]
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		for i := range ring {
			p0 := ring[i]
			p1 := ring[(i+1)%len(ring)]
			if p0.Y == p1.Y {
				continue
			}
			r.edges = append(r.edges, NewEdge(p0, p1))
		}
	}
	if len(r.edges) == 0 {
		return
	}

	// Incoming edges are consumed in ascending y0 order.
	sort.Slice(r.edges, func(i, j int) bool {
		return r.edges[i].y0 < r.edges[j].y0
	})

	yMin := r.edges[0].y0
	yMax := r.edges[0].y1
	for _, e := range r.edges[1:] {
		yMax = math.Max(yMax, e.y1)
	}

	row := int(math.Floor(yMin))
	if row < 0 {
		row = 0
	}
	end := int(math.Ceil(yMax))
	if end > r.height {
		end = r.height
	}

	r.aet.Clear()
	next := 0
	for ; row < end; row++ {
		scanY := float64(row) + 0.5

		r.aet.Remove(scanY)
		for next < len(r.edges) && r.edges[next].y0 <= scanY {
			if scanY < r.edges[next].y1 {
				r.aet.AddAtY(r.edges[next], scanY)
			}
			next++
		}

		if len(r.aet.Edges()) > 0 {
			r.aet.Sort()
			r.emitSpans(f, row)
		}

		r.aet.Update()
	}
}

// emitSpans pairs the sorted crossings of the current scanline and
// reports the covered cells of the row. A cell is covered when its
// centre j+0.5 lies in the half-open span [x1, x2).
func (r *Rasterizer) emitSpans(f SpanFiller, row int) {
	edges := r.aet.Edges()
	for i := 0; i+1 < len(edges); i += 2 {
		start := int(math.Ceil(edges[i].x - 0.5))
		end := int(math.Ceil(edges[i+1].x - 0.5))
		if start < 0 {
			start = 0
		}
		if end > r.width {
			end = r.width
		}
		if start < end {
			f.FillSpan(start, end, row)
		}
	}
}
