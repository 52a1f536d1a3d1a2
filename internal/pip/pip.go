// Package pip implements point-in-polygon testing for region
// outlines: a prepared engine with edge tables and bounding-box
// pruning, and a naive reference engine.
//
// Both engines use the even-odd rule with half-open crossings
// (an edge is crossed when its endpoints straddle the query latitude
// and the intersection lies strictly east of the query point), the
// same rule the scanline rasterizer applies at cell centres. Query
// points are tested exactly; callers nudge points off boundaries
// when they need a particular edge behavior.
package pip

// Point is a geographic position (internal copy to avoid import
// cycle).
type Point struct {
	Lon, Lat float64
}

// Ring is a sequence of vertices with an implicit closing edge.
type Ring []Point

// Tester reports whether a point lies inside an outline.
type Tester interface {
	Contains(p Point) bool
}

type bounds struct {
	minLon, minLat float64
	maxLon, maxLat float64
}

func ringBounds(r Ring) bounds {
	b := bounds{
		minLon: r[0].Lon, minLat: r[0].Lat,
		maxLon: r[0].Lon, maxLat: r[0].Lat,
	}
	for _, p := range r[1:] {
		if p.Lon < b.minLon {
			b.minLon = p.Lon
		}
		if p.Lon > b.maxLon {
			b.maxLon = p.Lon
		}
		if p.Lat < b.minLat {
			b.minLat = p.Lat
		}
		if p.Lat > b.maxLat {
			b.maxLat = p.Lat
		}
	}
	return b
}

func (b bounds) union(o bounds) bounds {
	if o.minLon < b.minLon {
		b.minLon = o.minLon
	}
	if o.maxLon > b.maxLon {
		b.maxLon = o.maxLon
	}
	if o.minLat < b.minLat {
		b.minLat = o.minLat
	}
	if o.maxLat > b.maxLat {
		b.maxLat = o.maxLat
	}
	return b
}

// noCrossings reports whether no edge of a closed outline with these
// bounds can contribute an odd number of crossings for p. East of the
// box and outside its latitude range there are no crossings at all;
// west of the box every straddling edge crosses east of p, and a
// closed ring straddles any latitude an even number of times.
func (b bounds) noCrossings(p Point) bool {
	return p.Lat < b.minLat || p.Lat >= b.maxLat ||
		p.Lon >= b.maxLon || p.Lon < b.minLon
}

// edge is one non-horizontal segment with its precomputed inverse
// slope.
type edge struct {
	lon0, lat0 float64
	lat1       float64
	dLonDLat   float64
}

// preparedRing is a ring flattened into an edge table.
type preparedRing struct {
	edges  []edge
	bounds bounds
}

func prepareRing(r Ring) preparedRing {
	pr := preparedRing{bounds: ringBounds(r)}
	for i := range r {
		a := r[i]
		b := r[(i+1)%len(r)]
		if a.Lat == b.Lat {
			continue
		}
		pr.edges = append(pr.edges, edge{
			lon0:     a.Lon,
			lat0:     a.Lat,
			lat1:     b.Lat,
			dLonDLat: (b.Lon - a.Lon) / (b.Lat - a.Lat),
		})
	}
	return pr
}

// crossings counts the ring edges crossed by the eastward ray from p.
func (pr *preparedRing) crossings(p Point) int {
	count := 0
	for i := range pr.edges {
		e := &pr.edges[i]
		if (e.lat0 <= p.Lat) != (e.lat1 <= p.Lat) {
			if e.lon0+(p.Lat-e.lat0)*e.dLonDLat > p.Lon {
				count++
			}
		}
	}
	return count
}

type preparedPoly struct {
	rings  []preparedRing
	bounds bounds
}

// Prepared is an outline preprocessed for repeated containment
// queries.
type Prepared struct {
	polys []preparedPoly
}

// Prepare builds edge tables and bounding boxes for an outline given
// as polygons, each a list of rings (exterior first, then holes).
// Degenerate rings are dropped.
func Prepare(polygons [][]Ring) *Prepared {
	p := &Prepared{}
	for _, rings := range polygons {
		var poly preparedPoly
		for _, r := range rings {
			if len(r) < 3 {
				continue
			}
			pr := prepareRing(r)
			if len(poly.rings) == 0 {
				poly.bounds = pr.bounds
			} else {
				poly.bounds = poly.bounds.union(pr.bounds)
			}
			poly.rings = append(poly.rings, pr)
		}
		if len(poly.rings) > 0 {
			p.polys = append(p.polys, poly)
		}
	}
	return p
}

// Contains reports whether p lies inside the outline.
func (p *Prepared) Contains(pt Point) bool {
	for i := range p.polys {
		poly := &p.polys[i]
		if poly.bounds.noCrossings(pt) {
			continue
		}
		count := 0
		for j := range poly.rings {
			r := &poly.rings[j]
			if r.bounds.noCrossings(pt) {
				continue
			}
			count += r.crossings(pt)
		}
		if count%2 == 1 {
			return true
		}
	}
	return false
}

// Naive is the reference containment engine: no edge tables, no
// pruning, a straight loop over the coordinate pairs.
type Naive struct {
	polys [][]Ring
}

// NewNaive wraps an outline for naive containment queries.
func NewNaive(polygons [][]Ring) *Naive {
	return &Naive{polys: polygons}
}

// Contains reports whether p lies inside the outline.
func (n *Naive) Contains(p Point) bool {
	for _, rings := range n.polys {
		count := 0
		for _, r := range rings {
			if len(r) < 3 {
				continue
			}
			for i := range r {
				a := r[i]
				b := r[(i+1)%len(r)]
				if (a.Lat <= p.Lat) != (b.Lat <= p.Lat) {
					xCross := a.Lon + (p.Lat-a.Lat)*(b.Lon-a.Lon)/(b.Lat-a.Lat)
					if xCross > p.Lon {
						count++
					}
				}
			}
		}
		if count%2 == 1 {
			return true
		}
	}
	return false
}
