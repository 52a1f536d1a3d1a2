package regionmask

import "math"

// Point is a geographic coordinate in degrees.
type Point struct {
	Lon float64 // longitude, degrees east
	Lat float64 // latitude, degrees north
}

// Ring is a sequence of points describing a closed boundary.
// The closing edge from the last point back to the first is implicit,
// so rings may be given either open or with the first point repeated
// at the end; both forms describe the same boundary.
type Ring []Point

// Polygon is a single polygon with an exterior boundary and
// optional interior holes.
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

// MultiPolygon is a collection of polygons treated as one region.
type MultiPolygon []Polygon

// Box returns a rectangular polygon spanning the given coordinate range.
// The exterior ring is counter-clockwise.
func Box(minLon, minLat, maxLon, maxLat float64) Polygon {
	return Polygon{
		Exterior: Ring{
			{minLon, minLat},
			{maxLon, minLat},
			{maxLon, maxLat},
			{minLon, maxLat},
		},
	}
}

// edge returns the i-th boundary edge of the ring, including the
// implicit closing edge. Rings with a repeated closing point produce
// one degenerate edge, which contributes nothing to area or crossings.
func (r Ring) edge(i int) (a, b Point) {
	return r[i], r[(i+1)%len(r)]
}

// Area computes the signed area of the ring using the shoelace formula.
// Positive area indicates counter-clockwise winding, negative indicates
// clockwise. Rings with fewer than 3 points have zero area.
func (r Ring) Area() float64 {
	if len(r) < 3 {
		return 0
	}
	var area float64
	for i := range r {
		a, b := r.edge(i)
		area += a.Lon*b.Lat - b.Lon*a.Lat
	}
	return area / 2
}

// Clockwise reports whether the ring winds clockwise.
func (r Ring) Clockwise() bool {
	return r.Area() < 0
}

// Centroid computes the area-weighted centroid of the ring.
// For degenerate rings with near-zero area it falls back to the
// mean of the vertices.
func (r Ring) Centroid() Point {
	if len(r) == 0 {
		return Point{}
	}
	var cx, cy, area float64
	for i := range r {
		a, b := r.edge(i)
		cross := a.Lon*b.Lat - b.Lon*a.Lat
		cx += (a.Lon + b.Lon) * cross
		cy += (a.Lat + b.Lat) * cross
		area += cross
	}
	area /= 2
	if math.Abs(area) < 1e-12 {
		return r.vertexMean()
	}
	return Point{Lon: cx / (6 * area), Lat: cy / (6 * area)}
}

// vertexMean averages the ring's vertices, skipping a repeated
// closing point so it does not weigh double.
func (r Ring) vertexMean() Point {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	var sx, sy float64
	for _, p := range r[:n] {
		sx += p.Lon
		sy += p.Lat
	}
	return Point{Lon: sx / float64(n), Lat: sy / float64(n)}
}

// crossings counts the ring edges that cross the horizontal ray
// extending east from p. An edge crosses when its endpoints straddle
// p's latitude and the intersection lies strictly east of p.
func (r Ring) crossings(p Point) int {
	if len(r) < 3 {
		return 0
	}
	var count int
	for i := range r {
		a, b := r.edge(i)
		if (a.Lat <= p.Lat) != (b.Lat <= p.Lat) {
			xCross := a.Lon + (p.Lat-a.Lat)*(b.Lon-a.Lon)/(b.Lat-a.Lat)
			if xCross > p.Lon {
				count++
			}
		}
	}
	return count
}

// Contains reports whether p lies inside the ring using the even-odd
// rule. Points exactly on the boundary may report either result;
// callers that need a deterministic edge rule nudge their query points
// off the boundary first.
func (r Ring) Contains(p Point) bool {
	return r.crossings(p)%2 == 1
}

// Bounds returns the bounding box of the ring.
func (r Ring) Bounds() Bounds {
	b := emptyBounds()
	for _, p := range r {
		b = b.extend(p)
	}
	return b
}

// Area computes the geometric area of the polygon: the absolute area
// of the exterior minus the absolute areas of the holes.
func (pg Polygon) Area() float64 {
	area := math.Abs(pg.Exterior.Area())
	for _, h := range pg.Holes {
		area -= math.Abs(h.Area())
	}
	return area
}

// Contains reports whether p lies inside the polygon using the
// even-odd rule across the exterior and all holes.
func (pg Polygon) Contains(p Point) bool {
	count := pg.Exterior.crossings(p)
	for _, h := range pg.Holes {
		count += h.crossings(p)
	}
	return count%2 == 1
}

// Centroid computes the area-weighted centroid of the polygon,
// with holes subtracted. Falls back to the exterior centroid when
// the net area is near zero.
func (pg Polygon) Centroid() Point {
	ext := pg.Exterior.Centroid()
	extArea := math.Abs(pg.Exterior.Area())
	cx := ext.Lon * extArea
	cy := ext.Lat * extArea
	net := extArea
	for _, h := range pg.Holes {
		a := math.Abs(h.Area())
		c := h.Centroid()
		cx -= c.Lon * a
		cy -= c.Lat * a
		net -= a
	}
	if math.Abs(net) < 1e-12 {
		return ext
	}
	return Point{Lon: cx / net, Lat: cy / net}
}

// Bounds returns the bounding box of the polygon's exterior.
func (pg Polygon) Bounds() Bounds {
	return pg.Exterior.Bounds()
}

// rings returns the exterior and holes as a flat slice.
func (pg Polygon) rings() []Ring {
	if len(pg.Holes) == 0 {
		return []Ring{pg.Exterior}
	}
	rs := make([]Ring, 0, 1+len(pg.Holes))
	rs = append(rs, pg.Exterior)
	rs = append(rs, pg.Holes...)
	return rs
}

// Area computes the total geometric area of all polygons.
func (mp MultiPolygon) Area() float64 {
	var area float64
	for _, pg := range mp {
		area += pg.Area()
	}
	return area
}

// Contains reports whether p lies inside any of the polygons.
func (mp MultiPolygon) Contains(p Point) bool {
	for _, pg := range mp {
		if pg.Contains(p) {
			return true
		}
	}
	return false
}

// Centroid computes the area-weighted centroid across all polygons.
func (mp MultiPolygon) Centroid() Point {
	var cx, cy, total float64
	for _, pg := range mp {
		a := pg.Area()
		c := pg.Centroid()
		cx += c.Lon * a
		cy += c.Lat * a
		total += a
	}
	if math.Abs(total) < 1e-12 {
		if len(mp) > 0 {
			return mp[0].Centroid()
		}
		return Point{}
	}
	return Point{Lon: cx / total, Lat: cy / total}
}

// Bounds returns the union of the bounding boxes of all polygons.
func (mp MultiPolygon) Bounds() Bounds {
	b := emptyBounds()
	for _, pg := range mp {
		b = b.Union(pg.Bounds())
	}
	return b
}

// Bounds is an axis-aligned bounding box in degrees.
type Bounds struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// emptyBounds returns an inverted box that unions cleanly with any
// other box.
func emptyBounds() Bounds {
	return Bounds{
		MinLon: math.Inf(1), MinLat: math.Inf(1),
		MaxLon: math.Inf(-1), MaxLat: math.Inf(-1),
	}
}

// Empty reports whether the box contains no points.
func (b Bounds) Empty() bool {
	return b.MinLon > b.MaxLon || b.MinLat > b.MaxLat
}

// Contains reports whether p lies within the box, inclusive of its
// edges.
func (b Bounds) Contains(p Point) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// Union returns the smallest box covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Bounds{
		MinLon: math.Min(b.MinLon, o.MinLon),
		MinLat: math.Min(b.MinLat, o.MinLat),
		MaxLon: math.Max(b.MaxLon, o.MaxLon),
		MaxLat: math.Max(b.MaxLat, o.MaxLat),
	}
}

func (b Bounds) extend(p Point) Bounds {
	return Bounds{
		MinLon: math.Min(b.MinLon, p.Lon),
		MinLat: math.Min(b.MinLat, p.Lat),
		MaxLon: math.Max(b.MaxLon, p.Lon),
		MaxLat: math.Max(b.MaxLat, p.Lat),
	}
}
