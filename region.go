package regionmask

// Region is a single named region with its outline.
//
// Regions are value types; the geometry is shared, not copied, so
// callers must not modify it after construction.
type Region struct {
	// Number identifies the region within its collection and is the
	// value written into masks. Numbers need not be consecutive.
	Number int

	// Name is the long descriptive name, e.g. "Central North America".
	Name string

	// Abbrev is the short label, e.g. "CNA".
	Abbrev string

	// Geometry is the region outline. A region with a single polygon
	// is stored as a one-element MultiPolygon.
	Geometry MultiPolygon
}

// Bounds returns the bounding box of the region's outline.
func (r Region) Bounds() Bounds {
	return r.Geometry.Bounds()
}

// Centroid returns the area-weighted centroid of the region's outline.
func (r Region) Centroid() Point {
	return r.Geometry.Centroid()
}

// Contains reports whether the point lies inside the region's outline.
// The test is exact (even-odd rule); it applies no edge-rule offsets.
func (r Region) Contains(p Point) bool {
	return r.Geometry.Contains(p)
}
