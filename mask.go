package regionmask

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ivanhigueram/regionmask/internal/pip"
)

// Sentinel errors of the masking entry points.
var (
	// ErrNotEquallySpaced is returned when an operation that needs an
	// equally spaced grid, such as forcing method rasterize, is given
	// one that is not.
	ErrNotEquallySpaced = errors.New("regionmask: lat and lon must be equally spaced")

	// ErrOverlap2D is returned when a 2D mask is requested for a
	// collection declared with WithOverlap(true).
	ErrOverlap2D = errors.New("regionmask: 2D masks cannot represent overlapping regions; use Mask3D")
)

// Offsets subtracted from query points before containment testing.
// They implement the edge rule: outlines on the north and east side
// of a region belong to it, outlines on the south and west side do
// not, and a border shared by two regions belongs to the southern or
// western one exactly once.
const (
	lonOffset = 1e-8
	latOffset = 1e-10
)

// Mask is a 2D region mask: one float64 per grid cell holding the
// number of the region the cell belongs to, or NaN for cells outside
// every region. Rows correspond to latitudes, columns to longitudes,
// in the order of the vectors the mask was computed from.
type Mask struct {
	lon, lat []float64
	values   []float64
}

// Shape returns the mask dimensions as (nlat, nlon).
func (m *Mask) Shape() (nlat, nlon int) {
	return len(m.lat), len(m.lon)
}

// Lon returns a copy of the longitude vector the mask was computed
// for, in the caller's original convention.
func (m *Mask) Lon() []float64 { return slices.Clone(m.lon) }

// Lat returns a copy of the latitude vector the mask was computed for.
func (m *Mask) Lat() []float64 { return slices.Clone(m.lat) }

// Values returns the mask data in row-major order (row i, column j at
// index i*nlon+j). The slice is shared with the mask; treat it as
// read-only.
func (m *Mask) Values() []float64 { return m.values }

// At returns the value at latitude index i and longitude index j:
// a region number, or NaN for unassigned cells.
func (m *Mask) At(i, j int) float64 {
	return m.values[i*len(m.lon)+j]
}

// RegionAt returns the region number at (i, j) and whether the cell
// is assigned to any region.
func (m *Mask) RegionAt(i, j int) (int, bool) {
	v := m.At(i, j)
	if math.IsNaN(v) {
		return 0, false
	}
	return int(v), true
}

// IsAssigned reports whether the cell at (i, j) belongs to a region.
func (m *Mask) IsAssigned(i, j int) bool {
	return !math.IsNaN(m.At(i, j))
}

// Count returns the number of cells assigned to the given region
// number.
func (m *Mask) Count(number int) int {
	want := float64(number)
	n := 0
	for _, v := range m.values {
		if v == want {
			n++
		}
	}
	return n
}

// Mask2D computes the 2D mask of the collection on the grid spanned
// by the lon and lat vectors. Each grid point is assigned the number
// of the region containing it, with later regions taking precedence,
// or NaN when no region contains it.
//
// The mask carries the caller's lon/lat vectors unchanged even when
// longitudes are wrapped for testing (see [WithWrapLon]).
//
// Collections constructed with WithOverlap(true) cannot be flattened
// into a single layer; Mask2D then returns [ErrOverlap2D].
func (r *Regions) Mask2D(lon, lat []float64, opts ...MaskOption) (*Mask, error) {
	if r.overlap {
		return nil, ErrOverlap2D
	}
	cfg := defaultMaskConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	eng, err := newMaskEngine(r, lon, lat, cfg)
	if err != nil {
		return nil, err
	}
	values := eng.mask2D()
	if assignedCount(values) == 0 {
		Logger().Warn("mask has no grid points inside any region",
			"regions", r.Len(), "nlon", len(lon), "nlat", len(lat))
	}
	return &Mask{
		lon:    slices.Clone(lon),
		lat:    slices.Clone(lat),
		values: values,
	}, nil
}

// resolvedMethod is the concrete mask algorithm after auto-selection.
type resolvedMethod int

const (
	methodRasterize resolvedMethod = iota
	methodRasterizeFlip
	methodRasterizeSplit
	methodContains
	methodLegacy
)

func (m resolvedMethod) String() string {
	switch m {
	case methodRasterize:
		return "rasterize"
	case methodRasterizeFlip:
		return "rasterize_flip"
	case methodRasterizeSplit:
		return "rasterize_split"
	case methodContains:
		return "contains"
	case methodLegacy:
		return "legacy"
	}
	return fmt.Sprintf("resolvedMethod(%d)", int(m))
}

// maskEngine carries one mask computation: the wrapped coordinates,
// the resolved method, and the seam configuration shared by the 2D
// and 3D entry points.
type maskEngine struct {
	regions *Regions
	lon     []float64 // wrapped, used for testing
	lat     []float64
	method  resolvedMethod
	split   int     // split column for the flip and split variants
	seamLon float64 // left domain edge; NaN disables the seam pass
	workers int

	testers []pip.Tester // lazily prepared outlines
}

func newMaskEngine(r *Regions, lon, lat []float64, cfg maskConfig) (*maskEngine, error) {
	if err := validateCoords(lon, lat); err != nil {
		return nil, err
	}

	wrapped, seamLon, err := resolveWrap(r, lon, cfg.wrap)
	if err != nil {
		return nil, err
	}

	method, split, err := resolveMethod(wrapped, lat, cfg.method)
	if err != nil {
		return nil, err
	}
	Logger().Debug("selected mask method",
		"method", method, "nlon", len(lon), "nlat", len(lat))

	return &maskEngine{
		regions: r,
		lon:     wrapped,
		lat:     lat,
		method:  method,
		split:   split,
		seamLon: seamLon,
		workers: cfg.workers,
	}, nil
}

// resolveWrap wraps the grid longitudes according to the wrap mode
// and returns the seam longitude of the resulting convention. With
// WrapAuto the outlines' convention wins; grids already in that
// convention pass through unchanged.
func resolveWrap(r *Regions, lon []float64, mode WrapMode) ([]float64, float64, error) {
	var to180 bool
	switch mode {
	case WrapNone:
		return lon, math.NaN(), nil
	case Wrap180:
		to180 = true
	case Wrap360:
		to180 = false
	case WrapAuto:
		is180, err := r.IsLon180()
		if err != nil {
			return nil, 0, err
		}
		to180 = is180
	default:
		return nil, 0, fmt.Errorf("regionmask: unknown wrap mode %v", mode)
	}

	wrapped, err := wrapLons(lon, to180)
	if err != nil {
		return nil, 0, err
	}

	changed := 0
	for i := range lon {
		if wrapped[i] != lon[i] {
			changed++
		}
	}
	if changed > 0 {
		Logger().Debug("wrapped grid longitudes",
			"convention", conventionName(to180), "changed", changed)
	}

	seamLon := 0.0
	if to180 {
		seamLon = -180.0
	}
	return wrapped, seamLon, nil
}

func conventionName(to180 bool) string {
	if to180 {
		return "180"
	}
	return "360"
}

// resolveMethod maps the requested method onto a concrete algorithm
// for this grid. Split grids (equally spaced apart from one interior
// jump) are only picked up by MethodAuto; forcing MethodRasterize on
// them is an error like on any other unequally spaced grid.
func resolveMethod(lon, lat []float64, m Method) (resolvedMethod, int, error) {
	regular := equallySpaced(lon) && equallySpaced(lat)
	switch m {
	case MethodContains:
		return methodContains, 0, nil
	case MethodLegacy:
		return methodLegacy, 0, nil
	case MethodRasterize:
		if !regular {
			return 0, 0, fmt.Errorf("%w to use method rasterize", ErrNotEquallySpaced)
		}
		return methodRasterize, 0, nil
	case MethodAuto:
		if regular {
			return methodRasterize, 0, nil
		}
		if equallySpacedOnSplitLon(lon) && equallySpaced(lat) {
			split, err := findSplitPoint(lon)
			if err == nil {
				if equallySpaced(rotate(lon, split)) {
					return methodRasterizeFlip, split, nil
				}
				return methodRasterizeSplit, split, nil
			}
		}
		return methodContains, 0, nil
	}
	return 0, 0, fmt.Errorf("regionmask: unknown method %v", m)
}

// mask2D computes the flat 2D label grid: NaN for unassigned cells,
// region numbers elsewhere, later regions overwriting earlier ones.
func (e *maskEngine) mask2D() []float64 {
	nlat, nlon := len(e.lat), len(e.lon)
	values := make([]float64, nlat*nlon)
	for i := range values {
		values[i] = math.NaN()
	}

	switch e.method {
	case methodContains, methodLegacy:
		e.containsLabels(values)
	default:
		e.rasterizeLabels(values)
	}

	e.fixSeams(values)
	return values
}

// maskRegion computes the coverage of a single region, used for the
// layers of overlapping collections.
func (e *maskEngine) maskRegion(k int) []bool {
	covered := make([]bool, len(e.lat)*len(e.lon))
	switch e.method {
	case methodContains, methodLegacy:
		e.containsRegion(covered, k)
	default:
		e.rasterizeRegion(covered, k)
	}
	e.fixSeamsRegion(covered, k)
	return covered
}

func assignedCount(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// prepared returns the containment testers of all regions, building
// them on first use.
func (e *maskEngine) prepared() []pip.Tester {
	if e.testers == nil {
		e.testers = make([]pip.Tester, e.regions.Len())
		for k, reg := range e.regions.regions {
			e.testers[k] = pip.Prepare(pipPolygons(reg.Geometry))
		}
	}
	return e.testers
}

// seamCandidates invokes fix for every grid point lying exactly on
// the left longitude seam or at the south pole.
func (e *maskEngine) seamCandidates(fix func(i, j int)) bool {
	if math.IsNaN(e.seamLon) {
		return false
	}
	found := false
	for j, v := range e.lon {
		if v == e.seamLon {
			found = true
			for i := range e.lat {
				fix(i, j)
			}
		}
	}
	for i, v := range e.lat {
		if v == -90 {
			found = true
			for j := range e.lon {
				fix(i, j)
			}
		}
	}
	return found
}

// seamQuery builds the shifted query point for a seam candidate.
// Points on the seam are tested from the east side of the domain;
// points at the south pole get the latitude offset flipped inward.
func (e *maskEngine) seamQuery(lon, lat float64) pip.Point {
	if lon == e.seamLon {
		lon += 360
	}
	lon -= lonOffset
	if lat == -90 {
		lat = -90 + latOffset
	} else {
		lat -= latOffset
	}
	return pip.Point{Lon: lon, Lat: lat}
}

// fixSeams gives unassigned points on the domain edges a second
// chance: the standard offsets push points at the western seam and
// the south pole out of the domain, so they are re-tested from
// inside. Later regions still win.
func (e *maskEngine) fixSeams(values []float64) {
	nlon := len(e.lon)
	fixed := 0
	e.seamCandidates(func(i, j int) {
		if !math.IsNaN(values[i*nlon+j]) {
			return
		}
		p := e.seamQuery(e.lon[j], e.lat[i])
		testers := e.prepared()
		for k := len(testers) - 1; k >= 0; k-- {
			if testers[k].Contains(p) {
				values[i*nlon+j] = float64(e.regions.regions[k].Number)
				fixed++
				return
			}
		}
	})
	if fixed > 0 {
		Logger().Debug("seam pass reassigned points", "points", fixed)
	}
}

// fixSeamsRegion is the single-region variant of fixSeams.
func (e *maskEngine) fixSeamsRegion(covered []bool, k int) {
	nlon := len(e.lon)
	e.seamCandidates(func(i, j int) {
		if covered[i*nlon+j] {
			return
		}
		p := e.seamQuery(e.lon[j], e.lat[i])
		if e.prepared()[k].Contains(p) {
			covered[i*nlon+j] = true
		}
	})
}
