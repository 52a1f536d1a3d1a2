package regionmask

import (
	"fmt"
	"math"
	"slices"
)

// Layer is one region's grid in a [Mask3D]. Values are 0 or 1 for
// the boolean entry points and fractions in [0, 1] for
// [Regions.Mask3DFrac].
type Layer struct {
	Number int
	Name   string
	Abbrev string

	nlon   int
	values []float64
}

// At returns the value at latitude index i and longitude index j.
func (l *Layer) At(i, j int) float64 {
	return l.values[i*l.nlon+j]
}

// Covered reports whether the cell at (i, j) overlaps the region.
func (l *Layer) Covered(i, j int) bool {
	return l.At(i, j) > 0
}

// Count returns the number of cells overlapping the region.
func (l *Layer) Count() int {
	n := 0
	for _, v := range l.values {
		if v > 0 {
			n++
		}
	}
	return n
}

// Values returns the layer data in row-major order (row i, column j
// at index i*nlon+j). The slice is shared with the layer; treat it
// as read-only.
func (l *Layer) Values() []float64 { return l.values }

// Mask3D is a layered region mask: one grid per region, in
// collection order. Unlike [Mask] it represents overlapping regions
// faithfully, each layer being computed independently.
type Mask3D struct {
	lon, lat []float64
	layers   []Layer
}

// Shape returns the grid dimensions as (nlat, nlon).
func (m *Mask3D) Shape() (nlat, nlon int) {
	return len(m.lat), len(m.lon)
}

// Lon returns a copy of the longitude vector the mask was computed
// for, in the caller's original convention.
func (m *Mask3D) Lon() []float64 { return slices.Clone(m.lon) }

// Lat returns a copy of the latitude vector the mask was computed for.
func (m *Mask3D) Lat() []float64 { return slices.Clone(m.lat) }

// Len returns the number of layers. With WithDrop(true) this can be
// smaller than the number of regions.
func (m *Mask3D) Len() int { return len(m.layers) }

// Layers returns the layers in collection order. The slice is a
// copy; the layer data is shared.
func (m *Mask3D) Layers() []Layer { return slices.Clone(m.layers) }

// Layer returns the layer identified by key: a region number (int)
// or a name or abbreviation (string). Returns an error wrapping
// [ErrKeyNotFound] when no layer matches, which also happens when
// the region's layer was dropped as empty.
func (m *Mask3D) Layer(key any) (*Layer, error) {
	switch k := key.(type) {
	case int:
		for i := range m.layers {
			if m.layers[i].Number == k {
				return &m.layers[i], nil
			}
		}
	case string:
		for i := range m.layers {
			if m.layers[i].Name == k {
				return &m.layers[i], nil
			}
		}
		for i := range m.layers {
			if m.layers[i].Abbrev == k {
				return &m.layers[i], nil
			}
		}
	default:
		return nil, fmt.Errorf("regionmask: invalid region key type %T (want int or string)", key)
	}
	return nil, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}

// Mask3D computes one boolean layer per region on the grid spanned
// by the lon and lat vectors. For collections without overlap the 2D
// mask is computed once and split into layers; with WithOverlap(true)
// every region is tested independently, so a cell can be covered by
// several layers.
//
// Layers that cover no cell are removed unless WithDrop(false) is
// given.
func (r *Regions) Mask3D(lon, lat []float64, opts ...MaskOption) (*Mask3D, error) {
	cfg := defaultMaskConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	eng, err := newMaskEngine(r, lon, lat, cfg)
	if err != nil {
		return nil, err
	}

	cells := len(lat) * len(lon)
	grids := make([][]float64, r.Len())
	if r.overlap {
		for k := range grids {
			g := make([]float64, cells)
			for c, ok := range eng.maskRegion(k) {
				if ok {
					g[c] = 1
				}
			}
			grids[k] = g
		}
	} else {
		for k := range grids {
			grids[k] = make([]float64, cells)
		}
		for c, v := range eng.mask2D() {
			if !math.IsNaN(v) {
				grids[r.byNumber[int(v)]][c] = 1
			}
		}
	}
	return r.finishMask3D(lon, lat, grids, cfg), nil
}

// Mask3DFrac approximates the fraction of each grid cell covered by
// each region. Every cell is subdivided into precision x precision
// sub-cells (see [WithPrecision]); the fraction is the share of
// sub-cell centres falling inside the region. Sub-cells sampled
// beyond the poles are left out of the average.
//
// The grid must be equally spaced in both coordinates.
func (r *Regions) Mask3DFrac(lon, lat []float64, opts ...MaskOption) (*Mask3D, error) {
	cfg := defaultMaskConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.precision < 1 {
		return nil, fmt.Errorf("regionmask: precision must be 1 or greater, got %d", cfg.precision)
	}
	if err := validateCoords(lon, lat); err != nil {
		return nil, err
	}
	wrapped, _, err := resolveWrap(r, lon, cfg.wrap)
	if err != nil {
		return nil, err
	}
	if !equallySpaced(wrapped) || !equallySpaced(lat) {
		return nil, fmt.Errorf("%w to use Mask3DFrac", ErrNotEquallySpaced)
	}

	p := cfg.precision
	subLon := sampleCoords(wrapped, p)
	subLat := sampleCoords(lat, p)

	// The sub-grid keeps the caller's wrap mode so sub-cells pushed
	// across the seam are wrapped back, but always auto-selects the
	// method: wrapping can turn the sub-grid into a split grid even
	// when the parent grid is plain.
	subCfg := cfg
	subCfg.method = MethodAuto
	eng, err := newMaskEngine(r, subLon, subLat, subCfg)
	if err != nil {
		return nil, err
	}

	subNlon := len(subLon)
	subGrids := make([][]bool, r.Len())
	if r.overlap {
		for k := range subGrids {
			subGrids[k] = eng.maskRegion(k)
		}
	} else {
		for k := range subGrids {
			subGrids[k] = make([]bool, len(subLat)*subNlon)
		}
		for c, v := range eng.mask2D() {
			if !math.IsNaN(v) {
				subGrids[r.byNumber[int(v)]][c] = true
			}
		}
	}

	// Sub-rows beyond the poles do not exist; drop them from the
	// average instead of counting them as misses.
	validRows := make([]int, len(lat))
	valid := make([]bool, len(subLat))
	for si, v := range subLat {
		if math.Abs(v) <= 90 {
			valid[si] = true
			validRows[si/p]++
		}
	}

	grids := make([][]float64, r.Len())
	for k, sub := range subGrids {
		g := make([]float64, len(lat)*len(lon))
		for i := range lat {
			denom := float64(validRows[i] * p)
			if denom == 0 {
				continue
			}
			for j := range lon {
				n := 0
				for si := i * p; si < (i+1)*p; si++ {
					if !valid[si] {
						continue
					}
					base := si*subNlon + j*p
					for sj := 0; sj < p; sj++ {
						if sub[base+sj] {
							n++
						}
					}
				}
				g[i*len(lon)+j] = float64(n) / denom
			}
		}
		grids[k] = g
	}
	return r.finishMask3D(lon, lat, grids, cfg), nil
}

// sampleCoords subdivides each cell into n sub-cells and returns
// their centres. The result is again equally spaced, with step d/n.
func sampleCoords(coords []float64, n int) []float64 {
	d := coords[1] - coords[0]
	out := make([]float64, 0, len(coords)*n)
	for _, c := range coords {
		for k := 0; k < n; k++ {
			out = append(out, c+d*((float64(k)+0.5)/float64(n)-0.5))
		}
	}
	return out
}

// finishMask3D assembles the layers, applying the drop policy.
func (r *Regions) finishMask3D(lon, lat []float64, grids [][]float64, cfg maskConfig) *Mask3D {
	m := &Mask3D{lon: slices.Clone(lon), lat: slices.Clone(lat)}
	m.layers = make([]Layer, 0, len(grids))
	empty := 0
	for k, g := range grids {
		l := Layer{
			Number: r.regions[k].Number,
			Name:   r.regions[k].Name,
			Abbrev: r.regions[k].Abbrev,
			nlon:   len(lon),
			values: g,
		}
		if l.Count() == 0 {
			empty++
			if cfg.drop {
				continue
			}
		}
		m.layers = append(m.layers, l)
	}
	if cfg.drop && empty > 0 {
		Logger().Debug("dropped empty mask layers",
			"dropped", empty, "kept", len(m.layers))
	}
	if empty == len(grids) {
		Logger().Warn("mask has no grid points inside any region",
			"regions", r.Len(), "nlon", len(lon), "nlat", len(lat))
	}
	return m
}
