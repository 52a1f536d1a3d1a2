package regionmask

import (
	"github.com/ivanhigueram/regionmask/internal/raster"
)

// labelFiller burns a region number into a row-major float64 grid.
// cols optionally remaps rasterizer columns onto grid columns, used
// by the flip and split variants.
type labelFiller struct {
	nlon   int
	values []float64
	label  float64
	cols   []int
}

func (f *labelFiller) FillSpan(x1, x2, y int) {
	base := y * f.nlon
	if f.cols == nil {
		for x := x1; x < x2; x++ {
			f.values[base+x] = f.label
		}
		return
	}
	for x := x1; x < x2; x++ {
		f.values[base+f.cols[x]] = f.label
	}
}

// boolFiller marks covered cells in a row-major bool grid.
type boolFiller struct {
	nlon  int
	cells []bool
	cols  []int
}

func (f *boolFiller) FillSpan(x1, x2, y int) {
	base := y * f.nlon
	if f.cols == nil {
		for x := x1; x < x2; x++ {
			f.cells[base+x] = true
		}
		return
	}
	for x := x1; x < x2; x++ {
		f.cells[base+f.cols[x]] = true
	}
}

// rasterizeLabels burns all regions in collection order so that later
// regions overwrite earlier ones on shared cells.
func (e *maskEngine) rasterizeLabels(values []float64) {
	idx := make([]int, e.regions.Len())
	for i := range idx {
		idx[i] = i
	}
	e.rasterizeInto(idx, func(k int, cols []int) raster.SpanFiller {
		return &labelFiller{
			nlon:   len(e.lon),
			values: values,
			label:  float64(e.regions.regions[k].Number),
			cols:   cols,
		}
	})
}

// rasterizeRegion burns a single region into a bool grid.
func (e *maskEngine) rasterizeRegion(covered []bool, k int) {
	e.rasterizeInto([]int{k}, func(_ int, cols []int) raster.SpanFiller {
		return &boolFiller{nlon: len(e.lon), cells: covered, cols: cols}
	})
}

// rasterizeInto dispatches the selected regions to the scanline
// rasterizer, handling the three grid variants:
//
//   - plain: the grid is equally spaced and rasterized as is
//   - flip: the longitudes are equally spaced after rotating them at
//     the split column (a [0, 360) grid of [-180, 180) outlines or
//     vice versa); rasterize the rotated grid and remap columns back
//   - split: the longitudes fall into two equally spaced runs with a
//     single jump between them; each run is rasterized separately
//     with the shared step
func (e *maskEngine) rasterizeInto(idx []int, fill func(k int, cols []int) raster.SpanFiller) {
	nlon := len(e.lon)
	switch e.method {
	case methodRasterize:
		e.rasterizeRun(e.lon, e.lon[1]-e.lon[0], nil, idx, fill)
	case methodRasterizeFlip:
		rot := rotate(e.lon, e.split)
		cols := make([]int, nlon)
		for x := range cols {
			cols[x] = (x + e.split) % nlon
		}
		e.rasterizeRun(rot, rot[1]-rot[0], cols, idx, fill)
	case methodRasterizeSplit:
		// Both runs share the regular step even when one of them is
		// a single column.
		step := medianStep(e.lon)
		for _, run := range [][2]int{{0, e.split}, {e.split, nlon}} {
			lons := e.lon[run[0]:run[1]]
			cols := make([]int, len(lons))
			for x := range cols {
				cols[x] = run[0] + x
			}
			e.rasterizeRun(lons, step, cols, idx, fill)
		}
	}
}

// rasterizeRun burns the selected regions onto one equally spaced
// longitude run. The cell transform places the centre of column j at
// x=j+0.5 and of row i at y=i+0.5; the edge-rule offsets shift the
// outlines instead of the grid points, which is equivalent and lets
// the rasterizer stay exact.
func (e *maskEngine) rasterizeRun(lons []float64, dlon float64, cols []int, idx []int, fill func(k int, cols []int) raster.SpanFiller) {
	lat0 := e.lat[0]
	dlat := e.lat[1] - e.lat[0]
	lon0 := lons[0]

	ras := raster.NewRasterizer(len(lons), len(e.lat))
	for _, k := range idx {
		f := fill(k, cols)
		for _, pg := range e.regions.regions[k].Geometry {
			ras.Fill(f, cellRings(pg, lon0, dlon, lat0, dlat))
		}
	}
}

// cellRings transforms a polygon from geographic to cell coordinates,
// applying the edge-rule shift in geographic space so that ascending
// and descending axes are handled uniformly.
func cellRings(pg Polygon, lon0, dlon, lat0, dlat float64) [][]raster.Point {
	rings := pg.rings()
	out := make([][]raster.Point, len(rings))
	for i, r := range rings {
		cr := make([]raster.Point, len(r))
		for j, p := range r {
			cr[j] = raster.Point{
				X: (p.Lon+lonOffset-lon0)/dlon + 0.5,
				Y: (p.Lat+latOffset-lat0)/dlat + 0.5,
			}
		}
		out[i] = cr
	}
	return out
}
