package regionmask

import (
	"github.com/ivanhigueram/regionmask/internal/parallel"
	"github.com/ivanhigueram/regionmask/internal/pip"
)

// pipPolygons converts a region outline into the containment
// package's representation.
func pipPolygons(mp MultiPolygon) [][]pip.Ring {
	polys := make([][]pip.Ring, len(mp))
	for i, pg := range mp {
		rings := pg.rings()
		out := make([]pip.Ring, len(rings))
		for j, r := range rings {
			pr := make(pip.Ring, len(r))
			for k, p := range r {
				pr[k] = pip.Point{Lon: p.Lon, Lat: p.Lat}
			}
			out[j] = pr
		}
		polys[i] = out
	}
	return polys
}

// containsTesters returns one tester per region: prepared outlines
// with bounding-box pruning for the contains method, plain loops for
// legacy.
func (e *maskEngine) containsTesters() []pip.Tester {
	if e.method == methodLegacy {
		testers := make([]pip.Tester, e.regions.Len())
		for k, reg := range e.regions.regions {
			testers[k] = pip.NewNaive(pipPolygons(reg.Geometry))
		}
		return testers
	}
	return e.prepared()
}

// containsLabels tests every grid point against every region.
// Checking regions from last to first with an early break gives the
// same result as burning them in order. Rows are independent and are
// spread across the worker pool; legacy stays sequential.
func (e *maskEngine) containsLabels(values []float64) {
	testers := e.containsTesters()
	numbers := make([]float64, e.regions.Len())
	for k, reg := range e.regions.regions {
		numbers[k] = float64(reg.Number)
	}

	nlon := len(e.lon)
	fillRow := func(i int) {
		base := i * nlon
		qLat := e.lat[i] - latOffset
		for j, lon := range e.lon {
			p := pip.Point{Lon: lon - lonOffset, Lat: qLat}
			for k := len(testers) - 1; k >= 0; k-- {
				if testers[k].Contains(p) {
					values[base+j] = numbers[k]
					break
				}
			}
		}
	}

	if e.method == methodLegacy || e.workers == 1 {
		for i := range e.lat {
			fillRow(i)
		}
		return
	}

	rows := make([]func(), len(e.lat))
	for i := range rows {
		rows[i] = func() { fillRow(i) }
	}
	pool := parallel.NewWorkerPool(e.workers)
	defer pool.Close()
	pool.ExecuteAll(rows)
}

// containsRegion tests every grid point against a single region.
func (e *maskEngine) containsRegion(covered []bool, k int) {
	tester := e.containsTesters()[k]
	nlon := len(e.lon)
	for i, lat := range e.lat {
		base := i * nlon
		qLat := lat - latOffset
		for j, lon := range e.lon {
			if tester.Contains(pip.Point{Lon: lon - lonOffset, Lat: qLat}) {
				covered[base+j] = true
			}
		}
	}
}
