package regionmask

import "fmt"

// Method selects the algorithm used to compute masks.
// All methods produce identical masks where their domains overlap;
// they differ in speed and in the grids they accept.
type Method int

const (
	// MethodAuto picks rasterize for equally spaced grids (including
	// split grids, see below) and contains for irregular grids. This
	// is the default and the right choice almost always.
	MethodAuto Method = iota

	// MethodRasterize burns the outlines onto the grid with a
	// scanline rasterizer. Fastest by a wide margin, but requires
	// equally spaced lon and lat vectors; forcing it on an irregular
	// grid is an error. Grids that are equally spaced apart from a
	// single longitude jump are handled by rotating or splitting the
	// longitude axis.
	MethodRasterize

	// MethodContains tests each grid point against prepared outlines
	// (per-ring edge tables with bounding-box pruning), rows fanned
	// out over a worker pool. Works on any grid.
	MethodContains

	// MethodLegacy computes the same mask as MethodContains with no
	// preparation, no pruning, and no parallelism. It exists as an
	// independent reference for the optimized paths and is never
	// selected automatically.
	MethodLegacy
)

// String returns the method name as used in logs.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodRasterize:
		return "rasterize"
	case MethodContains:
		return "contains"
	case MethodLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// WrapMode controls how grid longitudes are reconciled with the
// longitude convention of the outlines before masking.
type WrapMode int

const (
	// WrapAuto wraps the grid longitudes to the outlines' convention
	// when the two plainly disagree (grid in [0, 360] against
	// outlines in [-180, 180], or the reverse) and leaves them alone
	// otherwise. This is the default.
	WrapAuto WrapMode = iota

	// WrapNone uses the longitudes exactly as given.
	WrapNone

	// Wrap180 wraps the grid longitudes to [-180, 180).
	Wrap180

	// Wrap360 wraps the grid longitudes to [0, 360).
	Wrap360
)

// String returns the wrap mode name as used in logs.
func (w WrapMode) String() string {
	switch w {
	case WrapAuto:
		return "auto"
	case WrapNone:
		return "none"
	case Wrap180:
		return "180"
	case Wrap360:
		return "360"
	}
	return fmt.Sprintf("WrapMode(%d)", int(w))
}
