package regionmask

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// layerGrid reshapes a layer into rows for comparison.
func layerGrid(t *testing.T, m *Mask3D, key any) [][]float64 {
	t.Helper()
	l, err := m.Layer(key)
	if err != nil {
		t.Fatalf("Layer(%v) returned error: %v", key, err)
	}
	nlat, nlon := m.Shape()
	rows := make([][]float64, nlat)
	for i := range rows {
		rows[i] = make([]float64, nlon)
		for j := range rows[i] {
			rows[i][j] = l.At(i, j)
		}
	}
	return rows
}

func TestMask3DBasic(t *testing.T) {
	r := twoSquares(t)
	lon := []float64{0.25, 0.75}
	lat := []float64{0.25, 0.75, 1.25}

	m, err := r.Mask3D(lon, lat)
	if err != nil {
		t.Fatalf("Mask3D() returned error: %v", err)
	}

	if got := m.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	nlat, nlon := m.Shape()
	if nlat != 3 || nlon != 2 {
		t.Errorf("Shape() = (%d, %d), want (3, 2)", nlat, nlon)
	}

	if diff := cmp.Diff([][]float64{{1, 1}, {1, 1}, {0, 0}}, layerGrid(t, m, 0)); diff != "" {
		t.Errorf("layer 0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{0, 0}, {0, 0}, {1, 1}}, layerGrid(t, m, 1)); diff != "" {
		t.Errorf("layer 1 mismatch (-want +got):\n%s", diff)
	}

	layers := m.Layers()
	if layers[0].Number != 0 || layers[0].Name != "Region0" || layers[0].Abbrev != "r0" {
		t.Errorf("layer 0 metadata = %+v", layers[0])
	}
	if got := layers[0].Count(); got != 4 {
		t.Errorf("layer 0 Count() = %d, want 4", got)
	}
	if !layers[1].Covered(2, 0) || layers[1].Covered(0, 0) {
		t.Error("layer 1 Covered() disagrees with the expected coverage")
	}
}

func TestMask3DLayerLookup(t *testing.T) {
	r := twoSquares(t,
		WithNames([]string{"lower", "upper"}),
		WithAbbrevs([]string{"lo", "up"}),
	)
	m, err := r.Mask3D([]float64{0.25, 0.75}, []float64{0.25, 1.25})
	if err != nil {
		t.Fatalf("Mask3D() returned error: %v", err)
	}

	byNumber, err := m.Layer(1)
	if err != nil {
		t.Fatalf("Layer(1) returned error: %v", err)
	}
	byName, err := m.Layer("upper")
	if err != nil {
		t.Fatalf("Layer(\"upper\") returned error: %v", err)
	}
	byAbbrev, err := m.Layer("up")
	if err != nil {
		t.Fatalf("Layer(\"up\") returned error: %v", err)
	}
	if byNumber != byName || byName != byAbbrev {
		t.Error("lookups by number, name, and abbrev returned different layers")
	}

	if _, err := m.Layer(5); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Layer(5) error = %v, want ErrKeyNotFound", err)
	}
	if _, err := m.Layer(3.5); err == nil || !strings.Contains(err.Error(), "invalid region key type") {
		t.Errorf("Layer(3.5) error = %v, want key type error", err)
	}
}

func TestMask3DDrop(t *testing.T) {
	r := twoSquares(t)
	lon := []float64{0.25, 0.75}
	lat := []float64{0.25, 0.75} // covers only the lower square

	m, err := r.Mask3D(lon, lat)
	if err != nil {
		t.Fatalf("Mask3D() returned error: %v", err)
	}
	if got := m.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1 (empty layer dropped)", got)
	}
	if _, err := m.Layer(1); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Layer(1) error = %v, want ErrKeyNotFound for dropped layer", err)
	}

	kept, err := r.Mask3D(lon, lat, WithDrop(false))
	if err != nil {
		t.Fatalf("Mask3D(WithDrop(false)) returned error: %v", err)
	}
	if got := kept.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 with WithDrop(false)", got)
	}
	l, err := kept.Layer(1)
	if err != nil {
		t.Fatalf("Layer(1) returned error: %v", err)
	}
	if got := l.Count(); got != 0 {
		t.Errorf("empty layer Count() = %d, want 0", got)
	}
}

func TestMask3DMatchesMask2D(t *testing.T) {
	r := testShapes(t)
	lon := span(-1, 11, 25)
	lat := span(-1, 7, 17)

	m2, err := r.Mask2D(lon, lat)
	if err != nil {
		t.Fatalf("Mask2D() returned error: %v", err)
	}
	m3, err := r.Mask3D(lon, lat, WithDrop(false))
	if err != nil {
		t.Fatalf("Mask3D() returned error: %v", err)
	}

	nlat, nlon := m2.Shape()
	for i := 0; i < nlat; i++ {
		for j := 0; j < nlon; j++ {
			covering := 0
			for _, l := range m3.Layers() {
				if l.Covered(i, j) {
					covering++
					if num, ok := m2.RegionAt(i, j); !ok || num != l.Number {
						t.Fatalf("cell (%d, %d): layer %d covered but 2D mask has %v",
							i, j, l.Number, m2.At(i, j))
					}
				}
			}
			if m2.IsAssigned(i, j) != (covering == 1) || covering > 1 {
				t.Fatalf("cell (%d, %d): covered by %d layers, 2D assigned=%t",
					i, j, covering, m2.IsAssigned(i, j))
			}
		}
	}
}

func TestMask3DOverlap(t *testing.T) {
	r, err := New([]MultiPolygon{
		{Box(0, 0, 2, 2)},
		{Box(1, 1, 3, 3)},
	}, WithOverlap(true))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	lon := []float64{0.5, 1.5, 2.5}
	lat := []float64{0.5, 1.5, 2.5}

	m, err := r.Mask3D(lon, lat)
	if err != nil {
		t.Fatalf("Mask3D() returned error: %v", err)
	}
	if diff := cmp.Diff([][]float64{{1, 1, 0}, {1, 1, 0}, {0, 0, 0}}, layerGrid(t, m, 0)); diff != "" {
		t.Errorf("layer 0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{0, 0, 0}, {0, 1, 1}, {0, 1, 1}}, layerGrid(t, m, 1)); diff != "" {
		t.Errorf("layer 1 mismatch (-want +got):\n%s", diff)
	}

	// The shared cell belongs to both layers.
	l0, _ := m.Layer(0)
	l1, _ := m.Layer(1)
	if !l0.Covered(1, 1) || !l1.Covered(1, 1) {
		t.Error("shared cell not covered by both layers")
	}

	// Methods agree layer for layer.
	for _, method := range []Method{MethodContains, MethodLegacy} {
		alt, err := r.Mask3D(lon, lat, WithMethod(method))
		if err != nil {
			t.Fatalf("Mask3D(%v) returned error: %v", method, err)
		}
		for _, key := range []any{0, 1} {
			if diff := cmp.Diff(layerGrid(t, m, key), layerGrid(t, alt, key)); diff != "" {
				t.Errorf("method %v layer %v mismatch (-want +got):\n%s", method, key, diff)
			}
		}
	}
}

func TestMask3DWithoutOverlapSplitsBurnOrder(t *testing.T) {
	// The same intersecting outlines without the overlap declaration:
	// layers come from splitting the 2D mask, so the later region
	// claims the shared cell exclusively.
	r, err := New([]MultiPolygon{
		{Box(0, 0, 2, 2)},
		{Box(1, 1, 3, 3)},
	})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	m, err := r.Mask3D([]float64{0.5, 1.5, 2.5}, []float64{0.5, 1.5, 2.5})
	if err != nil {
		t.Fatalf("Mask3D() returned error: %v", err)
	}
	l0, _ := m.Layer(0)
	l1, _ := m.Layer(1)
	if l0.Covered(1, 1) {
		t.Error("layer 0 covers the shared cell, want it assigned to layer 1 only")
	}
	if !l1.Covered(1, 1) {
		t.Error("layer 1 does not cover the shared cell")
	}
}

func TestMask3DFracBasic(t *testing.T) {
	r, err := New([]MultiPolygon{{Box(0, 0, 1.3, 2)}})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	m, err := r.Mask3DFrac([]float64{0.5, 1.5}, []float64{0.5, 1.5})
	if err != nil {
		t.Fatalf("Mask3DFrac() returned error: %v", err)
	}

	// The cell centred on 0.5 lies fully inside; of the cell centred
	// on 1.5 (spanning 1..2) only the sub-columns up to 1.3 are in.
	want := [][]float64{
		{1, 0.3},
		{1, 0.3},
	}
	if diff := cmp.Diff(want, layerGrid(t, m, 0)); diff != "" {
		t.Errorf("fractions mismatch (-want +got):\n%s", diff)
	}
}

func TestMask3DFracPoleAdjustment(t *testing.T) {
	// The cell centred on lat 90 extends to 91; sub-cells beyond the
	// pole are excluded from the average, so a fully covered polar
	// cell still reports 1.0.
	capRegion, err := New([]MultiPolygon{{Box(-180, 88.6, 180, 90)}})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	m, err := capRegion.Mask3DFrac([]float64{0, 10}, []float64{88, 90})
	if err != nil {
		t.Fatalf("Mask3DFrac() returned error: %v", err)
	}

	want := [][]float64{
		{0.2, 0.2},
		{1, 1},
	}
	if diff := cmp.Diff(want, layerGrid(t, m, 0)); diff != "" {
		t.Errorf("fractions mismatch (-want +got):\n%s", diff)
	}
}

func TestMask3DFracPrecision(t *testing.T) {
	r := twoSquares(t)
	lon := []float64{0.5, 1.5}
	lat := []float64{0.5, 1.5}

	for _, precision := range []int{1, 2, 10} {
		m, err := r.Mask3DFrac(lon, lat, WithPrecision(precision))
		if err != nil {
			t.Fatalf("Mask3DFrac(precision=%d) returned error: %v", precision, err)
		}
		if diff := cmp.Diff([][]float64{{1, 0}, {0, 0}}, layerGrid(t, m, 0)); diff != "" {
			t.Errorf("precision %d layer 0 mismatch (-want +got):\n%s", precision, diff)
		}
		if diff := cmp.Diff([][]float64{{0, 0}, {1, 0}}, layerGrid(t, m, 1)); diff != "" {
			t.Errorf("precision %d layer 1 mismatch (-want +got):\n%s", precision, diff)
		}
	}
}

func TestMask3DFracOverlap(t *testing.T) {
	r, err := New([]MultiPolygon{
		{Box(0, 0, 2, 2)},
		{Box(1, 1, 3, 3)},
	}, WithOverlap(true))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	m, err := r.Mask3DFrac([]float64{0.5, 1.5, 2.5}, []float64{0.5, 1.5, 2.5})
	if err != nil {
		t.Fatalf("Mask3DFrac() returned error: %v", err)
	}

	if diff := cmp.Diff([][]float64{{1, 1, 0}, {1, 1, 0}, {0, 0, 0}}, layerGrid(t, m, 0)); diff != "" {
		t.Errorf("layer 0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{0, 0, 0}, {0, 1, 1}, {0, 1, 1}}, layerGrid(t, m, 1)); diff != "" {
		t.Errorf("layer 1 mismatch (-want +got):\n%s", diff)
	}

	// Fractions of overlapping regions sum past 1 on shared cells.
	l0, _ := m.Layer(0)
	l1, _ := m.Layer(1)
	if sum := l0.At(1, 1) + l1.At(1, 1); sum != 2 {
		t.Errorf("summed fraction on shared cell = %v, want 2", sum)
	}
}

func TestMask3DFracErrors(t *testing.T) {
	r := twoSquares(t)

	_, err := r.Mask3DFrac([]float64{0.5, 1.5}, []float64{0.5, 1.5}, WithPrecision(0))
	if err == nil || !strings.Contains(err.Error(), "precision must be 1 or greater") {
		t.Errorf("Mask3DFrac(precision=0) error = %v, want precision error", err)
	}

	_, err = r.Mask3DFrac([]float64{0, 1, 3}, []float64{0.5, 1.5})
	if !errors.Is(err, ErrNotEquallySpaced) {
		t.Errorf("Mask3DFrac(irregular) error = %v, want ErrNotEquallySpaced", err)
	}
	if err == nil || !strings.Contains(err.Error(), "Mask3DFrac") {
		t.Errorf("Mask3DFrac(irregular) error = %v, want Mask3DFrac mention", err)
	}
}

func TestMask3DCoordAccessors(t *testing.T) {
	r := twoSquares(t)
	lon := []float64{0.25, 0.75}
	lat := []float64{0.25, 1.25}
	m, err := r.Mask3D(lon, lat)
	if err != nil {
		t.Fatalf("Mask3D() returned error: %v", err)
	}

	if diff := cmp.Diff(lon, m.Lon()); diff != "" {
		t.Errorf("Lon() mismatch (-want +got):\n%s", diff)
	}
	m.Lon()[0] = -999
	if m.Lon()[0] != 0.25 {
		t.Error("mutating returned Lon() changed the mask")
	}

	l, err := m.Layer(0)
	if err != nil {
		t.Fatalf("Layer(0) returned error: %v", err)
	}
	if got := len(l.Values()); got != 4 {
		t.Errorf("len(Values()) = %d, want 4", got)
	}
}
