package defined

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivanhigueram/regionmask"
)

func TestGiorgi(t *testing.T) {
	r, err := Giorgi()
	if err != nil {
		t.Fatalf("Giorgi: %v", err)
	}
	if got := r.Len(); got != 21 {
		t.Fatalf("Len() = %d, want 21", got)
	}
	if got, want := r.Name(), "Giorgi"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	numbers := r.Numbers()
	for i, n := range numbers {
		if n != i+1 {
			t.Fatalf("Numbers()[%d] = %d, want %d", i, n, i+1)
		}
	}

	aus, err := r.Get("AUS")
	if err != nil {
		t.Fatalf("Get(AUS): %v", err)
	}
	if aus.Number != 1 || aus.Name != "Australia" {
		t.Errorf("AUS = %d %q, want 1 %q", aus.Number, aus.Name, "Australia")
	}
	nas, err := r.Get("North Asia")
	if err != nil {
		t.Fatalf("Get(North Asia): %v", err)
	}
	wantBounds := regionmask.Bounds{MinLon: 40, MinLat: 50, MaxLon: 180, MaxLat: 70}
	if diff := cmp.Diff(wantBounds, nas.Bounds()); diff != "" {
		t.Errorf("NAS bounds mismatch (-want +got):\n%s", diff)
	}

	// A point in the Australian outback belongs to region 1.
	m, err := r.Mask2D([]float64{135}, []float64{-25})
	if err != nil {
		t.Fatalf("Mask2D: %v", err)
	}
	if got, ok := m.RegionAt(0, 0); !ok || got != 1 {
		t.Errorf("RegionAt(135E, 25S) = %d, %v, want 1, true", got, ok)
	}
}

func TestSREX(t *testing.T) {
	r, err := SREX()
	if err != nil {
		t.Fatalf("SREX: %v", err)
	}
	if got := r.Len(); got != 26 {
		t.Fatalf("Len() = %d, want 26", got)
	}
	if got, want := r.Name(), "SREX"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	numbers := r.Numbers()
	for i, n := range numbers {
		if n != i+1 {
			t.Fatalf("Numbers()[%d] = %d, want %d", i, n, i+1)
		}
	}

	sah, err := r.Get(14)
	if err != nil {
		t.Fatalf("Get(14): %v", err)
	}
	if sah.Abbrev != "SAH" {
		t.Errorf("region 14 = %q, want SAH", sah.Abbrev)
	}
	tib, err := r.Get("Tibetan Plateau")
	if err != nil {
		t.Fatalf("Get(Tibetan Plateau): %v", err)
	}
	if tib.Number != 21 || tib.Abbrev != "TIB" {
		t.Errorf("Tibetan Plateau = %d %q, want 21 TIB", tib.Number, tib.Abbrev)
	}

	// Europe is split along a diagonal from (10W, 48N) to (40E,
	// 61.32N): at 25E the boundary sits near 57.3N.
	m, err := r.Mask2D([]float64{25, 25.5}, []float64{50, 60})
	if err != nil {
		t.Fatalf("Mask2D: %v", err)
	}
	if got, ok := m.RegionAt(0, 0); !ok || got != 12 {
		t.Errorf("RegionAt(25E, 50N) = %d, %v, want 12 (CEU), true", got, ok)
	}
	if got, ok := m.RegionAt(1, 0); !ok || got != 11 {
		t.Errorf("RegionAt(25E, 60N) = %d, %v, want 11 (NEU), true", got, ok)
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	a, err := Giorgi()
	if err != nil {
		t.Fatalf("Giorgi: %v", err)
	}
	b, err := Giorgi()
	if err != nil {
		t.Fatalf("Giorgi: %v", err)
	}
	if a == b {
		t.Fatalf("Giorgi returned the same collection twice")
	}
	sub, err := a.Subset("AUS", "AMZ")
	if err != nil {
		t.Fatalf("Subset: %v", err)
	}
	if sub.Len() != 2 || b.Len() != 21 {
		t.Errorf("subset of one call affected another: %d, %d", sub.Len(), b.Len())
	}
}
