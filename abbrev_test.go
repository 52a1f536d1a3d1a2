package regionmask

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConstructAbbrevs(t *testing.T) {
	names := []string{"A", "Bcef", "G[hi]", "J(k)", "L.mn", "Op/Qr", "Stuvw-Xyz"}
	want := []string{"A", "Bce", "Ghi", "Jk", "Lmn", "OpQr", "StuXyz"}
	got := ConstructAbbrevs(names)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConstructAbbrevs() mismatch (-want +got):\n%s", diff)
	}
}

func TestConstructAbbrevsDuplicates(t *testing.T) {
	got := ConstructAbbrevs([]string{"Borneo", "Borneo", "Sumatra"})
	want := []string{"Bor0", "Bor1", "Sum"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConstructAbbrevs() mismatch (-want +got):\n%s", diff)
	}
}

func TestConstructAbbrevsMultiWord(t *testing.T) {
	got := ConstructAbbrevs([]string{"South Asia", "South Africa", "Southern Ocean"})
	want := []string{"SouAsi", "SouAfr", "SouOce"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConstructAbbrevs() mismatch (-want +got):\n%s", diff)
	}
}

func TestConstructAbbrevsDiacritics(t *testing.T) {
	// The apostrophe is in the strip set, so "d'Ivoire" becomes "dIvoire".
	got := ConstructAbbrevs([]string{"São Tomé", "Åland", "Côte d'Ivoire"})
	want := []string{"SaoTom", "Ala", "CotdIv"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConstructAbbrevs() mismatch (-want +got):\n%s", diff)
	}
}

func TestConstructAbbrevsEmptyNames(t *testing.T) {
	got := ConstructAbbrevs([]string{"", ""})
	want := []string{"0", "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConstructAbbrevs() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateDuplicatesKeepsUnique(t *testing.T) {
	got := enumerateDuplicates([]string{"a", "b", "a", "c", "a"})
	want := []string{"a0", "b", "a1", "c", "a2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("enumerateDuplicates() mismatch (-want +got):\n%s", diff)
	}
}
