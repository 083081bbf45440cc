package keys

import "testing"

func TestNameKey(t *testing.T) {
	if got := NameKey("  Mr Mime "); got != "mr-mime" {
		t.Fatalf("unexpected key %q", got)
	}
	if NameKey("Thunder_Shock") != NameKey("thunder shock") {
		t.Fatalf("underscores and spaces should normalize the same way")
	}
}

func TestSpeciesIDsKey_Canonical(t *testing.T) {
	a := SpeciesIDsKey([]uint{7, 1, 4, 1})
	b := SpeciesIDsKey([]uint{4, 7, 1})
	if a != b || a != "species:1,4,7" {
		t.Fatalf("expected canonical key, got %q and %q", a, b)
	}
	if MovesKey(25) != "moves:25" {
		t.Fatalf("unexpected moves key %q", MovesKey(25))
	}
}
