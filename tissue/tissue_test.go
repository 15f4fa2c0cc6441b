package tissue

import "testing"

func TestNewSurfaceCompartments(t *testing.T) {
	c := NewSurfaceCompartments(1013.0, 62.7)
	want := 0.79 * (1013.0 - 62.7) / 1000.0

	for i := 0; i < Count; i++ {
		if c.N2[i] != want {
			t.Errorf("N2[%d]: want %f; got %f", i, want, c.N2[i])
		}
		if c.He[i] != 0.0 {
			t.Errorf("He[%d]: want 0; got %f", i, c.He[i])
		}
	}
}

func TestNewEmptyCompartments(t *testing.T) {
	c := NewEmptyCompartments()
	for i := 0; i < Count; i++ {
		if c.N2[i] != 0.0 || c.He[i] != 0.0 {
			t.Errorf("compartment %d not zeroed: N2=%f He=%f", i, c.N2[i], c.He[i])
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	c := NewSurfaceCompartments(1013.0, 62.7)
	cp := c.Copy()
	cp.N2[0] = 99.0

	if c.N2[0] == 99.0 {
		t.Errorf("mutating the copy should not affect the original")
	}
}

func TestPresetsShareEverythingButN2A(t *testing.T) {
	presets := [...]Constants{ConstantsA, ConstantsB, ConstantsC}

	for i := 0; i < Count; i++ {
		for _, p := range presets {
			if p[i].N2HalfTime != presets[0][i].N2HalfTime {
				t.Errorf("compartment %d: N2 half-time differs between presets", i)
			}
			if p[i].N2B != presets[0][i].N2B {
				t.Errorf("compartment %d: N2 b differs between presets", i)
			}
			if p[i].HeA != presets[0][i].HeA || p[i].HeB != presets[0][i].HeB {
				t.Errorf("compartment %d: He coefficients differ between presets", i)
			}
		}
	}

	// The N2 a column is the one documented difference, and B and C must
	// diverge from A in at least one compartment.
	diffAB, diffAC := false, false
	for i := 0; i < Count; i++ {
		if ConstantsA[i].N2A != ConstantsB[i].N2A {
			diffAB = true
		}
		if ConstantsA[i].N2A != ConstantsC[i].N2A {
			diffAC = true
		}
	}
	if !diffAB || !diffAC {
		t.Errorf("expected presets B and C to differ from A in the N2 a column")
	}
}
