package rand

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
	}
}

func TestRanges(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64=%v out of [0,1)", f)
		}
		if n := r.Intn(5); n < 0 || n >= 5 {
			t.Fatalf("Intn(5)=%v", n)
		}
		if u := Uniform(r, 2, 3); u < 2 || u >= 3 {
			t.Fatalf("Uniform=%v out of [2,3)", u)
		}
	}
	if n := r.Intn(0); n != 0 {
		t.Fatalf("Intn(0)=%v want 0", n)
	}
}

func TestSampleSlice(t *testing.T) {
	r := New(1)
	seen := map[string]bool{}
	s := []string{"a", "b", "c"}
	for i := 0; i < 200; i++ {
		seen[SampleSlice(r, s)] = true
	}
	if len(seen) != len(s) {
		t.Fatalf("sampled %v, want all of %v", seen, s)
	}
}
