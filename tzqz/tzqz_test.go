package tzqz

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestTZClayReachesTMaxAtPeak(t *testing.T) {
	chk.PrintTitle("TZClayReachesTMaxAtPeak")
	c := TZClay(0.8, 400, 24, 6)
	got := c.Evaluate(c.ZPeak)
	chk.Float64(t, "t at z_peak", 1e-9, got, c.TMax)
}

func TestTZSandMonotoneApproachesTMax(t *testing.T) {
	chk.PrintTitle("TZSandMonotoneApproachesTMax")
	c := TZSand(0.3, 800, 24)
	prev := 0.0
	for _, z := range []float64{0.01, 0.05, 0.1, 0.5, 2.0, 10.0} {
		v := c.Evaluate(z)
		if v < prev {
			t.Fatalf("t-z sand curve not monotone at z=%g", z)
		}
		if v > c.TMax+1e-6 {
			t.Fatalf("t-z sand curve exceeds t_max at z=%g: %g > %g", z, v, c.TMax)
		}
		prev = v
	}
	if math.Abs(prev-c.TMax) > c.TMax*0.1 {
		t.Fatalf("t-z sand curve should approach t_max at large z: got %g want ~%g", prev, c.TMax)
	}
}

func TestQZReachesQMaxAtPeak(t *testing.T) {
	chk.PrintTitle("QZReachesQMaxAtPeak")
	q := QZ(50000, 6)
	got := q.Evaluate(q.ZPeak)
	chk.Float64(t, "q at z_peak", 1e-9, got, q.QMax)
	gotZero := q.Evaluate(0)
	chk.Float64(t, "q at z=0", 1e-9, gotZero, 0)
}
