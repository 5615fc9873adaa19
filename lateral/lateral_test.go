package lateral

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
)

func nspt(v float64) *float64 { return &v }

func looseSandProfile(t *testing.T) *soil.Profile {
	layers := []soil.Layer{
		{ZTop: 0, Thickness: 25, Type: soil.Sand, NSPT: nspt(12)},
	}
	p, err := soil.NewProfile(layers)
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	return p
}

func TestFreeHeadDeflectsInDirectionOfLoad(t *testing.T) {
	chk.PrintTitle("FreeHeadDeflectsInDirectionOfLoad")
	p := looseSandProfile(t)
	sec, ok := section.Lookup("W6x12")
	if !ok {
		t.Fatalf("section not found")
	}
	res, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 12, BendingAxis: section.Strong,
		H: 2000, HeadCond: Free, NElements: 60,
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if res.YGround <= 0 {
		t.Fatalf("expected positive ground-line deflection under positive shear, got %g", res.YGround)
	}
	if !res.Converged {
		t.Fatalf("expected convergence, notes=%v", res.Notes)
	}
}

func TestZeroLoadGivesZeroResponse(t *testing.T) {
	chk.PrintTitle("ZeroLoadGivesZeroResponse")
	p := looseSandProfile(t)
	sec, _ := section.Lookup("W6x12")
	res, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 12, BendingAxis: section.Strong,
		H: 0, MGround: 0, HeadCond: Free, NElements: 40,
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	for i, y := range res.Deflection {
		if math.Abs(y) > 1e-6 {
			t.Fatalf("node %d: expected ~0 deflection under zero load, got %g", i, y)
		}
	}
}

func TestFixedHeadHasZeroGroundSlope(t *testing.T) {
	chk.PrintTitle("FixedHeadHasZeroGroundSlope")
	p := looseSandProfile(t)
	sec, _ := section.Lookup("W6x12")
	res, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 12, BendingAxis: section.Strong,
		H: 3000, HeadCond: Fixed, NElements: 60,
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if math.Abs(res.Deflection[0]-res.Deflection[1]) > 1e-6*math.Max(1, math.Abs(res.Deflection[0])) {
		t.Fatalf("fixed head should hold y0 approx y1: y0=%g y1=%g", res.Deflection[0], res.Deflection[1])
	}
}

func TestLargerLoadGivesLargerMoment(t *testing.T) {
	chk.PrintTitle("LargerLoadGivesLargerMoment")
	p := looseSandProfile(t)
	sec, _ := section.Lookup("W8x18")
	small, err := Solve(Input{Profile: p, Section: sec, Embedment: 15, BendingAxis: section.Strong, H: 1000, HeadCond: Free, NElements: 60})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	large, err := Solve(Input{Profile: p, Section: sec, Embedment: 15, BendingAxis: section.Strong, H: 4000, HeadCond: Free, NElements: 60})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if math.Abs(large.MMax) <= math.Abs(small.MMax) {
		t.Fatalf("expected larger applied shear to increase M_max: small=%g large=%g", small.MMax, large.MMax)
	}
}

func TestEmbedmentMustBePositive(t *testing.T) {
	chk.PrintTitle("EmbedmentMustBePositive")
	p := looseSandProfile(t)
	sec, _ := section.Lookup("W6x12")
	_, err := Solve(Input{Profile: p, Section: sec, Embedment: 0, BendingAxis: section.Strong, H: 1000})
	if err == nil {
		t.Fatalf("expected error for non-positive embedment")
	}
}

func TestCancelSignalStopsBeforeConvergence(t *testing.T) {
	chk.PrintTitle("CancelSignalStopsBeforeConvergence")
	p := looseSandProfile(t)
	sec, _ := section.Lookup("W6x12")
	res, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 12, BendingAxis: section.Strong,
		H: 2000, HeadCond: Free, NElements: 40,
		Cancel: func() bool { return true },
	})
	if err != nil {
		t.Fatalf("cancel should not itself be an error: %v", err)
	}
	if res.Converged {
		t.Fatalf("expected Converged=false when cancelled before any iteration completes")
	}
}
