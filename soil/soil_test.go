package soil

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func f(v float64) *float64 { return &v }

func TestStressMonotoneAndEffectiveLEQTotal(t *testing.T) {
	chk.PrintTitle("StressMonotoneAndEffectiveLEQTotal")
	layers := []Layer{
		{ZTop: 0, Thickness: 5, Type: Sand, NSPT: f(15)},
		{ZTop: 5, Thickness: 10, Type: Clay, CU: f(400)},
	}
	p, err := NewProfile(layers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wt := 5.0
	p.WaterTable = &wt

	prevV, prevVp := 0.0, 0.0
	for z := 0.0; z <= 15.0; z += 0.5 {
		sv, svp := p.StressAt(z)
		if svp > sv+1e-9 {
			t.Fatalf("sigma'_v (%g) > sigma_v (%g) at z=%g", svp, sv, z)
		}
		if sv < prevV-1e-9 {
			t.Fatalf("sigma_v decreased at z=%g", z)
		}
		if svp < prevVp-1e-9 {
			t.Fatalf("sigma'_v decreased at z=%g", z)
		}
		prevV, prevVp = sv, svp
	}
}

func TestAutoDerivationDoesNotOverrideExplicit(t *testing.T) {
	chk.PrintTitle("AutoDerivationDoesNotOverrideExplicit")
	explicitCu := 999.0
	layers := []Layer{
		{ZTop: 0, Thickness: 10, Type: Clay, NSPT: f(10), CU: &explicitCu},
	}
	p, err := NewProfile(layers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := p.CU(p.Layers[0])
	if got != explicitCu {
		t.Fatalf("explicit CU overwritten: got %g, want %g", got, explicitCu)
	}
}

func TestAutoPhiSandFormula(t *testing.T) {
	chk.PrintTitle("AutoPhiSandFormula")
	// N_spt=15, standard corrections -> N60=9
	layers := []Layer{{ZTop: 0, Thickness: 10, Type: Sand, NSPT: f(15)}}
	p, err := NewProfile(layers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n60 := p.N60(p.Layers[0])
	chk.Float64(t, "N60", 1e-9, n60, 9.0)
	phi := p.Phi(p.Layers[0])
	// phi = sqrt(20*9)+20 = sqrt(180)+20 ~= 33.42
	chk.Float64(t, "phi", 1e-6, phi, 33.4164078649987)
}

func TestGapDetection(t *testing.T) {
	chk.PrintTitle("GapDetection")
	layers := []Layer{
		{ZTop: 0, Thickness: 5, Type: Sand, NSPT: f(10)},
		{ZTop: 6, Thickness: 5, Type: Sand, NSPT: f(10)},
	}
	_, err := NewProfile(layers)
	if err == nil {
		t.Fatalf("expected gap detection error")
	}
}

func TestAutoGammaUsesSaturatedTableWhenSubmerged(t *testing.T) {
	chk.PrintTitle("AutoGammaUsesSaturatedTableWhenSubmerged")
	// N_spt=15, standard corrections -> N60=9, landing in the n60<10 sand
	// bracket: dry=105 pcf, saturated=115 pcf.
	dry, err := NewProfile([]Layer{{ZTop: 0, Thickness: 10, Type: Sand, NSPT: f(15)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svDry, svpDry := dry.StressAt(10)
	chk.Float64(t, "dry sigma_v", 1e-9, svDry, 1050.0)
	chk.Float64(t, "dry sigma'_v", 1e-9, svpDry, 1050.0)

	wet, err := NewProfile([]Layer{{ZTop: 0, Thickness: 10, Type: Sand, NSPT: f(15)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wt := 0.0
	wet.WaterTable = &wt
	svWet, svpWet := wet.StressAt(10)
	// Fully submerged: total stress uses the saturated correlation (115),
	// not the dry table (105) minus gamma_water.
	chk.Float64(t, "submerged sigma_v", 1e-9, svWet, 1150.0)
	chk.Float64(t, "submerged sigma'_v", 1e-9, svpWet, 526.0)
}

func TestWaterTableAboveSurfaceClamped(t *testing.T) {
	chk.PrintTitle("WaterTableAboveSurfaceClamped")
	layers := []Layer{{ZTop: 0, Thickness: 10, Type: Sand, NSPT: f(15)}}
	p, err := NewProfile(layers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wtAbove := -5.0
	p.WaterTable = &wtAbove
	_, svp1 := p.StressAt(5)

	wtZero := 0.0
	p.WaterTable = &wtZero
	_, svp2 := p.StressAt(5)

	chk.Float64(t, "clamped water table matches z=0 water table", 1e-9, svp1, svp2)
}
