package axial

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
)

func nspt(v float64) *float64 { return &v }

func sandProfile(t *testing.T) *soil.Profile {
	layers := []soil.Layer{
		{ZTop: 0, Thickness: 20, Type: soil.Sand, NSPT: nspt(15)},
	}
	p, err := soil.NewProfile(layers)
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	return p
}

func TestTensionNeverExceedsCompression(t *testing.T) {
	chk.PrintTitle("TensionNeverExceedsCompression")
	p := sandProfile(t)
	sec, ok := section.Lookup("W6x9")
	if !ok {
		t.Fatalf("section not found")
	}
	res, err := Capacity(Input{Profile: p, Section: sec, Embedment: 10, PileType: Driven, Method: AutoMethod, FSc: 2.5, FSt: 3.0})
	if err != nil {
		t.Fatalf("capacity error: %v", err)
	}
	if res.QUltTension > res.QUltCompression {
		t.Fatalf("Q_ult_tension (%g) > Q_ult_compression (%g)", res.QUltTension, res.QUltCompression)
	}
}

func TestSkinFrictionScalesLinearlyInEmbedmentUniformClay(t *testing.T) {
	chk.PrintTitle("SkinFrictionScalesLinearlyInEmbedmentUniformClay")
	cu := 400.0
	layers := []soil.Layer{{ZTop: 0, Thickness: 20, Type: soil.Clay, CU: &cu}}
	p, err := soil.NewProfile(layers)
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	sec, _ := section.Lookup("W6x9")
	// alpha method: f_s = alpha*c_u is depth-independent for a uniform
	// c_u layer, so Q_s must scale linearly with embedment.
	r10, err := Capacity(Input{Profile: p, Section: sec, Embedment: 10, PileType: Driven, Method: Alpha, FSc: 2.5, FSt: 3.0})
	if err != nil {
		t.Fatalf("capacity error at 10ft: %v", err)
	}
	r20, err := Capacity(Input{Profile: p, Section: sec, Embedment: 20, PileType: Driven, Method: Alpha, FSc: 2.5, FSt: 3.0})
	if err != nil {
		t.Fatalf("capacity error at 20ft: %v", err)
	}
	ratio := r20.Qs / r10.Qs
	if ratio < 1.95 || ratio > 2.05 {
		t.Fatalf("Q_s should double with embedment in uniform clay: 10ft=%g 20ft=%g ratio=%g", r10.Qs, r20.Qs, ratio)
	}
}

func TestEmbedmentExceedsProfileDepthIsInvalid(t *testing.T) {
	chk.PrintTitle("EmbedmentExceedsProfileDepthIsInvalid")
	p := sandProfile(t)
	sec, _ := section.Lookup("W6x9")
	_, err := Capacity(Input{Profile: p, Section: sec, Embedment: 30, PileType: Driven, Method: AutoMethod, FSc: 2.5, FSt: 3.0})
	if err == nil {
		t.Fatalf("expected InvalidInput error for embedment exceeding profile depth")
	}
}

func TestHelicalCapacityFromTorque(t *testing.T) {
	chk.PrintTitle("HelicalCapacityFromTorque")
	q, kt, err := HelicalCapacityFromTorque(4000, "2.875in-pipe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chk.Float64(t, "Q_ult", 1e-9, q, kt*4000)
}
