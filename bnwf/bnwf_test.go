package bnwf

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jason-orcas/solar-pile-design/axial"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
)

func nspt(v float64) *float64 { return &v }

func mediumSandProfile(t *testing.T) *soil.Profile {
	layers := []soil.Layer{
		{ZTop: 0, Thickness: 20, Type: soil.Sand, NSPT: nspt(18)},
	}
	p, err := soil.NewProfile(layers)
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	return p
}

func TestStaticSolveConvergesUnderModestLoad(t *testing.T) {
	chk.PrintTitle("StaticSolveConvergesUnderModestLoad")
	p := mediumSandProfile(t)
	sec, ok := section.Lookup("W8x18")
	if !ok {
		t.Fatalf("section not found")
	}
	res, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 15,
		Loads:   Loads{HLateral: 1500, VAxial: 5000},
		Options: Options{NElements: 40, PileType: axial.Driven},
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("expected convergence, notes=%v", res.Notes)
	}
	if res.YGroundLateral <= 0 {
		t.Fatalf("expected positive lateral ground deflection, got %g", res.YGroundLateral)
	}
	if res.YGroundAxial >= 0 {
		t.Fatalf("expected pile head to settle (negative axial DOF sign convention) under compression, got %g", res.YGroundAxial)
	}
}

func TestPDeltaIncreasesLateralDeflectionUnderCompression(t *testing.T) {
	chk.PrintTitle("PDeltaIncreasesLateralDeflectionUnderCompression")
	p := mediumSandProfile(t)
	sec, _ := section.Lookup("W6x12")
	withoutPDelta, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 15,
		Loads:   Loads{HLateral: 1200, VAxial: 30000},
		Options: Options{NElements: 30, PileType: axial.Driven, IncludePDelta: false},
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	withPDelta, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 15,
		Loads:   Loads{HLateral: 1200, VAxial: 30000},
		Options: Options{NElements: 30, PileType: axial.Driven, IncludePDelta: true},
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if math.Abs(withPDelta.YGroundLateral) < math.Abs(withoutPDelta.YGroundLateral) {
		t.Fatalf("P-delta under compression should not reduce lateral deflection: without=%g with=%g",
			withoutPDelta.YGroundLateral, withPDelta.YGroundLateral)
	}
}

func TestPushoverLateralStopsAtNonConvergence(t *testing.T) {
	chk.PrintTitle("PushoverLateralStopsAtNonConvergence")
	p := mediumSandProfile(t)
	sec, _ := section.Lookup("C4x5.4")
	res, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 10,
		Loads: Loads{
			HLateral: 3000, LoadType: PushoverLateral,
			PushoverSteps: 10, PushoverMaxMult: 3.0,
		},
		Options: Options{NElements: 25, PileType: axial.Driven},
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if res.PushoverAxis != "lateral" {
		t.Fatalf("expected pushover axis 'lateral', got %q", res.PushoverAxis)
	}
	if len(res.PushoverLoad) == 0 || len(res.PushoverLoad) != len(res.PushoverDisp) {
		t.Fatalf("expected matching non-empty pushover load/disp series, got %d/%d",
			len(res.PushoverLoad), len(res.PushoverDisp))
	}
	if len(res.PushoverLoad) < 10 && res.Converged {
		t.Fatalf("pushover stopped after %d of 10 steps although the last step converged",
			len(res.PushoverLoad))
	}
}

func TestHeadStiffnessIsSymmetricPositiveDiagonal(t *testing.T) {
	chk.PrintTitle("HeadStiffnessIsSymmetricPositiveDiagonal")
	p := mediumSandProfile(t)
	sec, _ := section.Lookup("W8x18")
	res, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 15,
		Loads:   Loads{HLateral: 1000},
		Options: Options{NElements: 30, PileType: axial.Driven},
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if res.KHead[i][i] <= 0 {
			t.Fatalf("K_head[%d][%d] should be positive, got %g", i, i, res.KHead[i][i])
		}
	}
}

func TestBucklingEstimateIsPositive(t *testing.T) {
	chk.PrintTitle("BucklingEstimateIsPositive")
	p := mediumSandProfile(t)
	sec, _ := section.Lookup("W8x18")
	res, err := Solve(Input{
		Profile: p, Section: sec, Embedment: 15,
		Loads:   Loads{HLateral: 500},
		Options: Options{NElements: 30, PileType: axial.Driven},
	})
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if res.PCritical == nil || *res.PCritical <= 0 {
		t.Fatalf("expected a positive buckling estimate, got %v", res.PCritical)
	}
}
