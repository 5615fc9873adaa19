// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pile

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jason-orcas/solar-pile-design/axial"
	"github.com/jason-orcas/solar-pile-design/bnwf"
	"github.com/jason-orcas/solar-pile-design/lateral"
	"github.com/jason-orcas/solar-pile-design/loads"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
)

func nspt(v float64) *float64 { return &v }

// mediumSandProfile is seed scenario S1's soil profile: uniform medium
// sand, N_spt=15.
func mediumSandProfile(t *testing.T) *soil.Profile {
	t.Helper()
	p, err := soil.NewProfile([]soil.Layer{
		{ZTop: 0, Thickness: 25, Type: soil.Sand, NSPT: nspt(15)},
	})
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	return p
}

func w6x9(t *testing.T) section.Section {
	t.Helper()
	s, ok := section.Lookup("W6x9")
	if !ok {
		t.Fatalf("W6x9 not in catalogue")
	}
	return s
}

func TestSeedScenarioS1LateralAnalysis(t *testing.T) {
	chk.PrintTitle("SeedScenarioS1LateralAnalysis")
	res, err := LateralAnalysis(LateralAnalysisRequest{
		Profile: mediumSandProfile(t), Section: w6x9(t), Embedment: 10,
		BendingAxis: section.Strong, H: 1500, MGround: 6000, HeadCond: lateral.Free,
	})
	if err != nil {
		t.Fatalf("lateral analysis error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("expected convergence")
	}
	if res.YGround < 0.01 || res.YGround > 0.5 {
		t.Fatalf("y_ground=%g in ranges tested loosely; sanity bound violated", res.YGround)
	}
}

func TestSeedScenarioS2AxialCapacity(t *testing.T) {
	chk.PrintTitle("SeedScenarioS2AxialCapacity")
	res, err := AxialCapacity(AxialCapacityRequest{
		Profile: mediumSandProfile(t), Section: w6x9(t), Embedment: 10,
		PileType: axial.Driven, Method: axial.AutoMethod, FSc: 2.5, FSt: 3.0,
	})
	if err != nil {
		t.Fatalf("axial capacity error: %v", err)
	}
	if res.QAllowC != res.QUltCompression/2.5 {
		t.Fatalf("expected Q_allow_c = Q_ult_c/2.5, got %g vs %g/2.5", res.QAllowC, res.QUltCompression)
	}
	if res.QUltTension > res.QUltCompression {
		t.Fatalf("tension capacity should never exceed compression capacity")
	}
}

func TestBNWFAnalysisComposesAxialAndLateralSprings(t *testing.T) {
	chk.PrintTitle("BNWFAnalysisComposesAxialAndLateralSprings")
	res, err := BNWFAnalysis(BNWFAnalysisRequest{
		Profile: mediumSandProfile(t), Section: w6x9(t), Embedment: 10,
		VAxial: 3000, HLateral: 1500, MGround: 6000,
		BendingAxis: section.Strong, Mode: bnwf.Static,
	})
	if err != nil {
		t.Fatalf("bnwf analysis error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("expected convergence")
	}
}

func TestGroupAnalysisDerivesPileWidthFromSection(t *testing.T) {
	chk.PrintTitle("GroupAnalysisDerivesPileWidthFromSection")
	cu := 1200.0
	p, err := soil.NewProfile([]soil.Layer{{ZTop: 0, Thickness: 12, Type: soil.Clay, CU: &cu}})
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	res, err := GroupAnalysis(GroupAnalysisRequest{
		Profile: p, Section: w6x9(t), BendingAxis: section.Strong, Embedment: 12,
		NRows: 2, NCols: 2, SpacingIn: 36, QSingleCompression: 50000,
	})
	if err != nil {
		t.Fatalf("group analysis error: %v", err)
	}
	if res.EtaAxial < 0.85 || res.EtaAxial > 0.95 {
		t.Fatalf("expected eta near 0.90 for s/d=6, got %g", res.EtaAxial)
	}
}

func TestBromsLateralComposesWithSectionAndProfile(t *testing.T) {
	chk.PrintTitle("BromsLateralComposesWithSectionAndProfile")
	res, err := BromsLateral(BromsLateralRequest{
		Profile: mediumSandProfile(t), Section: w6x9(t), Embedment: 10,
		BendingAxis: section.Strong, LeverArm: 2,
	})
	if err != nil {
		t.Fatalf("broms lateral error: %v", err)
	}
	if res.HUlt <= 0 {
		t.Fatalf("expected a positive H_ult")
	}
}

func TestLoadCombinationsSeedScenarioS5(t *testing.T) {
	chk.PrintTitle("LoadCombinationsSeedScenarioS5")
	r := LoadCombinations(loads.Input{
		Dead: 400, WindUp: 1500, WindLateral: 1500, LeverArm: 4,
	}, Both)
	if len(r.LRFD) != 7 || len(r.ASD) != 10 {
		t.Fatalf("expected 7 LRFD and 10 ASD cases, got %d and %d", len(r.LRFD), len(r.ASD))
	}
}
