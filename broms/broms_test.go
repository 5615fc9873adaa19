// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broms

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
)

func nspt(v float64) *float64 { return &v }
func cuVal(v float64) *float64 { return &v }

func sandProfile(t *testing.T) *soil.Profile {
	t.Helper()
	p, err := soil.NewProfile([]soil.Layer{
		{ZTop: 0, Thickness: 25, Type: soil.Sand, NSPT: nspt(15)},
	})
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	return p
}

func clayProfile(t *testing.T) *soil.Profile {
	t.Helper()
	p, err := soil.NewProfile([]soil.Layer{
		{ZTop: 0, Thickness: 20, Type: soil.Clay, CU: cuVal(800)},
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

func TestSandProfileDispatchesToCohesionless(t *testing.T) {
	chk.PrintTitle("SandProfileDispatchesToCohesionless")
	res, err := Analyze(Input{
		Profile: sandProfile(t), Section: w6x9(t), Embedment: 10,
		BendingAxis: section.Strong, LeverArm: 2,
	})
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if res.Method != "Broms - Cohesionless" {
		t.Fatalf("expected cohesionless method, got %q", res.Method)
	}
	if res.HUlt <= 0 {
		t.Fatalf("expected a positive H_ult, got %g", res.HUlt)
	}
	if res.HAllow != res.HUlt/2.5 {
		t.Fatalf("expected default FS=2.5, got H_allow=%g H_ult=%g", res.HAllow, res.HUlt)
	}
}

func TestClayProfileDispatchesToCohesive(t *testing.T) {
	chk.PrintTitle("ClayProfileDispatchesToCohesive")
	res, err := Analyze(Input{
		Profile: clayProfile(t), Section: w6x9(t), Embedment: 10,
		BendingAxis: section.Strong, LeverArm: 2,
	})
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if res.Method != "Broms - Cohesive" {
		t.Fatalf("expected cohesive method, got %q", res.Method)
	}
	if res.HUlt <= 0 {
		t.Fatalf("expected a positive H_ult, got %g", res.HUlt)
	}
}

func TestShallowEmbedmentGivesShortPileFailure(t *testing.T) {
	chk.PrintTitle("ShallowEmbedmentGivesShortPileFailure")
	res, err := Analyze(Input{
		Profile: sandProfile(t), Section: w6x9(t), Embedment: 3,
		BendingAxis: section.Strong, LeverArm: 2,
	})
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if res.FailureMode != ShortPile {
		t.Fatalf("expected a shallow, stubby pile to fail by rigid rotation, got %v", res.FailureMode)
	}
}

func TestDeepEmbedmentGivesLongPileFailure(t *testing.T) {
	chk.PrintTitle("DeepEmbedmentGivesLongPileFailure")
	res, err := Analyze(Input{
		Profile: sandProfile(t), Section: w6x9(t), Embedment: 25,
		BendingAxis: section.Strong, LeverArm: 2,
	})
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if res.FailureMode != LongPile {
		t.Fatalf("expected a long, slender pile to fail structurally, got %v", res.FailureMode)
	}
}

func TestEmbedmentExceedingProfileDepthIsInvalid(t *testing.T) {
	chk.PrintTitle("EmbedmentExceedingProfileDepthIsInvalid")
	_, err := Analyze(Input{
		Profile: sandProfile(t), Section: w6x9(t), Embedment: 100,
		BendingAxis: section.Strong,
	})
	if err == nil {
		t.Fatalf("expected an error for embedment exceeding profile depth")
	}
}

func TestBisectionRootSatisfiesFunction(t *testing.T) {
	chk.PrintTitle("BisectionRootSatisfiesFunction")
	root, ok := bisect(func(x float64) float64 { return x*x - 4 }, 0, 10, 1e-9, 100)
	if !ok {
		t.Fatalf("expected a bracketed root")
	}
	chk.Float64(t, "root", 1e-4, root, 2.0)
}
