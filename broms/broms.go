// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package broms is the closed-form Broms (1964) lateral capacity check
// (Component K): short-pile (rigid rotation) and long-pile (structural
// yield) failure modes for a free-head pile in cohesionless or cohesive
// soil, using soil parameters averaged over the top 10 pile widths, with
// the surface layer's type selecting the cohesive or cohesionless check.
package broms

import (
	"fmt"
	"math"

	"github.com/jason-orcas/solar-pile-design/internal/perr"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
)

// FailureMode is the governing Broms failure mechanism.
type FailureMode int

const (
	ShortPile FailureMode = iota // rigid-body rotation
	LongPile                     // structural yield at M_max = M_y
)

func (m FailureMode) String() string {
	if m == ShortPile {
		return "short (rigid body rotation)"
	}
	return "long (structural yield)"
}

// Result is the Broms lateral-capacity check output (spec.md §4.9).
type Result struct {
	Method          string
	HUlt            float64 // lb
	HAllow          float64 // lb, H_ult/FS
	FailureMode     FailureMode
	DepthToMaxMoment float64 // ft
	MMax            float64 // ft-lb
	FS              float64
	Notes           []string
}

// Input is the free-head Broms check request.
type Input struct {
	Profile     *soil.Profile
	Section     section.Section
	Embedment   float64 // ft
	BendingAxis section.Axis
	LeverArm    float64 // ft, load eccentricity above ground
	FS          float64 // default 2.5, per spec.md's H_allow = H_ult/2.5
}

// averagedTopLayer returns whether the surface layer is cohesive, together
// with thickness-weighted averages of phi, gamma and c_u over the part of
// every layer that lies within the top 10*b of the profile, per spec.md
// §4.9. The soil type is always the surface layer's, whatever the types of
// the deeper layers inside 10*b.
func averagedTopLayer(p *soil.Profile, widthIn float64) (cohesive bool, phi, gamma, cu float64) {
	tenB := 10.0 * widthIn / 12.0
	surface, ok := p.LayerAt(0)
	if ok {
		cohesive = surface.Type.IsCohesive()
	}

	var thickSum, phiSum, gammaSum, cuSum float64
	for _, l := range p.Layers {
		lo := math.Max(l.ZTop, 0)
		hi := math.Min(l.ZBottom(), tenB)
		if hi <= lo {
			continue
		}
		w := hi - lo
		mid := (lo + hi) / 2
		thickSum += w
		phiSum += p.Phi(l) * w
		gammaSum += p.Gamma(l, mid) * w
		cuSum += p.CU(l) * w
	}
	if thickSum <= 0 {
		return cohesive, 0, 0, 0
	}
	return cohesive, phiSum / thickSum, gammaSum / thickSum, cuSum / thickSum
}

// bisect finds a root of f in [a, b] assuming f(a) and f(b) have opposite
// signs. Mirrors the small hand-rolled bisection used for the same
// long-pile moment-equilibrium equation elsewhere in this domain: a well-
// conditioned scalar problem with no need for an external numerics call.
func bisect(f func(float64) float64, a, b, tol float64, maxIter int) (float64, bool) {
	fa, fb := f(a), f(b)
	if fa*fb > 0 {
		return 0, false
	}
	for i := 0; i < maxIter; i++ {
		mid := 0.5 * (a + b)
		fm := f(mid)
		if math.Abs(fm) < tol || (b-a) < tol {
			return mid, true
		}
		if fa*fm < 0 {
			b = mid
		} else {
			a, fa = mid, fm
		}
	}
	return 0.5 * (a + b), true
}

// Analyze runs the free-head Broms check, dispatching on the top layer's
// dominant type.
func Analyze(in Input) (*Result, error) {
	if in.Profile == nil || len(in.Profile.Layers) == 0 {
		return nil, perr.Invalid("broms: profile must contain at least one layer")
	}
	if in.Embedment <= 0 {
		return nil, perr.Invalid("broms: embedment must be > 0, got %g", in.Embedment)
	}
	if in.Embedment > in.Profile.TotalDepth()+1e-9 {
		return nil, perr.Invalid("broms: embedment %g exceeds profile depth %g", in.Embedment, in.Profile.TotalDepth())
	}
	fs := in.FS
	if fs <= 0 {
		fs = 2.5
	}
	widthIn := in.Section.Width(in.BendingAxis)
	ei := in.Section.EI(in.BendingAxis)
	my := in.Section.My(in.BendingAxis)

	cohesive, phi, gamma, cu := averagedTopLayer(in.Profile, widthIn)
	if cohesive {
		return bromsCohesive(cu, widthIn, in.Embedment, in.LeverArm, ei, my, fs), nil
	}
	return bromsCohesionless(phi, gamma, widthIn, in.Embedment, in.LeverArm, ei, my, fs), nil
}

// bromsCohesionless is the free-head sand/gravel Broms check.
func bromsCohesionless(phiDeg, gamma, widthIn, embedFt, eFt, ei, myKipIn, fs float64) *Result {
	kp := math.Pow(math.Tan((45+phiDeg/2)*math.Pi/180), 2)
	bFt := widthIn / 12.0
	myFtLb := myKipIn * 1000.0 / 12.0
	denom := kp * gamma * bFt

	var hShort float64
	if embedFt > 0 {
		hShort = 0.5 * kp * gamma * bFt * embedFt * embedFt / (1 + eFt/embedFt)
	}

	momentEq := func(h float64) float64 {
		if h <= 0 {
			return -myFtLb
		}
		f := 0.0
		if denom > 0 {
			f = math.Sqrt(h / denom)
		}
		return h*(eFt+0.67*f) - myFtLb
	}
	hLong := math.Inf(1)
	if root, ok := bisect(momentEq, 0.1, 5.0e5, 1e-8, 200); ok {
		hLong = root
	}

	var hUlt float64
	var mode FailureMode
	if hShort < hLong {
		hUlt, mode = hShort, ShortPile
	} else {
		hUlt, mode = hLong, LongPile
	}
	depthMaxM := 0.0
	if denom > 0 {
		depthMaxM = math.Sqrt(hUlt / denom)
	}
	mMax := hUlt * (eFt + 0.67*depthMaxM)

	return &Result{
		Method:           "Broms - Cohesionless",
		HUlt:             hUlt,
		HAllow:           hUlt / fs,
		FailureMode:      mode,
		DepthToMaxMoment: depthMaxM,
		MMax:             mMax,
		FS:               fs,
		Notes: []string{
			fmt.Sprintf("broms: K_p = %.2f", kp),
			fmt.Sprintf("broms: short pile H_ult = %.0f lb", hShort),
			fmt.Sprintf("broms: long pile H_ult = %.0f lb", hLong),
			"broms: governing mode is " + mode.String(),
		},
	}
}

// bromsCohesive is the free-head clay Broms check. The long-pile branch
// solves a quadratic in H (M_max = H*(e + 1.5*b + 0.5*H/(9*c_u*b)) = M_y)
// in closed form, so no bisection is needed here.
func bromsCohesive(cu, widthIn, embedFt, eFt, ei, myKipIn, fs float64) *Result {
	bFt := widthIn / 12.0
	myFtLb := myKipIn * 1000.0 / 12.0

	lEff := embedFt - 1.5*bFt
	var hShort float64
	if lEff > 0 {
		hShort = 9.0 * cu * bFt * lEff / (2.0 * (1.0 + 1.5*eFt/embedFt))
	}

	denom := 9.0 * cu * bFt
	hLong := math.Inf(1)
	if denom > 0 {
		a := 0.5 / denom
		b := eFt + 1.5*bFt
		c := -myFtLb
		disc := b*b - 4*a*c
		if disc >= 0 {
			hLong = (-b + math.Sqrt(disc)) / (2 * a)
		}
	}

	var hUlt float64
	var mode FailureMode
	if hShort < hLong {
		hUlt, mode = hShort, ShortPile
	} else {
		hUlt, mode = hLong, LongPile
	}
	f := 0.0
	if denom > 0 {
		f = hUlt / denom
	}
	mMax := hUlt * (eFt + 1.5*bFt + 0.5*f)

	return &Result{
		Method:           "Broms - Cohesive",
		HUlt:             hUlt,
		HAllow:           hUlt / fs,
		FailureMode:      mode,
		DepthToMaxMoment: 1.5*bFt + f,
		MMax:             mMax,
		FS:               fs,
		Notes: []string{
			fmt.Sprintf("broms: c_u = %.0f psf", cu),
			fmt.Sprintf("broms: short pile H_ult = %.0f lb", hShort),
			fmt.Sprintf("broms: long pile H_ult = %.0f lb", hLong),
			"broms: governing mode is " + mode.String(),
		},
	}
}
