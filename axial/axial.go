// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axial is the axial capacity kernel (Component F): alpha, beta,
// and Meyerhof skin-friction methods, layered summation, end bearing, and
// tension reduction, plus FS/phi wrapping to ASD/LRFD capacities.
package axial

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/internal/perr"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
	"github.com/jason-orcas/solar-pile-design/units"
)

// Method selects the skin-friction formulation.
type Method int

const (
	AutoMethod Method = iota
	Alpha
	Beta
	Meyerhof
)

// PileType drives the LRFD resistance factor table and the beta method's
// K_s ratio.
type PileType int

const (
	Driven PileType = iota
	Helical
	Drilled
)

// LayerContribution records one layer's skin-friction increment.
type LayerContribution struct {
	ZMid   float64 // ft
	Method Method
	Fs     float64 // psf
	DeltaQ float64 // lb
}

// Result is the axial capacity kernel's output record.
type Result struct {
	QUltCompression float64
	QUltTension     float64
	QAllowC         float64
	QAllowT         float64
	PhiQnC          float64 // LRFD factored compression resistance
	PhiQnT          float64
	Qs              float64
	Qb              float64
	Layers          []LayerContribution
	Notes           []string
}

// meyerhofNq is the Meyerhof bearing-capacity factor table, interpolated
// in friction angle.
var meyerhofNq = []struct{ phi, nq float64 }{
	{20, 8}, {25, 12.5}, {28, 20}, {30, 30}, {32, 40},
	{34, 52}, {36, 65}, {38, 85}, {40, 115}, {42, 145}, {45, 200},
}

func interpNq(phi float64) float64 {
	if phi <= meyerhofNq[0].phi {
		return meyerhofNq[0].nq
	}
	last := meyerhofNq[len(meyerhofNq)-1]
	if phi >= last.phi {
		return last.nq
	}
	for i := 1; i < len(meyerhofNq); i++ {
		if phi <= meyerhofNq[i].phi {
			lo, hi := meyerhofNq[i-1], meyerhofNq[i]
			t := (phi - lo.phi) / (hi.phi - lo.phi)
			return lo.nq + t*(hi.nq-lo.nq)
		}
	}
	return last.nq
}

// meyerhofQbLimit caps end bearing pressure for cohesionless soils by
// friction angle (psf).
var meyerhofQbLimit = []struct{ phi, limit float64 }{
	{28, 40000}, {30, 60000}, {34, 80000}, {36, 100000}, {40, 120000},
}

func interpQbLimit(phi float64) float64 {
	if phi <= meyerhofQbLimit[0].phi {
		return meyerhofQbLimit[0].limit
	}
	last := meyerhofQbLimit[len(meyerhofQbLimit)-1]
	if phi >= last.phi {
		return last.limit
	}
	for i := 1; i < len(meyerhofQbLimit); i++ {
		if phi <= meyerhofQbLimit[i].phi {
			lo, hi := meyerhofQbLimit[i-1], meyerhofQbLimit[i]
			t := (phi - lo.phi) / (hi.phi - lo.phi)
			return lo.limit + t*(hi.limit-lo.limit)
		}
	}
	return last.limit
}

// alphaFactor is the API adhesion factor for the alpha method:
// psi = c_u/sigma'_v; psi<=1 -> 0.5*psi^-0.5, psi>1 -> 0.5*psi^-0.25,
// capped to [0.25, 1.0].
func alphaFactor(cuPsf, sigmaVpPsf float64) float64 {
	if sigmaVpPsf < units.SigmaVFloor {
		sigmaVpPsf = units.SigmaVFloor
	}
	psi := cuPsf / sigmaVpPsf
	var alpha float64
	if psi <= 1 {
		alpha = 0.5 * math.Pow(psi, -0.5)
	} else {
		alpha = 0.5 * math.Pow(psi, -0.25)
	}
	if alpha > 1.0 {
		alpha = 1.0
	}
	if alpha < 0.25 {
		alpha = 0.25
	}
	return alpha
}

// ksRatio is the beta-method K_s/K_0 ratio by installation method (driven
// displacement piles densify the surrounding soil more than drilled
// shafts).
func ksRatio(pt PileType) float64 {
	switch pt {
	case Driven:
		return 1.0
	case Helical:
		return 1.0
	case Drilled:
		return 0.7
	default:
		return 1.0
	}
}

// betaCoefficient computes beta = K_s*tan(delta) for the effective-stress
// method: K0 = 1-sin(phi) (OCR=1 assumed absent an OCR input), delta =
// 0.7*phi for smooth steel piles.
func betaCoefficient(phi float64, pt PileType) float64 {
	phiRad := phi * math.Pi / 180
	k0 := 1 - math.Sin(phiRad)
	ks := ksRatio(pt) * k0
	delta := 0.7 * phiRad
	return ks * math.Tan(delta)
}

// AlphaFactor exposes alphaFactor for callers (bnwf's t-z spring
// generation) that need the same adhesion factor outside a full
// Capacity run.
func AlphaFactor(cuPsf, sigmaVpPsf float64) float64 { return alphaFactor(cuPsf, sigmaVpPsf) }

// BetaCoefficient exposes betaCoefficient for the same reason.
func BetaCoefficient(phi float64, pt PileType) float64 { return betaCoefficient(phi, pt) }

// Input bundles the request parameters for axial_capacity.
type Input struct {
	Profile   *soil.Profile
	Section   section.Section
	Embedment float64 // ft
	PileType  PileType
	Method    Method
	FSc, FSt  float64 // default 2.5, 3.0
	Cyclic    bool
	NumSlices int // discretization count, default 200
}

// lrfdPhi returns the LRFD resistance factors (compression, tension) by
// pile type, per spec.md §4.5.
func lrfdPhi(pt PileType) (phiC, phiT float64) {
	switch pt {
	case Driven:
		return 0.45, 0.35
	case Helical:
		return 0.50, 0.50
	case Drilled:
		return 0.40, 0.30
	default:
		return 0.45, 0.35
	}
}

// Capacity runs the axial capacity kernel (spec.md §4.5, entry point 1).
func Capacity(in Input) (*Result, error) {
	if in.Profile == nil {
		return nil, perr.Invalid("axial: profile is required")
	}
	if in.Embedment <= 0 {
		return nil, perr.Invalid("axial: embedment must be > 0, got %g", in.Embedment)
	}
	if in.Embedment > in.Profile.TotalDepth()+1e-6 {
		return nil, perr.Invalid("axial: embedment %g exceeds profile depth %g", in.Embedment, in.Profile.TotalDepth())
	}
	fsC, fsT := in.FSc, in.FSt
	if fsC <= 0 {
		fsC = 2.5
	}
	if fsT <= 0 {
		fsT = 3.0
	}
	n := in.NumSlices
	if n <= 0 {
		n = 200
	}

	res := &Result{}
	dz := in.Embedment / float64(n)
	perim := in.Section.Perimeter()

	autoUsed := false
	capSaturated := false

	for i := 0; i < n; i++ {
		zTop := float64(i) * dz
		zMid := zTop + dz/2
		layer, ok := in.Profile.LayerAt(zMid)
		if !ok {
			continue
		}
		method := in.Method
		if method == AutoMethod {
			autoUsed = true
			if layer.Type.IsCohesive() {
				method = Alpha
			} else {
				method = Beta
			}
		}

		_, sigmaVp := in.Profile.StressAt(zMid)
		cu := in.Profile.CU(layer)
		phi := in.Profile.Phi(layer)
		n60 := in.Profile.N60(layer)

		var fs float64
		switch method {
		case Alpha:
			alpha := alphaFactor(cu, sigmaVp)
			fs = alpha * cu
		case Beta:
			beta := betaCoefficient(phi, in.PileType)
			fs = beta * sigmaVp
		case Meyerhof:
			if !layer.Type.IsCohesive() {
				fs = 2 * n60
				cap := 2000.0
				if layer.Type == soil.Silt {
					cap = 1200.0
				}
				if fs > cap {
					fs = cap
					capSaturated = true
				}
			}
		}

		deltaQ := units.PsfToPsi(fs) * perim * (dz * 12.0) // psi * in * in = lb
		res.Layers = append(res.Layers, LayerContribution{ZMid: zMid, Method: method, Fs: fs, DeltaQ: deltaQ})
		res.Qs += deltaQ
	}

	toeLayer, ok := in.Profile.LayerAt(in.Embedment)
	if !ok && len(in.Profile.Layers) > 0 {
		toeLayer = in.Profile.Layers[len(in.Profile.Layers)-1]
	}
	_, sigmaVpToe := in.Profile.StressAt(in.Embedment)
	cuToe := in.Profile.CU(toeLayer)
	phiToe := in.Profile.Phi(toeLayer)
	tipArea := in.Section.TipArea()

	var qb float64
	if toeLayer.Type.IsCohesive() {
		nc := math.Min(6*(1+0.2*in.Embedment*12/in.Section.Width(0)), 9)
		qb = nc * units.PsfToPsi(cuToe) * tipArea
	} else {
		nq := interpNq(phiToe)
		qCand := nq * sigmaVpToe
		limit := interpQbLimit(phiToe)
		q := math.Min(qCand, limit)
		if qCand > limit {
			capSaturated = true
		}
		qb = units.PsfToPsi(q) * tipArea
	}
	res.Qb = qb

	res.QUltCompression = res.Qs + res.Qb
	res.QUltTension = 0.75 * res.Qs
	res.QAllowC = res.QUltCompression / fsC
	res.QAllowT = res.QUltTension / fsT

	phiC, phiT := lrfdPhi(in.PileType)
	res.PhiQnC = phiC * res.QUltCompression
	res.PhiQnT = phiT * res.QUltTension

	if autoUsed {
		res.Notes = append(res.Notes, "axial: AUTO method resolved per-layer by soil type")
	}
	if capSaturated {
		res.Notes = append(res.Notes, "axial: at least one layer's skin friction or end bearing hit its formulation cap")
	}
	return res, nil
}
