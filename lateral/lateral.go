// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lateral is the fourth-order finite-difference beam-on-nonlinear-
// Winkler-foundation solver (Component G): iterative secant updating of a
// banded system built from the p-y curve library.
package lateral

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/jason-orcas/solar-pile-design/internal/perr"
	"github.com/jason-orcas/solar-pile-design/pycurve"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
	"github.com/jason-orcas/solar-pile-design/units"
)

// HeadCondition selects the pile-head boundary condition.
type HeadCondition int

const (
	Free HeadCondition = iota
	Fixed
)

// Signal is a caller-supplied cancellation token, polled between
// iterations. A nil Signal is treated as never-cancelled.
type Signal func() bool

// Input bundles the request parameters for lateral_analysis.
type Input struct {
	Profile      *soil.Profile
	Section      section.Section
	Embedment    float64 // ft
	BendingAxis  section.Axis
	H            float64 // lb, applied shear at ground line
	MGround      float64 // ft-lb, applied moment at ground line
	HeadCond     HeadCondition
	Cyclic       bool
	NElements    int // default 100
	MaxIter      int // default 200
	Tol          float64 // default 1e-4
	Cancel       Signal
}

// SampledCurve is one representative p-y curve captured for reporting.
type SampledCurve struct {
	DepthFt float64
	Y       []float64
	P       []float64
	PUlt    float64
}

// Result is the lateral solver's output record (spec.md §3 LateralResult).
type Result struct {
	DepthFt          []float64
	Deflection       []float64 // in
	Slope            []float64 // rad
	Moment           []float64 // ft-lb
	Shear            []float64 // lb
	SoilReaction     []float64 // lb/in

	YGround          float64
	MMax             float64
	DepthMMax        float64
	DepthZeroDefl    float64
	DCR              float64

	PYCurves []SampledCurve

	Converged  bool
	Iterations int
	Notes      []string
}

// Solve runs the lateral FDM solver (spec.md §4.6, entry point 2).
func Solve(in Input) (*Result, error) {
	if in.Profile == nil {
		return nil, perr.Invalid("lateral: profile is required")
	}
	if in.Embedment <= 0 {
		return nil, perr.Invalid("lateral: embedment must be > 0, got %g", in.Embedment)
	}
	nElem := in.NElements
	if nElem <= 0 {
		nElem = 100
	}
	if nElem < 3 {
		return nil, perr.Degenerate("lateral: n_elements=%d gives fewer than four nodes", nElem)
	}
	maxIter := in.MaxIter
	if maxIter <= 0 {
		maxIter = 200
	}
	tol := in.Tol
	if tol <= 0 {
		tol = 1e-4
	}

	ei := in.Section.EI(in.BendingAxis)
	width := in.Section.Width(in.BendingAxis)
	if ei <= 0 && width <= 0 {
		return nil, perr.SingularErr("lateral: EI=0 and pile width=0, system is degenerate")
	}

	lIn := units.FtToIn(in.Embedment)
	nNodes := nElem + 1
	dz := lIn / float64(nElem)

	notes := []string{}

	// Precompute a p-y Model at each node, per spec.md §4.6's tie-break
	// (node exactly on a layer boundary uses the upper layer). LayerAt
	// resolves a boundary depth to the deeper layer, so a boundary node's
	// curve is built just above the boundary instead.
	models := make([]pycurve.Model, nNodes)
	pUlt := make([]float64, nNodes)
	for i := 0; i < nNodes; i++ {
		zFt := units.InToFt(float64(i) * dz)
		if zFt <= 0.001 {
			continue // no soil resistance right at the ground surface node
		}
		zCurve := zFt
		if l, ok := in.Profile.LayerAt(zFt); ok && l.ZTop > 0 && math.Abs(zFt-l.ZTop) <= 1e-9 {
			zCurve = l.ZTop - 2e-9
		}
		ctx, tag, err := pycurve.BuildContext(in.Profile, zCurve, width, in.Cyclic)
		if err != nil {
			return nil, err
		}
		m, err := pycurve.New(tag, ctx)
		if err != nil {
			return nil, err
		}
		models[i] = m
		pUlt[i] = ctx.PUlt
	}

	// Initial secant stiffness from each curve's small-strain slope.
	kSoil := make([]float64, nNodes)
	floorHit := false
	for i, m := range models {
		if m == nil {
			continue
		}
		ySmall := 0.01
		pSmall, _ := m.Evaluate(ySmall)
		if ySmall < units.YFloor {
			ySmall = units.YFloor
			floorHit = true
		}
		kSoil[i] = pSmall / ySmall
	}

	y := make([]float64, nNodes)
	converged := false
	iterations := 0

	for iter := 0; iter < maxIter; iter++ {
		if in.Cancel != nil && in.Cancel() {
			notes = append(notes, "lateral: cancelled by caller before convergence")
			return &Result{
				DepthFt: depthGrid(nNodes, dz), Deflection: y,
				Converged: false, Iterations: iterations, Notes: notes,
			}, nil
		}

		K := la.MatAlloc(nNodes, nNodes)
		F := make([]float64, nNodes)

		coeff4 := ei / math.Pow(dz, 4)
		for i := 2; i < nNodes-2; i++ {
			K[i][i-2] += coeff4
			K[i][i-1] += -4 * coeff4
			K[i][i] += 6*coeff4 + kSoil[i]
			K[i][i+1] += -4 * coeff4
			K[i][i+2] += coeff4
		}

		coeffS := ei / math.Pow(dz, 3)
		coeffM := ei / (dz * dz)

		switch in.HeadCond {
		case Free:
			K[0][0] = -coeffS
			K[0][1] = 3 * coeffS
			K[0][2] = -3 * coeffS
			K[0][3] = coeffS
			F[0] = in.H

			K[1][0] = coeffM
			K[1][1] = -2 * coeffM
			K[1][2] = coeffM
			F[1] = in.MGround * 12.0
		case Fixed:
			K[0][0] = -coeffS
			K[0][1] = 3 * coeffS
			K[0][2] = -3 * coeffS
			K[0][3] = coeffS
			F[0] = in.H

			K[1][0] = 1.0
			K[1][1] = -1.0
			F[1] = 0.0
		}

		n := nNodes
		K[n-2][n-3] = coeffM
		K[n-2][n-2] = -2 * coeffM
		K[n-2][n-1] = coeffM
		F[n-2] = 0.0

		K[n-1][n-4] = -coeffS
		K[n-1][n-3] = 3 * coeffS
		K[n-1][n-2] = -3 * coeffS
		K[n-1][n-1] = coeffS
		F[n-1] = 0.0

		yNew, err := solveDense(K, F)
		if err != nil {
			return nil, perr.SingularErr("lateral: %v", err)
		}

		if iter > 0 {
			maxY := 1e-10
			for _, v := range yNew {
				if math.Abs(v) > maxY {
					maxY = math.Abs(v)
				}
			}
			change := 0.0
			for i := range yNew {
				d := math.Abs(yNew[i] - y[i])
				if d > change {
					change = d
				}
			}
			change /= maxY
			if change < tol {
				converged = true
				y = yNew
				iterations = iter + 1
				break
			}
		}
		y = yNew

		for i, m := range models {
			if m == nil || math.Abs(y[i]) < units.YFloor {
				kSoil[i] = 0
				continue
			}
			p, _ := m.Evaluate(y[i])
			kSoil[i] = p / y[i]
		}
		iterations = iter + 1
	}

	if !converged {
		notes = append(notes, "lateral: did not converge within iteration budget")
	}
	if floorHit {
		notes = append(notes, "lateral: y_floor guard applied to at least one initial-stiffness evaluation")
	}

	moment := make([]float64, nNodes)
	for i := 1; i < nNodes-1; i++ {
		moment[i] = ei * (y[i-1] - 2*y[i] + y[i+1]) / (dz * dz) / 12.0 // in-lb -> ft-lb
	}

	shear := make([]float64, nNodes)
	momentInLb := make([]float64, nNodes)
	for i := range moment {
		momentInLb[i] = moment[i] * 12.0
	}
	for i := 1; i < nNodes-1; i++ {
		shear[i] = (momentInLb[i+1] - momentInLb[i-1]) / (2 * dz)
	}
	shear[0] = in.H

	soilReaction := make([]float64, nNodes)
	for i := range soilReaction {
		soilReaction[i] = kSoil[i] * y[i]
	}

	slope := make([]float64, nNodes)
	for i := 1; i < nNodes-1; i++ {
		slope[i] = (y[i+1] - y[i-1]) / (2 * dz)
	}

	depthFt := depthGrid(nNodes, dz)

	mMaxIdx := 0
	for i, m := range moment {
		if math.Abs(m) > math.Abs(moment[mMaxIdx]) {
			mMaxIdx = i
		}
	}

	depthZero := in.Embedment
	for i := 1; i < nNodes; i++ {
		if math.Signbit(y[i-1]) != math.Signbit(y[i]) {
			depthZero = depthFt[i]
			break
		}
	}

	dcr := 0.0
	my := in.Section.My(in.BendingAxis)
	if my > 0 {
		dcr = math.Abs(moment[mMaxIdx]*12.0) / (my * 1000) // My in kip-in -> lb-in
	}

	sampled := sampleCurves(in.Profile, width, in.Embedment, in.Cyclic)

	return &Result{
		DepthFt:       depthFt,
		Deflection:    y,
		Slope:         slope,
		Moment:        moment,
		Shear:         shear,
		SoilReaction:  soilReaction,
		YGround:       y[0],
		MMax:          moment[mMaxIdx],
		DepthMMax:     depthFt[mMaxIdx],
		DepthZeroDefl: depthZero,
		DCR:           dcr,
		PYCurves:      sampled,
		Converged:     converged,
		Iterations:    iterations,
		Notes:         notes,
	}, nil
}

func depthGrid(nNodes int, dzIn float64) []float64 {
	g := make([]float64, nNodes)
	for i := range g {
		g[i] = units.InToFt(float64(i) * dzIn)
	}
	return g
}

func sampleCurves(p *soil.Profile, width, embedment float64, cyclic bool) []SampledCurve {
	var out []SampledCurve
	for _, d := range []float64{1, 3, 5, 8, 10} {
		if d >= embedment {
			continue
		}
		ctx, tag, err := pycurve.BuildContext(p, d, width, cyclic)
		if err != nil {
			continue
		}
		m, err := pycurve.New(tag, ctx)
		if err != nil {
			continue
		}
		ys := make([]float64, 0, 20)
		ps := make([]float64, 0, 20)
		yMax := 16 * math.Max(ctx.Y50, 0.5)
		for i := 0; i <= 19; i++ {
			y := yMax * float64(i) / 19
			pv, _ := m.Evaluate(y)
			ys = append(ys, y)
			ps = append(ps, pv)
		}
		out = append(out, SampledCurve{DepthFt: d, Y: ys, P: ps, PUlt: ctx.PUlt})
	}
	return out
}

// solveDense solves K*y = F via Gaussian elimination with partial
// pivoting. The lateral system is small (n_nodes ~ 100) and banded, but
// dense elimination keeps the solver free of an external sparse-factor
// dependency the pack does not carry (see DESIGN.md).
func solveDense(K [][]float64, F []float64) ([]float64, error) {
	n := len(F)
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n+1)
		copy(a[i], K[i])
		a[i][n] = F[i]
	}
	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(a[col][col])
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > best {
				best = math.Abs(a[r][col])
				pivot = r
			}
		}
		if best < 1e-14 {
			return nil, errSingular
		}
		a[col], a[pivot] = a[pivot], a[col]
		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := a[i][n]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * x[j]
		}
		x[i] = sum / a[i][i]
	}
	return x, nil
}

type solverError string

func (e solverError) Error() string { return string(e) }

const errSingular = solverError("matrix is singular to working precision")
