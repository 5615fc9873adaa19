// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycurve

import (
	"math"
	"sort"

	"github.com/jason-orcas/solar-pile-design/internal/perr"
	"github.com/jason-orcas/solar-pile-design/soil"
	"github.com/jason-orcas/solar-pile-design/units"
)

func init() {
	allocators[soil.Loess] = func() Model { return &loess{} }
	allocators[soil.CementedSilt] = func() Model { return &cementedSilt{} }
	allocators[soil.ElasticSubgrade] = func() Model { return &elasticSubgrade{} }
	allocators[soil.UserInput] = func() Model { return &userInput{} }
}

// loess implements model 15: CPT-correlated ultimate resistance with a
// hyperbolic secant-modulus degradation and a near-surface strength
// reduction.
type loess struct {
	pu, cn, ncyc, zOverB float64
}

func (m *loess) Init(ctx *Context) error {
	ncpt := 20.0
	qc := units.PsfToPsi(4000)
	ncyc := 1.0
	cn := 0.3
	if ctx.Params != nil {
		if ctx.Params.NCPT != nil {
			ncpt = *ctx.Params.NCPT
		}
		if ctx.Params.Qc != nil {
			qc = units.PsfToPsi(*ctx.Params.Qc)
		}
		if ctx.Params.Ncyc != nil {
			ncyc = *ctx.Params.Ncyc
		}
		if ctx.Params.Cu2 != nil {
			cn = *ctx.Params.Cu2
		}
	}
	b := ctx.Width
	nu := math.Max(ncyc, 1.0)
	pu := ncpt * qc * b / (1 + cn*math.Log(nu))
	if pu < 0 {
		pu = 0
	}

	m.zOverB = 0.0
	if b > 0 {
		m.zOverB = units.FtToIn(ctx.Depth) / b
	}
	reduction := 1.0
	if m.zOverB < 2 {
		reduction = 0.5 + 0.5*(m.zOverB/2)
	}
	m.pu = pu * reduction
	m.cn = cn
	m.ncyc = nu
	ctx.PUlt = m.pu
	return nil
}

func (m *loess) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	yPrime := ay // normalized secant displacement, y' = y/y_ref with y_ref=1 in absent a calibration curve
	secant := 1.0 / (1.0 + yPrime)
	pMag := m.pu * (1 - secant)
	dpdyMag := m.pu / math.Pow(1+yPrime, 2)
	if pMag > m.pu {
		pMag = m.pu
		dpdyMag = 0
	}
	return sign(y) * pMag, dpdyMag
}

// cementedSilt implements model 16: a four-segment curve blending a
// Reese-sand frictional component and a Matlock-like cohesive component.
type cementedSilt struct {
	frictional reeseSand
	cohesive   matlockClay
	kInit      float64
}

func (m *cementedSilt) Init(ctx *Context) error {
	if err := m.frictional.Init(ctx); err != nil {
		return err
	}
	cohCtx := *ctx
	if err := m.cohesive.Init(&cohCtx); err != nil {
		return err
	}
	kPhi := m.frictional.k
	kC := 0.0
	if ctx.Params != nil && ctx.Params.Cemented && ctx.Params.K != nil {
		kC = *ctx.Params.K
	}
	m.kInit = kPhi + kC
	pUlt := m.frictional.pUlt + m.cohesive.pUlt
	ctx.PUlt = pUlt
	return nil
}

func (m *cementedSilt) Evaluate(y float64) (p, dpdy float64) {
	pF, dF := m.frictional.Evaluate(y)
	pC, dC := m.cohesive.Evaluate(y)
	return pF + pC, dF + dC
}

// elasticSubgrade implements model 17: unbounded linear response.
type elasticSubgrade struct {
	k    float64
	zIn  float64
}

func (m *elasticSubgrade) Init(ctx *Context) error {
	k := 100.0
	if ctx.Params != nil && ctx.Params.K != nil {
		k = *ctx.Params.K
	}
	m.k = k
	m.zIn = units.FtToIn(ctx.Depth)
	ctx.KInitial = k
	ctx.PUlt = math.Inf(1)
	return nil
}

func (m *elasticSubgrade) Evaluate(y float64) (p, dpdy float64) {
	return m.k * m.zIn * y, m.k * m.zIn
}

// userInput implements model 18: piecewise-linear interpolation of a
// caller-supplied (y, p) table, flat extrapolation beyond the last point.
type userInput struct {
	y, p []float64
}

func (m *userInput) Init(ctx *Context) error {
	if ctx.Params == nil || len(ctx.Params.UserY) == 0 || len(ctx.Params.UserY) != len(ctx.Params.UserP) {
		return perr.Invalid("User-Input p-y model requires matching non-empty UserY/UserP")
	}
	pts := make([][2]float64, len(ctx.Params.UserY))
	for i := range ctx.Params.UserY {
		pts[i] = [2]float64{ctx.Params.UserY[i], ctx.Params.UserP[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i][0] < pts[j][0] })
	m.y = make([]float64, len(pts))
	m.p = make([]float64, len(pts))
	for i, pt := range pts {
		m.y[i] = pt[0]
		m.p[i] = pt[1]
	}
	ctx.PUlt = m.p[len(m.p)-1]
	return nil
}

func (m *userInput) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	s := sign(y)
	n := len(m.y)
	if ay <= m.y[0] {
		if m.y[0] <= 0 {
			return 0, 0
		}
		slope := m.p[0] / m.y[0]
		return s * slope * ay, slope
	}
	if ay >= m.y[n-1] {
		return s * m.p[n-1], 0
	}
	for i := 1; i < n; i++ {
		if ay <= m.y[i] {
			y0, y1 := m.y[i-1], m.y[i]
			p0, p1 := m.p[i-1], m.p[i]
			slope := (p1 - p0) / (y1 - y0)
			pMag := p0 + slope*(ay-y0)
			return s * pMag, slope
		}
	}
	return s * m.p[n-1], 0
}
