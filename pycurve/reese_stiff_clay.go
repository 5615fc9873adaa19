// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycurve

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/soil"
	"github.com/jason-orcas/solar-pile-design/units"
)

func init() {
	allocators[soil.ReeseStiffClayFreeWater] = func() Model { return &reeseStiffClayFreeWater{} }
}

// asTable is the Reese (1975) stiff-clay-with-free-water empirical
// coefficient A_s, tabulated against normalized depth z/b.
var asTable = []struct{ zOverB, as float64 }{
	{0.0, 2.50}, {1.0, 2.15}, {2.0, 1.90}, {3.0, 1.70},
	{4.0, 1.55}, {5.0, 1.40}, {8.0, 1.05}, {12.0, 0.88},
}

func asOf(zOverB float64) float64 {
	if zOverB <= asTable[0].zOverB {
		return asTable[0].as
	}
	last := asTable[len(asTable)-1]
	if zOverB >= last.zOverB {
		return last.as
	}
	for i := 1; i < len(asTable); i++ {
		if zOverB <= asTable[i].zOverB {
			lo, hi := asTable[i-1], asTable[i]
			t := (zOverB - lo.zOverB) / (hi.zOverB - lo.zOverB)
			return lo.as + t*(hi.as-lo.as)
		}
	}
	return last.as
}

// reeseStiffClayFreeWater implements model 3: four segments (initial
// linear, parabolic, linear unloading, residual plateau) per Reese et al.
// (1975), stiff clay with free water present.
type reeseStiffClayFreeWater struct {
	ctx      *Context
	pc       float64
	y50      float64
	k        float64
	as       float64
	zOverB   float64
	yk       float64 // y at end of initial linear segment (intersection with parabola)
	yUnload  float64 // y at end of parabolic segment, start of unloading
	slopeU   float64 // slope of the unloading segment
	pAtY50x6 float64
	residual float64
}

func (m *reeseStiffClayFreeWater) Init(ctx *Context) error {
	m.ctx = ctx
	b := ctx.Width
	cuPsi := units.PsfToPsi(ctx.CU)
	gammaPci := units.PcfToPci(ctx.Gamma)
	zIn := units.FtToIn(ctx.Depth)

	pCa := (2*cuPsi + gammaPci*zIn + 2.83*cuPsi*zIn/b) * b
	pCb := 11 * cuPsi * b
	m.pc = math.Min(pCa, pCb)
	if m.pc < 0 {
		m.pc = 0
	}

	eps50 := epsilon50Default(ctx.CU)
	if ctx.Params != nil && ctx.Params.Epsilon50 != nil {
		eps50 = *ctx.Params.Epsilon50
	}
	m.y50 = 2.5 * eps50 * b
	if m.y50 < units.YFloor {
		m.y50 = units.YFloor
	}

	k := 400.0 // lb/in^3 initial modulus, absent a stiff-clay-specific k table
	if ctx.Params != nil && ctx.Params.K != nil {
		k = *ctx.Params.K
	}
	m.k = k

	m.zOverB = 0.0
	if b > 0 {
		m.zOverB = ctx.Depth * 12.0 / b // z/b with z in inches, consistent ratio
	}
	m.as = asOf(m.zOverB)

	// Intersection of the initial linear branch k*y with the parabola
	// 0.5*pc*(y/y50)^0.5: k*y = 0.5*pc*(y/y50)^0.5 => solve for y.
	if k > 0 && m.pc > 0 {
		c := 0.5 * m.pc / math.Sqrt(m.y50)
		// k*y = c*sqrt(y) => y = (c/k)^2
		m.yk = math.Pow(c/k, 2)
	}
	// The parabola is valid to y = A_s*y50 (Reese's transition point),
	// after which the unloading line runs to the residual plateau at
	// y = 6*y50.
	m.yUnload = m.as * m.y50
	pAtUnload := 0.5 * m.pc * math.Sqrt(m.yUnload/m.y50)
	m.pAtY50x6 = pAtUnload

	zOverBClip := m.zOverB
	if zOverBClip > 1.633 { // 1.225-0.75*z/b reaches 0 here; the 0.225 floor below already governs from z/b = 1.333
		zOverBClip = 1.633
	}
	m.residual = 0.5 * m.pc * math.Max(1.225-0.75*zOverBClip, 0.225)

	yResidual := 6 * m.y50
	if yResidual > m.yUnload {
		m.slopeU = (m.residual - pAtUnload) / (yResidual - m.yUnload)
	}

	ctx.PUlt = m.pc
	ctx.Y50 = m.y50
	return nil
}

func (m *reeseStiffClayFreeWater) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	if ay < units.YFloor {
		ay = units.YFloor
	}
	var pMag, dpdyMag float64
	switch {
	case m.k > 0 && ay <= m.yk:
		pMag = m.k * ay
		dpdyMag = m.k
	case ay <= m.yUnload:
		pMag = 0.5 * m.pc * math.Sqrt(ay/m.y50)
		dpdyMag = 0.5 * m.pc * 0.5 / math.Sqrt(ay*m.y50)
	case ay <= 6*m.y50:
		pMag = m.pAtY50x6 + m.slopeU*(ay-m.yUnload)
		dpdyMag = m.slopeU
		if pMag < m.residual {
			pMag = m.residual
			dpdyMag = 0
		}
	default:
		pMag = m.residual
		dpdyMag = 0
	}
	if pMag > m.pc {
		pMag = m.pc
		dpdyMag = 0
	}
	if pMag < 0 {
		pMag = 0
	}
	return sign(y) * pMag, dpdyMag
}
