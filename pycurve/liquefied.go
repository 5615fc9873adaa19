// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycurve

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/soil"
)

func init() {
	allocators[soil.LiquefiedSandRollins] = func() Model { return &liquefiedRollins{} }
	allocators[soil.LiquefiedHybrid] = func() Model { return &liquefiedHybrid{} }
}

// rollinsRow is one depth band of the Rollins (2005) liquefied-sand
// p-multiplier curve fit, A*(B*y)^C with y in mm and p in kN/m.
type rollinsRow struct {
	zMinM, zMaxM, a, b, c float64
}

var rollinsTable = []rollinsRow{
	{0, 1, 3.7, 0.6, 0.6},
	{1, 2, 6.0, 0.55, 0.65},
	{2, 4, 10.0, 0.45, 0.7},
	{4, 100, 15.0, 0.35, 0.75},
}

func rollinsRowAt(zM float64) rollinsRow {
	for _, r := range rollinsTable {
		if zM >= r.zMinM && zM < r.zMaxM {
			return r
		}
	}
	return rollinsTable[len(rollinsTable)-1]
}

// liquefiedRollins implements model 9: Rollins (2005) liquefied sand
// p-y curve, worked in metric internally per the source correlation then
// converted back to lb/in.
type liquefiedRollins struct {
	a, b, c float64
	pCapKNm float64
	pD      float64
}

const (
	kNPerM_to_lbPerIn = 5.7101 // 1 kN/m = 5.7101 lb/in
	mToIn             = 39.3701
)

func (m *liquefiedRollins) Init(ctx *Context) error {
	zM := ctx.Depth * 0.3048
	row := rollinsRowAt(zM)
	m.a, m.b, m.c = row.a, row.b, row.c

	bIn := ctx.Width
	bM := bIn / mToIn
	// diameter factor scales the reference (0.3 m pile) curve linearly
	// with pile diameter, per Rollins (2005).
	m.pD = bM / 0.3
	if m.pD <= 0 {
		m.pD = 1
	}
	m.pCapKNm = 15.0 * m.pD // hard cap, 15 kN/m per 0.3 m reference pile
	ctx.PUlt = m.pCapKNm * kNPerM_to_lbPerIn
	return nil
}

func (m *liquefiedRollins) Evaluate(y float64) (p, dpdy float64) {
	yMm := abs(y) * 25.4
	base := m.b * yMm
	var pKNm float64
	if base <= 0 {
		pKNm = 0
	} else {
		pKNm = m.pD * m.a * math.Pow(base, m.c)
	}
	if pKNm > m.pCapKNm {
		pKNm = m.pCapKNm
	}
	pLbIn := pKNm * kNPerM_to_lbPerIn

	const dy = 1e-6
	yMm2 := (abs(y) + dy) * 25.4
	base2 := m.b * yMm2
	pKNm2 := m.pD * m.a * math.Pow(math.Max(base2, 0), m.c)
	if pKNm2 > m.pCapKNm {
		pKNm2 = m.pCapKNm
	}
	dpdyMag := (pKNm2 - pKNm) * kNPerM_to_lbPerIn / dy

	return sign(y) * pLbIn, dpdyMag
}

// liquefiedHybrid implements model 10: the tighter of Rollins' liquefied
// curve and a Matlock residual-strength curve.
type liquefiedHybrid struct {
	rollins liquefiedRollins
	matlock matlockClay
}

func (m *liquefiedHybrid) Init(ctx *Context) error {
	if err := m.rollins.Init(ctx); err != nil {
		return err
	}
	residCu := 100.0
	if ctx.Params != nil && ctx.Params.ResidCu != nil {
		residCu = *ctx.Params.ResidCu
	}
	eps := 0.02
	residCtx := *ctx
	residCtx.CU = residCu
	overrides := Params0(ctx.Params)
	overrides.Epsilon50 = &eps
	residCtx.Params = &overrides
	residCtx.Cyclic = true
	return m.matlock.Init(&residCtx)
}

func (m *liquefiedHybrid) Evaluate(y float64) (p, dpdy float64) {
	pR, dR := m.rollins.Evaluate(y)
	pM, dM := m.matlock.Evaluate(y)
	if abs(pR) < abs(pM) {
		return pR, dR
	}
	return pM, dM
}
