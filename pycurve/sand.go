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
	allocators[soil.ReeseSand] = func() Model { return &reeseSand{} }
	allocators[soil.APISand] = func() Model { return &apiSand{} }
	allocators[soil.SmallStrainSand] = func() Model { return &smallStrainSand{} }
}

// apiCoeffRow is one row of the API RP 2GEO C1/C2/C3 table, keyed by
// friction angle.
type apiCoeffRow struct{ phi, c1, c2, c3 float64 }

var apiCoeffTable = []apiCoeffRow{
	{25, 1.22, 2.88, 12.7},
	{28, 1.78, 3.29, 20.8},
	{30, 2.46, 3.81, 31.4},
	{32, 3.39, 4.47, 47.9},
	{34, 4.68, 5.30, 73.9},
	{36, 6.50, 6.37, 115.4},
	{38, 9.10, 7.78, 182.5},
	{40, 12.85, 9.64, 292.0},
}

func apiCoefficients(phi float64) (c1, c2, c3 float64) {
	if phi <= apiCoeffTable[0].phi {
		r := apiCoeffTable[0]
		return r.c1, r.c2, r.c3
	}
	last := apiCoeffTable[len(apiCoeffTable)-1]
	if phi >= last.phi {
		return last.c1, last.c2, last.c3
	}
	for i := 1; i < len(apiCoeffTable); i++ {
		if phi <= apiCoeffTable[i].phi {
			lo, hi := apiCoeffTable[i-1], apiCoeffTable[i]
			t := (phi - lo.phi) / (hi.phi - lo.phi)
			return lo.c1 + t*(hi.c1-lo.c1), lo.c2 + t*(hi.c2-lo.c2), lo.c3 + t*(hi.c3-lo.c3)
		}
	}
	return last.c1, last.c2, last.c3
}

var apiSandKDry = []struct{ phi, k float64 }{
	{25, 25}, {28, 28}, {30, 60}, {32, 90}, {34, 115}, {36, 150}, {38, 200}, {40, 300},
}

var apiSandKSub = []struct{ phi, k float64 }{
	{25, 5}, {28, 10}, {30, 25}, {32, 35}, {34, 45}, {36, 60}, {38, 80}, {40, 100},
}

// apiSandK returns the initial subgrade modulus (pci) for a sand layer of
// the given friction angle, above or below the water table.
func apiSandK(phi float64, submerged bool) float64 {
	table := apiSandKDry
	if submerged {
		table = apiSandKSub
	}
	if phi <= table[0].phi {
		return table[0].k
	}
	last := table[len(table)-1]
	if phi >= last.phi {
		return last.k
	}
	for i := 1; i < len(table); i++ {
		if phi <= table[i].phi {
			lo, hi := table[i-1], table[i]
			t := (phi - lo.phi) / (hi.phi - lo.phi)
			return lo.k + t*(hi.k-lo.k)
		}
	}
	return last.k
}

func sandUltimateAPI(ctx *Context) float64 {
	c1, c2, c3 := apiCoefficients(ctx.Phi)
	b := ctx.Width
	zIn := units.FtToIn(ctx.Depth)
	gammaPci := units.PcfToPci(ctx.Gamma)
	shallow := (c1*zIn + c2*b) * gammaPci * zIn
	deep := c3 * b * gammaPci * zIn
	pUlt := math.Min(shallow, deep)
	if pUlt < 0 {
		pUlt = 0
	}
	return pUlt
}

// apiSand implements model 7.
type apiSand struct {
	ctx  *Context
	pUlt float64
	k    float64
	a    float64
}

func (m *apiSand) Init(ctx *Context) error {
	m.ctx = ctx
	m.pUlt = sandUltimateAPI(ctx)
	k := apiSandK(ctx.Phi, ctx.Submerged)
	if ctx.Params != nil && ctx.Params.K != nil {
		k = *ctx.Params.K
	}
	m.k = k
	if ctx.Cyclic {
		m.a = 0.9
	} else {
		a := 3 - 0.8*ctx.Depth/units.InToFt(ctx.Width)
		if a < 0.9 {
			a = 0.9
		}
		m.a = a
	}
	ctx.PUlt = m.pUlt
	ctx.KInitial = m.k
	ctx.A = m.a
	return nil
}

func (m *apiSand) Evaluate(y float64) (p, dpdy float64) {
	if m.a <= 0 || m.pUlt <= 0 {
		return 0, m.k
	}
	zIn := units.FtToIn(m.ctx.Depth)
	arg := m.k * zIn * y / (m.a * m.pUlt)
	th := math.Tanh(arg)
	p = m.a * m.pUlt * th
	dpdy = m.k * zIn * (1 - th*th)
	return
}

// reeseSand implements model 6: wedge (shallow) / flow-around (deep)
// ultimate resistance per Reese, Cox & Koop (1974), with a three-segment
// initial-linear / power-law / plateau curve.
type reeseSand struct {
	ctx      *Context
	pUlt     float64
	k        float64
	c        float64
	n        float64
	yu       float64
	yk       float64
}

func (m *reeseSand) Init(ctx *Context) error {
	m.ctx = ctx
	phi := ctx.Phi * math.Pi / 180
	alpha := phi / 2
	beta := math.Pi/4 + phi/2
	k0 := 0.4
	ka := math.Pow(math.Tan(math.Pi/4-phi/2), 2)

	b := ctx.Width
	zIn := units.FtToIn(ctx.Depth)
	gammaPci := units.PcfToPci(ctx.Gamma)

	tanBminusPhi := math.Tan(beta - phi)
	if abs(tanBminusPhi) < 1e-9 {
		tanBminusPhi = 1e-9
	}
	pUs := gammaPci * zIn * (
		(k0*zIn*math.Tan(phi)*math.Sin(beta))/(tanBminusPhi*math.Cos(alpha)) +
			(math.Tan(beta)/tanBminusPhi)*(b+zIn*math.Tan(beta)*math.Tan(alpha)) +
			k0*zIn*math.Tan(phi)*(math.Tan(phi)*math.Sin(beta)-math.Tan(alpha)) -
			ka*b)
	pUd := ka*b*gammaPci*zIn*(math.Pow(math.Tan(beta), 8)-1) +
		k0*b*gammaPci*zIn*math.Tan(phi)*math.Pow(math.Tan(beta), 4)

	pUlt := pUs
	if pUd < pUlt {
		pUlt = pUd
	}
	if pUlt < 0 || zIn <= 0 {
		pUlt = 0
	}
	m.pUlt = pUlt

	k := apiSandK(ctx.Phi, ctx.Submerged)
	if ctx.Params != nil && ctx.Params.K != nil {
		k = *ctx.Params.K
	}
	m.k = k
	m.n = 5.0
	m.yu = 3 * b / 80
	if m.yu < units.YFloor {
		m.yu = units.YFloor
	}
	if m.pUlt > 0 {
		m.c = m.pUlt / math.Pow(m.yu, 1.0/m.n)
	}
	if m.c > 0 && k > 0 {
		m.yk = math.Pow(k/m.c, m.n/(m.n-1))
	}

	ctx.PUlt = m.pUlt
	ctx.KInitial = m.k
	return nil
}

func (m *reeseSand) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	if ay < units.YFloor {
		ay = units.YFloor
	}
	zIn := units.FtToIn(m.ctx.Depth)
	kzy := m.k * zIn

	var pMag, dpdyMag float64
	switch {
	case m.c <= 0 || m.pUlt <= 0:
		pMag, dpdyMag = 0, kzy
	case ay <= m.yk:
		pMag = kzy * ay
		dpdyMag = kzy
	case ay <= m.yu:
		pMag = m.c * math.Pow(ay, 1.0/m.n)
		dpdyMag = m.c / m.n * math.Pow(ay, 1.0/m.n-1)
	default:
		pMag = m.pUlt
		dpdyMag = 0
	}
	if pMag > m.pUlt {
		pMag = m.pUlt
		dpdyMag = 0
	}
	return sign(y) * pMag, dpdyMag
}

// smallStrainSand implements model 8: a Hardin-Drnevich small-strain
// modulus-degradation overlay on the API sand backbone.
type smallStrainSand struct {
	api  apiSand
	gmax float64
	yr   float64
}

func (m *smallStrainSand) Init(ctx *Context) error {
	if err := m.api.Init(ctx); err != nil {
		return err
	}
	k2 := 30 + 2*(ctx.Phi-25)
	sigmaMPsi := units.PsfToPsi(ctx.SigmaVp)
	if sigmaMPsi < 0 {
		sigmaMPsi = 0
	}
	gmax := 1000 * k2 * math.Sqrt(sigmaMPsi)
	if ctx.Params != nil && ctx.Params.Gmax != nil {
		gmax = *ctx.Params.Gmax
	}
	m.gmax = gmax
	if m.api.a > 0 && m.api.pUlt > 0 && gmax > 0 {
		m.yr = m.api.a * m.api.pUlt / (4 * gmax)
	}
	return nil
}

func (m *smallStrainSand) Evaluate(y float64) (p, dpdy float64) {
	pAPI, dAPI := m.api.Evaluate(y)
	if m.yr <= 0 {
		return pAPI, dAPI
	}
	ay := abs(y)
	gRatio := 1.0 / (1.0 + ay/m.yr)
	pSmall := 4 * m.gmax * gRatio * y
	cap := m.api.a * m.api.pUlt
	pMag := math.Max(abs(pSmall), abs(pAPI))
	if pMag > cap {
		pMag = cap
	}
	return sign(y) * pMag, dAPI
}
