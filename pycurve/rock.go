// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pycurve

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/internal/perr"
	"github.com/jason-orcas/solar-pile-design/soil"
	"github.com/jason-orcas/solar-pile-design/units"
)

func init() {
	allocators[soil.WeakRockReese] = func() Model { return &weakRock{} }
	allocators[soil.StrongRockVuggy] = func() Model { return &strongRockVuggy{} }
	allocators[soil.MassiveRockHoekBrown] = func() Model { return &massiveRockHoekBrown{} }
}

// weakRock implements model 11 (Reese 1997 weak rock).
type weakRock struct {
	kir, yrm, yA, pur, mir float64
}

func (m *weakRock) Init(ctx *Context) error {
	if ctx.Params == nil || ctx.Params.Qur == nil {
		return perr.Invalid("Weak Rock model requires PYParams.Qur")
	}
	qur := *ctx.Params.Qur
	rqd := 0.0
	if ctx.Params.RQD != nil {
		rqd = *ctx.Params.RQD
	}
	epsRm := 0.0005
	if ctx.Params.KappaRm != nil {
		epsRm = *ctx.Params.KappaRm
	}
	b := ctx.Width
	xIn := units.FtToIn(ctx.Depth)

	alphaR := 1 - (2.0/3.0)*rqd/100
	qurPsi := units.PsfToPsi(qur)

	var pur float64
	if xIn <= 3*b {
		pur = alphaR * qurPsi * b * (1 + 1.4*xIn/b)
	} else {
		pur = 5.2 * alphaR * qurPsi * b
	}
	m.pur = pur

	kir := 100 + 400*xIn/(3*b)
	if kir > 500 {
		kir = 500
	}
	// k_ir is given as a dimensionless multiple of Eir/b in Reese (1997);
	// here Eir is folded directly into an effective initial modulus so
	// the branch has the same lb/in^3 units as every other model's k.
	eir := qurPsi * 400 // fallback correlation Eir ~ 400*qu absent an explicit override
	if ctx.Params.Eir != nil {
		eir = units.PsfToPsi(*ctx.Params.Eir)
	}
	m.mir = kir * eir / b

	m.yrm = epsRm * b
	if m.yrm < units.YFloor {
		m.yrm = units.YFloor
	}
	if m.mir > 0 {
		m.yA = math.Pow(pur/(2*math.Pow(m.yrm, 0.25)*m.mir), 4.0/3.0)
	}
	ctx.PUlt = pur
	return nil
}

func (m *weakRock) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	if ay < units.YFloor {
		ay = units.YFloor
	}
	var pMag, dpdyMag float64
	switch {
	case ay <= m.yA:
		pMag = m.mir * ay
		dpdyMag = m.mir
	default:
		pMag = 0.5 * m.pur * math.Pow(ay/m.yrm, 0.25)
		dpdyMag = 0.5 * m.pur * 0.25 * math.Pow(ay/m.yrm, -0.75) / m.yrm
	}
	if pMag > m.pur {
		pMag = m.pur
		dpdyMag = 0
	}
	return sign(y) * pMag, dpdyMag
}

// strongRockVuggy implements model 12: bilinear vuggy limestone response.
type strongRockVuggy struct {
	su, pu, y1 float64
}

func (m *strongRockVuggy) Init(ctx *Context) error {
	if ctx.Params == nil || ctx.Params.Qur == nil {
		return perr.Invalid("Strong Rock (Vuggy) model requires PYParams.Qur")
	}
	qurPsi := units.PsfToPsi(*ctx.Params.Qur)
	m.su = qurPsi / 2
	m.pu = ctx.Width * m.su
	m.y1 = 0.0004 * ctx.Width
	ctx.PUlt = m.pu
	return nil
}

func (m *strongRockVuggy) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	var pMag, dpdyMag float64
	if ay <= m.y1 {
		pMag = 2000 * m.su * ay
		dpdyMag = 2000 * m.su
	} else {
		p1 := 2000 * m.su * m.y1
		pMag = p1 + 100*m.su*(ay-m.y1)
		dpdyMag = 100 * m.su
	}
	if pMag > m.pu {
		pMag = m.pu
		dpdyMag = 0
	}
	return sign(y) * pMag, dpdyMag
}

// massiveRockHoekBrown implements model 13: hyperbolic response with
// Hoek-Brown-derived equivalent cohesion/friction.
type massiveRockHoekBrown struct {
	ki, pu float64
}

func (m *massiveRockHoekBrown) Init(ctx *Context) error {
	if ctx.Params == nil || ctx.Params.SigmaCi == nil || ctx.Params.Mi == nil || ctx.Params.GSI == nil {
		return perr.Invalid("Massive Rock (Hoek-Brown) model requires SigmaCi, Mi, and GSI")
	}
	sigmaCiPsi := units.PsfToPsi(*ctx.Params.SigmaCi)
	mi := *ctx.Params.Mi
	gsi := *ctx.Params.GSI

	mb := mi * math.Exp((gsi-100)/28)
	s := math.Exp((gsi - 100) / 9)

	// Equivalent Mohr-Coulomb friction/cohesion at a representative
	// confining stress equal to the layer's effective overburden,
	// linearized per Hoek-Brown (2002).
	sigma3 := units.PsfToPsi(ctx.SigmaVp)
	if sigma3 < 0 {
		sigma3 = 0
	}
	sigma3n := 0.0
	if sigmaCiPsi > 0 {
		sigma3n = sigma3 / sigmaCiPsi
	}

	// The exact Hoek-Brown tangent-friction derivative is numerically
	// stiff for sigma3->0; fall back to a modulus-ratio correlation
	// (Ei ~ MR*sigma_ci) for the initial subgrade stiffness, which is
	// what drives the p-y curve's shape at pile-relevant displacements.
	erock := sigmaCiPsi * 300
	if ctx.Params.Erock != nil {
		erock = units.PsfToPsi(*ctx.Params.Erock)
	}
	b := ctx.Width
	m.ki = erock / b
	m.pu = sigmaCiPsi * math.Sqrt(mb*sigma3n+s) * b
	ctx.PUlt = m.pu
	return nil
}

func (m *massiveRockHoekBrown) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	if ay < units.YFloor {
		ay = units.YFloor
	}
	if m.ki <= 0 {
		return sign(y) * m.pu, 0
	}
	denom := 1/m.ki + ay/m.pu
	pMag := ay / denom
	dpdyMag := (denom - ay*(1/m.pu)) / (denom * denom)
	if pMag > m.pu {
		pMag = m.pu
		dpdyMag = 0
	}
	return sign(y) * pMag, dpdyMag
}
