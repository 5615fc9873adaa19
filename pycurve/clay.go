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
	allocators[soil.MatlockSoftClay] = func() Model { return &matlockClay{} }
	allocators[soil.APISoftClayUserJ] = func() Model { return &matlockClay{userJ: true} }
	allocators[soil.StiffClayNoFreeWater] = func() Model { return &stiffClayNoWater{} }
	allocators[soil.ModifiedStiffClayBrown] = func() Model { return &brownStiffClay{} }
	allocators[soil.PiedmontResidual] = func() Model { return &piedmontResidual{} }
}

// matlockConstants computes p_ult (lb/in), y50 (in), and the cyclic
// transition depth z_r (ft) shared by the Matlock family, working in
// consistent inch-based units per the model's dimensional analysis.
func matlockConstants(ctx *Context, j float64) (pUlt, y50, zR float64) {
	b := ctx.Width
	cuPsi := units.PsfToPsi(ctx.CU)
	gammaPci := units.PcfToPci(ctx.Gamma)
	zIn := units.FtToIn(ctx.Depth)

	if cuPsi <= 0 {
		cuPsi = units.PsfToPsi(1) // floor to avoid division by zero
	}
	shallow := (3 + gammaPci*zIn/cuPsi + j*zIn/b) * cuPsi * b
	deep := 9 * cuPsi * b
	pUlt = math.Min(shallow, deep)
	if pUlt < 0 {
		pUlt = 0
	}

	eps50 := epsilon50Default(ctx.CU)
	if ctx.Params != nil && ctx.Params.Epsilon50 != nil {
		eps50 = *ctx.Params.Epsilon50
	}
	ctx.Epsilon50 = eps50
	y50 = 2.5 * eps50 * b

	denom := gammaPci*b/cuPsi + j
	if denom <= 0 {
		zR = math.Inf(1)
	} else {
		zR = units.InToFt(b / denom)
	}
	return
}

// matlockClay implements model 1 (Matlock Soft Clay, default J=0.5) and,
// with userJ set, model 2 (API Soft Clay with a caller-supplied J).
type matlockClay struct {
	userJ bool
	ctx   *Context
	pUlt  float64
	y50   float64
	zR    float64
}

func (m *matlockClay) Init(ctx *Context) error {
	j := 0.5
	if m.userJ {
		if ctx.Params == nil || ctx.Params.J == nil {
			return perr.Invalid("API Soft Clay with User J requires PYParams.J")
		}
		j = *ctx.Params.J
	} else if ctx.Params != nil && ctx.Params.J != nil {
		j = *ctx.Params.J
	}
	m.ctx = ctx
	m.pUlt, m.y50, m.zR = matlockConstants(ctx, j)
	ctx.PUlt = m.pUlt
	ctx.Y50 = m.y50
	return nil
}

func (m *matlockClay) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	if ay < units.YFloor {
		ay = units.YFloor
	}
	y50 := m.y50
	if y50 < units.YFloor {
		y50 = units.YFloor
	}
	pUlt := m.pUlt

	cap := pUlt
	transitionAt := 8 * y50
	if m.ctx.Cyclic {
		transitionAt = 3 * y50
		if m.ctx.Depth >= m.zR {
			cap = 0.72 * pUlt
		} else {
			ratio := m.ctx.Depth / m.zR
			if ratio < 0 {
				ratio = 0
			}
			cap = 0.72 * pUlt * ratio
		}
	}

	var pMag, dpdyMag float64
	if ay > transitionAt {
		pMag = cap
		dpdyMag = 0
	} else {
		ratio := ay / y50
		pMag = 0.5 * pUlt * math.Pow(ratio, 1.0/3.0)
		if pMag > cap {
			pMag = cap
			dpdyMag = 0
		} else {
			dpdyMag = 0.5 * pUlt * (1.0 / 3.0) * math.Pow(ratio, -2.0/3.0) / y50
		}
	}
	return sign(y) * pMag, dpdyMag
}

// stiffClayNoWater implements model 4, Welch-Reese stiff clay without free
// water: a single-power curve to 16*y50 then flat, using the Matlock
// ultimate-resistance formulation.
type stiffClayNoWater struct {
	pUlt, y50 float64
}

func (m *stiffClayNoWater) Init(ctx *Context) error {
	pUlt, y50, _ := matlockConstants(ctx, 0.5)
	m.pUlt, m.y50 = pUlt, y50
	ctx.PUlt, ctx.Y50 = pUlt, y50
	return nil
}

func (m *stiffClayNoWater) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	if ay < units.YFloor {
		ay = units.YFloor
	}
	y50 := m.y50
	if y50 < units.YFloor {
		y50 = units.YFloor
	}
	if ay > 16*y50 {
		return sign(y) * m.pUlt, 0
	}
	ratio := ay / y50
	pMag := 0.5 * m.pUlt * math.Pow(ratio, 0.25)
	dpdyMag := 0.5 * m.pUlt * 0.25 * math.Pow(ratio, -0.75) / y50
	return sign(y) * pMag, dpdyMag
}

// brownStiffClay implements model 5: an initial linear branch k*z*y up to
// its intersection with the model-4 0.25-power curve, then model 4.
type brownStiffClay struct {
	inner stiffClayNoWater
	k     float64
	yInt  float64
}

func (m *brownStiffClay) Init(ctx *Context) error {
	if err := m.inner.Init(ctx); err != nil {
		return err
	}
	k := 100.0 // lb/in^3, default initial modulus absent a soil-specific k table entry
	if ctx.Params != nil && ctx.Params.K != nil {
		k = *ctx.Params.K
	}
	m.k = k * units.FtToIn(ctx.Depth) // initial slope k*z, lb/in^2
	// Find y at which k*z*y == 0.5*pUlt*(y/y50)^0.25, i.e. the linear and
	// power branches cross, by direct solve: k*z*y50^0.25*y^0.75 = 0.5*pUlt.
	y50 := m.inner.y50
	if y50 < units.YFloor {
		y50 = units.YFloor
	}
	if m.k <= 0 {
		m.yInt = 0
		return nil
	}
	m.yInt = math.Pow(0.5*m.inner.pUlt/(m.k*math.Pow(y50, 0.25)), 1.0/0.75)
	return nil
}

func (m *brownStiffClay) Evaluate(y float64) (p, dpdy float64) {
	ay := abs(y)
	if ay <= m.yInt {
		return m.k * ay * sign(y), m.k
	}
	return m.inner.Evaluate(y)
}

// piedmontResidual implements model 14: model 4 with a 0.85 multiplier on
// p_ult and a default epsilon_50 of 0.007.
type piedmontResidual struct {
	inner stiffClayNoWater
}

func (m *piedmontResidual) Init(ctx *Context) error {
	eps := 0.007
	if ctx.Params != nil && ctx.Params.Epsilon50 != nil {
		eps = *ctx.Params.Epsilon50
	}
	saved := ctx.Params
	overrides := Params0(ctx.Params)
	overrides.Epsilon50 = &eps
	ctx.Params = &overrides
	if err := m.inner.Init(ctx); err != nil {
		ctx.Params = saved
		return err
	}
	ctx.Params = saved
	m.inner.pUlt *= 0.85
	ctx.PUlt = m.inner.pUlt
	return nil
}

func (m *piedmontResidual) Evaluate(y float64) (p, dpdy float64) {
	return m.inner.Evaluate(y)
}

// Params0 returns a shallow copy of an optional Params bundle so a caller
// can override a single field without mutating the caller's original
// value.
func Params0(p *soil.Params) soil.Params {
	if p == nil {
		return soil.Params{}
	}
	return *p
}
