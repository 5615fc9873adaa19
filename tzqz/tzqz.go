// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tzqz is the shaft-friction (t-z) and tip-bearing (q-z) transfer
// curve library (Component E), used by BNWF's axial spring family. Curve shapes follow the normalized tables of API RP
// 2GEO §7.
package tzqz

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/soil"
	"github.com/jason-orcas/solar-pile-design/units"
)

// tzClayTable is the API RP 2GEO Table 7.2-1 normalized z/z_peak vs
// t/t_max curve for clay shaft friction.
var tzClayTable = []struct{ zOverZp, tOverTmax float64 }{
	{0.0, 0.00},
	{0.16, 0.30},
	{0.31, 0.50},
	{0.57, 0.75},
	{0.80, 0.90},
	{1.00, 1.00},
	{2.00, 0.90},
	{3.00, 0.90},
}

// qzTable is the shared API RP 2GEO Table 7.3-1/7.3-2 normalized z/z_peak
// vs q/q_max curve for tip bearing (clay and sand share this shape).
var qzTable = []struct{ zOverZp, qOverQmax float64 }{
	{0.0, 0.00},
	{0.02, 0.25},
	{0.13, 0.50},
	{0.42, 0.75},
	{0.73, 0.90},
	{1.00, 1.00},
	{2.00, 1.00},
}

func interpTable(x float64, table []struct{ zOverZp, tOverTmax float64 }) float64 {
	if x <= table[0].zOverZp {
		return table[0].tOverTmax * x / math.Max(table[0].zOverZp, 1e-9)
	}
	last := table[len(table)-1]
	if x >= last.zOverZp {
		return last.tOverTmax
	}
	for i := 1; i < len(table); i++ {
		if x <= table[i].zOverZp {
			lo, hi := table[i-1], table[i]
			t := (x - lo.zOverZp) / (hi.zOverZp - lo.zOverZp)
			return lo.tOverTmax + t*(hi.tOverTmax-lo.tOverTmax)
		}
	}
	return last.tOverTmax
}

func interpQZ(x float64) float64 {
	if x <= qzTable[0].zOverZp {
		return 0
	}
	last := qzTable[len(qzTable)-1]
	if x >= last.zOverZp {
		return last.qOverQmax
	}
	for i := 1; i < len(qzTable); i++ {
		if x <= qzTable[i].zOverZp {
			lo, hi := qzTable[i-1], qzTable[i]
			t := (x - lo.zOverZp) / (hi.zOverZp - lo.zOverZp)
			return lo.qOverQmax + t*(hi.qOverQmax-lo.qOverQmax)
		}
	}
	return last.qOverQmax
}

// TZCurve is an evaluated shaft-friction transfer function for one depth
// increment.
type TZCurve struct {
	TMax   float64 // lb/in, ultimate unit shaft friction (already times perimeter)
	ZPeak  float64 // in
	Sand   bool
}

// Evaluate returns unit shaft friction (lb/in) at axial slip z (in).
func (c TZCurve) Evaluate(z float64) float64 {
	az := math.Abs(z)
	if c.Sand {
		// hyperbolic z/(1+z) normalized by z_peak=0.1 in
		zn := az / c.ZPeak
		frac := zn / (1 + zn)
		if frac > 1 {
			frac = 1
		}
		return sign(z) * c.TMax * frac
	}
	zn := az / c.ZPeak
	frac := interpTable(zn, tzClayTable)
	return sign(z) * c.TMax * frac
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// TZClay builds the API-clay t-z curve for a shaft increment: t_max =
// alpha*c_u/144*perimeter, z_peak = 0.01*diameter.
func TZClay(alpha, cuPsf, perimeterIn, diameterIn float64) TZCurve {
	tMax := alpha * units.PsfToPsi(cuPsf) * perimeterIn
	return TZCurve{TMax: tMax, ZPeak: 0.01 * diameterIn, Sand: false}
}

// TZSand builds the API-sand t-z curve: t_max = beta*sigma'_v/144*perimeter,
// hyperbolic shape with z_peak fixed at 0.1 in.
func TZSand(beta, sigmaVpPsf, perimeterIn float64) TZCurve {
	tMax := beta * units.PsfToPsi(sigmaVpPsf) * perimeterIn
	return TZCurve{TMax: tMax, ZPeak: 0.1, Sand: true}
}

// GenerateTZ dispatches to the clay or sand shape based on soil type.
func GenerateTZ(t soil.Type, alpha, beta, cuPsf, sigmaVpPsf, perimeterIn, diameterIn float64) TZCurve {
	if t.IsCohesive() {
		return TZClay(alpha, cuPsf, perimeterIn, diameterIn)
	}
	return TZSand(beta, sigmaVpPsf, perimeterIn)
}

// QZCurve is an evaluated tip-bearing transfer function.
type QZCurve struct {
	QMax  float64 // lb, ultimate tip capacity
	ZPeak float64 // in
}

// Evaluate returns tip force (lb) at tip settlement z (in), z >= 0.
func (c QZCurve) Evaluate(z float64) float64 {
	if z <= 0 {
		return 0
	}
	zn := z / c.ZPeak
	return c.QMax * interpQZ(zn)
}

// QZ builds the tip-bearing curve given the ultimate end-bearing force
// (lb) and pile diameter (in); z_peak = 0.10*diameter per API RP 2GEO.
func QZ(qUltLb, diameterIn float64) QZCurve {
	return QZCurve{QMax: qUltLb, ZPeak: 0.10 * diameterIn}
}
