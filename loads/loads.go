// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loads is the ASCE 7-22 load-combination generator
// (Component J): LRFD (7 cases) and ASD (10 cases) per-pile load cases
// from unfactored dead, live, snow, wind, and seismic inputs, plus the
// environmental load helper formulas (velocity pressure, seismic
// base-shear coefficient, ground snow load, exposure-C K_z).
package loads

import "math"

// Case is one combined load case applied at a single pile.
type Case struct {
	Name    string
	VComp   float64 // lb, + compression
	VTens   float64 // lb, + tension (uplift)
	HLat    float64 // lb
	MGround float64 // ft-lb, H_lat*lever_arm + factored moment
}

// Input bundles the unfactored per-pile loads (spec.md §4.10).
type Input struct {
	Dead            float64
	Live            float64
	Snow            float64
	WindDown        float64
	WindUp          float64
	WindLateral     float64
	WindMoment      float64
	SeismicVertical float64
	SeismicLateral  float64
	SeismicMoment   float64
	LeverArm        float64 // ft, default 4.0
}

func leverArm(in Input) float64 {
	if in.LeverArm > 0 {
		return in.LeverArm
	}
	return 4.0
}

// GenerateLRFD produces the seven ASCE 7-22 §2.3 LRFD load combinations.
// Each case reports both the compression-governing and uplift-governing
// value of V under whichever wind/seismic direction produces it, since
// spec.md's Case shape carries V_comp and V_tens together rather than
// emitting a separate named case per direction.
func GenerateLRFD(in Input) []Case {
	d, l, s := in.Dead, in.Live, in.Snow
	wd, wu, wh, wm := in.WindDown, in.WindUp, in.WindLateral, in.WindMoment
	ev, eh, em := in.SeismicVertical, in.SeismicLateral, in.SeismicMoment
	e := leverArm(in)

	lc4Base := 1.2*d + l + 0.5*s
	lc5Base := 1.2*d + l + 0.2*s

	cases := []Case{
		{Name: "1.4D", VComp: 1.4 * d},
		{Name: "1.2D+1.6L+0.5S", VComp: 1.2*d + 1.6*l + 0.5*s},
		{Name: "1.2D+1.6S+0.5W_down", VComp: 1.2*d + 1.6*s + 0.5*wd},
		{
			Name: "1.2D+1.0W+L+0.5S",
			VComp: lc4Base + wd, VTens: math.Max(0, wu-lc4Base),
			HLat: wh, MGround: wh*e + wm,
		},
		{
			Name: "1.2D+1.0E+L+0.2S",
			VComp: lc5Base + ev, VTens: math.Max(0, ev-lc5Base),
			HLat: eh, MGround: eh*e + em,
		},
		{
			Name: "0.9D+1.0W",
			VComp: 0.9*d + wd, VTens: math.Max(0, wu-0.9*d),
			HLat: wh, MGround: wh*e + wm,
		},
		{
			Name: "0.9D+1.0E",
			VComp: 0.9*d + ev, VTens: math.Max(0, ev-0.9*d),
			HLat: eh, MGround: eh*e + em,
		},
	}
	if cases[5].VTens > 0 {
		cases[5].Name += " (UPLIFT)"
	}
	return tagGoverning(cases)
}

// GenerateASD produces the ten ASCE 7-22 §2.4 ASD load combinations.
func GenerateASD(in Input) []Case {
	d, l, s := in.Dead, in.Live, in.Snow
	wd, wu, wh, wm := in.WindDown, in.WindUp, in.WindLateral, in.WindMoment
	ev, eh, em := in.SeismicVertical, in.SeismicLateral, in.SeismicMoment
	e := leverArm(in)

	const asd6Factor = 0.75 * 0.6
	const asd9Factor = 0.75 * 0.7
	dLS := d + 0.75*l + 0.75*s

	cases := []Case{
		{Name: "D", VComp: d},
		{Name: "D+L", VComp: d + l},
		{Name: "D+S", VComp: d + s},
		{Name: "D+0.75(L+S)", VComp: d + 0.75*(l+s)},
		{
			Name: "D+0.6W",
			VComp: d + 0.6*wd, VTens: math.Max(0, 0.6*wu-d),
			HLat: 0.6 * wh, MGround: 0.6*wh*e + 0.6*wm,
		},
		{
			Name: "D+0.75(0.6W)+0.75L+0.75S",
			VComp: dLS + asd6Factor*wd, VTens: math.Max(0, asd6Factor*wu-dLS),
			HLat: asd6Factor * wh, MGround: asd6Factor*wh*e + asd6Factor*wm,
		},
		{
			Name: "0.6D+0.6W",
			VComp: 0.6*d + 0.6*wd, VTens: math.Max(0, 0.6*wu-0.6*d),
			HLat: 0.6 * wh, MGround: 0.6*wh*e + 0.6*wm,
		},
		{
			Name: "D+0.7E",
			VComp: d + 0.7*ev, VTens: math.Max(0, 0.7*ev-d),
			HLat: 0.7 * eh, MGround: 0.7*eh*e + 0.7*em,
		},
		{
			Name: "D+0.75(0.7E)+0.75L+0.75S",
			VComp: dLS + asd9Factor*ev, VTens: math.Max(0, asd9Factor*ev-dLS),
			HLat: asd9Factor * eh, MGround: asd9Factor*eh*e + asd9Factor*em,
		},
		{
			Name: "0.6D+0.7E",
			VComp: 0.6*d + 0.7*ev, VTens: math.Max(0, 0.7*ev-0.6*d),
			HLat: 0.7 * eh, MGround: 0.7*eh*e + 0.7*em,
		},
	}
	return tagGoverning(cases)
}

// tagGoverning appends "(governs compression)"/"(governs uplift)" to the
// case(s) holding the maximum V_comp and, when any case has V_tens>0,
// the maximum V_tens (spec.md §4.10).
func tagGoverning(cases []Case) []Case {
	if len(cases) == 0 {
		return cases
	}
	maxCompIdx, maxTensIdx := 0, -1
	for i, c := range cases {
		if c.VComp > cases[maxCompIdx].VComp {
			maxCompIdx = i
		}
		if c.VTens > 0 && (maxTensIdx == -1 || c.VTens > cases[maxTensIdx].VTens) {
			maxTensIdx = i
		}
	}
	cases[maxCompIdx].Name += " (governs compression)"
	if maxTensIdx >= 0 {
		cases[maxTensIdx].Name += " (governs uplift)"
	}
	return cases
}

// Method selects which load-combination family Combinations generates.
type Method int

const (
	LRFD Method = iota
	ASD
	Both
)

// Result carries whichever families Combinations was asked to generate.
type Result struct {
	LRFD []Case
	ASD  []Case
}

// Combinations is entry point 5 of spec.md §6: load_combinations(loads,
// method) -> {lrfd?, asd?}.
func Combinations(in Input, method Method) Result {
	var r Result
	if method == LRFD || method == Both {
		r.LRFD = GenerateLRFD(in)
	}
	if method == ASD || method == Both {
		r.ASD = GenerateASD(in)
	}
	return r
}

// WindVelocityPressure returns the ASCE 7 velocity pressure q_z (psf)
// for a 3-second-gust basic wind speed V (mph).
func WindVelocityPressure(v, kz, kzt, kd, ke float64) float64 {
	return 0.00256 * kz * kzt * kd * ke * v * v
}

// SeismicBaseShearCoeff returns the ASCE 7 seismic response coefficient
// C_s, floored at max(0.044*S_DS*I_e, 0.01).
func SeismicBaseShearCoeff(sDS, r, ie float64) float64 {
	cs := sDS / (r / ie)
	csMin := math.Max(0.044*sDS*ie, 0.01)
	return math.Max(cs, csMin)
}

// SnowLoad returns the ASCE 7 flat/ground-mount snow load (psf).
func SnowLoad(pg, ce, ct, is float64) float64 {
	return 0.7 * ce * ct * is * pg
}

// KzExposureC returns the Exposure-C velocity pressure exposure
// coefficient at height z (ft) above ground, clamped to [15, 500] ft.
func KzExposureC(zFt float64) float64 {
	z := math.Max(15.0, math.Min(zFt, 500.0))
	const alpha = 9.5
	const zg = 900.0
	return 2.01 * math.Pow(z/zg, 2.0/alpha)
}
