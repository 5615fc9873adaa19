// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package soil is the layered soil profile (Component C): SPT corrections,
// auto-derivation of unit weight, friction angle, and undrained strength,
// and the effective/total vertical stress profile every downstream
// component reads from.
package soil

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/internal/perr"
	"github.com/jason-orcas/solar-pile-design/units"
)

// Type is the soil classification tag. It controls the default p-y model,
// whether phi/c_u are meaningful, and axial method selection under AUTO.
type Type int

const (
	Sand Type = iota
	Clay
	Silt
	Gravel
	Organic
)

func (t Type) String() string {
	switch t {
	case Sand:
		return "Sand"
	case Clay:
		return "Clay"
	case Silt:
		return "Silt"
	case Gravel:
		return "Gravel"
	case Organic:
		return "Organic"
	default:
		return "Unknown"
	}
}

// IsCohesive reports whether the layer's strength is dominated by
// undrained shear (c_u meaningful). Clay and organic layers take phi = 0;
// silt still carries an N60-correlated phi.
func (t Type) IsCohesive() bool {
	return t == Clay || t == Silt || t == Organic
}

// PYModel names the eighteen curve shapes from the p-y library, plus AUTO
// for the layer-type-driven default resolution.
type PYModel int

const (
	AutoPY PYModel = iota
	MatlockSoftClay
	APISoftClayUserJ
	ReeseStiffClayFreeWater
	StiffClayNoFreeWater
	ModifiedStiffClayBrown
	ReeseSand
	APISand
	SmallStrainSand
	LiquefiedSandRollins
	LiquefiedHybrid
	WeakRockReese
	StrongRockVuggy
	MassiveRockHoekBrown
	PiedmontResidual
	Loess
	CementedSilt
	ElasticSubgrade
	UserInput
)

// Params bundles the model-specific optional overrides a caller may
// supply for a layer's p-y curve; nil/zero means "use the model default or
// auto-derive." Modeled with pointer fields, per the optional-parameter
// design used throughout this module: a present-but-zero value is
// distinguishable from absent.
type Params struct {
	Epsilon50 *float64 // strain at 50% of ultimate stress, clay models
	J         *float64 // Matlock empirical constant, default 0.5
	K         *float64 // initial subgrade modulus override, lb/in^3
	Qur       *float64 // unconfined compressive strength of rock, psf
	Eir       *float64 // initial rock modulus, psf
	RQD       *float64 // rock quality designation, percent
	KappaRm   *float64 // strain factor for rock, default 5e-4 (epsilon_rm)
	SigmaCi   *float64 // intact rock uniaxial strength, psf
	Mi        *float64 // Hoek-Brown intact rock parameter
	GSI       *float64 // geological strength index
	Erock     *float64 // rock mass modulus override, psf
	Nu        *float64 // Poisson's ratio
	VoidRatio *float64 // in-situ void ratio, loess model
	Cu2       *float64 // grain-size uniformity coefficient, loess model
	Gmax      *float64 // small-strain shear modulus override, psi
	ResidCu   *float64 // residual undrained strength after liquefaction, psf
	UserY     []float64
	UserP     []float64
	NCPT      *float64 // CPT-derived bearing factor, loess model
	Qc        *float64 // CPT tip resistance, psf
	Ncyc      *float64 // number of load cycles, loess model
	Cemented  bool     // whether the cemented c-phi silt model includes cementation
}

// Layer is one ordered soil stratum. Raw numeric fields are optional
// (nil means "derive from N_spt and Type"); an explicit non-nil value,
// even zero, always wins over auto-derivation.
type Layer struct {
	ZTop      float64 // ft, depth to top of layer
	Thickness float64 // ft, > 0
	Type      Type
	PYModel   PYModel
	PYParams  *Params

	NSPT *float64 // blows/ft, raw field count
	Gamma *float64 // pcf, moist/dry unit weight
	Phi   *float64 // deg, friction angle
	CU    *float64 // psf, undrained shear strength
}

// ZBottom is z_top + thickness.
func (l Layer) ZBottom() float64 { return l.ZTop + l.Thickness }

// Corrections is the SPT energy/geometry correction factor set, carried on
// the Profile per the "no process-level singleton" design: every analysis
// call receives the factors explicitly via the Profile it was handed.
type Corrections struct {
	CE float64 // hammer energy ratio, default 0.60
	CB float64 // borehole diameter, default 1.0
	CR float64 // rod length, default 1.0
	CS float64 // sampler, default 1.0
}

// DefaultCorrections returns the standard factor set (CE=0.60, others 1.0).
func DefaultCorrections() Corrections {
	return Corrections{CE: 0.60, CB: 1.0, CR: 1.0, CS: 1.0}
}

// Profile is an ordered, gapless, non-overlapping sequence of layers plus
// an optional water table depth.
type Profile struct {
	Layers      []Layer
	WaterTable  *float64 // ft; nil means dry (no water table)
	Corrections Corrections
}

// NewProfile validates layer contiguity and returns a Profile with default
// SPT corrections. Layers must already be ordered and contiguous:
// layers[i].ZBottom() == layers[i+1].ZTop for every i.
func NewProfile(layers []Layer) (*Profile, error) {
	if len(layers) == 0 {
		return nil, perr.Invalid("profile must contain at least one layer")
	}
	for i, l := range layers {
		if l.Thickness <= 0 {
			return nil, perr.Invalid("layer %d: thickness must be > 0, got %g", i, l.Thickness)
		}
		if i > 0 {
			prev := layers[i-1]
			if math.Abs(prev.ZBottom()-l.ZTop) > 1e-9 {
				return nil, perr.Invalid(
					"layer %d starts at z=%g but layer %d ends at z=%g: profile must be gapless",
					i, l.ZTop, i-1, prev.ZBottom())
			}
		}
	}
	return &Profile{Layers: layers, Corrections: DefaultCorrections()}, nil
}

// TotalDepth is the bottom of the last layer.
func (p *Profile) TotalDepth() float64 {
	if len(p.Layers) == 0 {
		return 0
	}
	return p.Layers[len(p.Layers)-1].ZBottom()
}

// waterTableDepth clamps a water table above the surface to z=0 and
// returns +Inf (no effect) when the profile is dry, per the boundary
// behaviours: "water table above surface is clamped to z=0."
func (p *Profile) waterTableDepth() float64 {
	if p.WaterTable == nil {
		return math.Inf(1)
	}
	if *p.WaterTable < 0 {
		return 0
	}
	return *p.WaterTable
}

// LayerAt returns the layer containing depth z, tie-breaking toward the
// deeper layer at interior boundaries.
func (p *Profile) LayerAt(z float64) (Layer, bool) {
	for i, l := range p.Layers {
		if z < l.ZTop-1e-9 {
			continue
		}
		if z < l.ZBottom()-1e-9 {
			return l, true
		}
		if math.Abs(z-l.ZBottom()) <= 1e-9 && i+1 < len(p.Layers) {
			continue // tie at boundary: prefer the deeper layer
		}
	}
	// z exactly at or beyond the last boundary, or a tie resolved to
	// this being the last candidate layer.
	for i := len(p.Layers) - 1; i >= 0; i-- {
		l := p.Layers[i]
		if z >= l.ZTop-1e-9 && z <= l.ZBottom()+1e-9 {
			return l, true
		}
	}
	return Layer{}, false
}

// Gamma returns the layer's moist/dry unit weight (pcf) at depth z:
// explicit value if set, else the auto-correlation table keyed by Type,
// N60, and whether z lies below the water table. Auto-derived cohesionless
// layers switch to a separate, higher saturated-density correlation once
// submerged; the explicit-value and cohesive branches don't depend on z.
func (p *Profile) Gamma(l Layer, z float64) float64 {
	if l.Gamma != nil {
		return *l.Gamma
	}
	n60 := p.N60(l)
	return autoGamma(l.Type, n60, p.IsSubmerged(z))
}

// autoGamma is the tabular unit-weight correlation. Values follow the
// dry/saturated correlation pairs keyed by soil type and N60; sand and
// gravel jump to the saturated column once submerged, since a saturated
// granular soil carries measurably more unit weight than its dry state.
// Clay, silt, and organic layers use a single column regardless of
// submersion; EffectiveGamma still subtracts gamma_water downstream.
func autoGamma(t Type, n60 float64, submerged bool) float64 {
	switch {
	case t == Sand || t == Gravel:
		switch {
		case n60 < 4:
			if submerged {
				return 105
			}
			return 95
		case n60 < 10:
			if submerged {
				return 115
			}
			return 105
		case n60 < 30:
			if submerged {
				return 125
			}
			return 110
		case n60 < 50:
			if submerged {
				return 135
			}
			return 120
		default:
			if submerged {
				return 140
			}
			return 130
		}
	case t == Clay || t == Silt || t == Organic:
		switch {
		case n60 < 2:
			return 100
		case n60 < 4:
			return 110
		case n60 < 8:
			return 115
		case n60 < 15:
			return 120
		case n60 < 30:
			return 125
		default:
			return 130
		}
	default:
		return 110
	}
}

// N60 is the energy/geometry-corrected blow count.
func (p *Profile) N60(l Layer) float64 {
	if l.NSPT == nil {
		return 0
	}
	c := p.Corrections
	return *l.NSPT * c.CE * c.CB * c.CR * c.CS
}

// N1_60 is the overburden-corrected blow count via Liao-Whitman:
// C_N = min(sqrt(Pa/sigma'_v_mid), 2.0), evaluated at the layer's
// mid-depth effective stress.
func (p *Profile) N1_60(l Layer) float64 {
	n60 := p.N60(l)
	zMid := (l.ZTop + l.ZBottom()) / 2
	_, sigmaVp := p.StressAt(zMid)
	if sigmaVp < units.SigmaVFloor {
		sigmaVp = units.SigmaVFloor
	}
	cn := math.Sqrt(units.AtmosphericPressure / sigmaVp)
	if cn > 2.0 {
		cn = 2.0
	}
	return n60 * cn
}

// Phi returns the layer's friction angle (deg): explicit value if set,
// else the auto-correlation from N60.
func (p *Profile) Phi(l Layer) float64 {
	if l.Phi != nil {
		return *l.Phi
	}
	if l.Type == Clay || l.Type == Organic {
		return 0
	}
	n60 := p.N60(l)
	switch l.Type {
	case Silt:
		phi := 24 + 0.25*n60
		if phi > 34 {
			phi = 34
		}
		return phi
	default: // Sand, Gravel
		phi := math.Sqrt(20*n60) + 20
		if phi > 45 {
			phi = 45
		}
		return phi
	}
}

// CU returns the layer's undrained shear strength (psf): explicit value if
// set, else 125*N60 for cohesive types, 0 otherwise.
func (p *Profile) CU(l Layer) float64 {
	if l.CU != nil {
		return *l.CU
	}
	if !l.Type.IsCohesive() {
		return 0
	}
	return 125 * p.N60(l)
}

// StressAt returns total vertical stress sigma_v and effective vertical
// stress sigma'_v (psf) at depth z (ft), by summing gamma*thickness through
// layers above z and subtracting gamma_water*(z-z_wt) below the water
// table.
func (p *Profile) StressAt(z float64) (sigmaV, sigmaVp float64) {
	if z < 0 {
		z = 0
	}
	zwt := p.waterTableDepth()
	for _, l := range p.Layers {
		if z <= l.ZTop {
			break
		}
		top := l.ZTop
		bot := l.ZBottom()
		if z < bot {
			bot = z
		}
		dz := bot - top
		if dz <= 0 {
			continue
		}

		// Split the increment at the water table so an auto-derived layer
		// picks up its dry correlation above and its saturated correlation
		// below, rather than one gamma for the whole layer.
		if zwt >= bot {
			g := p.Gamma(l, top)
			sigmaV += g * dz
			sigmaVp += g * dz
		} else if zwt <= top {
			g := p.Gamma(l, bot)
			sigmaV += g * dz
			sigmaVp += (g - units.GammaWater) * dz
		} else {
			gDry := p.Gamma(l, top)
			gSat := p.Gamma(l, bot)
			sigmaV += gDry*(zwt-top) + gSat*(bot-zwt)
			sigmaVp += gDry*(zwt-top) + (gSat-units.GammaWater)*(bot-zwt)
		}
	}
	if sigmaVp < 0 {
		sigmaVp = 0
	}
	if sigmaVp > sigmaV {
		sigmaVp = sigmaV
	}
	return sigmaV, sigmaVp
}

// IsSubmerged reports whether depth z lies below the profile's water
// table.
func (p *Profile) IsSubmerged(z float64) bool {
	return z > p.waterTableDepth()
}

// EffectiveGamma returns the layer's buoyant unit weight (gamma - gamma_w)
// when depth zMid lies below the water table, else the full unit weight. This is the gamma' used by the p-y ultimate-resistance
// formulas.
func (p *Profile) EffectiveGamma(l Layer, zMid float64) float64 {
	g := p.Gamma(l, zMid)
	if zMid > p.waterTableDepth() {
		g -= units.GammaWater
	}
	if g < 0 {
		g = 0
	}
	return g
}
