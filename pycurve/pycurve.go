// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pycurve is the p-y curve library (Component D): eighteen
// nonlinear lateral soil-response models, each mapping (depth, lateral
// displacement) to lateral resistance per unit length. Every model is
// registered under a soil.PYModel tag through a package-level allocator
// map, mirroring the Model-interface-plus-init()-registered-constructor
// pattern used for the material models in msolid.
package pycurve

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/internal/perr"
	"github.com/jason-orcas/solar-pile-design/soil"
)

// Context is the precomputed, per-layer evaluation context passed to every
// model: everything a curve needs that does not depend on y, computed once
// per depth so the solver's inner loop never recomputes a constant.
type Context struct {
	Depth     float64 // z, ft
	Width     float64 // b, in (pile width/diameter used by the curve)
	Cyclic    bool
	Submerged bool    // whether z lies below the profile's water table
	Gamma     float64 // effective (buoyant where submerged) unit weight, pcf
	Phi       float64 // deg
	CU        float64 // psf
	SigmaVp   float64 // effective vertical stress at z, psf
	Params    *soil.Params

	// precomputed shape constants, filled by Init; not every field is
	// used by every model.
	Epsilon50 float64
	Y50       float64
	PUlt      float64
	KInitial  float64
	A, B, C   float64
}

// Model is the interface every p-y curve implements.
type Model interface {
	// Init precomputes the context-dependent constants (p_ult, y50,
	// initial stiffness) for one (layer, depth) evaluation point.
	Init(ctx *Context) error
	// Evaluate returns (p, dp/dy) at lateral displacement y (in).
	// p is in lb/in, dp/dy in lb/in^2.
	Evaluate(y float64) (p, dpdy float64)
}

// allocators is the factory map keyed by the soil.PYModel tag, populated
// by each model file's init().
var allocators = map[soil.PYModel]func() Model{}

// Resolve returns the concrete model for a (possibly AUTO) tag and layer
// type, per the AUTO resolution rule: Clay/Silt/Organic -> Matlock Soft
// Clay, Sand/Gravel -> API Sand.
func Resolve(tag soil.PYModel, t soil.Type) soil.PYModel {
	if tag != soil.AutoPY {
		return tag
	}
	if t.IsCohesive() {
		return soil.MatlockSoftClay
	}
	return soil.APISand
}

// New builds and initializes the model for the given (already-resolved)
// tag and context.
func New(tag soil.PYModel, ctx *Context) (Model, error) {
	alloc, ok := allocators[tag]
	if !ok {
		return nil, perr.Invalid("unknown p-y model tag %d", tag)
	}
	m := alloc()
	if err := m.Init(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// epsilon50Default is the consistency-table default strain at 50% of
// ultimate stress for clay models, keyed by an approximate c_u range: hard
// clay (high c_u) uses a small strain, soft clay a large one.
func epsilon50Default(cu float64) float64 {
	switch {
	case cu <= 0:
		return 0.02
	case cu < 250:
		return 0.02 // soft
	case cu < 500:
		return 0.01 // medium
	case cu < 1000:
		return 0.007 // stiff
	case cu < 2000:
		return 0.005 // very stiff
	default:
		return 0.004 // hard
	}
}

// BuildContext assembles the evaluation Context for a p-y curve at depth z
// (ft) from a soil profile, and resolves the effective model tag. Returns
// a DegenerateGeometry error when no layer of the profile contains z.
func BuildContext(p *soil.Profile, z, width float64, cyclic bool) (*Context, soil.PYModel, error) {
	layer, ok := p.LayerAt(z)
	if !ok {
		return nil, soil.AutoPY, perr.Degenerate("no soil layer found at depth %g ft", z)
	}
	_, sigmaVp := p.StressAt(z)
	ctx := &Context{
		Depth:     z,
		Width:     width,
		Cyclic:    cyclic,
		Submerged: p.IsSubmerged(z),
		Gamma:     p.EffectiveGamma(layer, z),
		Phi:       p.Phi(layer),
		CU:        p.CU(layer),
		SigmaVp:   sigmaVp,
		Params:    layer.PYParams,
	}
	tag := Resolve(layer.PYModel, layer.Type)
	return ctx, tag, nil
}

func abs(v float64) float64 { return math.Abs(v) }

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	if v == 0 {
		return 0
	}
	return 1
}

func clampNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
