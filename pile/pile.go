// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pile is the orchestration layer (Component L): the six
// top-level entry points from spec.md §6, composing the axial, lateral,
// group, BNWF, load-combination, and Broms packages into the module's
// sole public boundary. It carries no wire protocol, no persisted state,
// and no CLI — every function here takes an immutable request record and
// returns an owned result record, safe to call concurrently across
// independent Profile/Section values.
package pile

import (
	"github.com/jason-orcas/solar-pile-design/axial"
	"github.com/jason-orcas/solar-pile-design/bnwf"
	"github.com/jason-orcas/solar-pile-design/broms"
	"github.com/jason-orcas/solar-pile-design/group"
	"github.com/jason-orcas/solar-pile-design/lateral"
	"github.com/jason-orcas/solar-pile-design/loads"
	"github.com/jason-orcas/solar-pile-design/section"
	"github.com/jason-orcas/solar-pile-design/soil"
)

// AxialCapacityRequest is entry point 1: axial_capacity.
type AxialCapacityRequest struct {
	Profile   *soil.Profile
	Section   section.Section
	Embedment float64
	PileType  axial.PileType
	Method    axial.Method
	FSc, FSt  float64
	Cyclic    bool
}

// AxialCapacity runs the axial capacity kernel (Component F).
func AxialCapacity(req AxialCapacityRequest) (*axial.Result, error) {
	return axial.Capacity(axial.Input{
		Profile:   req.Profile,
		Section:   req.Section,
		Embedment: req.Embedment,
		PileType:  req.PileType,
		Method:    req.Method,
		FSc:       req.FSc,
		FSt:       req.FSt,
		Cyclic:    req.Cyclic,
	})
}

// LateralAnalysisRequest is entry point 2: lateral_analysis.
type LateralAnalysisRequest struct {
	Profile     *soil.Profile
	Section     section.Section
	Embedment   float64
	BendingAxis section.Axis
	H           float64
	MGround     float64
	HeadCond    lateral.HeadCondition
	Cyclic      bool
	Cancel      lateral.Signal
}

// LateralAnalysis runs the FDM lateral solver (Component G).
func LateralAnalysis(req LateralAnalysisRequest) (*lateral.Result, error) {
	return lateral.Solve(lateral.Input{
		Profile:     req.Profile,
		Section:     req.Section,
		Embedment:   req.Embedment,
		BendingAxis: req.BendingAxis,
		H:           req.H,
		MGround:     req.MGround,
		HeadCond:    req.HeadCond,
		Cyclic:      req.Cyclic,
		Cancel:      req.Cancel,
	})
}

// GroupAnalysisRequest is entry point 3: group_analysis.
type GroupAnalysisRequest struct {
	Profile            *soil.Profile
	Section            section.Section
	BendingAxis        section.Axis
	Embedment          float64
	NRows, NCols       int
	SpacingIn          float64
	QSingleCompression float64
	QSingleTension     float64
}

// GroupAnalysis runs the pile-group reduction engine (Component I) for a
// regular grid, deriving pile width from the given section's bending-axis
// width.
func GroupAnalysis(req GroupAnalysisRequest) (*group.Result, error) {
	return group.Analyze(group.Input{
		Profile:            req.Profile,
		NRows:              req.NRows,
		NCols:              req.NCols,
		PileWidthIn:        req.Section.Width(req.BendingAxis),
		SpacingIn:          req.SpacingIn,
		EmbedmentFt:        req.Embedment,
		QSingleCompression: req.QSingleCompression,
		QSingleTension:     req.QSingleTension,
	})
}

// BNWFAnalysisRequest is entry point 4: bnwf_analysis.
type BNWFAnalysisRequest struct {
	Profile       *soil.Profile
	Section       section.Section
	Embedment     float64
	VAxial        float64
	HLateral      float64
	MGround       float64
	HeadCond      bnwf.HeadCondition
	Cyclic        bool
	IncludePDelta bool
	Mode          bnwf.LoadType
	PushoverSteps int
	PushoverMax   float64
	PileType      axial.PileType
	BendingAxis   section.Axis
}

// BNWFAnalysis runs the beam-on-nonlinear-Winkler-foundation FEM
// (Component H): static analysis, or a pushover sweep when Mode is one
// of the pushover kinds.
func BNWFAnalysis(req BNWFAnalysisRequest) (*bnwf.Result, error) {
	return bnwf.Solve(bnwf.Input{
		Profile:   req.Profile,
		Section:   req.Section,
		Embedment: req.Embedment,
		Loads: bnwf.Loads{
			VAxial:          req.VAxial,
			HLateral:        req.HLateral,
			MGround:         req.MGround,
			LoadType:        req.Mode,
			PushoverSteps:   req.PushoverSteps,
			PushoverMaxMult: req.PushoverMax,
		},
		Options: bnwf.Options{
			BendingAxis:   req.BendingAxis,
			HeadCond:      req.HeadCond,
			Cyclic:        req.Cyclic,
			IncludePDelta: req.IncludePDelta,
			PileType:      req.PileType,
		},
	})
}

// LoadCombinationsMethod selects which family(ies) LoadCombinations
// generates.
type LoadCombinationsMethod = loads.Method

const (
	LRFD = loads.LRFD
	ASD  = loads.ASD
	Both = loads.Both
)

// LoadCombinations is entry point 5: load_combinations.
func LoadCombinations(in loads.Input, method LoadCombinationsMethod) loads.Result {
	return loads.Combinations(in, method)
}

// BromsLateralRequest is entry point 6: broms_lateral.
type BromsLateralRequest struct {
	Profile     *soil.Profile
	Section     section.Section
	Embedment   float64
	BendingAxis section.Axis
	LeverArm    float64
}

// BromsLateral runs the closed-form Broms check (Component K).
func BromsLateral(req BromsLateralRequest) (*broms.Result, error) {
	return broms.Analyze(broms.Input{
		Profile:     req.Profile,
		Section:     req.Section,
		Embedment:   req.Embedment,
		BendingAxis: req.BendingAxis,
		LeverArm:    req.LeverArm,
	})
}
