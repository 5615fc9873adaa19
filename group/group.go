// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package group is the pile-group reduction engine (Component I):
// Converse-Labarre axial efficiency, AASHTO/NCHRP-461 lateral
// p-multipliers, cohesive block-failure capacity, and rigid-cap load
// distribution to an arbitrary pile layout.
package group

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/internal/perr"
	"github.com/jason-orcas/solar-pile-design/soil"
)

// ConverseLabarre returns the group efficiency factor eta for a
// rectangular n_rows x n_cols grid at the given center-to-center
// spacing, both in inches, per Converse-Labarre.
func ConverseLabarre(nRows, nCols int, pileWidthIn, spacingIn float64) float64 {
	if spacingIn <= 0 || nRows <= 0 || nCols <= 0 {
		return 1.0
	}
	theta := math.Atan(pileWidthIn/spacingIn) * 180.0 / math.Pi
	n1, n2 := float64(nCols), float64(nRows)
	numerator := theta * ((n1-1)*n2 + (n2-1)*n1)
	denominator := 90.0 * n1 * n2
	eta := 1.0 - numerator/denominator
	if eta < 0 {
		eta = 0
	}
	if eta > 1 {
		eta = 1
	}
	return eta
}

// RowMultiplier is one row's AASHTO/NCHRP-461 lateral p-multiplier.
type RowMultiplier struct {
	Row      int
	Position string
	Fm       float64
}

var pMultiplierTable = []struct {
	sOverD float64
	fm     [4]float64
}{
	{3.0, [4]float64{0.80, 0.40, 0.30, 0.30}},
	{4.0, [4]float64{0.85, 0.55, 0.45, 0.40}},
	{5.0, [4]float64{0.90, 0.65, 0.55, 0.50}},
	{6.0, [4]float64{0.95, 0.75, 0.65, 0.60}},
	{8.0, [4]float64{1.00, 1.00, 1.00, 1.00}},
}

// PMultipliers returns one entry per row (lead, 2nd, 3rd, 4th+) for a
// group with the given number of rows and spacing-to-diameter ratio.
func PMultipliers(nRows int, sOverD float64) []RowMultiplier {
	sd := sOverD
	if sd < 3.0 {
		sd = 3.0
	}
	if sd > 8.0 {
		sd = 8.0
	}
	var fm [4]float64
	if sd >= 8.0 {
		fm = [4]float64{1.0, 1.0, 1.0, 1.0}
	} else {
		fm = pMultiplierTable[0].fm
		for i := 0; i < len(pMultiplierTable)-1; i++ {
			lo, hi := pMultiplierTable[i], pMultiplierTable[i+1]
			if sd >= lo.sOverD && sd <= hi.sOverD {
				f := (sd - lo.sOverD) / (hi.sOverD - lo.sOverD)
				for j := 0; j < 4; j++ {
					fm[j] = lo.fm[j] + f*(hi.fm[j]-lo.fm[j])
				}
				break
			}
		}
	}

	out := make([]RowMultiplier, nRows)
	for row := 1; row <= nRows; row++ {
		var pos string
		var f float64
		switch row {
		case 1:
			pos, f = "Lead (front)", fm[0]
		case 2:
			pos, f = "2nd row", fm[1]
		case 3:
			pos, f = "3rd row", fm[2]
		default:
			pos, f = ordinalRow(row), fm[3]
		}
		out[row-1] = RowMultiplier{Row: row, Position: pos, Fm: f}
	}
	return out
}

func ordinalRow(row int) string {
	suffix := "th"
	switch row % 10 {
	case 1:
		if row%100 != 11 {
			suffix = "st"
		}
	case 2:
		if row%100 != 12 {
			suffix = "nd"
		}
	case 3:
		if row%100 != 13 {
			suffix = "rd"
		}
	}
	digits := []byte{}
	n := row
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits) + suffix + " row"
}

// BlockFailureCohesive returns the block-failure capacity (lb) of an
// n_rows x n_cols group in cohesive soil, spacing and pile width in
// inches, embedment in ft.
func BlockFailureCohesive(nRows, nCols int, spacingIn, pileWidthIn, embedmentFt, cuAvgPsf, cuBasePsf float64) float64 {
	sFt := spacingIn / 12.0
	dFt := pileWidthIn / 12.0
	bg := float64(nCols-1)*sFt + dFt
	lg := float64(nRows-1)*sFt + dFt
	d := embedmentFt

	qSide := 2.0 * (bg + lg) * d * cuAvgPsf
	nc := 5.0 * (1.0 + 0.2*(bg/lg)) * (1.0 + 0.2*(d/bg))
	if nc > 9.0 {
		nc = 9.0
	}
	qBase := bg * lg * nc * cuBasePsf
	return qSide + qBase
}

// Result is the pile-group analysis output for a regular rectangular
// grid (spec.md §4.8, entry point 3).
type Result struct {
	NPiles    int
	NRows     int
	NCols     int
	SpacingIn float64
	SOverD    float64

	EtaAxial          float64
	QGroupIndividual  float64
	QBlock            *float64
	QGroupGoverning   float64

	PMultipliers []RowMultiplier
	EtaLateral   float64

	Method string
	Notes  []string
}

// Input bundles the request parameters for group_analysis.
type Input struct {
	Profile             *soil.Profile
	NRows, NCols        int
	PileWidthIn         float64
	SpacingIn           float64
	EmbedmentFt         float64
	QSingleCompression  float64
	QSingleTension      float64
}

// Analyze runs the pile-group reduction engine for a regular grid.
func Analyze(in Input) (*Result, error) {
	if in.NRows <= 0 || in.NCols <= 0 {
		return nil, perr.Invalid("group: n_rows and n_cols must be > 0, got %d x %d", in.NRows, in.NCols)
	}
	nPiles := in.NRows * in.NCols
	sOverD := 999.0
	if in.PileWidthIn > 0 {
		sOverD = in.SpacingIn / in.PileWidthIn
	}
	notes := []string{}

	eta := ConverseLabarre(in.NRows, in.NCols, in.PileWidthIn, in.SpacingIn)
	qIndividual := eta * float64(nPiles) * in.QSingleCompression

	var qBlock *float64
	if in.Profile != nil {
		var cuValues []float64
		for _, l := range in.Profile.Layers {
			if l.Type.IsCohesive() {
				cuValues = append(cuValues, in.Profile.CU(l))
			}
		}
		if len(cuValues) > 0 {
			cuAvg := 0.0
			for _, v := range cuValues {
				cuAvg += v
			}
			cuAvg /= float64(len(cuValues))
			cuBase := cuAvg
			if tipLayer, ok := in.Profile.LayerAt(in.EmbedmentFt - 0.1); ok {
				cuBase = in.Profile.CU(tipLayer)
			}
			q := BlockFailureCohesive(in.NRows, in.NCols, in.SpacingIn, in.PileWidthIn, in.EmbedmentFt, cuAvg, cuBase)
			qBlock = &q
		}
	}

	qGoverning := qIndividual
	if qBlock != nil {
		qGoverning = math.Min(qIndividual, *qBlock)
		if *qBlock < qIndividual {
			notes = append(notes, "group: block failure governs")
		} else {
			notes = append(notes, "group: individual pile failure governs")
		}
	}

	pm := PMultipliers(in.NRows, sOverD)
	fmSum := 0.0
	for _, r := range pm {
		fmSum += r.Fm * float64(in.NCols)
	}
	etaLateral := 1.0
	if nPiles > 0 {
		etaLateral = fmSum / float64(nPiles)
	}

	if sOverD < 3 {
		notes = append(notes, "group: s/d below minimum recommended spacing of 3")
	} else if sOverD >= 8 {
		notes = append(notes, "group: s/d >= 8, group effects are negligible")
	}

	return &Result{
		NPiles: nPiles, NRows: in.NRows, NCols: in.NCols,
		SpacingIn: in.SpacingIn, SOverD: sOverD,
		EtaAxial: eta, QGroupIndividual: qIndividual,
		QBlock: qBlock, QGroupGoverning: qGoverning,
		PMultipliers: pm, EtaLateral: etaLateral,
		Method: "Converse-Labarre + AASHTO p-multipliers",
		Notes:  notes,
	}, nil
}
