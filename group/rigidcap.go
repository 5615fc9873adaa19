// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"math"

	"github.com/jason-orcas/solar-pile-design/internal/perr"
)

// PileLocation is one pile's position in an arbitrary group layout.
type PileLocation struct {
	ID    int
	X, Y  float64 // ft, from an arbitrary origin
	Label string
}

// LoadPoint is one applied load, transferred to the group centroid
// before distribution.
type LoadPoint struct {
	ID       int
	X, Y     float64 // ft
	V        float64 // lb, + compression
	Hx, Hy   float64 // lb, lateral (not distributed by this rigid-cap model)
	Mx, My   float64 // ft-lb, moment about the X and Y axes
}

// PileReaction is one pile's computed axial reaction and utilization.
type PileReaction struct {
	PileID      int
	X, Y        float64
	Label       string
	PAxial      float64 // lb, + compression
	Utilization float64
	Governs     bool
}

// RigidCapResult is the arbitrary-layout load-distribution output.
type RigidCapResult struct {
	Piles []PileLocation
	NPiles int

	PileCentroidX, PileCentroidY float64
	LoadCentroidX, LoadCentroidY float64
	EccentricityX, EccentricityY float64

	VTotal, MxTotal, MyTotal float64

	Reactions        []PileReaction
	PMax, PMin       float64
	GoverningPileID  int
	MaxUtilization   float64
	AllPilesOK       bool

	EtaAxial     float64
	PMultipliers []RowMultiplier
	EtaLateral   float64

	Method string
	Notes  []string
}

func centroid(piles []PileLocation) (cx, cy float64) {
	n := float64(len(piles))
	if n == 0 {
		return 0, 0
	}
	for _, p := range piles {
		cx += p.X
		cy += p.Y
	}
	return cx / n, cy / n
}

// loadResultant transfers the applied loads to the pile-group centroid,
// returning (V_total, Mx_total, My_total, load_centroid_x, load_centroid_y).
func loadResultant(loads []LoadPoint, pcx, pcy float64) (vTotal, mxTotal, myTotal, loadCx, loadCy float64) {
	for _, l := range loads {
		vTotal += l.V
	}
	absSum := 0.0
	for _, l := range loads {
		absSum += math.Abs(l.V)
	}
	n := float64(len(loads))
	switch {
	case absSum > 0 && vTotal != 0:
		for _, l := range loads {
			loadCx += l.V * l.X
			loadCy += l.V * l.Y
		}
		loadCx /= vTotal
		loadCy /= vTotal
	case n > 0:
		for _, l := range loads {
			loadCx += l.X
			loadCy += l.Y
		}
		loadCx /= n
		loadCy /= n
	default:
		loadCx, loadCy = pcx, pcy
	}

	ex := loadCx - pcx
	ey := loadCy - pcy
	for _, l := range loads {
		mxTotal += l.Mx
		myTotal += l.My
	}
	mxTotal += vTotal * ey
	myTotal += vTotal * ex
	return
}

func inferGridDims(piles []PileLocation) (nRows, nCols int, avgSpacingIn float64) {
	if len(piles) <= 1 {
		return 1, 1, 0
	}
	xsSeen := map[float64]bool{}
	ysSeen := map[float64]bool{}
	var xs, ys []float64
	for _, p := range piles {
		rx := math.Round(p.X*100) / 100
		ry := math.Round(p.Y*100) / 100
		if !xsSeen[rx] {
			xsSeen[rx] = true
			xs = append(xs, rx)
		}
		if !ysSeen[ry] {
			ysSeen[ry] = true
			ys = append(ys, ry)
		}
	}
	sortFloats(xs)
	sortFloats(ys)
	nCols, nRows = len(xs), len(ys)

	var spacings []float64
	for i := 1; i < len(xs); i++ {
		spacings = append(spacings, math.Abs(xs[i]-xs[i-1]))
	}
	for i := 1; i < len(ys); i++ {
		spacings = append(spacings, math.Abs(ys[i]-ys[i-1]))
	}
	if len(spacings) == 0 {
		return nRows, nCols, 0
	}
	sum := 0.0
	for _, s := range spacings {
		sum += s
	}
	return nRows, nCols, (sum / float64(len(spacings))) * 12.0
}

func sortFloats(v []float64) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j-1] > v[j]; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
}

// DistributeRigidCap distributes applied loads to an arbitrary pile
// layout under the rigid-cap assumption (SPEC_FULL §5.5):
// P_i = V/n + M_x*y_i/sum(y_j^2) + M_y*x_i/sum(x_j^2), with coordinates
// measured relative to the pile-group centroid.
func DistributeRigidCap(piles []PileLocation, loads []LoadPoint, qCapC, qCapT, pileWidthIn float64) (*RigidCapResult, error) {
	n := len(piles)
	if n == 0 {
		return nil, perr.Invalid("group: no piles defined")
	}
	notes := []string{}

	pcx, pcy := centroid(piles)
	xi := make([]float64, n)
	yi := make([]float64, n)
	sumX2, sumY2 := 0.0, 0.0
	for i, p := range piles {
		xi[i] = p.X - pcx
		yi[i] = p.Y - pcy
		sumX2 += xi[i] * xi[i]
		sumY2 += yi[i] * yi[i]
	}

	vTotal, mxTotal, myTotal, loadCx, loadCy := loadResultant(loads, pcx, pcy)
	ex := loadCx - pcx
	ey := loadCy - pcy

	if math.Abs(ex) > 0.001 || math.Abs(ey) > 0.001 {
		notes = append(notes, "group: load resultant is eccentric to the pile group centroid")
	}

	reactions := make([]PileReaction, n)
	for i, p := range piles {
		pAxial := vTotal / float64(n)
		if sumY2 > 1e-9 {
			pAxial += mxTotal * yi[i] / sumY2
		}
		if sumX2 > 1e-9 {
			pAxial += myTotal * xi[i] / sumX2
		}
		var util float64
		switch {
		case pAxial >= 0 && qCapC > 0:
			util = pAxial / qCapC
		case pAxial < 0 && qCapT > 0:
			util = math.Abs(pAxial) / qCapT
		}
		reactions[i] = PileReaction{PileID: p.ID, X: p.X, Y: p.Y, Label: p.Label, PAxial: pAxial, Utilization: util}
	}

	maxIdx := 0
	for i := range reactions {
		if math.Abs(reactions[i].PAxial) > math.Abs(reactions[maxIdx].PAxial) {
			maxIdx = i
		}
	}
	reactions[maxIdx].Governs = true

	pMax, pMin := reactions[0].PAxial, reactions[0].PAxial
	maxUtil := 0.0
	allOK := true
	for _, r := range reactions {
		if r.PAxial > pMax {
			pMax = r.PAxial
		}
		if r.PAxial < pMin {
			pMin = r.PAxial
		}
		if r.Utilization > maxUtil {
			maxUtil = r.Utilization
		}
		if r.Utilization > 1.0 {
			allOK = false
		}
	}

	nRowsInf, nColsInf, avgSpacingIn := inferGridDims(piles)
	sOverD := 999.0
	if pileWidthIn > 0 {
		sOverD = avgSpacingIn / pileWidthIn
	}
	eta := ConverseLabarre(nRowsInf, nColsInf, pileWidthIn, avgSpacingIn)
	pm := PMultipliers(nRowsInf, sOverD)
	fmSum := 0.0
	for _, r := range pm {
		fmSum += r.Fm * float64(nColsInf)
	}
	etaLateral := 1.0
	if n > 0 {
		etaLateral = fmSum / float64(n)
	}

	return &RigidCapResult{
		Piles: piles, NPiles: n,
		PileCentroidX: pcx, PileCentroidY: pcy,
		LoadCentroidX: loadCx, LoadCentroidY: loadCy,
		EccentricityX: ex, EccentricityY: ey,
		VTotal: vTotal, MxTotal: mxTotal, MyTotal: myTotal,
		Reactions: reactions, PMax: pMax, PMin: pMin,
		GoverningPileID: reactions[maxIdx].PileID, MaxUtilization: maxUtil,
		AllPilesOK: allOK,
		EtaAxial: eta, PMultipliers: pm, EtaLateral: etaLateral,
		Method: "Rigid cap distribution (P_i = V/n + M_x*y_i/sum(y_j^2) + M_y*x_i/sum(x_j^2))",
		Notes:  notes,
	}, nil
}
