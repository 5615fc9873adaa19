package group

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jason-orcas/solar-pile-design/soil"
)

func TestConverseLabarreWithinBounds(t *testing.T) {
	chk.PrintTitle("ConverseLabarreWithinBounds")
	eta := ConverseLabarre(2, 2, 6.0, 36.0)
	if eta < 0 || eta > 1 {
		t.Fatalf("eta out of [0,1]: %g", eta)
	}
	if eta < 0.85 || eta > 0.95 {
		t.Fatalf("expected eta near 0.90 for s/d=6, got %g", eta)
	}
}

func TestPMultipliersIncreaseTowardEightSOverD(t *testing.T) {
	chk.PrintTitle("PMultipliersIncreaseTowardEightSOverD")
	tight := PMultipliers(3, 3.0)
	loose := PMultipliers(3, 8.0)
	for i := range tight {
		if loose[i].Fm < tight[i].Fm {
			t.Fatalf("row %d: expected wider spacing to give a larger multiplier, tight=%g loose=%g",
				i, tight[i].Fm, loose[i].Fm)
		}
	}
	for _, r := range loose {
		if r.Fm != 1.0 {
			t.Fatalf("s/d=8 should give f_m=1.0 for every row, got %g at row %d", r.Fm, r.Row)
		}
	}
}

func nspt(v float64) *float64 { return &v }

func TestBlockFailureGovernsAtTightSpacing(t *testing.T) {
	chk.PrintTitle("BlockFailureGovernsAtTightSpacing")
	cu := 1200.0
	layers := []soil.Layer{{ZTop: 0, Thickness: 12, Type: soil.Clay, CU: &cu}}
	p, err := soil.NewProfile(layers)
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	res, err := Analyze(Input{
		Profile: p, NRows: 2, NCols: 2, PileWidthIn: 6.0, SpacingIn: 18.0,
		EmbedmentFt: 12, QSingleCompression: 50000,
	})
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if res.QBlock == nil {
		t.Fatalf("expected a block-failure capacity for a cohesive profile")
	}
	if res.QGroupGoverning > res.QGroupIndividual {
		t.Fatalf("governing capacity should never exceed individual-pile capacity")
	}
}

func TestInvalidGridDims(t *testing.T) {
	chk.PrintTitle("InvalidGridDims")
	_, err := Analyze(Input{NRows: 0, NCols: 2, PileWidthIn: 6, SpacingIn: 36, QSingleCompression: 1000})
	if err == nil {
		t.Fatalf("expected error for n_rows=0")
	}
}

func TestRigidCapNoEccentricityMatchesEqualSplit(t *testing.T) {
	chk.PrintTitle("RigidCapNoEccentricityMatchesEqualSplit")
	piles := []PileLocation{
		{ID: 1, X: 0, Y: 0}, {ID: 2, X: 5, Y: 0},
		{ID: 3, X: 0, Y: 5}, {ID: 4, X: 5, Y: 5},
	}
	loads := []LoadPoint{{ID: 1, X: 2.5, Y: 2.5, V: 40000}}
	res, err := DistributeRigidCap(piles, loads, 50000, 10000, 6.0)
	if err != nil {
		t.Fatalf("distribute error: %v", err)
	}
	for _, r := range res.Reactions {
		chk.Float64(t, "P_axial", 1e-6, r.PAxial, 10000)
	}
}

func TestRigidCapEccentricLoadIncreasesOneCorner(t *testing.T) {
	chk.PrintTitle("RigidCapEccentricLoadIncreasesOneCorner")
	piles := []PileLocation{
		{ID: 1, X: 0, Y: 0}, {ID: 2, X: 5, Y: 0},
		{ID: 3, X: 0, Y: 5}, {ID: 4, X: 5, Y: 5},
	}
	loads := []LoadPoint{{ID: 1, X: 4, Y: 4, V: 40000}}
	res, err := DistributeRigidCap(piles, loads, 50000, 10000, 6.0)
	if err != nil {
		t.Fatalf("distribute error: %v", err)
	}
	if res.PMax <= 10000 {
		t.Fatalf("expected the near corner to carry more than the equal-split share, got P_max=%g", res.PMax)
	}
	if !res.Reactions[3].Governs {
		t.Fatalf("expected pile 4 (nearest the eccentric load) to govern")
	}
}

func TestRigidCapEmptyPilesIsInvalid(t *testing.T) {
	chk.PrintTitle("RigidCapEmptyPilesIsInvalid")
	_, err := DistributeRigidCap(nil, nil, 1000, 1000, 6.0)
	if err == nil {
		t.Fatalf("expected error for empty pile list")
	}
}
