package pycurve

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jason-orcas/solar-pile-design/soil"
)

func f64(v float64) *float64 { return &v }

func baseCtx() *Context {
	return &Context{
		Depth:   5,
		Width:   6.03,
		Gamma:   115,
		Phi:     33,
		CU:      0,
		SigmaVp: 500,
	}
}

func TestMatlockOddNondecreasingCapped(t *testing.T) {
	chk.PrintTitle("MatlockOddNondecreasingCapped")
	ctx := baseCtx()
	ctx.CU = 400
	ctx.Phi = 0
	m, err := New(soil.MatlockSoftClay, ctx)
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	var prev float64
	for i := 0; i <= 50; i++ {
		y := float64(i) * 0.05
		p, _ := m.Evaluate(y)
		pn, _ := m.Evaluate(-y)
		if math.Abs(p+pn) > 1e-6 {
			t.Fatalf("not odd at y=%g: p(y)=%g p(-y)=%g", y, p, pn)
		}
		if p < prev-1e-9 {
			t.Fatalf("not nondecreasing at y=%g: p=%g prev=%g", y, p, prev)
		}
		if p > ctx.PUlt+1e-6 {
			t.Fatalf("exceeds p_ult at y=%g: p=%g pult=%g", y, p, ctx.PUlt)
		}
		prev = p
	}
}

func TestAPISandOddNondecreasingCapped(t *testing.T) {
	chk.PrintTitle("APISandOddNondecreasingCapped")
	ctx := baseCtx()
	m, err := New(soil.APISand, ctx)
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	var prev float64
	for i := 0; i <= 50; i++ {
		y := float64(i) * 0.05
		p, _ := m.Evaluate(y)
		pn, _ := m.Evaluate(-y)
		if math.Abs(p+pn) > 1e-6 {
			t.Fatalf("not odd at y=%g", y)
		}
		if p < prev-1e-9 {
			t.Fatalf("not nondecreasing at y=%g: p=%g prev=%g", y, p, prev)
		}
		if p > ctx.PUlt+1e-6 {
			t.Fatalf("exceeds p_ult at y=%g: p=%g pult=%g", y, p, ctx.PUlt)
		}
		prev = p
	}
}

func TestAutoResolutionSandVsClay(t *testing.T) {
	chk.PrintTitle("AutoResolutionSandVsClay")
	if got := Resolve(soil.AutoPY, soil.Sand); got != soil.APISand {
		t.Fatalf("sand AUTO resolved to %v, want APISand", got)
	}
	if got := Resolve(soil.AutoPY, soil.Clay); got != soil.MatlockSoftClay {
		t.Fatalf("clay AUTO resolved to %v, want MatlockSoftClay", got)
	}
	if got := Resolve(soil.APISand, soil.Clay); got != soil.APISand {
		t.Fatalf("explicit non-AUTO tag was overridden")
	}
}

func TestElasticSubgradeUnbounded(t *testing.T) {
	chk.PrintTitle("ElasticSubgradeUnbounded")
	ctx := baseCtx()
	m, err := New(soil.ElasticSubgrade, ctx)
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	p1, _ := m.Evaluate(1)
	p2, _ := m.Evaluate(1000)
	if p2 <= p1 {
		t.Fatalf("elastic subgrade must keep growing: p(1)=%g p(1000)=%g", p1, p2)
	}
}

func TestUserInputPiecewiseFlatExtrapolation(t *testing.T) {
	chk.PrintTitle("UserInputPiecewiseFlatExtrapolation")
	ctx := baseCtx()
	ctx.Params = &soil.Params{
		UserY: []float64{0.1, 0.5, 1.0},
		UserP: []float64{50, 200, 300},
	}
	m, err := New(soil.UserInput, ctx)
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	p, _ := m.Evaluate(0.3)
	chk.Float64(t, "interpolated", 1e-9, p, 125.0)
	pFar, _ := m.Evaluate(5.0)
	chk.Float64(t, "flat extrapolation", 1e-9, pFar, 300.0)
}
