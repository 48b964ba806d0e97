package stagger

import (
	"fmt"
	"time"
)

// Params holds the tunable constants recognized by the engine. Zero-value
// Params is not valid; construct one with DefaultParams and override fields
// via the With* options, or load one with LoadParamsTOML.
type Params struct {
	// TieTolerance is the threshold below which two timestamps are
	// considered tied (CONSTR_TOLERANCE in the original literature).
	TieTolerance float64
	// NumericTolerance is epsilon for invariant and feasibility checks.
	NumericTolerance float64
	// MinSetCapacity is a minimum effective capacity factor. It is
	// accepted and validated but not currently consumed by any
	// computation: the source this package generalizes carries it as an
	// unused, reserved tunable, and this port preserves that contract
	// rather than silently dropping a documented knob.
	MinSetCapacity float64
	// ResyncPeriod is how many accepted local-search moves pass between
	// full Construct resynchronizations.
	ResyncPeriod int
	// MaxTimeOptimization bounds the wall-clock budget for Run. A zero
	// value means Run returns immediately after the initial solution
	// (plus any tie resolution), performing no local search at all.
	MaxTimeOptimization time.Duration
}

// DefaultParams returns the documented defaults: TieTolerance 1e-3,
// NumericTolerance 1e-6, MinSetCapacity 1.01, ResyncPeriod 20, and a zero
// MaxTimeOptimization (Run performs no local search).
func DefaultParams() Params {
	return Params{
		TieTolerance:        1e-3,
		NumericTolerance:    1e-6,
		MinSetCapacity:      1.01,
		ResyncPeriod:        20,
		MaxTimeOptimization: 0,
	}
}

func (p Params) validate() error {
	if p.TieTolerance <= 0 {
		return fmt.Errorf("stagger: invalid params: TieTolerance must be positive")
	}
	if p.NumericTolerance <= 0 {
		return fmt.Errorf("stagger: invalid params: NumericTolerance must be positive")
	}
	if p.MinSetCapacity <= 0 {
		return fmt.Errorf("stagger: invalid params: MinSetCapacity must be positive")
	}
	if p.ResyncPeriod <= 0 {
		return fmt.Errorf("stagger: invalid params: ResyncPeriod must be positive")
	}
	return nil
}

// ParamOption configures Params.
type ParamOption interface {
	applyParams(*Params)
}

type paramOptionFunc func(*Params)

func (f paramOptionFunc) applyParams(p *Params) { f(p) }

// WithTieTolerance overrides the tie tolerance.
func WithTieTolerance(v float64) ParamOption {
	return paramOptionFunc(func(p *Params) { p.TieTolerance = v })
}

// WithNumericTolerance overrides the numeric (invariant-check) tolerance.
func WithNumericTolerance(v float64) ParamOption {
	return paramOptionFunc(func(p *Params) { p.NumericTolerance = v })
}

// WithMinSetCapacity overrides the reserved minimum-capacity factor.
func WithMinSetCapacity(v float64) ParamOption {
	return paramOptionFunc(func(p *Params) { p.MinSetCapacity = v })
}

// WithResyncPeriod overrides how many accepted moves pass between full
// resynchronizations.
func WithResyncPeriod(n int) ParamOption {
	return paramOptionFunc(func(p *Params) { p.ResyncPeriod = n })
}

// WithMaxTimeOptimization overrides the wall-clock search budget.
func WithMaxTimeOptimization(d time.Duration) ParamOption {
	return paramOptionFunc(func(p *Params) { p.MaxTimeOptimization = d })
}

// NewParams builds Params starting from DefaultParams and applying opts in
// order.
func NewParams(opts ...ParamOption) Params {
	p := DefaultParams()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyParams(&p)
	}
	return p
}
