package stagger

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// tomlParams mirrors Params' exported fields under snake_case keys,
// decoupling the on-disk format from Params' Go field names.
type tomlParams struct {
	TieTolerance         float64 `toml:"tie_tolerance"`
	NumericTolerance     float64 `toml:"numeric_tolerance"`
	MinSetCapacity       float64 `toml:"min_set_capacity"`
	ResyncPeriod         int     `toml:"resync_period"`
	MaxTimeOptimizationS float64 `toml:"max_time_optimization_seconds"`
}

// LoadParamsTOML reads Params from a TOML file at path. Any field omitted
// from the file keeps its DefaultParams() value. Configuration loading is
// ambient, not core: the engine itself never reads a file, only the caller
// that builds a Params value to pass to NewInstance.
func LoadParamsTOML(path string) (Params, error) {
	p := DefaultParams()
	tp := tomlParams{
		TieTolerance:         p.TieTolerance,
		NumericTolerance:     p.NumericTolerance,
		MinSetCapacity:       p.MinSetCapacity,
		ResyncPeriod:         p.ResyncPeriod,
		MaxTimeOptimizationS: 0,
	}
	if _, err := toml.DecodeFile(path, &tp); err != nil {
		return Params{}, fmt.Errorf("stagger: LoadParamsTOML: %w", err)
	}
	p.TieTolerance = tp.TieTolerance
	p.NumericTolerance = tp.NumericTolerance
	p.MinSetCapacity = tp.MinSetCapacity
	p.ResyncPeriod = tp.ResyncPeriod
	p.MaxTimeOptimization = secondsToDuration(tp.MaxTimeOptimizationS)
	if err := p.validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
