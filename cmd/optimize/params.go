// Package main provides CMA-ES tuning of worm steering parameters.
package main

import (
	"github.com/pthm-cable/wormsoup/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Defaults match defaults.yaml.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "jitter", Path: "steering.jitter", Min: 0.05, Max: 0.8, Default: 0.35},
			{Name: "wobble", Path: "steering.wobble", Min: 0.0, Max: 1.0, Default: 0.45},
			{Name: "ring_pull", Path: "steering.ring_pull", Min: 0.2, Max: 2.0, Default: 0.9},
			{Name: "ring_push", Path: "steering.ring_push", Min: 0.2, Max: 2.0, Default: 0.7},
			{Name: "leash_stiffness", Path: "steering.leash_stiffness", Min: 2, Max: 40, Default: 18},
			{Name: "leash_nudge", Path: "steering.leash_nudge", Min: 0.05, Max: 0.8, Default: 0.35},
			{Name: "max_turn_per_frame", Path: "steering.max_turn_per_frame", Min: 0.1, Max: 0.6, Default: 0.35},
			{Name: "chain_follow", Path: "chain.follow", Min: 0.4, Max: 1.0, Default: 0.8},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Steering.Jitter = c[0]
	cfg.Steering.Wobble = c[1]
	cfg.Steering.RingPull = c[2]
	cfg.Steering.RingPush = c[3]
	cfg.Steering.LeashStiffness = c[4]
	cfg.Steering.LeashNudge = c[5]
	cfg.Steering.MaxTurnPerFrame = c[6]
	cfg.Chain.Follow = c[7]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Steering.Jitter,
		cfg.Steering.Wobble,
		cfg.Steering.RingPull,
		cfg.Steering.RingPush,
		cfg.Steering.LeashStiffness,
		cfg.Steering.LeashNudge,
		cfg.Steering.MaxTurnPerFrame,
		cfg.Chain.Follow,
	}
}
