package oos

import "github.com/rozlivek/fogcfr/internal/policy"

// SamplingScheme selects how the proposal distribution at a history is
// derived from the current regret-matching strategy (§4.4, §6.3
// sampling_scheme).
type SamplingScheme int

const (
	// EpsilonOnPolicy mixes Exploration probability mass uniformly over
	// actions with the remaining mass on the current RM strategy.
	EpsilonOnPolicy SamplingScheme = iota
	// Uniform samples every action with equal probability, ignoring the
	// current RM strategy entirely.
	Uniform
)

// Targeting selects the granularity at which target biasing routes samples
// (§4.4, §6.3 targeting).
type Targeting int

const (
	InfosetLevel Targeting = iota
	PublicStateLevel
)

// BaselineMode selects the denominator weighting of the variance-reduction
// baseline (§4.4, §6.3 baseline). None disables the baseline outright: every
// b(h,a) reads as 0 and is never updated, reducing the estimator to raw
// outcome sampling (§8 property 6).
type BaselineMode int

const (
	BaselineNone BaselineMode = iota
	WeightedActingPlayer
	WeightedAllPlayers
	WeightedTime
)

// PlayStrategyKind selects which accumulator get_play_distribution reads
// from (§4.4 "Play distribution", supplemented feature 5).
type PlayStrategyKind int

const (
	Average PlayStrategyKind = iota
	Current
)

// Settings configures one OOSAlgorithm instance (§6.3). Zero value is not
// meaningful; use DefaultSettings and override fields, or load via
// package config.
type Settings struct {
	SamplingScheme SamplingScheme `yaml:"sampling_scheme"`
	Exploration    float64        `yaml:"exploration"`    // ε ∈ [0,1]
	TargetBiasing  float64        `yaml:"target_biasing"` // δ ∈ [0,1]
	Targeting      Targeting      `yaml:"targeting"`
	Baseline       BaselineMode   `yaml:"baseline"`

	RegretMatching       policy.RegretMatching       `yaml:"regret_matching"`
	AccumWeighting       policy.AccumulatorWeighting `yaml:"accumulator_weighting"`
	ApproxRegretMatching float64                     `yaml:"approx_regret_matching"`

	BatchSize int   `yaml:"batch_size"`
	Seed      int64 `yaml:"seed"`

	PlayStrategy PlayStrategyKind `yaml:"play_strategy"`
}

// DefaultSettings mirrors the "default settings" referenced by §8 scenario
// S3: ε-on-policy exploration, infoset-level targeting disabled by default
// (plain OOS, no resolving target), weighted-acting-player baseline, normal
// regret matching, uniform accumulator weighting.
func DefaultSettings() Settings {
	return Settings{
		SamplingScheme:       EpsilonOnPolicy,
		Exploration:          0.6,
		TargetBiasing:        0.0,
		Targeting:            InfosetLevel,
		Baseline:             WeightedActingPlayer,
		RegretMatching:       policy.Normal,
		AccumWeighting:       policy.Uniform,
		ApproxRegretMatching: 1e-9,
		BatchSize:            1,
		Seed:                 0,
		PlayStrategy:         Average,
	}
}
