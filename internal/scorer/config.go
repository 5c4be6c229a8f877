// Package scorer implements weighted feasibility scoring for solar
// installation sites.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/heliowatt/feasibility-cli/internal/config"
)

// DefaultConfig returns a config.ScoringConfig with the stock tuning
// values. Weights sum to 1.
func DefaultConfig() config.ScoringConfig {
	return config.ScoringConfig{
		// Weights (sum = 1).
		PermitWeight:   0.6,
		ResearchWeight: 0.4,

		// Risk thresholds on the weighted total.
		GoThreshold:   70,
		NoGoThreshold: 50,

		// Permitting sub-score: 100 - fee/divisor - weeks*penalty.
		FeeDivisor:  10,
		WeekPenalty: 5,

		// Research sub-score tuning.
		ResearchBase:   70,
		ArticlePenalty: 2,
		ResearchFloor:  20,
		ResearchCeil:   80,
		MoratoriumCut:  15,
		IncentiveLift:  10,
	}
}

// WeightSum returns the sum of the two component weights.
func WeightSum(c config.ScoringConfig) float64 {
	return c.PermitWeight + c.ResearchWeight
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	weights := map[string]float64{
		"permit_weight":   c.PermitWeight,
		"research_weight": c.ResearchWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	sum := WeightSum(c)
	if sum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}
	if math.Abs(sum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1, got %.2f", sum))
	}

	// Thresholds.
	if c.GoThreshold < 0 || c.GoThreshold > 100 {
		errs = append(errs, "go_threshold must be between 0 and 100")
	}
	if c.NoGoThreshold < 0 || c.NoGoThreshold > 100 {
		errs = append(errs, "no_go_threshold must be between 0 and 100")
	}
	if c.NoGoThreshold > c.GoThreshold {
		errs = append(errs, "no_go_threshold must be <= go_threshold")
	}

	// Sub-score tuning.
	if c.FeeDivisor <= 0 {
		errs = append(errs, "fee_divisor must be > 0")
	}
	if c.WeekPenalty < 0 {
		errs = append(errs, "week_penalty must be >= 0")
	}
	if c.ArticlePenalty < 0 {
		errs = append(errs, "article_penalty must be >= 0")
	}
	if c.ResearchFloor < 0 || c.ResearchFloor > 100 {
		errs = append(errs, "research_floor must be between 0 and 100")
	}
	if c.ResearchCeil < c.ResearchFloor || c.ResearchCeil > 100 {
		errs = append(errs, "research_ceiling must be between research_floor and 100")
	}
	if c.MoratoriumCut < 0 {
		errs = append(errs, "moratorium_cut must be >= 0")
	}
	if c.IncentiveLift < 0 {
		errs = append(errs, "incentive_lift must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
