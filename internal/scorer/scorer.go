package scorer

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/heliowatt/feasibility-cli/internal/config"
	"github.com/heliowatt/feasibility-cli/internal/model"
)

// Scorer combines a permitting sub-score and a research sub-score into a
// weighted feasibility score. Deterministic, stateless, side-effect-free.
type Scorer struct {
	cfg config.ScoringConfig
}

// New creates a Scorer. Callers should validate cfg with ValidateConfig
// before use.
func New(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// PermitSubScore derives a 0-100 score from a permit profile. Higher fees
// and longer processing times never increase the score.
func (s *Scorer) PermitSubScore(profile model.PermitProfile) float64 {
	score := 100 - float64(profile.BaseFeeUSD)/s.cfg.FeeDivisor - float64(profile.MinWeeks)*s.cfg.WeekPenalty
	return round1(clamp(score, 0, 100))
}

// ResearchSubScore derives a 0-100 score from a research finding. More
// matched articles never increase the score; a moratorium signal cuts it
// and an incentive signal lifts it within the configured band.
func (s *Scorer) ResearchSubScore(finding model.ResearchFinding) float64 {
	score := s.cfg.ResearchBase - float64(finding.ArticleCount)*s.cfg.ArticlePenalty
	score = clamp(score, s.cfg.ResearchFloor, s.cfg.ResearchCeil)

	if finding.Moratorium {
		score -= s.cfg.MoratoriumCut
	}
	if finding.Incentive {
		score += s.cfg.IncentiveLift
	}

	return round1(clamp(score, 0, 100))
}

// Combine computes the weighted total and maps it to a risk label and
// decision. The total is permitWeight*permit + researchWeight*research,
// clamped to [0,100].
func (s *Scorer) Combine(permit, research float64) (float64, model.RiskLevel, model.Decision) {
	total := round1(clamp(permit*s.cfg.PermitWeight+research*s.cfg.ResearchWeight, 0, 100))

	switch {
	case total >= s.cfg.GoThreshold:
		return total, model.RiskLow, model.DecisionGo
	case total >= s.cfg.NoGoThreshold:
		return total, model.RiskMedium, model.DecisionConditionalGo
	default:
		return total, model.RiskHigh, model.DecisionNoGo
	}
}

// Score produces the full feasibility result for a classified site.
func (s *Scorer) Score(address string, profile model.PermitProfile, finding model.ResearchFinding) model.FeasibilityResult {
	permit := s.PermitSubScore(profile)
	research := s.ResearchSubScore(finding)
	total, risk, decision := s.Combine(permit, research)

	result := model.FeasibilityResult{
		Address:       address,
		Jurisdiction:  profile.Jurisdiction,
		Profile:       profile,
		Finding:       finding,
		PermitScore:   permit,
		ResearchScore: research,
		OverallScore:  total,
		Risk:          risk,
		Decision:      decision,
	}
	result.Justification = s.justify(result)

	zap.L().Debug("scorer: site scored",
		zap.String("address", address),
		zap.Float64("permit_score", permit),
		zap.Float64("research_score", research),
		zap.Float64("overall_score", total),
		zap.String("risk", string(risk)),
	)

	return result
}

// justify assembles a short explanation naming the dominant sub-score.
func (s *Scorer) justify(r model.FeasibilityResult) string {
	permitShare := r.PermitScore * s.cfg.PermitWeight
	researchShare := r.ResearchScore * s.cfg.ResearchWeight

	dominant := "permitting"
	if researchShare > permitShare {
		dominant = "research"
	}

	return fmt.Sprintf(
		"%s: overall %.1f/100 (permitting %.1f @ %.0f%%, research %.1f @ %.0f%%); the %s sub-score dominated. Risk: %s.",
		r.Decision, r.OverallScore,
		r.PermitScore, s.cfg.PermitWeight*100,
		r.ResearchScore, s.cfg.ResearchWeight*100,
		dominant, r.Risk,
	)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
