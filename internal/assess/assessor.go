package assess

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/heliowatt/feasibility-cli/internal/config"
	"github.com/heliowatt/feasibility-cli/internal/model"
	"github.com/heliowatt/feasibility-cli/internal/permitting"
	"github.com/heliowatt/feasibility-cli/internal/research"
	"github.com/heliowatt/feasibility-cli/internal/scorer"
	"github.com/heliowatt/feasibility-cli/internal/store"
	"github.com/heliowatt/feasibility-cli/pkg/anthropic"
)

// Searcher gathers news articles relevant to a location.
type Searcher interface {
	Search(ctx context.Context, location string) ([]model.Article, error)
}

// Assessor runs the full feasibility assessment for a single site:
// jurisdiction classification, permit lookup, news research, scoring,
// and optional narrative generation.
type Assessor struct {
	cfg       *config.Config
	store     store.Store
	searcher  Searcher
	scorer    *scorer.Scorer
	anthropic anthropic.Client
}

// New creates an Assessor. The store and anthropic client may be nil;
// persistence and narrative generation are skipped when absent.
func New(cfg *config.Config, st store.Store, searcher Searcher, sc *scorer.Scorer, aiClient anthropic.Client) *Assessor {
	return &Assessor{
		cfg:       cfg,
		store:     st,
		searcher:  searcher,
		scorer:    sc,
		anthropic: aiClient,
	}
}

// Run assesses one site. On failure the assessment record, if any, is
// marked failed with the cause before the error is returned.
func (a *Assessor) Run(ctx context.Context, site model.Site) (*model.FeasibilityResult, error) {
	log := zap.L().With(zap.String("address", site.Address))
	log.Info("assess: starting")

	var recordID string
	if a.store != nil {
		rec, err := a.store.CreateAssessment(ctx, site)
		if err != nil {
			return nil, eris.Wrap(err, "assess: create record")
		}
		recordID = rec.ID
	}

	setStatus := func(status model.AssessmentStatus) {
		if a.store == nil {
			return
		}
		if err := a.store.UpdateAssessmentStatus(ctx, recordID, status); err != nil {
			log.Warn("assess: failed to update status", zap.Error(err))
		}
	}
	fail := func(cause error) {
		if a.store == nil {
			return
		}
		if err := a.store.FailAssessment(ctx, recordID, cause.Error()); err != nil {
			log.Warn("assess: failed to record failure", zap.Error(err))
		}
	}

	// Permitting: classify jurisdiction, look up rules, build the form.
	setStatus(model.AssessmentStatusPermitting)
	jurisdiction := permitting.Classify(site.Address)
	profile := permitting.ProfileFor(jurisdiction)
	log.Info("assess: jurisdiction classified",
		zap.String("jurisdiction", string(jurisdiction)),
		zap.Int("base_fee_usd", profile.BaseFeeUSD),
	)
	form := permitting.BuildForm(site.Address, profile, site.System, a.cfg.Permit, time.Now())

	// Research: search regional news and extract regulatory signals.
	setStatus(model.AssessmentStatusResearching)
	location := permitting.ResearchLocation(site.Address)
	articles, err := a.searcher.Search(ctx, location)
	if err != nil {
		fail(err)
		return nil, eris.Wrap(err, "assess: news research")
	}
	finding := research.Extract(articles)
	log.Info("assess: research complete",
		zap.Int("articles", finding.ArticleCount),
		zap.Bool("moratorium", finding.Moratorium),
		zap.Bool("incentive", finding.Incentive),
	)

	// Scoring.
	setStatus(model.AssessmentStatusScoring)
	scored := a.scorer.Score(site.Address, profile, finding)
	result := &scored
	result.Form = form

	if a.anthropic != nil {
		narrative, narrErr := a.narrative(ctx, result, articles)
		if narrErr != nil {
			log.Warn("assess: narrative generation failed", zap.Error(narrErr))
		} else {
			result.Narrative = narrative
		}
	}

	if a.store != nil {
		if err := a.store.CompleteAssessment(ctx, recordID, result); err != nil {
			return nil, eris.Wrap(err, "assess: persist result")
		}
	}

	log.Info("assess: complete",
		zap.Float64("overall_score", result.OverallScore),
		zap.String("decision", string(result.Decision)),
	)
	return result, nil
}

const narrativeSystem = "You are a solar permitting analyst. Given a site feasibility " +
	"summary and recent news headlines, write a short paragraph (3-4 sentences) describing " +
	"the regulatory environment for residential solar at this site. Be factual and concise; " +
	"do not restate the numeric scores."

func (a *Assessor) narrative(ctx context.Context, result *model.FeasibilityResult, articles []model.Article) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Site: %s\nJurisdiction: %s\nDecision: %s (risk: %s)\n",
		result.Address, result.Jurisdiction.DisplayName(), result.Decision, result.Risk)
	if result.Finding.Moratorium {
		sb.WriteString("Signals: possible moratorium or restriction reported.\n")
	}
	if result.Finding.Incentive {
		sb.WriteString("Signals: incentive programs reported.\n")
	}
	sb.WriteString("Recent headlines:\n")
	for i, art := range articles {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&sb, "- %s (%s)\n", art.Title, art.Source)
	}

	resp, err := a.anthropic.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.cfg.Anthropic.Model,
		MaxTokens: a.cfg.Anthropic.MaxTokens,
		System:    narrativeSystem,
		Messages: []anthropic.Message{
			{Role: "user", Content: sb.String()},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "assess: create narrative")
	}
	resp.Usage.LogUsage(a.cfg.Anthropic.Model, "narrative")
	return strings.TrimSpace(resp.Text()), nil
}
