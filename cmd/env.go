package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/heliowatt/feasibility-cli/internal/assess"
	"github.com/heliowatt/feasibility-cli/internal/permitting"
	"github.com/heliowatt/feasibility-cli/internal/research"
	"github.com/heliowatt/feasibility-cli/internal/scorer"
	"github.com/heliowatt/feasibility-cli/internal/store"
	anthropicpkg "github.com/heliowatt/feasibility-cli/pkg/anthropic"
	"github.com/heliowatt/feasibility-cli/pkg/newsapi"
)

// assessEnv bundles the clients and stores an assessment needs.
type assessEnv struct {
	Store    store.Store
	Assessor *assess.Assessor
}

func (e *assessEnv) Close() {
	if e.Store != nil {
		e.Store.Close() //nolint:errcheck
	}
}

func initAssessor(ctx context.Context) (*assessEnv, error) {
	if cfg.News.Token == "" {
		return nil, eris.New("news API token is required (HELIOWATT_NEWS_TOKEN)")
	}

	if err := scorer.ValidateConfig(cfg.Scoring); err != nil {
		return nil, err
	}

	if cfg.Permit.ProfilesPath != "" {
		if err := permitting.LoadProfileOverrides(cfg.Permit.ProfilesPath); err != nil {
			return nil, err
		}
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}

	newsClient := newsapi.NewClient(cfg.News.Token,
		newsapi.WithBaseURL(cfg.News.BaseURL),
		newsapi.WithRateLimit(cfg.News.RPS),
	)
	searcher := research.NewSearcher(newsClient, cfg.Research, cfg.News)

	var aiClient anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		aiClient = anthropicpkg.NewClient(cfg.Anthropic.Key)
	}

	return &assessEnv{
		Store:    st,
		Assessor: assess.New(cfg, st, searcher, scorer.New(cfg.Scoring), aiClient),
	}, nil
}
