package research

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/heliowatt/feasibility-cli/internal/config"
	"github.com/heliowatt/feasibility-cli/internal/model"
	"github.com/heliowatt/feasibility-cli/pkg/newsapi"
)

// Searcher fans search terms out to the news collaborator and collects
// deduplicated articles for signal extraction.
type Searcher struct {
	news newsapi.Client
	cfg  config.ResearchConfig
	opts []newsapi.SearchOption
}

// NewSearcher creates a Searcher. newsCfg supplies per-request limit and
// locale for the news API.
func NewSearcher(news newsapi.Client, cfg config.ResearchConfig, newsCfg config.NewsConfig) *Searcher {
	var opts []newsapi.SearchOption
	if newsCfg.Limit > 0 {
		opts = append(opts, newsapi.WithLimit(newsCfg.Limit))
	}
	if newsCfg.Locale != "" {
		opts = append(opts, newsapi.WithLocale(newsCfg.Locale))
	}
	return &Searcher{news: news, cfg: cfg, opts: opts}
}

// Search runs every query for the location concurrently, dedupes results
// by title, and truncates to the configured article cap. Individual term
// failures are tolerated as long as at least one term succeeds.
func (s *Searcher) Search(ctx context.Context, location string) ([]model.Article, error) {
	queries := BuildQueries(location)

	parallel := s.cfg.SearchParallel
	if parallel <= 0 {
		parallel = 4
	}

	var (
		mu       sync.Mutex
		articles []model.Article
		failures int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, q := range queries {
		g.Go(func() error {
			resp, err := s.news.Search(gctx, q, s.opts...)
			if err != nil {
				// Tolerate per-term failures; the caller decides on totals.
				zap.L().Warn("research: news search term failed",
					zap.String("query", q),
					zap.Error(err),
				)
				mu.Lock()
				failures++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, a := range resp.Data {
				articles = append(articles, model.Article{
					Title:       a.Title,
					Description: a.Description,
					Snippet:     a.Snippet,
					URL:         a.URL,
					Source:      a.Source,
					PublishedAt: a.PublishedAt,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "research: search group")
	}

	if failures == len(queries) {
		return nil, eris.Errorf("research: all %d news search terms failed", failures)
	}

	deduped := dedupeByTitle(articles)

	if s.cfg.MaxArticles > 0 && len(deduped) > s.cfg.MaxArticles {
		deduped = deduped[:s.cfg.MaxArticles]
	}

	zap.L().Info("research: news search complete",
		zap.String("location", location),
		zap.Int("terms", len(queries)),
		zap.Int("failed_terms", failures),
		zap.Int("articles", len(deduped)),
	)

	return deduped, nil
}

// dedupeByTitle drops articles with empty or repeated titles, keeping
// first occurrence order.
func dedupeByTitle(articles []model.Article) []model.Article {
	seen := make(map[string]struct{}, len(articles))
	var out []model.Article
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		if _, ok := seen[a.Title]; ok {
			continue
		}
		seen[a.Title] = struct{}{}
		out = append(out, a)
	}
	return out
}
