package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/heliowatt/feasibility-cli/internal/model"
	"github.com/heliowatt/feasibility-cli/internal/sitelist"
)

var batchLimit int

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Assess feasibility for a list of sites from a CSV or XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sites, err := sitelist.Load(args[0])
		if err != nil {
			return err
		}
		if batchLimit > 0 && len(sites) > batchLimit {
			sites = sites[:batchLimit]
		}

		env, err := initAssessor(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		runSite := func(ctx context.Context, site model.Site) error {
			_, err := env.Assessor.Run(ctx, site)
			return err
		}
		return processBatch(ctx, sites, cfg.Batch.MaxConcurrentSites, runSite)
	},
}

// processBatch runs sites concurrently with a bounded worker count.
// Per-site failures are logged and counted rather than aborting the batch.
func processBatch(ctx context.Context, sites []model.Site, maxConcurrent int, runSite func(context.Context, model.Site) error) error {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	var succeeded, failed atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, site := range sites {
		g.Go(func() error {
			if gCtx.Err() != nil {
				return nil
			}
			if err := runSite(gCtx, site); err != nil {
				failed.Add(1)
				zap.L().Error("batch: site assessment failed",
					zap.String("address", site.Address),
					zap.Error(err),
				)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch")
	}

	zap.L().Info("batch complete",
		zap.Int("total", len(sites)),
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)

	if failed.Load() == int64(len(sites)) && len(sites) > 0 {
		return eris.Errorf("batch: all %d sites failed", len(sites))
	}
	return nil
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of sites to process (0 = all)")
	rootCmd.AddCommand(batchCmd)
}
