package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/heliowatt/feasibility-cli/internal/model"
	"github.com/heliowatt/feasibility-cli/internal/report"
)

var (
	assessAddress    string
	assessSystemSize string
	assessPanels     int
	assessInverter   string
	assessCost       string
	assessJSON       bool
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess feasibility for a single site",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initAssessor(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		site := model.Site{
			Address: assessAddress,
			System: model.SystemDetails{
				SystemSizeKW:  assessSystemSize,
				PanelCount:    assessPanels,
				InverterType:  assessInverter,
				EstimatedCost: assessCost,
			},
		}

		result, err := env.Assessor.Run(ctx, site)
		if err != nil {
			return eris.Wrap(err, "assess site")
		}

		zap.L().Info("assessment complete",
			zap.String("address", site.Address),
			zap.Float64("score", result.OverallScore),
			zap.String("decision", string(result.Decision)),
		)

		if assessJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Fprintln(os.Stdout, report.Render(*result))
		return nil
	},
}

func init() {
	assessCmd.Flags().StringVar(&assessAddress, "address", "", "site street address (required)")
	assessCmd.Flags().StringVar(&assessSystemSize, "system-size", "7.2 kW", "system size")
	assessCmd.Flags().IntVar(&assessPanels, "panels", 18, "panel count")
	assessCmd.Flags().StringVar(&assessInverter, "inverter", "String inverter with power optimizers", "inverter type")
	assessCmd.Flags().StringVar(&assessCost, "estimated-cost", "$21,600", "estimated installation cost")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "print result as JSON instead of the text report")
	_ = assessCmd.MarkFlagRequired("address")
	rootCmd.AddCommand(assessCmd)
}
