package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/heliowatt/feasibility-cli/internal/model"
	"github.com/heliowatt/feasibility-cli/internal/store"
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Inspect assessment history",
	Long:  "Commands for listing and viewing stored site assessments.",
}

// -- assessments list --

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		address, _ := cmd.Flags().GetString("address")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := store.AssessmentFilter{
			Status:  model.AssessmentStatus(status),
			Address: address,
			Limit:   limit,
		}

		assessments, err := st.ListAssessments(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "assessments list")
		}

		if len(assessments) == 0 {
			fmt.Fprintln(os.Stderr, "No assessments found.")
			return nil
		}

		formatAssessmentsList(os.Stdout, assessments)
		return nil
	},
}

// -- assessments show --

var assessmentsShowCmd = &cobra.Command{
	Use:   "show <assessment-id>",
	Short: "Show full details of an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		assessment, err := st.GetAssessment(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "assessments show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	},
}

func init() {
	assessmentsListCmd.Flags().String("status", "", "filter by status (queued, permitting, researching, scoring, complete, failed)")
	assessmentsListCmd.Flags().String("address", "", "filter by site address")
	assessmentsListCmd.Flags().Int("limit", 50, "max number of assessments to display")

	assessmentsCmd.AddCommand(assessmentsListCmd)
	assessmentsCmd.AddCommand(assessmentsShowCmd)
	rootCmd.AddCommand(assessmentsCmd)
}

// formatAssessmentsList writes a tabular list of assessments to w.
func formatAssessmentsList(out io.Writer, assessments []model.Assessment) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tADDRESS\tSTATUS\tSCORE\tDECISION\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t-------\t------\t-----\t--------\t-------")

	for _, a := range assessments {
		score := "-"
		decision := "-"
		if a.Result != nil {
			score = fmt.Sprintf("%.1f", a.Result.OverallScore)
			decision = string(a.Result.Decision)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			truncate(a.Site.Address, 40),
			a.Status,
			score,
			decision,
			a.CreatedAt.Format(time.RFC3339),
		)
	}
	_ = w.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
