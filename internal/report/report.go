// Package report renders a feasibility result as a human-readable
// assessment report.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

// Render produces the plain-text feasibility report for a result.
func Render(r model.FeasibilityResult) string {
	p := message.NewPrinter(language.AmericanEnglish)
	var b strings.Builder

	fmt.Fprintf(&b, "SOLAR FEASIBILITY ASSESSMENT\n")
	fmt.Fprintf(&b, "Address:      %s\n", r.Address)
	fmt.Fprintf(&b, "Jurisdiction: %s\n", r.Jurisdiction.DisplayName())
	if r.Form != nil && r.Form.SystemSizeKW != "" {
		fmt.Fprintf(&b, "System:       %s, %d panels\n", r.Form.SystemSizeKW, r.Form.PanelCount)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "DECISION: %s (risk: %s)\n", r.Decision, r.Risk)
	fmt.Fprintf(&b, "Overall score: %.1f/100\n\n", r.OverallScore)

	fmt.Fprintf(&b, "Breakdown:\n")
	p.Fprintf(&b, "  Permitting: %.1f/100 (fee $%d, %d-%d weeks)\n",
		r.PermitScore, r.Profile.BaseFeeUSD, r.Profile.MinWeeks, r.Profile.MaxWeeks)
	fmt.Fprintf(&b, "  Research:   %.1f/100 (%d relevant articles", r.ResearchScore, r.Finding.ArticleCount)
	if flags := signalFlags(r.Finding); flags != "" {
		fmt.Fprintf(&b, "; signals: %s", flags)
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "Justification: %s\n", r.Justification)

	if r.Narrative != "" {
		fmt.Fprintf(&b, "\nRegulatory environment:\n%s\n", r.Narrative)
	}

	return b.String()
}

func signalFlags(f model.ResearchFinding) string {
	var flags []string
	if f.Moratorium {
		flags = append(flags, "moratorium")
	}
	if f.Incentive {
		flags = append(flags, "incentive")
	}
	if f.Interconnection {
		flags = append(flags, "interconnection")
	}
	return strings.Join(flags, ", ")
}
