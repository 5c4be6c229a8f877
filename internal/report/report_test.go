package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

func sampleResult() model.FeasibilityResult {
	return model.FeasibilityResult{
		Address:      "123 Main St, Los Angeles, CA",
		Jurisdiction: model.JurisdictionLosAngeles,
		Profile: model.PermitProfile{
			Jurisdiction: model.JurisdictionLosAngeles,
			Name:         "City of Los Angeles",
			BaseFeeUSD:   500,
			MinWeeks:     4,
			MaxWeeks:     6,
		},
		Finding: model.ResearchFinding{
			ArticleCount: 3,
			Moratorium:   true,
			Incentive:    true,
		},
		PermitScore:   30,
		ResearchScore: 59,
		OverallScore:  41.6,
		Risk:          model.RiskHigh,
		Decision:      model.DecisionNoGo,
		Justification: "NO-GO: overall 41.6/100",
	}
}

func TestRender(t *testing.T) {
	out := Render(sampleResult())

	assert.Contains(t, out, "123 Main St, Los Angeles, CA")
	assert.Contains(t, out, "City of Los Angeles")
	assert.Contains(t, out, "DECISION: NO-GO (risk: High)")
	assert.Contains(t, out, "Overall score: 41.6/100")
	assert.Contains(t, out, "fee $500, 4-6 weeks")
	assert.Contains(t, out, "3 relevant articles")
	assert.Contains(t, out, "signals: moratorium, incentive")
	assert.NotContains(t, out, "Regulatory environment")
}

func TestRenderWithNarrativeAndSystem(t *testing.T) {
	r := sampleResult()
	r.Narrative = "Local supervisors are weighing a pause on new arrays."
	r.Form = &model.PermitForm{SystemSizeKW: "7kW", PanelCount: 24}

	out := Render(r)
	assert.Contains(t, out, "System:       7kW, 24 panels")
	assert.Contains(t, out, "Regulatory environment:")
	assert.Contains(t, out, "weighing a pause")
}

func TestRenderNoSignals(t *testing.T) {
	r := sampleResult()
	r.Finding = model.ResearchFinding{}

	out := Render(r)
	assert.Contains(t, out, "0 relevant articles)")
	assert.NotContains(t, out, "signals:")
}
