package model

// RiskLevel is the coarse categorical summary derived from the weighted total.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Decision is the Go/No-Go recommendation paired with a RiskLevel.
type Decision string

const (
	DecisionGo            Decision = "GO"
	DecisionConditionalGo Decision = "CONDITIONAL GO"
	DecisionNoGo          Decision = "NO-GO"
)

// FeasibilityResult is the outcome of a single site assessment.
type FeasibilityResult struct {
	Address       string            `json:"address"`
	Jurisdiction  Jurisdiction      `json:"jurisdiction"`
	Profile       PermitProfile     `json:"permit_profile"`
	Form          *PermitForm       `json:"permit_form,omitempty"`
	Finding       ResearchFinding   `json:"research_finding"`
	PermitScore   float64           `json:"permit_score"`
	ResearchScore float64           `json:"research_score"`
	OverallScore  float64           `json:"overall_score"`
	Risk          RiskLevel         `json:"risk_level"`
	Decision      Decision          `json:"decision"`
	Justification string            `json:"justification"`
	Narrative     string            `json:"narrative,omitempty"`
}
