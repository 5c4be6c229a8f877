package model

// PermitProfile is the static permitting record for a jurisdiction.
// Profiles are constant data defined at process start and never mutated.
type PermitProfile struct {
	Jurisdiction Jurisdiction `json:"jurisdiction"`
	Name         string       `json:"jurisdiction_name"`
	PermitType   string       `json:"permit_type"`
	BaseFeeUSD   int          `json:"fees"`
	MinWeeks     int          `json:"min_weeks"`
	MaxWeeks     int          `json:"max_weeks"`
	Requirements []string     `json:"requirements"`
	Contact      string       `json:"contact"`
}

// SystemDetails describes the proposed solar installation.
type SystemDetails struct {
	SystemSizeKW  string `json:"system_size_kw"`
	PanelCount    int    `json:"panel_count"`
	InverterType  string `json:"inverter_type,omitempty"`
	EstimatedCost string `json:"estimated_cost,omitempty"`
}

// PermitForm is a filled permit application for a single site.
type PermitForm struct {
	ApplicantName       string   `json:"applicant_name"`
	PropertyAddress     string   `json:"property_address"`
	Jurisdiction        string   `json:"jurisdiction"`
	PermitType          string   `json:"permit_type"`
	SystemSizeKW        string   `json:"system_size_kw"`
	PanelCount          int      `json:"panel_count"`
	InverterType        string   `json:"inverter_type"`
	InstallationCompany string   `json:"installation_company"`
	ContractorLicense   string   `json:"contractor_license"`
	EstimatedCost       string   `json:"estimated_cost"`
	Checklist           []string `json:"requirements_checklist"`
	FeesUSD             int      `json:"fees"`
	ProcessingTime      string   `json:"processing_time"`
	SubmissionDate      string   `json:"submission_date"`
	Status              string   `json:"status"`
	Contact             string   `json:"jurisdiction_contact"`
	NextSteps           []string `json:"next_steps"`
}
