package permitting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliowatt/feasibility-cli/internal/config"
	"github.com/heliowatt/feasibility-cli/internal/model"
)

func TestProfileForCoversAllJurisdictions(t *testing.T) {
	for _, j := range model.AllJurisdictions() {
		t.Run(j.String(), func(t *testing.T) {
			p := ProfileFor(j)
			assert.Equal(t, j, p.Jurisdiction)
			assert.NotEmpty(t, p.Name)
			assert.NotEmpty(t, p.PermitType)
			assert.Positive(t, p.BaseFeeUSD)
			assert.Positive(t, p.MinWeeks)
			assert.GreaterOrEqual(t, p.MaxWeeks, p.MinWeeks)
			assert.NotEmpty(t, p.Requirements)
			assert.NotEmpty(t, p.Contact)
		})
	}
}

func TestProfileForIsPure(t *testing.T) {
	first := ProfileFor(model.JurisdictionLosAngeles)
	second := ProfileFor(model.JurisdictionLosAngeles)
	assert.Equal(t, first, second)

	// Mutating a returned profile must not leak into the table.
	first.Requirements[0] = "tampered"
	third := ProfileFor(model.JurisdictionLosAngeles)
	assert.Equal(t, second.Requirements, third.Requirements)
}

func TestProfileForUnknownFallsBack(t *testing.T) {
	p := ProfileFor(model.Jurisdiction("nevada"))
	assert.Equal(t, model.JurisdictionGenericCalifornia, p.Jurisdiction)
}

func TestProfileValues(t *testing.T) {
	la := ProfileFor(model.JurisdictionLosAngeles)
	assert.Equal(t, 500, la.BaseFeeUSD)
	assert.Equal(t, 4, la.MinWeeks)
	assert.Equal(t, 6, la.MaxWeeks)

	sf := ProfileFor(model.JurisdictionSanFrancisco)
	assert.Equal(t, 750, sf.BaseFeeUSD)
	assert.Equal(t, 3, sf.MinWeeks)

	generic := ProfileFor(model.JurisdictionGenericCalifornia)
	assert.Equal(t, 300, generic.BaseFeeUSD)
	assert.Len(t, generic.Requirements, 4)
}

func TestBuildForm(t *testing.T) {
	profile := ProfileFor(model.JurisdictionSanFrancisco)
	system := model.SystemDetails{
		SystemSizeKW:  "7kW",
		PanelCount:    24,
		InverterType:  "string",
		EstimatedCost: "$21,000",
	}
	cfg := config.PermitConfig{
		ApplicantName:       "Heliowatt Energy",
		InstallationCompany: "Heliowatt Install Co",
		ContractorLicense:   "C-46 #1042331",
	}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	form := BuildForm("1 Market St, San Francisco, CA", profile, system, cfg, now)
	require.NotNil(t, form)

	assert.Equal(t, "City of San Francisco", form.Jurisdiction)
	assert.Equal(t, "Solar Photovoltaic System Permit", form.PermitType)
	assert.Equal(t, 750, form.FeesUSD)
	assert.Equal(t, "3-4 weeks", form.ProcessingTime)
	assert.Equal(t, "2026-08-30", form.SubmissionDate)
	assert.Equal(t, "Draft", form.Status)
	assert.Equal(t, profile.Requirements, form.Checklist)
	assert.Contains(t, form.NextSteps, "Pay permit fee of $750")
	assert.Contains(t, form.NextSteps, "Wait 3-4 weeks for approval")
	assert.Equal(t, "7kW", form.SystemSizeKW)
	assert.Equal(t, "Heliowatt Energy", form.ApplicantName)
}
