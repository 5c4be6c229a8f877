package permitting

import (
	"fmt"
	"time"

	"github.com/heliowatt/feasibility-cli/internal/config"
	"github.com/heliowatt/feasibility-cli/internal/model"
)

// BuildForm fills a permit application from the jurisdiction profile and
// the proposed system details.
func BuildForm(address string, profile model.PermitProfile, system model.SystemDetails, cfg config.PermitConfig, now time.Time) *model.PermitForm {
	checklist := make([]string, len(profile.Requirements))
	copy(checklist, profile.Requirements)

	processing := fmt.Sprintf("%d-%d weeks", profile.MinWeeks, profile.MaxWeeks)

	return &model.PermitForm{
		ApplicantName:       cfg.ApplicantName,
		PropertyAddress:     address,
		Jurisdiction:        profile.Name,
		PermitType:          profile.PermitType,
		SystemSizeKW:        system.SystemSizeKW,
		PanelCount:          system.PanelCount,
		InverterType:        system.InverterType,
		InstallationCompany: cfg.InstallationCompany,
		ContractorLicense:   cfg.ContractorLicense,
		EstimatedCost:       system.EstimatedCost,
		Checklist:           checklist,
		FeesUSD:             profile.BaseFeeUSD,
		ProcessingTime:      processing,
		SubmissionDate:      now.Format("2006-01-02"),
		Status:              "Draft",
		Contact:             profile.Contact,
		NextSteps: []string{
			"Complete all required documents",
			fmt.Sprintf("Pay permit fee of $%d", profile.BaseFeeUSD),
			"Submit application to jurisdiction",
			fmt.Sprintf("Wait %s for approval", processing),
		},
	}
}
