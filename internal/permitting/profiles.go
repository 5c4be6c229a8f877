package permitting

import "github.com/heliowatt/feasibility-cli/internal/model"

// profiles is the static permitting rules table. Populated at process
// start, optionally adjusted once by LoadProfileOverrides, and read-only
// afterwards; lookups copy the record.
var profiles = map[model.Jurisdiction]model.PermitProfile{
	model.JurisdictionLosAngeles: {
		Jurisdiction: model.JurisdictionLosAngeles,
		Name:         "City of Los Angeles",
		PermitType:   "Solar Installation Permit",
		BaseFeeUSD:   500,
		MinWeeks:     4,
		MaxWeeks:     6,
		Requirements: []string{
			"Site plan with solar array layout",
			"Electrical single-line diagram",
			"Structural calculations",
			"Interconnection application",
			"LADBS permit application",
		},
		Contact: "ladbs.lacity.org",
	},
	model.JurisdictionSanFrancisco: {
		Jurisdiction: model.JurisdictionSanFrancisco,
		Name:         "City of San Francisco",
		PermitType:   "Solar Photovoltaic System Permit",
		BaseFeeUSD:   750,
		MinWeeks:     3,
		MaxWeeks:     4,
		Requirements: []string{
			"Solar system plans and specifications",
			"Electrical permit application",
			"Building permit (if roof modifications)",
			"Fire department clearance form",
			"Utility interconnection agreement",
		},
		Contact: "sfdbi.org",
	},
	model.JurisdictionGenericCalifornia: {
		Jurisdiction: model.JurisdictionGenericCalifornia,
		Name:         "California County (Generic)",
		PermitType:   "Residential Solar Permit",
		BaseFeeUSD:   300,
		MinWeeks:     2,
		MaxWeeks:     4,
		Requirements: []string{
			"Solar system design plans",
			"Electrical diagram",
			"Building department application",
			"Utility notification form",
		},
		Contact: "Local building department",
	},
}

// ProfileFor returns the permit profile for a jurisdiction. Unknown values
// resolve to the generic California profile, so lookup cannot fail.
func ProfileFor(j model.Jurisdiction) model.PermitProfile {
	p, ok := profiles[j]
	if !ok {
		p = profiles[model.JurisdictionGenericCalifornia]
	}

	// Copy the requirements slice so callers cannot mutate the table.
	reqs := make([]string, len(p.Requirements))
	copy(reqs, p.Requirements)
	p.Requirements = reqs

	return p
}
