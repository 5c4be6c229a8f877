// Package permitting classifies site addresses into jurisdictions and
// holds the static permitting rules table.
package permitting

import (
	"strings"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

// Classify maps a free-text address to a jurisdiction by case-insensitive
// substring matching. No geocoding and no validation that the address
// exists; unmatched addresses fall back to the generic California profile.
func Classify(address string) model.Jurisdiction {
	lower := strings.ToLower(address)

	switch {
	case strings.Contains(lower, "los angeles"):
		return model.JurisdictionLosAngeles
	case strings.Contains(lower, "san francisco"):
		return model.JurisdictionSanFrancisco
	default:
		return model.JurisdictionGenericCalifornia
	}
}

// ResearchLocation returns the location string used to scope news searches
// for an address.
func ResearchLocation(address string) string {
	switch Classify(address) {
	case model.JurisdictionLosAngeles:
		return "Los Angeles California"
	case model.JurisdictionSanFrancisco:
		return "San Francisco California"
	default:
		return "California"
	}
}
