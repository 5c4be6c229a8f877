package model

// Jurisdiction identifies a permitting authority covered by the static
// rules table. Classification always resolves to one of these values.
type Jurisdiction string

const (
	JurisdictionLosAngeles        Jurisdiction = "los_angeles"
	JurisdictionSanFrancisco      Jurisdiction = "san_francisco"
	JurisdictionGenericCalifornia Jurisdiction = "california_default"
)

// AllJurisdictions returns every known jurisdiction in table order.
func AllJurisdictions() []Jurisdiction {
	return []Jurisdiction{
		JurisdictionLosAngeles,
		JurisdictionSanFrancisco,
		JurisdictionGenericCalifornia,
	}
}

// Valid reports whether j is one of the known jurisdictions.
func (j Jurisdiction) Valid() bool {
	switch j {
	case JurisdictionLosAngeles, JurisdictionSanFrancisco, JurisdictionGenericCalifornia:
		return true
	}
	return false
}

// DisplayName returns the human-readable jurisdiction name.
func (j Jurisdiction) DisplayName() string {
	switch j {
	case JurisdictionLosAngeles:
		return "City of Los Angeles"
	case JurisdictionSanFrancisco:
		return "City of San Francisco"
	default:
		return "California County (Generic)"
	}
}

func (j Jurisdiction) String() string {
	return string(j)
}
