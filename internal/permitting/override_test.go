package permitting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func restoreProfile(t *testing.T, j model.Jurisdiction) {
	t.Helper()
	saved := profiles[j]
	reqs := make([]string, len(saved.Requirements))
	copy(reqs, saved.Requirements)
	saved.Requirements = reqs
	t.Cleanup(func() { profiles[j] = saved })
}

func TestLoadProfileOverrides(t *testing.T) {
	restoreProfile(t, model.JurisdictionLosAngeles)

	path := writeOverrides(t, `
jurisdictions:
  los_angeles:
    fees: 550
    min_weeks: 5
    max_weeks: 7
    contact: permits.lacity.org
`)
	require.NoError(t, LoadProfileOverrides(path))

	p := ProfileFor(model.JurisdictionLosAngeles)
	assert.Equal(t, 550, p.BaseFeeUSD)
	assert.Equal(t, 5, p.MinWeeks)
	assert.Equal(t, 7, p.MaxWeeks)
	assert.Equal(t, "permits.lacity.org", p.Contact)
	// Untouched fields keep their built-in values.
	assert.Equal(t, "City of Los Angeles", p.Name)
	assert.Len(t, p.Requirements, 5)
}

func TestLoadProfileOverridesPartial(t *testing.T) {
	restoreProfile(t, model.JurisdictionSanFrancisco)

	path := writeOverrides(t, `
jurisdictions:
  san_francisco:
    fees: 800
`)
	require.NoError(t, LoadProfileOverrides(path))

	p := ProfileFor(model.JurisdictionSanFrancisco)
	assert.Equal(t, 800, p.BaseFeeUSD)
	assert.Equal(t, 3, p.MinWeeks)
	assert.Equal(t, 4, p.MaxWeeks)
}

func TestLoadProfileOverridesUnknownJurisdiction(t *testing.T) {
	path := writeOverrides(t, `
jurisdictions:
  san_diego:
    fees: 400
`)
	err := LoadProfileOverrides(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown jurisdiction")
}

func TestLoadProfileOverridesBadWeeks(t *testing.T) {
	restoreProfile(t, model.JurisdictionGenericCalifornia)

	path := writeOverrides(t, `
jurisdictions:
  california_default:
    min_weeks: 6
    max_weeks: 2
`)
	err := LoadProfileOverrides(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_weeks > max_weeks")
}

func TestLoadProfileOverridesInvalidEntryLeavesTableUntouched(t *testing.T) {
	for _, j := range model.AllJurisdictions() {
		restoreProfile(t, j)
	}
	before := map[model.Jurisdiction]model.PermitProfile{}
	for _, j := range model.AllJurisdictions() {
		before[j] = ProfileFor(j)
	}

	// One valid entry per jurisdiction alongside a broken one. Whatever
	// order the entries are processed in, nothing may be applied.
	path := writeOverrides(t, `
jurisdictions:
  los_angeles:
    fees: 999
  san_francisco:
    fees: 999
  california_default:
    min_weeks: 6
    max_weeks: 2
`)
	err := LoadProfileOverrides(path)
	require.Error(t, err)

	for _, j := range model.AllJurisdictions() {
		assert.Equal(t, before[j], ProfileFor(j), "profile %s changed despite load error", j)
	}
}

func TestLoadProfileOverridesMissingFile(t *testing.T) {
	err := LoadProfileOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
