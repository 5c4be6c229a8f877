package permitting

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

// ProfileOverride adjusts fields of a built-in permit profile. Nil or
// zero-valued fields leave the built-in value in place.
type ProfileOverride struct {
	BaseFeeUSD   *int     `yaml:"fees"`
	MinWeeks     *int     `yaml:"min_weeks"`
	MaxWeeks     *int     `yaml:"max_weeks"`
	Requirements []string `yaml:"requirements"`
	Contact      string   `yaml:"contact"`
}

// LoadProfileOverrides reads jurisdiction profile overrides from a YAML
// file and applies them to the built-in rules table. Fee schedules change
// yearly; this lets operators track them without a rebuild.
func LoadProfileOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "permitting: read overrides %s", path)
	}

	var wrapper struct {
		Jurisdictions map[string]ProfileOverride `yaml:"jurisdictions"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return eris.Wrap(err, "permitting: parse overrides")
	}

	// Merge into a staging copy first so a bad entry anywhere in the file
	// leaves the built-in table untouched.
	staged := make(map[model.Jurisdiction]model.PermitProfile, len(wrapper.Jurisdictions))
	for key, o := range wrapper.Jurisdictions {
		j := model.Jurisdiction(key)
		p, ok := profiles[j]
		if !ok {
			return eris.Errorf("permitting: unknown jurisdiction %q in overrides", key)
		}
		if o.BaseFeeUSD != nil {
			p.BaseFeeUSD = *o.BaseFeeUSD
		}
		if o.MinWeeks != nil {
			p.MinWeeks = *o.MinWeeks
		}
		if o.MaxWeeks != nil {
			p.MaxWeeks = *o.MaxWeeks
		}
		if len(o.Requirements) > 0 {
			p.Requirements = o.Requirements
		}
		if o.Contact != "" {
			p.Contact = o.Contact
		}
		if p.MinWeeks > p.MaxWeeks {
			return eris.Errorf("permitting: override for %q has min_weeks > max_weeks", key)
		}
		staged[j] = p
	}

	for j, p := range staged {
		profiles[j] = p
	}
	return nil
}
