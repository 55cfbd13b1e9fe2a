package schema

import (
	"os"

	"gopkg.in/yaml.v2"

	"fisheriescli/internal/errors"
)

// RuleSet bundles the rules for both dataset variants.
type RuleSet struct {
	Commercial    Rules
	NonCommercial Rules
}

// DefaultRuleSet returns the built-in rule values for both variants.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Commercial:    Commercial(),
		NonCommercial: NonCommercial(),
	}
}

// ruleOverride is the YAML shape for overriding one variant's rule values.
// Only the fields operators actually need to swap (year bounds and the
// categorical closed sets) are exposed; column structure stays in code.
type ruleOverride struct {
	YearMin        *int     `yaml:"year_min"`
	YearMax        *int     `yaml:"year_max"`
	Counties       []string `yaml:"counties"`
	Islands        []string `yaml:"islands"`
	SpeciesGroups  []string `yaml:"species_groups"`
	EcosystemTypes []string `yaml:"ecosystem_types"`
}

type ruleFile struct {
	Commercial    *ruleOverride `yaml:"commercial"`
	NonCommercial *ruleOverride `yaml:"non_commercial"`
}

// LoadRuleSet returns the default rules overridden by a YAML file, so future
// rule versions (e.g. a year-range extension) can ship as configuration
// without a rebuild. An empty path returns the defaults unchanged.
func LoadRuleSet(path string) (RuleSet, error) {
	rs := DefaultRuleSet()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return RuleSet{}, errors.NewConfigError("failed to read rules file", err)
		}

		var file ruleFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return RuleSet{}, errors.NewConfigError("failed to parse rules file", err)
		}

		applyOverride(&rs.Commercial, file.Commercial)
		applyOverride(&rs.NonCommercial, file.NonCommercial)
	}

	if err := rs.Commercial.Validate(); err != nil {
		return RuleSet{}, err
	}
	if err := rs.NonCommercial.Validate(); err != nil {
		return RuleSet{}, err
	}

	return rs, nil
}

func applyOverride(rules *Rules, o *ruleOverride) {
	if o == nil {
		return
	}

	if o.YearMin != nil {
		rules.YearBounds.Min = *o.YearMin
	}
	if o.YearMax != nil {
		rules.YearBounds.Max = *o.YearMax
	}

	// Rebuild the categorical map so the shared defaults stay untouched.
	sets := make(map[string][]string, len(rules.CategoricalSets))
	for column, set := range rules.CategoricalSets {
		sets[column] = set
	}
	if o.Counties != nil {
		sets[ColCounty] = o.Counties
	}
	if o.Islands != nil {
		sets[ColIsland] = o.Islands
	}
	if o.SpeciesGroups != nil {
		sets[ColSpeciesGroup] = o.SpeciesGroups
	}
	if o.EcosystemTypes != nil {
		sets[ColEcosystemType] = o.EcosystemTypes
	}
	rules.CategoricalSets = sets
}
