package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommercial(t *testing.T) {
	rules := Commercial()

	require.NoError(t, rules.Validate())
	assert.Equal(t, VariantCommercial, rules.Variant)
	assert.Equal(t, Bounds{Min: 1997, Max: 2021}, rules.YearBounds)
	require.NotNil(t, rules.AreaIDBounds)
	assert.Equal(t, Bounds{Min: 1, Max: 82}, *rules.AreaIDBounds)
	assert.Contains(t, rules.RequiredColumns, ColAreaID)
	assert.NotContains(t, rules.RequiredColumns, ColIsland, "commercial data has no island dimension")
	assert.Equal(t, "All Species", rules.AggregateMarkers[ColSpeciesGroup])
	assert.Equal(t, "All Ecosystems", rules.AggregateMarkers[ColEcosystemType])

	species, ok := rules.AllowedValues(ColSpeciesGroup)
	require.True(t, ok)
	assert.Len(t, species, 5)
}

func TestNonCommercial(t *testing.T) {
	rules := NonCommercial()

	require.NoError(t, rules.Validate())
	assert.Equal(t, VariantNonCommercial, rules.Variant)
	assert.Equal(t, Bounds{Min: 2005, Max: 2022}, rules.YearBounds)
	assert.Nil(t, rules.AreaIDBounds)
	assert.Contains(t, rules.RequiredColumns, ColIsland)

	// The Herbivores-only constraint is just a one-member closed set.
	species, ok := rules.AllowedValues(ColSpeciesGroup)
	require.True(t, ok)
	assert.Equal(t, []string{"Herbivores"}, species)

	// No species aggregate marker exists for this variant.
	_, hasSpeciesMarker := rules.AggregateMarkers[ColSpeciesGroup]
	assert.False(t, hasSpeciesMarker)
	assert.Equal(t, "All Ecosystems", rules.AggregateMarkers[ColEcosystemType])

	islands, ok := rules.AllowedValues(ColIsland)
	require.True(t, ok)
	assert.Len(t, islands, 6)
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{Min: 1, Max: 82}

	assert.True(t, b.Contains(1))
	assert.True(t, b.Contains(82))
	assert.False(t, b.Contains(0))
	assert.False(t, b.Contains(83))
}

func TestRules_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{
			name:   "empty variant name",
			mutate: func(r *Rules) { r.Variant = "" },
		},
		{
			name:   "no required columns",
			mutate: func(r *Rules) { r.RequiredColumns = nil },
		},
		{
			name:   "inverted year bounds",
			mutate: func(r *Rules) { r.YearBounds = Bounds{Min: 2021, Max: 1997} },
		},
		{
			name:   "empty closed set",
			mutate: func(r *Rules) { r.CategoricalSets[ColCounty] = nil },
		},
		{
			name:   "empty aggregate marker",
			mutate: func(r *Rules) { r.AggregateMarkers[ColSpeciesGroup] = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := Commercial()
			tt.mutate(&rules)
			assert.Error(t, rules.Validate())
		})
	}
}

func TestLoadRuleSet_Defaults(t *testing.T) {
	rs, err := LoadRuleSet("")
	require.NoError(t, err)
	assert.Equal(t, Commercial(), rs.Commercial)
	assert.Equal(t, NonCommercial(), rs.NonCommercial)
}

func TestLoadRuleSet_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
commercial:
  year_max: 2023
non_commercial:
  islands:
    - Hawaii
    - Oahu
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rs, err := LoadRuleSet(path)
	require.NoError(t, err)

	assert.Equal(t, 2023, rs.Commercial.YearBounds.Max)
	assert.Equal(t, 1997, rs.Commercial.YearBounds.Min, "unset fields keep defaults")

	islands, _ := rs.NonCommercial.AllowedValues(ColIsland)
	assert.Equal(t, []string{"Hawaii", "Oahu"}, islands)

	// Defaults are not mutated by the override
	defaults := NonCommercial()
	islandsDefault, _ := defaults.AllowedValues(ColIsland)
	assert.Len(t, islandsDefault, 6)
}

func TestLoadRuleSet_Invalid(t *testing.T) {
	t.Run("unreadable file", func(t *testing.T) {
		_, err := LoadRuleSet(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("override yields empty closed set is accepted only when non-empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("commercial:\n  counties: []\n"), 0644))

		_, err := LoadRuleSet(path)
		assert.Error(t, err, "an empty required closed set is a configuration error")
	})
}
