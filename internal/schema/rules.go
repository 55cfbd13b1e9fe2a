// Package schema holds the declarative rule sets the validator and
// transformer are parameterized with. The two dataset variants (commercial
// and non-commercial) share one Rules shape with different concrete values.
// Rules are plain immutable values: constructed once, injected everywhere,
// never package-level mutable state.
package schema

import (
	"fmt"

	"fisheriescli/internal/errors"
)

// Column names shared by both variants.
const (
	ColYear                   = "year"
	ColAreaID                 = "area_id"
	ColCounty                 = "county"
	ColCountyOlelo            = "county_olelo"
	ColIsland                 = "island"
	ColIslandOlelo            = "island_olelo"
	ColSpeciesGroup           = "species_group"
	ColEcosystemType          = "ecosystem_type"
	ColExchangeValue          = "exchange_value"
	ColExchangeValueFormatted = "exchange_value_formatted"
)

// Variant names as they appear in summary output.
const (
	VariantCommercial    = "commercial"
	VariantNonCommercial = "non_commercial"
)

// ColumnType declares how a column's values must parse.
type ColumnType string

const (
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeString ColumnType = "string"
)

// Bounds is an inclusive integer range.
type Bounds struct {
	Min int
	Max int
}

// Contains reports whether v falls inside the bounds.
func (b Bounds) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// Rules is the immutable per-variant configuration: required columns, type
// expectations, value bounds, categorical closed sets, aggregate markers and
// display-only columns.
type Rules struct {
	Variant         string
	RequiredColumns []string
	ColumnTypes     map[string]ColumnType
	YearBounds      Bounds
	// AreaIDBounds is set for the commercial variant only.
	AreaIDBounds *Bounds
	// CategoricalSets maps a column to its closed set of allowed values.
	CategoricalSets map[string][]string
	// AggregateMarkers maps a column to the rollup value whose rows the
	// Transformer may remove ("All Species", "All Ecosystems").
	AggregateMarkers map[string]string
	// DisplayColumns lists presentation-only columns droppable as a whole.
	DisplayColumns []string
}

// Commercial returns the rule set for HDAR commercial marine landings data:
// 1997-2021, DAR catch areas 1-82, county dimension, five species groups.
func Commercial() Rules {
	return Rules{
		Variant: VariantCommercial,
		RequiredColumns: []string{
			ColYear,
			ColAreaID,
			ColCounty,
			ColSpeciesGroup,
			ColEcosystemType,
			ColExchangeValue,
		},
		ColumnTypes: map[string]ColumnType{
			ColYear:          TypeInt,
			ColAreaID:        TypeInt,
			ColExchangeValue: TypeFloat,
		},
		YearBounds:   Bounds{Min: 1997, Max: 2021},
		AreaIDBounds: &Bounds{Min: 1, Max: 82},
		CategoricalSets: map[string][]string{
			ColCounty: validCounties(),
			ColSpeciesGroup: {
				"Deep 7 Bottomfish",
				"Shallow Bottomfish",
				"Pelagics",
				"Reef-Associated",
				"All Species",
			},
			ColEcosystemType: validEcosystemTypes(),
		},
		AggregateMarkers: map[string]string{
			ColSpeciesGroup:  "All Species",
			ColEcosystemType: "All Ecosystems",
		},
		DisplayColumns: []string{ColCountyOlelo, ColExchangeValueFormatted},
	}
}

// NonCommercial returns the rule set for non-commercial (survey-based)
// herbivore data: 2005-2022, island dimension, single species group. The
// "Herbivores only" constraint is expressed as a one-member closed set, not a
// separate mechanism.
func NonCommercial() Rules {
	return Rules{
		Variant: VariantNonCommercial,
		RequiredColumns: []string{
			ColYear,
			ColIsland,
			ColCounty,
			ColSpeciesGroup,
			ColEcosystemType,
			ColExchangeValue,
		},
		ColumnTypes: map[string]ColumnType{
			ColYear:          TypeInt,
			ColExchangeValue: TypeFloat,
		},
		YearBounds: Bounds{Min: 2005, Max: 2022},
		CategoricalSets: map[string][]string{
			ColCounty:        validCounties(),
			ColIsland:        validIslands(),
			ColSpeciesGroup:  {"Herbivores"},
			ColEcosystemType: validEcosystemTypes(),
		},
		AggregateMarkers: map[string]string{
			ColEcosystemType: "All Ecosystems",
		},
		DisplayColumns: []string{ColCountyOlelo, ColIslandOlelo, ColExchangeValueFormatted},
	}
}

func validCounties() []string {
	return []string{"Hawaii", "Maui", "Honolulu", "Kauai", "Kalawao"}
}

func validIslands() []string {
	return []string{"Hawaii", "Kauai", "Lanai", "Maui", "Molokai", "Oahu"}
}

func validEcosystemTypes() []string {
	return []string{"Inshore — Reef", "Coastal — Open Ocean", "All Ecosystems"}
}

// Validate checks that the rule set is usable. Violations are setup errors,
// surfaced before any data is touched.
func (r Rules) Validate() error {
	if r.Variant == "" {
		return errors.NewConfigError("rules variant name is empty", nil)
	}
	if len(r.RequiredColumns) == 0 {
		return errors.NewConfigError(fmt.Sprintf("%s rules declare no required columns", r.Variant), nil)
	}
	if r.YearBounds.Min > r.YearBounds.Max {
		return errors.NewConfigError(
			fmt.Sprintf("%s year bounds are inverted (%d > %d)", r.Variant, r.YearBounds.Min, r.YearBounds.Max), nil)
	}
	if r.AreaIDBounds != nil && r.AreaIDBounds.Min > r.AreaIDBounds.Max {
		return errors.NewConfigError(fmt.Sprintf("%s area_id bounds are inverted", r.Variant), nil)
	}
	for column, set := range r.CategoricalSets {
		if len(set) == 0 {
			return errors.NewConfigError(
				fmt.Sprintf("%s closed set for column %q is empty", r.Variant, column), nil)
		}
	}
	for column, marker := range r.AggregateMarkers {
		if marker == "" {
			return errors.NewConfigError(
				fmt.Sprintf("%s aggregate marker for column %q is empty", r.Variant, column), nil)
		}
	}
	return nil
}

// AllowedValues returns the closed set declared for a column, if any.
func (r Rules) AllowedValues(column string) ([]string, bool) {
	set, ok := r.CategoricalSets[column]
	return set, ok
}
