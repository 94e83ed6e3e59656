package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegions = []Region{
	{Code: "haryana", DisplayName: "Haryana"},
	{Code: "punjab", DisplayName: "Punjab"},
}

var testDistricts = map[string][]catalogEntry{
	"haryana": {{"sonipat", "Sonipat"}, {"karnal", "Karnal"}},
}

var testDefaults = []catalogEntry{
	{"district1", "District 1"},
	{"district2", "District 2"},
	{"district3", "District 3"},
}

var testPrefixes = []PostalPrefix{
	{"12", "haryana"},
	{"13", "punjab"},
}

func TestValidateCatalogs(t *testing.T) {
	require.NoError(t, ValidateCatalogs())
	assert.Empty(t, CheckPrefixTable())
	assert.Empty(t, CheckRegionCatalog())
	assert.Empty(t, CheckDistrictCatalog())
	assert.Empty(t, CheckRoundTrip())
}

func TestCatalogSet_Validate_ConsistentSet(t *testing.T) {
	c := newCatalogSet(testRegions, testDistricts, testDefaults, testPrefixes, nil)
	assert.NoError(t, c.validate())
}

func TestCatalogSet_CheckPrefixTable(t *testing.T) {
	tests := []struct {
		name     string
		prefixes []PostalPrefix
		disputes []PrefixDispute
		contains string
	}{
		{
			"duplicate prefix",
			[]PostalPrefix{{"12", "haryana"}, {"12", "punjab"}},
			nil,
			"prefix 12 declared twice (haryana, punjab)",
		},
		{
			"unknown region",
			[]PostalPrefix{{"15", "jammu"}},
			nil,
			`prefix 15 maps to unknown region "jammu"`,
		},
		{
			"malformed prefix",
			[]PostalPrefix{{"1", "haryana"}},
			nil,
			`prefix "1" is not 2 digits`,
		},
		{
			"dispute winner disagrees with table",
			testPrefixes,
			[]PrefixDispute{{Prefix: "13", Winner: "haryana", Rejected: []string{"punjab"}}},
			`disputed prefix 13: table says "punjab", dispute winner is "haryana"`,
		},
		{
			"dispute for missing prefix",
			testPrefixes,
			[]PrefixDispute{{Prefix: "56", Winner: "karnataka"}},
			"disputed prefix 56 is not in the table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalogSet(testRegions, testDistricts, testDefaults, tt.prefixes, tt.disputes)
			errs := c.checkPrefixTable()
			require.NotEmpty(t, errs)
			assert.ErrorContains(t, c.validate(), tt.contains)
		})
	}
}

func TestCatalogSet_CheckRegionCatalog(t *testing.T) {
	tests := []struct {
		name     string
		regions  []Region
		contains string
	}{
		{
			"duplicate code",
			[]Region{{Code: "haryana", DisplayName: "Haryana"}, {Code: "haryana", DisplayName: "Haryana State"}},
			`region code "haryana" declared twice`,
		},
		{
			"duplicate display name",
			[]Region{{Code: "haryana", DisplayName: "Haryana"}, {Code: "hr", DisplayName: "HARYANA"}},
			`region display name "HARYANA" declared twice`,
		},
		{
			"shadowed by earlier region",
			[]Region{{Code: "pradesh", DisplayName: "Pradesh"}, {Code: "up", DisplayName: "Uttar Pradesh"}},
			`region "up" is shadowed by "pradesh"`,
		},
		{
			"empty display name",
			[]Region{{Code: "haryana", DisplayName: ""}},
			"region 0 has an empty code or display name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalogSet(tt.regions, nil, testDefaults, nil, nil)
			errs := c.checkRegionCatalog()
			require.NotEmpty(t, errs)
			assert.ErrorContains(t, c.validate(), tt.contains)
		})
	}
}

func TestCatalogSet_CheckDistrictCatalog(t *testing.T) {
	tests := []struct {
		name      string
		districts map[string][]catalogEntry
		defaults  []catalogEntry
		contains  string
	}{
		{
			"empty list",
			map[string][]catalogEntry{"haryana": {}},
			testDefaults,
			`district list "haryana" is empty`,
		},
		{
			"unknown region key",
			map[string][]catalogEntry{"atlantis": {{"a", "Alpha"}}},
			testDefaults,
			`district list keyed by unknown region "atlantis"`,
		},
		{
			"duplicate district code",
			map[string][]catalogEntry{"haryana": {{"karnal", "Karnal"}, {"karnal", "Karnal City"}}},
			testDefaults,
			`district list "haryana" declares "karnal" twice`,
		},
		{
			"shadowed district",
			map[string][]catalogEntry{"haryana": {{"nal", "Nal"}, {"karnal", "Karnal"}}},
			testDefaults,
			`district list "haryana": "karnal" is shadowed`,
		},
		{
			"short placeholder list",
			testDistricts,
			testDefaults[:2],
			"default district list has 2 entries, want 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalogSet(testRegions, tt.districts, tt.defaults, testPrefixes, nil)
			errs := c.checkDistrictCatalog()
			require.NotEmpty(t, errs)
			assert.ErrorContains(t, c.validate(), tt.contains)
		})
	}
}

func TestCatalogSet_CheckRoundTrip(t *testing.T) {
	c := newCatalogSet(testRegions, testDistricts, testDefaults, testPrefixes, nil)
	assert.Empty(t, c.checkRoundTrip())
}

func TestCatalogSet_Validate_SkipsRoundTripOnStructuralErrors(t *testing.T) {
	regions := []Region{{Code: "pradesh", DisplayName: "Pradesh"}, {Code: "up", DisplayName: "Uttar Pradesh"}}
	c := newCatalogSet(regions, nil, testDefaults, nil, nil)

	err := c.validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "round trip")
	assert.NotEmpty(t, c.checkRoundTrip(), "round trip would also fail on this catalog")
}
