package domain

import (
	"slices"
	"sort"
)

// District is an administrative subdivision of a region.
type District struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	RegionCode  string `json:"region_code"`
}

// DistrictCatalog maps region codes to ordered district lists. Regions without
// an explicit list share the generic placeholder list; UsesDefault reports it.
type DistrictCatalog struct {
	byRegion       map[string][]District
	folded         map[string][]string
	defaults       []District
	foldedDefaults []string
}

func newDistrictCatalog(decls map[string][]catalogEntry, defaults []catalogEntry) *DistrictCatalog {
	c := &DistrictCatalog{
		byRegion: make(map[string][]District, len(decls)),
		folded:   make(map[string][]string, len(decls)),
	}
	for regionCode, entries := range decls {
		c.byRegion[regionCode], c.folded[regionCode] = buildDistricts(regionCode, entries)
	}
	c.defaults, c.foldedDefaults = buildDistricts("", defaults)
	return c
}

func buildDistricts(regionCode string, entries []catalogEntry) ([]District, []string) {
	districts := make([]District, len(entries))
	folded := make([]string, len(entries))
	for i, e := range entries {
		districts[i] = District{Code: e.code, DisplayName: e.name, RegionCode: regionCode}
		folded[i] = foldText(e.name)
	}
	return districts, folded
}

// DistrictsFor returns the districts of a region in catalog order. It never
// returns an empty list: uncataloged regions get the placeholder list, stamped
// with the requested region code.
func (c *DistrictCatalog) DistrictsFor(regionCode string) []District {
	districts, _ := c.listFor(regionCode)
	out := slices.Clone(districts)
	if c.UsesDefault(regionCode) {
		for i := range out {
			out[i].RegionCode = regionCode
		}
	}
	return out
}

// UsesDefault reports whether regionCode has no district data of its own.
func (c *DistrictCatalog) UsesDefault(regionCode string) bool {
	_, ok := c.byRegion[regionCode]
	return !ok
}

// ByDisplaySubstring returns the region's districts whose display name occurs
// in text, case-insensitively, in catalog order.
func (c *DistrictCatalog) ByDisplaySubstring(regionCode, text string) []District {
	all := c.DistrictsFor(regionCode)
	_, folded := c.listFor(regionCode)
	var out []District
	for _, i := range matchIndexes(folded, text) {
		out = append(out, all[i])
	}
	return out
}

// ByCode finds a district within the given region's list.
func (c *DistrictCatalog) ByCode(regionCode, districtCode string) (District, bool) {
	for _, d := range c.DistrictsFor(regionCode) {
		if d.Code == districtCode {
			return d, true
		}
	}
	return District{}, false
}

// Default returns the first district of a region's list.
func (c *DistrictCatalog) Default(regionCode string) District {
	return c.DistrictsFor(regionCode)[0]
}

// CatalogedRegions lists the region codes that have real district data, sorted.
func (c *DistrictCatalog) CatalogedRegions() []string {
	codes := make([]string, 0, len(c.byRegion))
	for code := range c.byRegion {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (c *DistrictCatalog) listFor(regionCode string) ([]District, []string) {
	if districts, ok := c.byRegion[regionCode]; ok {
		return districts, c.folded[regionCode]
	}
	return c.defaults, c.foldedDefaults
}
