package domain

import "slices"

// Region is an Indian state or union territory.
type Region struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// RegionCatalog is the ordered, read-only list of regions.
type RegionCatalog struct {
	regions []Region
	folded  []string
	byCode  map[string]int
}

func newRegionCatalog(regions []Region) *RegionCatalog {
	c := &RegionCatalog{
		regions: slices.Clone(regions),
		folded:  make([]string, len(regions)),
		byCode:  make(map[string]int, len(regions)),
	}
	for i, r := range regions {
		c.folded[i] = foldText(r.DisplayName)
		if _, dup := c.byCode[r.Code]; !dup {
			c.byCode[r.Code] = i
		}
	}
	return c
}

// All returns every region in catalog order.
func (c *RegionCatalog) All() []Region {
	return slices.Clone(c.regions)
}

// ByCode looks up a region by its internal code.
func (c *RegionCatalog) ByCode(code string) (Region, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Region{}, false
	}
	return c.regions[i], true
}

// ByDisplaySubstring returns every region whose display name occurs in text,
// case-insensitively, in catalog order. When one region is needed the first
// element is authoritative.
func (c *RegionCatalog) ByDisplaySubstring(text string) []Region {
	var out []Region
	for _, i := range matchIndexes(c.folded, text) {
		out = append(out, c.regions[i])
	}
	return out
}

// FirstByDisplaySubstring returns the first catalog-order match for text.
func (c *RegionCatalog) FirstByDisplaySubstring(text string) (Region, bool) {
	idx := matchIndexes(c.folded, text)
	if len(idx) == 0 {
		return Region{}, false
	}
	return c.regions[idx[0]], true
}

// CanonicalRegionCode maps region codes produced by older clients onto the
// catalog codes. Unrecognised codes are returned unchanged.
func CanonicalRegionCode(code string) string {
	if canonical, ok := legacyRegionAliases[code]; ok {
		return canonical
	}
	return code
}
