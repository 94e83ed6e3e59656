package domain

// catalogSet bundles the three tables so resolution, parsing and composition
// always read the same data. The package-level std set is built once from the
// declarations in catalog_data.go and never mutated.
type catalogSet struct {
	regions   *RegionCatalog
	districts *DistrictCatalog
	prefixes  *PostalPrefixTable
}

func newCatalogSet(regions []Region, districts map[string][]catalogEntry, defaults []catalogEntry,
	prefixes []PostalPrefix, disputes []PrefixDispute,
) *catalogSet {
	rc := newRegionCatalog(regions)
	return &catalogSet{
		regions:   rc,
		districts: newDistrictCatalog(districts, defaults),
		prefixes:  newPostalPrefixTable(prefixes, disputes, rc),
	}
}

var std = newCatalogSet(regionDecls, districtDecls, defaultDistrictDecls, postalPrefixDecls, prefixDisputeDecls)

func init() {
	if err := ValidateCatalogs(); err != nil {
		panic("location catalogs are inconsistent: " + err.Error())
	}
}

// Regions returns the process-wide region catalog.
func Regions() *RegionCatalog { return std.regions }

// Districts returns the process-wide district catalog.
func Districts() *DistrictCatalog { return std.districts }

// PostalPrefixes returns the process-wide postal prefix table.
func PostalPrefixes() *PostalPrefixTable { return std.prefixes }
