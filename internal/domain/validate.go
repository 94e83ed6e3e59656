package domain

import (
	"errors"
	"fmt"
)

// defaultDistrictCount is the size of the placeholder district list.
const defaultDistrictCount = 3

// roundTripVillage is the village text used when checking compose/parse agreement.
const roundTripVillage = "Village Khanpur"

// ValidateCatalogs checks the compiled-in tables for internal consistency.
// It runs at package init and from cmd/validate.
func ValidateCatalogs() error {
	return std.validate()
}

// CheckPrefixTable reports prefix table problems: malformed or duplicate
// prefixes, prefixes pointing at unknown regions, and disputes that disagree
// with the table.
func CheckPrefixTable() []error { return std.checkPrefixTable() }

// CheckRegionCatalog reports duplicate codes or display names and regions whose
// display name would not match itself first.
func CheckRegionCatalog() []error { return std.checkRegionCatalog() }

// CheckDistrictCatalog reports district lists that are empty, keyed by an
// unknown region, contain duplicate codes, or would not self-match.
func CheckDistrictCatalog() []error { return std.checkDistrictCatalog() }

// CheckRoundTrip verifies that parsing a composed address recovers the codes
// for every region and district in the catalogs.
func CheckRoundTrip() []error { return std.checkRoundTrip() }

func (c *catalogSet) validate() error {
	var errs []error
	errs = append(errs, c.checkPrefixTable()...)
	errs = append(errs, c.checkRegionCatalog()...)
	errs = append(errs, c.checkDistrictCatalog()...)
	if len(errs) > 0 {
		// Round-trip results are meaningless over a broken catalog.
		return errors.Join(errs...)
	}
	return errors.Join(c.checkRoundTrip()...)
}

func (c *catalogSet) checkPrefixTable() []error {
	var errs []error
	seen := make(map[string]string, len(c.prefixes.entries))
	for _, e := range c.prefixes.entries {
		if len(e.Prefix) != 2 || !isASCIIDigits(e.Prefix) {
			errs = append(errs, fmt.Errorf("prefix %q is not 2 digits", e.Prefix))
		}
		if prev, dup := seen[e.Prefix]; dup {
			errs = append(errs, fmt.Errorf("prefix %s declared twice (%s, %s)", e.Prefix, prev, e.RegionCode))
			continue
		}
		seen[e.Prefix] = e.RegionCode
		if _, ok := c.regions.ByCode(e.RegionCode); !ok {
			errs = append(errs, fmt.Errorf("prefix %s maps to unknown region %q", e.Prefix, e.RegionCode))
		}
	}
	for _, d := range c.prefixes.disputes {
		got, ok := seen[d.Prefix]
		if !ok {
			errs = append(errs, fmt.Errorf("disputed prefix %s is not in the table", d.Prefix))
			continue
		}
		if got != d.Winner {
			errs = append(errs, fmt.Errorf("disputed prefix %s: table says %q, dispute winner is %q", d.Prefix, got, d.Winner))
		}
	}
	return errs
}

func (c *catalogSet) checkRegionCatalog() []error {
	var errs []error
	codes := make(map[string]bool, len(c.regions.regions))
	names := make(map[string]bool, len(c.regions.regions))
	for i, r := range c.regions.regions {
		if r.Code == "" || r.DisplayName == "" {
			errs = append(errs, fmt.Errorf("region %d has an empty code or display name", i))
			continue
		}
		if codes[r.Code] {
			errs = append(errs, fmt.Errorf("region code %q declared twice", r.Code))
		}
		codes[r.Code] = true
		if names[c.regions.folded[i]] {
			errs = append(errs, fmt.Errorf("region display name %q declared twice", r.DisplayName))
		}
		names[c.regions.folded[i]] = true

		if first, ok := c.regions.FirstByDisplaySubstring(r.DisplayName); !ok || first.Code != r.Code {
			errs = append(errs, fmt.Errorf("region %q is shadowed by %q under substring matching", r.Code, first.Code))
		}
	}
	return errs
}

func (c *catalogSet) checkDistrictCatalog() []error {
	var errs []error
	if len(c.districts.defaults) != defaultDistrictCount {
		errs = append(errs, fmt.Errorf("default district list has %d entries, want %d",
			len(c.districts.defaults), defaultDistrictCount))
	}
	errs = append(errs, checkDistrictList("default", c.districts.defaults, c.districts.foldedDefaults)...)

	for _, regionCode := range c.districts.CatalogedRegions() {
		if _, ok := c.regions.ByCode(regionCode); !ok {
			errs = append(errs, fmt.Errorf("district list keyed by unknown region %q", regionCode))
		}
		errs = append(errs, checkDistrictList(regionCode, c.districts.byRegion[regionCode], c.districts.folded[regionCode])...)
	}
	return errs
}

func checkDistrictList(label string, districts []District, folded []string) []error {
	if len(districts) == 0 {
		return []error{fmt.Errorf("district list %q is empty", label)}
	}
	var errs []error
	codes := make(map[string]bool, len(districts))
	for i, d := range districts {
		if d.Code == "" || d.DisplayName == "" {
			errs = append(errs, fmt.Errorf("district list %q entry %d has an empty code or display name", label, i))
			continue
		}
		if codes[d.Code] {
			errs = append(errs, fmt.Errorf("district list %q declares %q twice", label, d.Code))
		}
		codes[d.Code] = true
		if idx := matchIndexes(folded, d.DisplayName); len(idx) == 0 || districts[idx[0]].Code != d.Code {
			errs = append(errs, fmt.Errorf("district list %q: %q is shadowed under substring matching", label, d.Code))
		}
	}
	return errs
}

func (c *catalogSet) checkRoundTrip() []error {
	var errs []error
	for _, r := range c.regions.regions {
		for _, d := range c.districts.DistrictsFor(r.Code) {
			composed, err := c.compose(roundTripVillage, d.Code, r.Code)
			if err != nil {
				errs = append(errs, fmt.Errorf("compose %s/%s: %w", r.Code, d.Code, err))
				continue
			}
			got := c.parse(composed, "", "")
			if got.RegionCode != r.Code || got.DistrictCode != d.Code {
				errs = append(errs, fmt.Errorf("round trip %s/%s via %q gave %s/%s",
					r.Code, d.Code, composed, got.RegionCode, got.DistrictCode))
			}
		}
	}
	return errs
}
