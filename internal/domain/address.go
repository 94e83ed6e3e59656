package domain

import (
	"fmt"
	"strings"
)

// Address is the structured form of a canonical location string
// "<village>, <district>, <region>". JSON names follow the profile form fields.
type Address struct {
	Village      string `json:"village"`
	DistrictCode string `json:"district"`
	RegionCode   string `json:"state"`
}

// ParseAddress recovers structured fields from a stored location string.
//
// The string is split on commas. With fewer than three parts the whole string
// is the village and the fallbacks are returned untouched. Otherwise the last
// part names the region, the one before it the district, and the rest is
// rejoined as the village. Region and district are matched by display-name
// containment; when several entries match, the first in catalog order wins.
// An unmatched region uses fallbackRegion; an unmatched district uses the
// first district of the resolved region. ParseAddress never fails.
func ParseAddress(canonical, fallbackRegion, fallbackDistrict string) Address {
	return std.parse(canonical, fallbackRegion, fallbackDistrict)
}

func (c *catalogSet) parse(canonical, fallbackRegion, fallbackDistrict string) Address {
	parts := strings.Split(canonical, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < 3 {
		return Address{
			Village:      strings.TrimSpace(canonical),
			DistrictCode: fallbackDistrict,
			RegionCode:   fallbackRegion,
		}
	}

	regionText := parts[len(parts)-1]
	districtText := parts[len(parts)-2]

	regionCode := fallbackRegion
	if region, ok := c.regions.FirstByDisplaySubstring(regionText); ok {
		regionCode = region.Code
	}

	districtCode := c.districts.Default(regionCode).Code
	if matches := c.districts.ByDisplaySubstring(regionCode, districtText); len(matches) > 0 {
		districtCode = matches[0].Code
	}

	return Address{
		Village:      strings.Join(parts[:len(parts)-2], ", "),
		DistrictCode: districtCode,
		RegionCode:   regionCode,
	}
}

// ComposeAddress renders the canonical location string. An empty (after
// trimming) village is omitted, giving "<district>, <region>". Codes must be
// present in their catalogs, otherwise the error wraps ErrUnknownCode.
func ComposeAddress(village, districtCode, regionCode string) (string, error) {
	return std.compose(village, districtCode, regionCode)
}

// Compose renders a as a canonical location string.
func (a Address) Compose() (string, error) {
	return ComposeAddress(a.Village, a.DistrictCode, a.RegionCode)
}

func (c *catalogSet) compose(village, districtCode, regionCode string) (string, error) {
	region, ok := c.regions.ByCode(regionCode)
	if !ok {
		return "", fmt.Errorf("%w: region %q", ErrUnknownCode, regionCode)
	}
	district, ok := c.districts.ByCode(regionCode, districtCode)
	if !ok {
		return "", fmt.Errorf("%w: district %q in region %q", ErrUnknownCode, districtCode, regionCode)
	}

	village = strings.TrimSpace(village)
	if village == "" {
		return district.DisplayName + ", " + region.DisplayName, nil
	}
	return village + ", " + district.DisplayName + ", " + region.DisplayName, nil
}
