package domain

import "fmt"

// Resolution is the outcome of a postal code lookup.
type Resolution struct {
	PostalCode string   `json:"postal_code"`
	Region     Region   `json:"region"`
	District   District `json:"district"`
	Display    string   `json:"display"`

	// GenericDistricts is true when the region has no district data and
	// District comes from the placeholder list.
	GenericDistricts bool `json:"generic_districts"`
}

// Resolve maps a 6-digit PIN code to its region and that region's default
// (first) district. It never tries to pick a district from the code itself;
// refinement is left to the user.
func Resolve(postalCode string) (Resolution, error) {
	return std.resolve(postalCode)
}

func (c *catalogSet) resolve(postalCode string) (Resolution, error) {
	if len(postalCode) != 6 || !isASCIIDigits(postalCode) {
		return Resolution{}, fmt.Errorf("%w: %q", ErrInvalidPostalCode, postalCode)
	}

	region, err := c.prefixes.Lookup(postalCode[:2])
	if err != nil {
		return Resolution{}, err
	}

	district := c.districts.Default(region.Code)
	return Resolution{
		PostalCode:       postalCode,
		Region:           region,
		District:         district,
		Display:          district.DisplayName + ", " + region.DisplayName,
		GenericDistricts: c.districts.UsesDefault(region.Code),
	}, nil
}
