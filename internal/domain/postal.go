package domain

import (
	"fmt"
	"slices"
)

// PostalPrefix maps the first two digits of a PIN code to a region.
type PostalPrefix struct {
	Prefix     string `json:"prefix"`
	RegionCode string `json:"region_code"`
}

// PrefixDispute documents a prefix the legacy tables declared for more than
// one region, with the region this table commits to.
type PrefixDispute struct {
	Prefix   string   `json:"prefix"`
	Winner   string   `json:"winner"`
	Rejected []string `json:"rejected"`
}

// PostalPrefixTable resolves 2-digit prefixes to regions.
type PostalPrefixTable struct {
	entries  []PostalPrefix
	byPrefix map[string]string
	disputes []PrefixDispute
	regions  *RegionCatalog
}

func newPostalPrefixTable(entries []PostalPrefix, disputes []PrefixDispute, regions *RegionCatalog) *PostalPrefixTable {
	t := &PostalPrefixTable{
		entries:  slices.Clone(entries),
		byPrefix: make(map[string]string, len(entries)),
		disputes: slices.Clone(disputes),
		regions:  regions,
	}
	for _, e := range entries {
		// Duplicates fail validation; keeping the first makes the map independent
		// of anything but declaration order even before that check runs.
		if _, dup := t.byPrefix[e.Prefix]; !dup {
			t.byPrefix[e.Prefix] = e.RegionCode
		}
	}
	return t
}

// Lookup returns the region for a 2-digit prefix. Malformed input yields
// ErrInvalidPostalCode; a missing prefix yields ErrUnknownPrefix.
func (t *PostalPrefixTable) Lookup(prefix string) (Region, error) {
	if len(prefix) != 2 || !isASCIIDigits(prefix) {
		return Region{}, fmt.Errorf("%w: prefix %q is not 2 digits", ErrInvalidPostalCode, prefix)
	}
	code, ok := t.byPrefix[prefix]
	if !ok {
		return Region{}, fmt.Errorf("%w: %s", ErrUnknownPrefix, prefix)
	}
	region, ok := t.regions.ByCode(code)
	if !ok {
		return Region{}, fmt.Errorf("%w: prefix %s maps to region %q", ErrUnknownCode, prefix, code)
	}
	return region, nil
}

// Entries returns the prefix declarations in table order.
func (t *PostalPrefixTable) Entries() []PostalPrefix {
	return slices.Clone(t.entries)
}

// Disputes returns the prefixes flagged for a product decision.
func (t *PostalPrefixTable) Disputes() []PrefixDispute {
	out := make([]PrefixDispute, len(t.disputes))
	for i, d := range t.disputes {
		d.Rejected = slices.Clone(d.Rejected)
		out[i] = d
	}
	return out
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
