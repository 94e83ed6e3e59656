// Package domain holds the location catalogs for farm profiles and the three
// operations built on them: postal code resolution, location string parsing,
// and canonical composition.
//
// # Catalogs
//
// All tables are declared once in catalog_data.go and validated at package
// init; an inconsistent table panics before any caller can observe it.
//
//	PostalPrefixTable  "12" -> haryana      first two PIN digits -> region
//	RegionCatalog      haryana "Haryana"    ordered, used to fill region pickers
//	DistrictCatalog    haryana -> [sonipat, karnal, ...]
//
// Regions without district data share a 3-entry placeholder list
// (district1..district3). [DistrictCatalog.UsesDefault] and the
// GenericDistricts flags on [Resolution] and [Profile] make that visible.
//
// # PIN Codes
//
// A PIN code is exactly six ASCII digits. Only the first two are used, as a
// coarse region indicator. The district returned by [Resolve] is always the
// first entry of the region's list; nothing in a PIN code picks a district.
//
// Two prefixes were declared twice in the legacy form tables (56 and 78). The
// table commits to one region for each and lists the rejected alternative in
// [PostalPrefixTable.Disputes].
//
// # Canonical Location String
//
//	"<village>, <district display name>, <region display name>"
//	e.g. "Village Khanpur, Karnal, Haryana"
//
// The village is free text and may itself contain commas, so parsing reads the
// region from the last part and the district from the second-to-last. A blank
// village is omitted: "Karnal, Haryana". Such a two-part string parses back to
// the caller's fallbacks, since fewer than three parts carry no structure.
//
// # Matching Policy
//
// Reverse lookup matches a catalog entry when its display name occurs inside
// the text, after ASCII transliteration and lower-casing. If several entries
// match, the first in catalog order wins. Validation guarantees every display
// name matches itself first, which is what makes compose-then-parse lossless
// for region and district codes.
package domain
