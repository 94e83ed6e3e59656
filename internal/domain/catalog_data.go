package domain

// This file is the only declaration of the location tables. Every call site
// (HTTP API, profile pipeline, locationctl) reads them through the catalog types.

// regionDecls is ordered as presented in region pickers. Order is significant:
// display-name matching returns the first match in this order.
var regionDecls = []Region{
	{Code: "andhra", DisplayName: "Andhra Pradesh"},
	{Code: "arunachal", DisplayName: "Arunachal Pradesh"},
	{Code: "assam", DisplayName: "Assam"},
	{Code: "bihar", DisplayName: "Bihar"},
	{Code: "chattisgarh", DisplayName: "Chattisgarh"},
	{Code: "delhi", DisplayName: "Delhi"},
	{Code: "goa", DisplayName: "Goa"},
	{Code: "gujarat", DisplayName: "Gujarat"},
	{Code: "haryana", DisplayName: "Haryana"},
	{Code: "himachal", DisplayName: "Himachal Pradesh"},
	{Code: "j&k", DisplayName: "Jammu & Kashmir"},
	{Code: "jharkhand", DisplayName: "Jharkhand"},
	{Code: "karnataka", DisplayName: "Karnataka"},
	{Code: "kerala", DisplayName: "Kerala"},
	{Code: "mp", DisplayName: "Madhya Pradesh"},
	{Code: "maharashtra", DisplayName: "Maharashtra"},
	{Code: "manipur", DisplayName: "Manipur"},
	{Code: "meghalaya", DisplayName: "Meghalaya"},
	{Code: "mizoram", DisplayName: "Mizoram"},
	{Code: "nagaland", DisplayName: "Nagaland"},
	{Code: "orissa", DisplayName: "Orissa"},
	{Code: "punjab", DisplayName: "Punjab"},
	{Code: "rajasthan", DisplayName: "Rajasthan"},
	{Code: "sikkim", DisplayName: "Sikkim"},
	{Code: "tamil", DisplayName: "Tamil Nadu"},
	{Code: "telangana", DisplayName: "Telangana"},
	{Code: "tripura", DisplayName: "Tripura"},
	{Code: "up", DisplayName: "Uttar Pradesh"},
	{Code: "uttarakhand", DisplayName: "Uttarakhand"},
	{Code: "wb", DisplayName: "West Bengal"},
}

// districtDecls holds the regions with real district data. The first entry of
// each list is the default district chosen by Resolve.
var districtDecls = map[string][]catalogEntry{
	"haryana": {
		{"sonipat", "Sonipat"},
		{"karnal", "Karnal"},
		{"panipat", "Panipat"},
		{"hisar", "Hisar"},
		{"gurugram", "Gurugram"},
		{"faridabad", "Faridabad"},
		{"ambala", "Ambala"},
	},
	"punjab": {
		{"amritsar", "Amritsar"},
		{"ludhiana", "Ludhiana"},
		{"jalandhar", "Jalandhar"},
		{"patiala", "Patiala"},
		{"bathinda", "Bathinda"},
	},
	"rajasthan": {
		{"jaipur", "Jaipur"},
		{"jodhpur", "Jodhpur"},
		{"udaipur", "Udaipur"},
		{"kota", "Kota"},
		{"bikaner", "Bikaner"},
		{"ajmer", "Ajmer"},
	},
	"up": {
		{"lucknow", "Lucknow"},
		{"kanpur", "Kanpur"},
		{"agra", "Agra"},
		{"varanasi", "Varanasi"},
		{"meerut", "Meerut"},
		{"ghaziabad", "Ghaziabad"},
		{"noida", "Noida"},
	},
}

// defaultDistrictDecls is the placeholder list served for regions without
// district data.
var defaultDistrictDecls = []catalogEntry{
	{"district1", "District 1"},
	{"district2", "District 2"},
	{"district3", "District 3"},
}

// postalPrefixDecls maps the first two PIN digits to a region. Each prefix is
// declared exactly once; ValidateCatalogs rejects duplicates.
var postalPrefixDecls = []PostalPrefix{
	{"11", "delhi"},
	{"12", "haryana"},
	{"13", "punjab"},
	{"14", "himachal"},
	{"15", "j&k"},
	{"16", "punjab"},
	{"17", "punjab"},
	{"18", "himachal"},
	{"19", "up"},
	{"20", "up"},
	{"21", "up"},
	{"22", "up"},
	{"23", "up"},
	{"24", "up"},
	{"25", "rajasthan"},
	{"26", "rajasthan"},
	{"27", "gujarat"},
	{"28", "gujarat"},
	{"30", "goa"},
	{"31", "maharashtra"},
	{"32", "maharashtra"},
	{"33", "gujarat"},
	{"34", "maharashtra"},
	{"36", "mp"},
	{"37", "mp"},
	{"38", "mp"},
	{"39", "mp"},
	{"40", "chattisgarh"},
	{"41", "chattisgarh"},
	{"42", "andhra"},
	{"43", "andhra"},
	{"44", "telangana"},
	{"45", "andhra"},
	{"46", "kerala"},
	{"47", "kerala"},
	{"48", "tamil"},
	{"49", "kerala"},
	{"50", "tamil"},
	{"51", "tamil"},
	{"52", "karnataka"},
	{"53", "karnataka"},
	{"54", "karnataka"},
	{"55", "karnataka"},
	{"56", "karnataka"},
	{"57", "andhra"},
	{"58", "karnataka"},
	{"60", "maharashtra"},
	{"70", "wb"},
	{"71", "wb"},
	{"72", "wb"},
	{"73", "wb"},
	{"74", "orissa"},
	{"75", "orissa"},
	{"76", "orissa"},
	{"77", "orissa"},
	{"78", "assam"},
	{"79", "assam"},
	{"80", "bihar"},
	{"81", "bihar"},
	{"82", "bihar"},
	{"83", "jharkhand"},
	{"84", "jharkhand"},
	{"85", "bihar"},
	{"90", "uttarakhand"},
	{"91", "uttarakhand"},
	{"92", "j&k"},
	{"93", "j&k"},
	{"94", "j&k"},
	{"95", "arunachal"},
	{"96", "manipur"},
	{"97", "tripura"},
	{"98", "nagaland"},
	{"99", "mizoram"},
}

// prefixDisputeDecls records prefixes the legacy form tables declared for two
// regions, where the later declaration silently won. The winner here follows
// the neighbouring prefixes of the same block. Open with product for a ruling.
var prefixDisputeDecls = []PrefixDispute{
	{Prefix: "56", Winner: "karnataka", Rejected: []string{"lakshadweep"}},
	{Prefix: "78", Winner: "assam", Rejected: []string{"bihar"}},
}

// legacyRegionAliases maps codes emitted by the old prefix tables that were
// never part of the region list.
var legacyRegionAliases = map[string]string{
	"jammu":  "j&k",
	"hp":     "himachal",
	"kerela": "kerala",
}

type catalogEntry struct {
	code string
	name string
}
