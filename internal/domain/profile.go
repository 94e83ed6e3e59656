package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Location sources recorded on a normalized profile.
const (
	SourceComposed = "composed" // structured form fields were present
	SourceParsed   = "parsed"   // recovered from a stored location string
	SourceResolved = "resolved" // derived from the postal code alone
	SourceNone     = "none"     // nothing to normalize
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// RawProfile is a profile update as submitted by the onboarding wizard or the
// farm settings page. State and district are catalog codes.
type RawProfile struct {
	ID           string   `json:"id"`
	FarmName     string   `json:"farm_name"`
	Crops        []string `json:"crops"`
	Location     string   `json:"location"`
	PostalCode   string   `json:"postal_code"`
	Village      string   `json:"village"`
	RegionCode   string   `json:"state"`
	DistrictCode string   `json:"district"`
}

// Profile is the record handed to the persistence collaborator.
type Profile struct {
	ID               string    `json:"id"`
	FarmName         string    `json:"farm_name"`
	Crops            []string  `json:"crops"`
	Location         string    `json:"location"`
	Address          Address   `json:"address"`
	LocationSource   string    `json:"location_source"`
	GenericDistricts bool      `json:"generic_districts"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ParseRawProfile decodes a source message. A missing id is taken from the
// message key.
func ParseRawProfile(raw RawEvent) (RawProfile, error) {
	var p RawProfile
	if err := json.Unmarshal(raw.Value, &p); err != nil {
		return RawProfile{}, fmt.Errorf("parse raw profile: %w", err)
	}
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = strings.TrimSpace(string(raw.Key))
	}
	if p.ID == "" {
		return RawProfile{}, ErrNoProfileID
	}
	return p, nil
}

// NormalizeProfile turns a raw profile update into a record whose location is
// the canonical composed string. Structured fields take precedence over a
// stored location string, which takes precedence over the postal code.
// fallbackRegion and fallbackDistrict are passed to ParseAddress.
func NormalizeProfile(raw RawProfile, fallbackRegion, fallbackDistrict string) (Profile, error) {
	addr, source := locateProfile(raw, fallbackRegion, fallbackDistrict)

	p := Profile{
		ID:             raw.ID,
		FarmName:       strings.TrimSpace(raw.FarmName),
		Crops:          normalizeCrops(raw.Crops),
		LocationSource: source,
		UpdatedAt:      clock.Now().UTC(),
	}
	if source == SourceNone {
		return p, nil
	}

	location, err := addr.Compose()
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", raw.ID, err)
	}
	addr.Village = strings.TrimSpace(addr.Village)
	p.Location = location
	p.Address = addr
	p.GenericDistricts = std.districts.UsesDefault(addr.RegionCode)
	return p, nil
}

func locateProfile(raw RawProfile, fallbackRegion, fallbackDistrict string) (Address, string) {
	regionCode := CanonicalRegionCode(strings.TrimSpace(raw.RegionCode))
	if regionCode != "" {
		districtCode := strings.TrimSpace(raw.DistrictCode)
		if districtCode == "" {
			districtCode = std.districts.Default(regionCode).Code
		}
		return Address{Village: raw.Village, DistrictCode: districtCode, RegionCode: regionCode}, SourceComposed
	}

	if strings.TrimSpace(raw.Location) != "" {
		return std.parse(raw.Location, fallbackRegion, fallbackDistrict), SourceParsed
	}

	// A location string that arrives with a postal code took the branch above,
	// so its village is never dropped here.
	if raw.PostalCode != "" {
		if res, err := std.resolve(strings.TrimSpace(raw.PostalCode)); err == nil {
			return Address{Village: raw.Village, DistrictCode: res.District.Code, RegionCode: res.Region.Code}, SourceResolved
		}
	}

	return Address{}, SourceNone
}

// normalizeCrops trims and lower-cases crop ids, dropping blanks and
// duplicates while keeping the submitted order.
func normalizeCrops(crops []string) []string {
	out := make([]string, 0, len(crops))
	seen := make(map[string]bool, len(crops))
	for _, c := range crops {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// SerializeProfile converts a normalized profile into an output message keyed
// by profile id.
func SerializeProfile(p Profile) (OutputEvent, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize profile: %w", err)
	}
	return OutputEvent{
		Key:   []byte(p.ID),
		Value: data,
		Headers: map[string]string{
			"location_source": p.LocationSource,
			"updated_at":      p.UpdatedAt.Format(time.RFC3339),
		},
	}, nil
}
