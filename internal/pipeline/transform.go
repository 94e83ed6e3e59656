package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

// ProfileTransformer implements Transformer by decoding a raw profile update
// and normalizing its location against the catalogs.
type ProfileTransformer struct {
	fallbackRegion   string
	fallbackDistrict string
	logger           *slog.Logger
}

// NewTransformer creates a ProfileTransformer. The fallbacks are used for
// stored location strings that carry no region or district.
func NewTransformer(fallbackRegion, fallbackDistrict string, logger *slog.Logger) *ProfileTransformer {
	return &ProfileTransformer{
		fallbackRegion:   fallbackRegion,
		fallbackDistrict: fallbackDistrict,
		logger:           logger,
	}
}

func (t *ProfileTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.Profile, error) {
	rp, err := domain.ParseRawProfile(raw)
	if err != nil {
		return domain.Profile{}, err
	}

	profile, err := domain.NormalizeProfile(rp, t.fallbackRegion, t.fallbackDistrict)
	if err != nil {
		return domain.Profile{}, err
	}

	if profile.GenericDistricts {
		t.logger.Debug("generic district fallback",
			"profile_id", profile.ID,
			"region_code", profile.Address.RegionCode,
		)
	}
	if profile.LocationSource == domain.SourceNone {
		t.logger.Debug("profile has no location", "profile_id", profile.ID, "postal_code", rp.PostalCode)
	}
	return profile, nil
}
