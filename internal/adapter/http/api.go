package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
	"github.com/couchcryptid/farm-location-etl/internal/observability"
)

const maxBodyBytes = 64 << 10

// ProfileLocator reads the stored location string of a profile.
type ProfileLocator interface {
	Location(ctx context.Context, id string) (string, error)
}

// LocationAPI serves the catalogs and the resolve, parse and compose
// operations to the onboarding wizard and the farm settings page.
type LocationAPI struct {
	defaultRegion   string
	defaultDistrict string
	profiles        ProfileLocator
	metrics         *observability.Metrics
	logger          *slog.Logger
}

// NewLocationAPI creates the /v1 handlers. The defaults are the parse
// fallbacks used when a request leaves them empty. profiles may be nil, in
// which case the profile address route is not served.
func NewLocationAPI(defaultRegion, defaultDistrict string, profiles ProfileLocator, metrics *observability.Metrics, logger *slog.Logger) *LocationAPI {
	return &LocationAPI{
		defaultRegion:   defaultRegion,
		defaultDistrict: defaultDistrict,
		profiles:        profiles,
		metrics:         metrics,
		logger:          logger,
	}
}

func (a *LocationAPI) register(mux *http.ServeMux) {
	a.handle(mux, "GET /v1/regions", a.handleRegions)
	a.handle(mux, "GET /v1/regions/{code}/districts", a.handleDistricts)
	a.handle(mux, "GET /v1/postal-codes/{code}", a.handleResolve)
	a.handle(mux, "POST /v1/addresses/parse", a.handleParse)
	a.handle(mux, "POST /v1/addresses/compose", a.handleCompose)
	if a.profiles != nil {
		a.handle(mux, "GET /v1/profiles/{id}/address", a.handleProfileAddress)
	}
}

// handle registers h and records its latency under the route pattern.
func (a *LocationAPI) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	route := pattern[strings.IndexByte(pattern, ' ')+1:]
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		a.metrics.APIRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (a *LocationAPI) handleRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"regions": domain.Regions().All()})
}

type districtsResponse struct {
	Region    domain.Region     `json:"region"`
	Districts []domain.District `json:"districts"`
	Generic   bool              `json:"generic"`
}

func (a *LocationAPI) handleDistricts(w http.ResponseWriter, r *http.Request) {
	code := domain.CanonicalRegionCode(r.PathValue("code"))
	region, ok := domain.Regions().ByCode(code)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown region "+r.PathValue("code"))
		return
	}
	writeJSON(w, http.StatusOK, districtsResponse{
		Region:    region,
		Districts: domain.Districts().DistrictsFor(region.Code),
		Generic:   domain.Districts().UsesDefault(region.Code),
	})
}

func (a *LocationAPI) handleResolve(w http.ResponseWriter, r *http.Request) {
	res, err := domain.Resolve(r.PathValue("code"))
	switch {
	case err == nil:
		a.metrics.ResolveRequests.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, domain.ErrInvalidPostalCode):
		a.metrics.ResolveRequests.WithLabelValues("invalid").Inc()
		a.writeDomainError(w, err)
	case errors.Is(err, domain.ErrUnknownPrefix):
		a.metrics.ResolveRequests.WithLabelValues("unknown_prefix").Inc()
		a.writeDomainError(w, err)
	default:
		a.metrics.ResolveRequests.WithLabelValues("error").Inc()
		a.writeDomainError(w, err)
	}
}

type parseRequest struct {
	Location         string `json:"location"`
	FallbackRegion   string `json:"fallback_region"`
	FallbackDistrict string `json:"fallback_district"`
}

type addressResponse struct {
	domain.Address
	GenericDistricts bool `json:"generic_districts"`
}

func (a *LocationAPI) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, a.parse(req.Location, req.FallbackRegion, req.FallbackDistrict))
}

// parse fills empty fallbacks with the configured defaults. A caller-supplied
// region without a district falls back to that region's first district.
func (a *LocationAPI) parse(location, fallbackRegion, fallbackDistrict string) addressResponse {
	if fallbackRegion == "" {
		fallbackRegion = a.defaultRegion
		if fallbackDistrict == "" {
			fallbackDistrict = a.defaultDistrict
		}
	}
	if fallbackDistrict == "" {
		fallbackDistrict = domain.Districts().Default(fallbackRegion).Code
	}
	addr := domain.ParseAddress(location, fallbackRegion, fallbackDistrict)
	return addressResponse{Address: addr, GenericDistricts: domain.Districts().UsesDefault(addr.RegionCode)}
}

func (a *LocationAPI) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req domain.Address
	if !decodeBody(w, r, &req) {
		return
	}
	location, err := req.Compose()
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"location": location})
}

type profileAddressResponse struct {
	ID       string          `json:"id"`
	Location string          `json:"location"`
	Address  addressResponse `json:"address"`
}

func (a *LocationAPI) handleProfileAddress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	location, err := a.profiles.Location(r.Context(), id)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	// A location saved without a village has two parts, so it parses to the
	// whole string as village and the configured default region and district.
	writeJSON(w, http.StatusOK, profileAddressResponse{
		ID:       id,
		Location: location,
		Address:  a.parse(location, "", ""),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (a *LocationAPI) writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("location api request failed", "error", err)
	}
	writeError(w, status, err.Error())
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidPostalCode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownPrefix), errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
