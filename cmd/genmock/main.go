// Command genmock reads the profile seed CSV and generates the fixtures used by
// the pipeline and integration test suites. It runs every seed through the
// actual domain normalization so the expected output matches real pipeline
// behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -seeds data/mock/profile_seeds.csv \
//	  -raw-out data/mock/raw_profiles.json \
//	  -normalized-out data/mock/normalized_profiles.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

// Fallbacks applied to unstructured location strings, matching the service defaults.
const (
	fallbackRegion   = "haryana"
	fallbackDistrict = "sonipat"
)

var updatedAt = time.Date(2024, time.June, 1, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seeds := flag.String("seeds", "data/mock/profile_seeds.csv", "CSV file of seed profiles")
	rawOut := flag.String("raw-out", "data/mock/raw_profiles.json", "output path for raw profile fixture")
	normalizedOut := flag.String("normalized-out", "data/mock/normalized_profiles.json", "output path for normalized profile fixture")
	flag.Parse()

	if *seeds == "" || *rawOut == "" || *normalizedOut == "" {
		flag.Usage()
		return errors.New("missing required flags: -seeds, -raw-out, -normalized-out")
	}

	// Set a fixed clock for reproducible updated_at timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(updatedAt))
	defer domain.SetClock(nil)

	raws, err := readSeeds(*seeds)
	if err != nil {
		return fmt.Errorf("reading seeds: %w", err)
	}
	log.Printf("seeds: %d profiles", len(raws))

	normalized := make([]domain.Profile, 0, len(raws))
	var rejected []string
	for _, raw := range raws {
		p, err := domain.NormalizeProfile(raw, fallbackRegion, fallbackDistrict)
		if err != nil {
			log.Printf("rejected %s: %v", raw.ID, err)
			rejected = append(rejected, raw.ID)
			continue
		}
		normalized = append(normalized, p)
	}

	if err := writeJSON(*rawOut, raws); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*normalizedOut, normalized); err != nil {
		return fmt.Errorf("writing normalized fixture: %w", err)
	}
	log.Printf("wrote normalized fixture: %s", *normalizedOut)

	printStats(normalized, rejected)
	return nil
}

func readSeeds(path string) ([]domain.RawProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("no data rows")
	}

	header := rows[0]
	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[h] = i
	}

	raws := make([]domain.RawProfile, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			continue
		}
		raws = append(raws, domain.RawProfile{
			ID:           get(row, colIdx, "id"),
			FarmName:     get(row, colIdx, "farm_name"),
			Crops:        splitCrops(row[colIdx["crops"]]),
			Location:     get(row, colIdx, "location"),
			PostalCode:   get(row, colIdx, "postal_code"),
			Village:      get(row, colIdx, "village"),
			RegionCode:   get(row, colIdx, "state"),
			DistrictCode: get(row, colIdx, "district"),
		})
	}
	return raws, nil
}

// splitCrops keeps the raw crop spelling so the fixture exercises normalization.
func splitCrops(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(profiles []domain.Profile, rejected []string) {
	sources := map[string]int{}
	regions := map[string]int{}
	generic := 0
	for _, p := range profiles {
		sources[p.LocationSource]++
		if p.Address.RegionCode != "" {
			regions[p.Address.RegionCode]++
		}
		if p.GenericDistricts {
			generic++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Normalized: %d, rejected: %d %v\n", len(profiles), len(rejected), rejected)
	fmt.Printf("By source: composed=%d, parsed=%d, resolved=%d, none=%d\n",
		sources[domain.SourceComposed], sources[domain.SourceParsed],
		sources[domain.SourceResolved], sources[domain.SourceNone])
	fmt.Printf("Generic districts: %d\n", generic)

	codes := make([]string, 0, len(regions))
	for code := range regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	fmt.Printf("Regions (%d):", len(codes))
	for _, code := range codes {
		fmt.Printf(" %s=%d", code, regions[code])
	}
	fmt.Println()
}
