// Command validate performs integrity checks over the location catalogs: the
// postal prefix table, the region catalog, the district catalog, and the
// compose/parse round trip for every region and district. It exits non-zero
// when any phase fails.
//
// Usage:
//
//	go run ./cmd/validate
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []error
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

func run() int {
	fmt.Println("=== Location Catalog Validation ===")
	fmt.Println()

	phases := []*phase{
		{name: "Postal prefix table", errors: domain.CheckPrefixTable()},
		{name: "Region catalog", errors: domain.CheckRegionCatalog()},
		{name: "District catalog", errors: domain.CheckDistrictCatalog()},
		{name: "Compose/parse round trip", errors: domain.CheckRoundTrip()},
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	regions := domain.Regions().All()
	fmt.Println()
	fmt.Printf("Catalog: %d regions, %d postal prefixes, %d regions with district data\n",
		len(regions), len(domain.PostalPrefixes().Entries()), len(domain.Districts().CatalogedRegions()))

	printNotes(regions)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %v\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func printNotes(regions []domain.Region) {
	fmt.Println("\nNotes:")
	for _, d := range domain.PostalPrefixes().Disputes() {
		fmt.Printf("  prefix %s disputed: %s wins over %s\n", d.Prefix, d.Winner, strings.Join(d.Rejected, ", "))
	}

	var generic []string
	for _, r := range regions {
		if domain.Districts().UsesDefault(r.Code) {
			generic = append(generic, r.Code)
		}
	}
	fmt.Printf("  %d regions use generic districts: %s\n", len(generic), strings.Join(generic, ", "))
}
