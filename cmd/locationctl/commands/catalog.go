package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List regions in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			regions := domain.Regions().All()
			rows := make([][]string, 0, len(regions))
			for _, r := range regions {
				rows = append(rows, []string{r.Code, r.DisplayName, yesNo(domain.Districts().UsesDefault(r.Code))})
			}
			return printTable(cmd.OutOrStdout(), []string{"Code", "Name", "Generic districts"}, rows)
		},
	}
}

func districtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts <region>",
		Short: "List the districts of a region; the first is the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := domain.CanonicalRegionCode(args[0])
			if _, ok := domain.Regions().ByCode(code); !ok {
				return fmt.Errorf("%w: region %q", domain.ErrUnknownCode, args[0])
			}
			districts := domain.Districts().DistrictsFor(code)
			rows := make([][]string, 0, len(districts))
			for _, d := range districts {
				rows = append(rows, []string{d.Code, d.DisplayName})
			}
			if domain.Districts().UsesDefault(code) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no district data; showing the generic list\n", code)
			}
			return printTable(cmd.OutOrStdout(), []string{"Code", "Name"}, rows)
		},
	}
}

func prefixesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefixes",
		Short: "List the postal prefix table and its disputed entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := domain.PostalPrefixes().Entries()
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Prefix, e.RegionCode})
			}
			if err := printTable(cmd.OutOrStdout(), []string{"Prefix", "Region"}, rows); err != nil {
				return err
			}

			disputes := domain.PostalPrefixes().Disputes()
			if len(disputes) == 0 {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nDisputed prefixes:")
			rows = rows[:0]
			for _, d := range disputes {
				rows = append(rows, []string{d.Prefix, d.Winner, strings.Join(d.Rejected, ", ")})
			}
			return printTable(cmd.OutOrStdout(), []string{"Prefix", "Winner", "Rejected"}, rows)
		},
	}
}
