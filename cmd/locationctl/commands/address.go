package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

func parseCmd() *cobra.Command {
	var fallbackRegion, fallbackDistrict string

	cmd := &cobra.Command{
		Use:   "parse <location>",
		Short: "Recover village, district and state codes from a location string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := domain.ParseAddress(args[0], fallbackRegion, fallbackDistrict)
			return printTable(cmd.OutOrStdout(),
				[]string{"Village", "District", "State"},
				[][]string{{addr.Village, addr.DistrictCode, addr.RegionCode}},
			)
		},
	}
	cmd.Flags().StringVar(&fallbackRegion, "fallback-region", "", "region code used when none is recognized")
	cmd.Flags().StringVar(&fallbackDistrict, "fallback-district", "", "district code used for strings without a district part")
	return cmd
}

func composeCmd() *cobra.Command {
	var village, district, state string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Render the canonical location string from catalog codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			location, err := domain.ComposeAddress(village, district, state)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), location)
			return err
		},
	}
	cmd.Flags().StringVar(&village, "village", "", "village or locality, free text")
	cmd.Flags().StringVar(&district, "district", "", "district code")
	cmd.Flags().StringVar(&state, "state", "", "region code")
	_ = cmd.MarkFlagRequired("district")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}
