package commands

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/farm-location-etl/internal/domain"
)

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <pin>",
		Short: "Resolve a 6-digit PIN code to its region and default district",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := domain.Resolve(args[0])
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(),
				[]string{"PIN", "Region", "District", "Display", "Generic"},
				[][]string{{res.PostalCode, res.Region.Code, res.District.Code, res.Display, yesNo(res.GenericDistricts)}},
			)
		},
	}
}
