// Package commands implements the locationctl subcommands.
package commands

import (
	"fmt"
	"io"

	"github.com/liushuochen/gotable"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "locationctl",
		Short:        "Inspect location catalogs and normalize farm locations",
		SilenceUsage: true,
	}
	root.AddCommand(
		resolveCmd(),
		parseCmd(),
		composeCmd(),
		regionsCmd(),
		districtsCmd(),
		prefixesCmd(),
	)
	return root
}

// printTable renders rows under the given header.
func printTable(w io.Writer, header []string, rows [][]string) error {
	t, err := gotable.Create(header...)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	for _, row := range rows {
		if err := t.AddRow(row); err != nil {
			return fmt.Errorf("add row: %w", err)
		}
	}
	_, err = fmt.Fprintf(w, "%v", t)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
