package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/sqlcell"
	"github.com/spf13/cobra"
)

func newMatrixCmd() *cobra.Command {
	var get bool
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the compatibility matrix of cell types",
		Long: `Print which host kinds each stored kind accepts.

Rows are the kinds written (CanSet) or read (CanGet, with --get), columns
the kinds of the cell. Column numbers refer to the row numbers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			check, verb := sqlcell.CanSet, "set from"
			if get {
				check = func(host, stored sqlcell.TypeTag) bool { return sqlcell.CanGet(stored, host) }
				verb = "get as"
			}
			return printMatrix(cmd, check, verb)
		},
	}
	cmd.Flags().BoolVar(&get, "get", false, "print CanGet instead of CanSet")
	return cmd
}

// printMatrix prints one row per host kind: "x" where check(host, stored) holds.
func printMatrix(cmd *cobra.Command, check func(from, to sqlcell.TypeTag) bool, verb string) error {
	tags := sqlcell.AllTypeTags()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)

	header := make([]string, 0, len(tags)+2)
	header = append(header, "#", verb)
	for i := range tags {
		header = append(header, fmt.Sprint(i))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for i, host := range tags {
		row := make([]string, 0, len(tags)+2)
		row = append(row, fmt.Sprint(i), host.String())
		for _, stored := range tags {
			mark := "."
			if check(host, stored) {
				mark = "x"
			}
			row = append(row, mark)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
