package main

import (
	"fmt"

	"github.com/nao1215/sqlcell"
	"github.com/spf13/cobra"
)

func newLiteralCmd(a *app) *cobra.Command {
	var definition string
	var null bool
	cmd := &cobra.Command{
		Use:   "literal --type DEFINITION [--dialect DIALECT] VALUE",
		Short: "Parse a value into a typed cell and print its SQL literal",
		Example: `  sqlcell literal --type 'DECIMAL(10,2)' 12.5
  sqlcell literal --type NVARCHAR --dialect mysql "it's"
  sqlcell literal --type VARBINARY --dialect postgres DEADBEEF`,
		Args: func(cmd *cobra.Command, args []string) error {
			if null {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := sqlcell.ParseInfos("value", definition)
			if err != nil {
				return err
			}
			cell, err := sqlcell.NewValuedObject(infos)
			if err != nil {
				return err
			}
			if !null {
				if err := cell.SetText(args[0]); err != nil {
					return err
				}
			}

			dialect := a.cfg.Dump.Dialect
			if cmd.Flags().Changed("dialect") {
				dialect, _ = cmd.Flags().GetString("dialect")
			}
			d, err := sqlcell.ParseDialect(dialect)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cell.QueryLiteralFor(d))
			return err
		},
	}
	cmd.Flags().StringVar(&definition, "type", "", "column definition such as INTEGER or DECIMAL(10,2)")
	cmd.Flags().String("dialect", "", "literal syntax: generic, mysql, postgres, sqlite or odbc")
	cmd.Flags().BoolVar(&null, "null", false, "print the NULL literal of the type")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
