package main

import (
	"fmt"

	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/internal/logger"
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	var table string
	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT_DIR",
		Short: "Load a row set file and write it in another format",
		Long: `Load a CSV, TSV, LTSV, Parquet or XLSX file, plain or compressed with
gz, bz2, xz or zstd, infer its column types and write it to OUTPUT_DIR.`,
		Example: `  sqlcell convert users.csv ./out --format parquet
  sqlcell convert orders.tsv.zst ./out --format sql --dialect postgres --compression gz`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := a.dumpOptions(cmd)
			if err != nil {
				return err
			}

			loadOptions := sqlcell.NewLoadOptions()
			if table != "" {
				loadOptions = loadOptions.WithTableName(table)
			}
			rs, err := sqlcell.LoadFile(cmd.Context(), args[0], loadOptions)
			if err != nil {
				return err
			}
			logger.Debug("loaded row set", "table", rs.Name(), "rows", rs.Len(), "columns", len(rs.Columns()))

			path, err := sqlcell.DumpFile(cmd.Context(), args[1], rs, options)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	addDumpFlags(cmd)
	cmd.Flags().StringVar(&table, "table", "", "row set name, the input file name by default")
	return cmd
}
