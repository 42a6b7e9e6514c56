package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/driver"
	"github.com/nao1215/sqlcell/internal/logger"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		dbPath string
		files  []string
		query  string
		outDir string
		name   string
	)
	cmd := &cobra.Command{
		Use:   "query (--db FILE | --file PATH...) --sql QUERY --out DIR",
		Short: "Run a query and write its result as a row set file",
		Long: `Run a query against a SQLite database file, or against row set files
loaded as tables, and write the typed result to DIR.`,
		Example: `  sqlcell query --db shop.db --sql 'SELECT * FROM orders' --out ./out --format xlsx
  sqlcell query --file users.csv --file orders.parquet \
    --sql 'SELECT u.name, SUM(o.amount) AS total FROM users u JOIN orders o ON o.user_id = u.id GROUP BY u.name' \
    --out ./out --name totals`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (dbPath == "") == (len(files) == 0) {
				return errors.New("exactly one of --db and --file is required")
			}
			options, err := a.dumpOptions(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var db *sql.DB
			if dbPath != "" {
				db, err = sql.Open("sqlite", dbPath)
			} else {
				db, err = driver.Open(ctx, files...)
			}
			if err != nil {
				return err
			}
			defer db.Close()

			rs, err := driver.QueryRowSet(ctx, db, sqlcell.DialectSQLite, name, query)
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}
			logger.Debug("query returned", "rows", rs.Len(), "columns", len(rs.Columns()))

			path, err := sqlcell.DumpFile(ctx, outDir, rs, options)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	addDumpFlags(cmd)
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file")
	cmd.Flags().StringArrayVar(&files, "file", nil, "row set file or directory loaded as tables (repeatable)")
	cmd.Flags().StringVar(&query, "sql", "", "query to run")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory")
	cmd.Flags().StringVar(&name, "name", "result", "name of the result row set and output file")
	_ = cmd.MarkFlagRequired("sql")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
