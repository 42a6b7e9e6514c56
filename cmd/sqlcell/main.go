// Command sqlcell inspects SQL cell types and converts row set files.
//
//	sqlcell matrix [--get]
//	sqlcell literal --type 'DECIMAL(10,2)' --dialect postgres 12.5
//	sqlcell convert users.csv.gz ./out --format parquet
//	sqlcell query --file users.csv --sql 'SELECT * FROM users' --out ./out
package main

import (
	"fmt"
	"os"

	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/internal/config"
	"github.com/nao1215/sqlcell/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what the subcommands share once flags are parsed.
type app struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "sqlcell",
		Short:         "Typed SQL cells: conversion matrix, literals and row set files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.EnvPrefix, configPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	rootCmd.AddCommand(
		newMatrixCmd(),
		newLiteralCmd(a),
		newConvertCmd(a),
		newQueryCmd(a),
	)
	return rootCmd
}

// addDumpFlags registers the flags that override the dump section of the config.
func addDumpFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "output format: csv, tsv, ltsv, parquet, xlsx or sql")
	cmd.Flags().String("compression", "", "output compression: none, gz, xz or zstd")
	cmd.Flags().String("dialect", "", "literal syntax of sql output: generic, mysql, postgres, sqlite or odbc")
}

// dumpOptions merges the dump flags of cmd over the configuration.
func (a *app) dumpOptions(cmd *cobra.Command) (sqlcell.DumpOptions, error) {
	dump := a.cfg.Dump
	for name, target := range map[string]*string{
		"format":      &dump.Format,
		"compression": &dump.Compression,
		"dialect":     &dump.Dialect,
	} {
		if cmd.Flags().Changed(name) {
			value, err := cmd.Flags().GetString(name)
			if err != nil {
				return sqlcell.DumpOptions{}, err
			}
			*target = value
		}
	}

	format, ok := sqlcell.ParseOutputFormat(dump.Format)
	if !ok {
		return sqlcell.DumpOptions{}, fmt.Errorf("%w: %q", sqlcell.ErrUnsupportedFormat, dump.Format)
	}
	compression, ok := sqlcell.ParseCompressionType(dump.Compression)
	if !ok || compression == sqlcell.CompressionBZ2 {
		return sqlcell.DumpOptions{}, fmt.Errorf("unsupported output compression %q", dump.Compression)
	}
	dialect, err := sqlcell.ParseDialect(dump.Dialect)
	if err != nil {
		return sqlcell.DumpOptions{}, err
	}
	return sqlcell.NewDumpOptions().
		WithFormat(format).
		WithCompression(compression).
		WithDialect(dialect), nil
}
