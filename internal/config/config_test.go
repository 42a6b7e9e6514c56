package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("SQLCELL_TEST_NONE_", "", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Priority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlcell.yaml")
	content := "log:\n  level: debug\n  format: json\ndump:\n  format: parquet\n  compression: zstd\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Run("file", func(t *testing.T) {
		cfg, err := Load("SQLCELL_TEST_FILE_", path, nil)
		require.NoError(t, err)
		assert.Equal(t, Config{
			Log:  LogConfig{Level: "debug", Format: "json"},
			Dump: DumpConfig{Format: "parquet", Compression: "zstd", Dialect: "generic"},
		}, cfg)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("SQLCELL_TEST_ENV_DUMP_FORMAT", "ltsv")
		t.Setenv("SQLCELL_TEST_ENV_DUMP_DIALECT", "postgres")
		t.Setenv("SQLCELL_TEST_ENV_UNKNOWN", "ignored")

		cfg, err := Load("SQLCELL_TEST_ENV_", path, nil)
		require.NoError(t, err)
		assert.Equal(t, "ltsv", cfg.Dump.Format)
		assert.Equal(t, "postgres", cfg.Dump.Dialect)
		assert.Equal(t, "zstd", cfg.Dump.Compression)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("SQLCELL_TEST_FLAG_LOG_LEVEL", "error")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("log-level", "", "")
		flags.String("dump-format", "csv", "")
		require.NoError(t, flags.Parse([]string{"--log-level", "info"}))

		cfg, err := Load("SQLCELL_TEST_FLAG_", path, flags)
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Log.Level)
		// unchanged flags keep the file value
		assert.Equal(t, "parquet", cfg.Dump.Format)
	})
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(EnvPrefix, filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}
