package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gngenomes/internal/iofs"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "gngenomes", cmd.Use)

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
	assert.NotSame(t, cmd, getRootCmd(),
		"Each getRootCmd call should return new instance")
}

// TestGetRootCmd_Subcommands verifies all commands are registered.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	for _, v := range []string{"get", "lineage", "find"} {
		sub, _, err := cmd.Find([]string{v})
		require.NoError(t, err, v)
		assert.Equal(t, v, sub.Name())
	}
}

// TestGetRootCmd_Version verifies both version flags and the output
// format.
func TestGetRootCmd_Version(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{flag})

			err := cmd.Execute()
			require.NoError(t, err)

			output := buf.String()
			assert.Contains(t, output, "v1.2.3")
			assert.Contains(t, output, "abc123")
			assert.NotContains(t, output, "gngenomes version",
				"Should use custom version template")
		})
	}
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "GNgenomes")
	assert.Contains(t, helpText, "GNGENOMES_JOBS_NUMBER")
	assert.Contains(t, helpText, "--config")
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestInitConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))
	cfgPath := config.ConfigFilePath(home)

	t.Run("reads default config file", func(t *testing.T) {
		res, err := initConfig(cfgPath)
		require.NoError(t, err)

		cfg := config.New()
		cfg.Update(res.ToOptions())
		def := config.New()
		assert.Equal(t, def.Branches, cfg.Branches)
		assert.Equal(t, def.JobsNumber, cfg.JobsNumber)
		assert.Equal(t, def.BranchRules(), cfg.BranchRules())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("GNGENOMES_JOBS_NUMBER", "9")
		t.Setenv("GNGENOMES_LOG_LEVEL", "debug")
		t.Setenv("GNGENOMES_RULES_REMAP_EUKARYOTA_TO_FUNGI", "false")

		res, err := initConfig(cfgPath)
		require.NoError(t, err)

		cfg := config.New()
		cfg.Update(res.ToOptions())
		assert.Equal(t, 9, cfg.JobsNumber)
		assert.Equal(t, "debug", cfg.Log.Level)
		require.NotNil(t, cfg.Rules.RemapEukaryotaToFungi)
		assert.False(t, *cfg.Rules.RemapEukaryotaToFungi)
	})

	t.Run("alternative config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		content := strings.Join([]string{
			"jobs_number: 2",
			"branches:",
			"  - name: viral",
			"    taxon_id: 10239",
			"    catalog_url: https://example.org/viral.txt",
		}, "\n")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		res, err := initConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 2, res.JobsNumber)
		require.Len(t, res.Branches, 1)
		assert.Equal(t, 10239, res.Branches[0].TaxonID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := initConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
