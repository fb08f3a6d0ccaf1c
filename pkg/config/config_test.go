package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gngenomes/pkg/branch"
	"github.com/gnames/gngenomes/pkg/catalog"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gngenomes"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gngenomes"),
		},
		{
			msg: "taxdump dir",
			fn:  config.TaxdumpDir,
			res: filepath.Join(tempHome, ".cache", "gngenomes", "taxdump"),
		},
		{
			msg: "catalog dir",
			fn:  config.CatalogDir,
			res: filepath.Join(tempHome, ".cache", "gngenomes", "catalogs"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gngenomes", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gngenomes", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, catalog.GBFF, cfg.Download.FileType)
		assert.False(t, cfg.Download.AllLevels)
		assert.False(t, cfg.Download.DryRun)
		assert.Equal(t, ".", cfg.Download.OutputDir)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, config.DefaultTaxdumpURL, cfg.TaxdumpURL)
		assert.Equal(t, 3, cfg.RequestsPerSecond)
		assert.Equal(t, 4, cfg.JobsNumber)
		assert.Empty(t, cfg.HomeDir)
	})

	t.Run("has all branches", func(t *testing.T) {
		tbl := cfg.BranchTable()
		for _, id := range []int{
			branch.BacteriaID, branch.ArchaeaID, branch.VirusesID, branch.FungiID,
		} {
			b, ok := tbl[id]
			require.True(t, ok, "branch %d", id)
			assert.Contains(t, b.CatalogURL, "assembly_summary.txt")
		}
	})

	t.Run("enables all rules", func(t *testing.T) {
		for _, v := range cfg.BranchRules() {
			assert.True(t, v.Enabled, v.Name)
		}
	})
}

func TestOptionFileType(t *testing.T) {
	tests := []struct {
		name     string
		input    catalog.FileType
		expected catalog.FileType
	}{
		{"sets fna", catalog.FNA, catalog.FNA},
		{"sets faa", catalog.FAA, catalog.FAA},
		{"sets gff", catalog.GFF, catalog.GFF},
		{"rejects unknown", catalog.FileType("fastq"), catalog.GBFF},
		{"rejects empty", catalog.FileType(""), catalog.GBFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptFileType(tt.input)})
			assert.Equal(t, tt.expected, cfg.Download.FileType)
		})
	}
}

func TestOptionOutputDir(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets dir", "/data/genomes", "/data/genomes"},
		{"trims spaces", "  out  ", "out"},
		{"rejects empty", "", "."},
		{"rejects whitespace", "   ", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptOutputDir(tt.input)})
			assert.Equal(t, tt.expected, cfg.Download.OutputDir)
		})
	}
}

func TestOptionBranches(t *testing.T) {
	t.Run("replaces branches", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptBranches([]branch.Branch{
			{Name: "bacteria", TaxonID: 2, CatalogURL: "https://host/b.txt"},
			{TaxonID: 2157, CatalogURL: "https://host/a.txt"},
		})})

		require.Len(t, cfg.Branches, 2)
		assert.Equal(t, "2157", cfg.Branches[1].Name)
		_, ok := cfg.BranchTable()[branch.FungiID]
		assert.False(t, ok)
	})

	t.Run("skips invalid branches", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptBranches([]branch.Branch{
			{Name: "no id", CatalogURL: "https://host/b.txt"},
			{Name: "no url", TaxonID: 2},
			{Name: "viral", TaxonID: 10239, CatalogURL: "https://host/v.txt"},
		})})

		require.Len(t, cfg.Branches, 1)
		assert.Equal(t, "viral", cfg.Branches[0].Name)
	})

	t.Run("rejects empty list", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptBranches(nil)})
		assert.Len(t, cfg.Branches, 4)
	})
}

func TestOptionRules(t *testing.T) {
	off := false

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptRemapEukaryotaToFungi(&off),
		config.OptCollapseCellularOrganisms(nil),
	})

	for _, v := range cfg.BranchRules() {
		switch v.Match {
		case branch.EukaryotaID:
			assert.False(t, v.Enabled)
		case branch.CellularOrganismsID:
			assert.True(t, v.Enabled)
		}
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug", "debug", "debug"},
		{"sets warn", "warn", "warn"},
		{"normalizes case", "ERROR", "error"},
		{"rejects invalid", "verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets stderr", "stderr", "stderr"},
		{"sets stdout", "stdout", "stdout"},
		{"rejects invalid", "syslog", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogDestination(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Destination)
		})
	}
}

func TestOptionPositiveInts(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptJobsNumber(0),
		config.OptRequestsPerSecond(-1),
	})
	assert.Equal(t, 4, cfg.JobsNumber)
	assert.Equal(t, 3, cfg.RequestsPerSecond)

	cfg.Update([]config.Option{
		config.OptJobsNumber(16),
		config.OptRequestsPerSecond(10),
	})
	assert.Equal(t, 16, cfg.JobsNumber)
	assert.Equal(t, 10, cfg.RequestsPerSecond)
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		off := false
		original := config.New()
		original.Update([]config.Option{
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
			config.OptRequestsPerSecond(9),
			config.OptTaxdumpURL("https://mirror/taxdump.tar.gz"),
			config.OptRemapEukaryotaToFungi(&off),
			config.OptBranches(config.DefaultBranches()[:2]),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
		assert.Equal(t, original.RequestsPerSecond, newCfg.RequestsPerSecond)
		assert.Equal(t, original.TaxdumpURL, newCfg.TaxdumpURL)
		assert.Equal(t, original.Branches, newCfg.Branches)
		assert.Equal(t, original.BranchRules(), newCfg.BranchRules())
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptFileType(catalog.FAA),
			config.OptAllLevels(true),
			config.OptOutputDir("/tmp/out"),
			config.OptDryRun(true),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, catalog.GBFF, newCfg.Download.FileType)
		assert.False(t, newCfg.Download.AllLevels)
		assert.Equal(t, ".", newCfg.Download.OutputDir)
		assert.False(t, newCfg.Download.DryRun)
	})
}
