package config

import (
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/branch"
	"github.com/gnames/gngenomes/pkg/catalog"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptFileType sets the kind of assembly file to download.
// Runtime-only field - not in ToOptions().
func OptFileType(ft catalog.FileType) Option {
	return func(c *Config) {
		if ft.Suffix() == "" {
			gn.Warn("File type <em>%s</em> is not supported, ignoring", ft)
			return
		}
		c.Download.FileType = ft
	}
}

// OptAllLevels includes assemblies of all levels into the download.
// Runtime-only field - not in ToOptions().
func OptAllLevels(b bool) Option {
	return func(c *Config) {
		c.Download.AllLevels = b
	}
}

// OptOutputDir sets the directory for downloaded files.
// Runtime-only field - not in ToOptions().
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Download.OutputDir = s
		}
	}
}

// OptDryRun makes the get command print URLs instead of downloading.
// Runtime-only field - not in ToOptions().
func OptDryRun(b bool) Option {
	return func(c *Config) {
		c.Download.DryRun = b
	}
}

// OptBranches replaces the list of supported branches.
// Branches without a taxon id or a catalog URL are ignored.
func OptBranches(bb []branch.Branch) Option {
	return func(c *Config) {
		var res []branch.Branch
		for _, v := range bb {
			if !isValidInt("Branch Taxon ID", v.TaxonID) {
				continue
			}
			if !isValidString("Branch Catalog URL", strings.TrimSpace(v.CatalogURL)) {
				continue
			}
			v.Name = strings.TrimSpace(v.Name)
			if v.Name == "" {
				v.Name = strconv.Itoa(v.TaxonID)
			}
			res = append(res, v)
		}
		if len(res) == 0 {
			gn.Warn("<em>Branches</em> cannot be empty, ignoring")
			return
		}
		c.Branches = res
	}
}

// OptCollapseCellularOrganisms toggles the "cellular organisms" rule.
// Uses pointer to distinguish between unset (nil) and false.
func OptCollapseCellularOrganisms(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Rules.CollapseCellularOrganisms = b
		}
	}
}

// OptRemapEukaryotaToFungi toggles the rule that sends eukaryotes to the
// Fungi catalog.
// Uses pointer to distinguish between unset (nil) and false.
func OptRemapEukaryotaToFungi(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Rules.RemapEukaryotaToFungi = b
		}
	}
}

// OptTaxdumpURL sets the location of the NCBI taxonomy dump.
func OptTaxdumpURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxdump URL", s) {
			c.TaxdumpURL = s
		}
	}
}

// OptRequestsPerSecond limits how often new transfers start.
func OptRequestsPerSecond(i int) Option {
	return func(c *Config) {
		if isValidInt("Requests Per Second", i) {
			c.RequestsPerSecond = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent downloads.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
