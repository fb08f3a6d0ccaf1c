/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofs"
	"github.com/gnames/gngenomes/internal/iologger"
	app "github.com/gnames/gngenomes/pkg"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is an alternative config file given by --config flag.
	cfgFile string
	cfg     *config.Config
)

// getRootCmd returns the base command when called without any
// subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gngenomes",
		Short:   "GNgenomes downloads NCBI genome assemblies of a taxon",
		Long: `GNgenomes finds all genome assemblies of a taxon and its descendants
in NCBI assembly catalogs and downloads their files.

The taxonomy comes from the NCBI taxonomy dump, assembly catalogs
are read from per-branch assembly_summary.txt files. Both are cached
in ~/.cache/gngenomes and refreshed when NCBI publishes new versions.

Commands:
  get:     download assembly files of a taxon
  lineage: show the lineage and the catalog branch of a taxon
  find:    find taxon ids by a scientific name

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNGENOMES_*)
  3. Config file (~/.config/gngenomes/config.yaml)
  4. Built-in defaults

Environment Variables:
    GNGENOMES_LOG_LEVEL              Log level (debug/info/warn/error)
    GNGENOMES_LOG_FORMAT             Log format (json/text/tint)
    GNGENOMES_LOG_DESTINATION        Log destination (file/stderr/stdout)
    GNGENOMES_JOBS_NUMBER            Number of concurrent downloads
    GNGENOMES_REQUESTS_PER_SECOND    New transfers per second
    GNGENOMES_TAXDUMP_URL            Location of taxdump.tar.gz`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gngenomes version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gngenomes")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/gngenomes/config.yaml)")

	rootCmd.AddCommand(getGetCmd())
	rootCmd.AddCommand(getLineageCmd())
	rootCmd.AddCommand(getFindCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	if err = iologger.Init(config.LogDir(homeDir), config.New().Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgPath := cfgFile
	if cfgPath == "" {
		cfgPath = config.ConfigFilePath(homeDir)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(cfgPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", cfgPath,
		"version", app.Version,
	)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(cfgPath string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNGENOMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Log configuration
	v.BindEnv("log.level", "GNGENOMES_LOG_LEVEL")
	v.BindEnv("log.format", "GNGENOMES_LOG_FORMAT")
	v.BindEnv("log.destination", "GNGENOMES_LOG_DESTINATION")

	// Branch rules
	v.BindEnv(
		"rules.collapse_cellular_organisms",
		"GNGENOMES_RULES_COLLAPSE_CELLULAR_ORGANISMS",
	)
	v.BindEnv(
		"rules.remap_eukaryota_to_fungi",
		"GNGENOMES_RULES_REMAP_EUKARYOTA_TO_FUNGI",
	)

	// General configuration
	v.BindEnv("taxdump_url", "GNGENOMES_TAXDUMP_URL")
	v.BindEnv("requests_per_second", "GNGENOMES_REQUESTS_PER_SECOND")
	v.BindEnv("jobs_number", "GNGENOMES_JOBS_NUMBER")

	v.AutomaticEnv()
}
