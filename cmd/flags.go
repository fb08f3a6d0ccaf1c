package cmd

import (
	"github.com/gnames/gngenomes/pkg/catalog"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/spf13/cobra"
)

// getFlags keeps values of the get command flags.
type getFlags struct {
	fileType  string
	allLevels bool
	output    string
	dryRun    bool
	jobs      int
}

func (f *getFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&f.fileType, "file-type", "t", string(catalog.GBFF),
		"type of assembly files: gbff, fna, faa, gff",
	)
	cmd.Flags().BoolVarP(
		&f.allLevels, "all-levels", "a", false,
		"include assemblies of all levels, not only complete genomes",
	)
	cmd.Flags().StringVarP(
		&f.output, "output", "o", ".",
		"directory for downloaded files",
	)
	cmd.Flags().BoolVarP(
		&f.dryRun, "dry-run", "n", false,
		"print URLs of files without downloading them",
	)
	cmd.Flags().IntVarP(
		&f.jobs, "jobs", "j", 0,
		"number of concurrent downloads (default from config)",
	)
}

// options converts flags to config options. The file type is validated
// first, so a wrong value stops the command before any other work.
func (f *getFlags) options(cmd *cobra.Command) ([]config.Option, error) {
	ft, err := catalog.ParseFileType(f.fileType)
	if err != nil {
		return nil, err
	}

	res := []config.Option{
		config.OptFileType(ft),
		config.OptAllLevels(f.allLevels),
		config.OptDryRun(f.dryRun),
	}
	if cmd.Flags().Changed("output") {
		res = append(res, config.OptOutputDir(f.output))
	}
	if cmd.Flags().Changed("jobs") {
		res = append(res, config.OptJobsNumber(f.jobs))
	}
	return res, nil
}
