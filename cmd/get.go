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
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofetch"
	"github.com/gnames/gngenomes/internal/iogenomes"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"github.com/spf13/cobra"
)

// getGetCmd returns the get command.
func getGetCmd() *cobra.Command {
	var flags getFlags

	getCmd := &cobra.Command{
		Use:   "get <taxon-id>",
		Short: "Download genome assemblies of a taxon",
		Long: `Download genome assembly files of a taxon and all its descendants.

This command:
  1. Refreshes the cached NCBI taxonomy dump
  2. Finds the catalog branch of the taxon (bacteria, archaea, viral, fungi)
  3. Refreshes the cached assembly catalog of the branch
  4. Selects assemblies of the taxon subtree
     (only "Complete Genome" level unless --all-levels is given)
  5. Downloads their files, skipping files that are up to date

Examples:
  # Download GenBank flat files of all complete Escherichia genomes
  gngenomes get 561

  # Download protein sequences of all E. coli assemblies to ./coli
  gngenomes get 562 -t faa -a -o coli

  # Print URLs without downloading
  gngenomes get 2157 -n`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGet(cmd, args[0], &flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags.register(getCmd)
	return getCmd
}

func runGet(cmd *cobra.Command, arg string, flags *getFlags) error {
	opts, err := flags.options(cmd)
	if err != nil {
		return err
	}

	taxonID, err := taxonomy.ParseID(arg)
	if err != nil {
		return err
	}

	cfg.Update(opts)

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	g := iogenomes.New(cfg, iofetch.New(cfg), iogenomes.OptOutput(cmd.OutOrStdout()))
	_, err = g.Download(ctx, taxonID)
	return err
}
