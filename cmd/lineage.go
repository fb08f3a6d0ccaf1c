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
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofetch"
	"github.com/gnames/gngenomes/internal/iogenomes"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getLineageCmd returns the lineage command.
func getLineageCmd() *cobra.Command {
	lineageCmd := &cobra.Command{
		Use:   "lineage <taxon-id>",
		Short: "Show lineage and catalog branch of a taxon",
		Long: `Show the path from the root of the NCBI taxonomy to a taxon
and the catalog branch the get command would use for it.

The output is YAML.

Examples:
  gngenomes lineage 562`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLineage(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return lineageCmd
}

func runLineage(cmd *cobra.Command, arg string) error {
	taxonID, err := taxonomy.ParseID(arg)
	if err != nil {
		return err
	}

	g := iogenomes.New(cfg, iofetch.New(cfg))
	res, err := g.Lineage(context.Background(), taxonID)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(res)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
