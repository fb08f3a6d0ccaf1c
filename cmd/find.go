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
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofetch"
	"github.com/gnames/gngenomes/internal/iogenomes"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getFindCmd returns the find command.
func getFindCmd() *cobra.Command {
	findCmd := &cobra.Command{
		Use:   "find <scientific name>",
		Short: "Find taxon ids by a scientific name",
		Long: `Find NCBI taxa by a scientific name. Names are compared by their
canonical forms, so authorship and minor spelling differences of
the name string are ignored. Synonyms are found as well.

The output is YAML.

Examples:
  gngenomes find Escherichia coli
  gngenomes find "Bacillus coli Migula 1895"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFind(cmd, strings.Join(args, " "))
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return findCmd
}

func runFind(cmd *cobra.Command, name string) error {
	g := iogenomes.New(cfg, iofetch.New(cfg))
	res, err := g.Find(context.Background(), name)
	if err != nil {
		return err
	}

	if len(res) == 0 {
		gn.Warn("No taxa found for <em>%s</em>", name)
		return nil
	}

	out, err := yaml.Marshal(res)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
