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

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRecomputeCmd returns the recompute command.
func getRecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute <country>",
		Short: "Recompute count and worst category of a country cluster",
		Long: `Recompute derives the number of species and the worst conservation
category of a country from stored species, without fetching occurrences.
The sync mark of the cluster is not changed.

Examples:
  biosync recompute CL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecompute(args[0])
		},
	}
}

func runRecompute(country string) error {
	ctx := context.Background()
	c, err := newComponents(ctx, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer c.Close()

	res, err := c.snc.Recompute(ctx, country)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if res.Empty {
		gn.Warn("No species found in <em>%s</em>, cluster is unchanged", res.Country)
		return nil
	}
	gn.Info("<em>%s</em>: <em>%d</em> species, worst category <em>%s</em>",
		res.Country, res.Count, res.WorstCategory)
	return nil
}
