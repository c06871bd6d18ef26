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
	"errors"
	"fmt"

	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getEnrichCmd returns the enrich command.
func getEnrichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich <species-id|taxon-id>",
		Short: "Enrich a species with category, common name, media and description",
		Long: `Enrich runs all enrichment steps of a species and prints a JSON
report of what changed. The species is found by its ID or by the taxon id
of the occurrence API.

Examples:
  biosync enrich 2435099`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(args[0])
		},
	}
}

func runEnrich(id string) error {
	ctx := context.Background()
	c, err := newComponents(ctx, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer c.Close()

	sp, err := c.spp.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		sp, err = c.spp.GetByTaxonID(ctx, id)
	}
	if err != nil {
		gn.Warn("Species <em>%s</em> is not found", id)
		return err
	}

	res, err := c.enr.Enrich(ctx, sp.ID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(res)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
