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

	"github.com/dustin/go-humanize"
	"github.com/ecoglobe/biosync/internal/ioimport"
	"github.com/ecoglobe/biosync/internal/iosync"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var enrich bool

	importCmd := &cobra.Command{
		Use:   "import <file|dir>",
		Short: "Import prepared species from JSON files",
		Long: `Import creates species from a JSON list of records that already
contain taxonomy, locations, media and descriptions. A directory imports
all its *.json files in name order. Existing species are left untouched. Clusters of all countries of created species are ensured
and recomputed.

Record fields: taxon_id, scientific_name, common_name, category,
taxonomy, locations, gbif_ids, media, description.

Examples:
  biosync import species.json
  biosync import species.json --enrich
  biosync import ./seed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], enrich)
		},
	}

	importCmd.Flags().BoolVarP(&enrich, "enrich", "e", false,
		"enrich created species")
	importCmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent enrichment tasks")

	return importCmd
}

func runImport(path string, enrich bool) error {
	ctx := context.Background()
	c, err := newComponents(ctx, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer c.Close()

	var tasks *iosync.TaskGroup
	if enrich {
		tasks = iosync.NewTaskGroup(c.enr, cfg.Sync.EnrichJobs,
			cfg.Sync.EnrichTimeout, true)
	}

	imp := ioimport.New(c.spp, c.snc, tasks)
	res, err := imp.ImportPath(ctx, path)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Imported <em>%s</em> of %s records from %d files, "+
		"%s existing, %s skipped",
		humanize.Comma(int64(res.Created)),
		humanize.Comma(int64(res.Records)),
		res.Files,
		humanize.Comma(int64(res.Existing)),
		humanize.Comma(int64(res.Skipped)),
	)
	for _, r := range res.Clusters {
		gn.Info("<em>%s</em>: %s species, worst category <em>%s</em>",
			r.Country, humanize.Comma(int64(r.Count)), r.WorstCategory)
	}
	if enrich {
		printReports(res.Reports)
		saveReports("import", res.Reports)
	}
	return nil
}
