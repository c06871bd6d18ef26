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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ecoglobe/biosync/internal/iofs"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getSyncCmd returns the sync command.
func getSyncCmd() *cobra.Command {
	var all bool

	syncCmd := &cobra.Command{
		Use:   "sync [country...]",
		Short: "Fetch new occurrences of countries and update their clusters",
		Long: `Sync fetches occurrences observed since the last sync of each
country, creates or updates species and recomputes country clusters.

Countries are ISO-3166 alpha-2 codes. A country that was never synced
starts from sync.initial_date of the configuration.

Use --all to sync every country that already has a cluster.
Created species are enriched and the command waits for enrichment
before exiting. Use --no-enrich to only store them.

Examples:
  biosync sync CL AR
  biosync sync --all --progress
  biosync sync KE --no-enrich`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return cmd.Help()
			}
			return runSync(args, all)
		},
	}

	syncCmd.Flags().BoolVarP(&all, "all", "a", false,
		"sync all countries with clusters")
	syncCmd.Flags().BoolP("no-enrich", "n", false,
		"store created species without enrichment")
	syncCmd.Flags().BoolP("progress", "p", false,
		"show progress of fetched pages")
	syncCmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent enrichment tasks")

	return syncCmd
}

func runSync(countries []string, all bool) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Update([]config.Option{config.OptSyncKeepReports(true)})
	c, err := newComponents(ctx, !cfg.Sync.NoEnrich)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer c.Close()

	start := time.Now()
	var results []lifecycle.SyncResult
	if all {
		results, err = c.snc.SyncAll(ctx)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	} else {
		for _, country := range countries {
			res, err := syncCountry(ctx, c, country)
			if err != nil {
				res.Err = err
			}
			results = append(results, res)
		}
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			gn.PrintErrorMessage(r.Err)
			continue
		}
		printSyncResult(r)
	}

	if c.snc.Enriching() {
		gn.Info("Waiting for enrichment of created species...")
		reps := c.snc.Wait()
		printReports(reps)
		saveReports("sync", reps)
	}

	gn.Info("Synced <em>%d</em> countries in %s",
		len(results)-failed, gnfmt.TimeString(time.Since(start).Seconds()))
	if failed > 0 {
		return errors.New("some countries failed to sync")
	}
	return nil
}

// syncCountry syncs a country from the UpdatedAt mark of its cluster.
func syncCountry(
	ctx context.Context,
	c *components,
	country string,
) (lifecycle.SyncResult, error) {
	in := lifecycle.SyncInput{Country: country}
	cl, err := c.cls.GetByCountry(ctx, country)
	switch {
	case err == nil:
		in.ClusterID = cl.ID
		in.LastUpdatedAt = cl.UpdatedAt
	case !errors.Is(err, store.ErrNotFound):
		return lifecycle.SyncResult{Country: country}, err
	}
	return c.snc.Sync(ctx, in)
}

func printSyncResult(r lifecycle.SyncResult) {
	if r.Empty {
		gn.Info("<em>%s</em>: no species from %s to %s",
			r.Country, r.DateMin, r.DateMax)
		return
	}
	gn.Info(
		"<em>%s</em>: %s occurrences, %s new and %s updated species, "+
			"cluster has <em>%s</em> species, worst category <em>%s</em>",
		r.Country,
		humanize.Comma(int64(r.Processed)),
		humanize.Comma(int64(r.Created)),
		humanize.Comma(int64(r.Updated)),
		humanize.Comma(int64(r.UpdatedCount)),
		r.UpdatedCategory,
	)
}

// saveReports keeps enrichment reports in the report directory.
// A failure to save is reported but does not fail the command.
func saveReports(prefix string, reps []lifecycle.EnrichReport) {
	if len(reps) == 0 {
		return
	}
	path, err := iofs.SaveReport(cfg.HomeDir, prefix, time.Now(), reps)
	if err != nil {
		gn.PrintErrorMessage(err)
		return
	}
	gn.Info("Enrichment report saved to <em>%s</em>", path)
}

func printReports(reps []lifecycle.EnrichReport) {
	var failed, steps int
	for _, r := range reps {
		if r.Err != nil {
			failed++
			continue
		}
		steps += r.Failed()
	}
	gn.Info("Enriched <em>%s</em> species, %s failed, %s failed steps",
		humanize.Comma(int64(len(reps)-failed)),
		humanize.Comma(int64(failed)),
		humanize.Comma(int64(steps)),
	)
}
