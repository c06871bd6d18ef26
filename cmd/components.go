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

	"github.com/ecoglobe/biosync/internal/iodb"
	"github.com/ecoglobe/biosync/internal/ioenrich"
	"github.com/ecoglobe/biosync/internal/iogbif"
	"github.com/ecoglobe/biosync/internal/ioiucn"
	"github.com/ecoglobe/biosync/internal/iostore"
	"github.com/ecoglobe/biosync/internal/iosync"
	"github.com/ecoglobe/biosync/pkg/db"
	"github.com/ecoglobe/biosync/pkg/parserpool"
	"github.com/ecoglobe/biosync/pkg/schema"
	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/gnames/gn"
)

// components wires stores, remote sources, the enricher and the syncer.
type components struct {
	op     db.Operator
	spp    store.SpeciesStore
	cls    store.ClusterStore
	occ    sources.OccurrenceSource
	asm    sources.AssessmentSource
	parser parserpool.Pool
	enr    *ioenrich.Enricher
	snc    *iosync.Syncer
}

// connect opens the database configured for the command.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}

// newComponents connects to the database and builds the pipeline.
// Without withEnrich the syncer does not start enrichment tasks.
func newComponents(ctx context.Context, withEnrich bool) (*components, error) {
	op, err := connect(ctx)
	if err != nil {
		return nil, err
	}

	missing, err := op.MissingTables(ctx, schema.TableNames()...)
	if err == nil && len(missing) > 0 {
		err = iodb.MissingTablesError(cfg.Database.Database, missing)
	}
	if err != nil {
		op.Close()
		return nil, err
	}

	return newPipeline(op, withEnrich), nil
}

// newPipeline builds stores, sources, the enricher and the syncer on an
// operator.
func newPipeline(op db.Operator, withEnrich bool) *components {
	res := &components{
		op:     op,
		spp:    iostore.NewSpeciesStore(op.Pool()),
		cls:    iostore.NewClusterStore(op.Pool()),
		occ:    iogbif.New(cfg.Occurrence),
		asm:    ioiucn.New(cfg.Assessment),
		parser: parserpool.NewPool(cfg.Sync.EnrichJobs),
	}
	res.enr = ioenrich.New(res.spp, res.occ, res.asm, res.parser)

	if withEnrich {
		res.snc = iosync.New(cfg, res.spp, res.cls, res.occ, res.enr)
	} else {
		res.snc = iosync.New(cfg, res.spp, res.cls, res.occ, nil)
	}
	return res
}

func (c *components) Close() {
	c.parser.Close()
	c.op.Close()
}
