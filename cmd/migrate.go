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

	"github.com/ecoglobe/biosync/internal/ioschema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	var statusOnly bool

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema to latest version",
		Long: `Migrate updates the biosync schema after an upgrade of biosync.

GORM AutoMigrate:
  - Adds new tables if they don't exist
  - Adds new columns to existing tables
  - Does NOT delete columns or tables

Missing JSONB indexes are created afterwards. Data is preserved.
Use --status to only report tables, row counts and missing indexes.

Examples:
  biosync migrate
  biosync migrate --status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(statusOnly)
		},
	}

	migrateCmd.Flags().BoolVarP(&statusOnly, "status", "s", false,
		"report schema status without migrating")

	return migrateCmd
}

func runMigrate(statusOnly bool) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	sm := ioschema.NewManager(op)
	st, err := sm.Status(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var exist int
	for _, v := range st {
		if v.Exists {
			exist++
		}
	}

	if statusOnly || exist == 0 {
		printStatus(st)
		if exist == 0 {
			gn.Warn("Run 'biosync create' first to initialize the schema.")
		}
		return nil
	}

	gn.Info("Migrating schema to latest version...")
	if err = sm.Migrate(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if st, err = sm.Status(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	printStatus(st)
	gn.Info("Schema is up to date.")
	return nil
}
