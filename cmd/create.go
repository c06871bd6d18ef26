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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ecoglobe/biosync/internal/ioschema"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/schema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var force, printSQL bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the biosync database schema from scratch.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Drops existing species and clusters tables after confirmation
  3. Creates species and clusters tables using GORM AutoMigrate
  4. Creates JSONB indexes used to find species by country

Other tables of the database are left alone.
Use --sql to print the schema without connecting to the database.

Examples:
  biosync create
  biosync create --force
  biosync create --sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printSQL {
				fmt.Fprint(cmd.OutOrStdout(), ioschema.DDL())
				return nil
			}
			return runCreate(force)
		},
	}

	createCmd.Flags().BoolVarP(&force, "force", "f",
		false, "drop existing biosync tables without confirmation")
	createCmd.Flags().BoolVar(&printSQL, "sql",
		false, "print schema DDL and exit")

	return createCmd
}

func runCreate(force bool) error {
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

	var existing []string
	for _, v := range st {
		if v.Exists {
			existing = append(existing, fmt.Sprintf("%s (%s rows)",
				v.Table, humanize.Comma(v.Rows)))
		}
	}

	if len(existing) > 0 {
		if !force && !confirm(existing) {
			gn.Info("Aborted. No changes made.")
			return nil
		}
		gn.Info("Dropping biosync tables...")
		if err = op.DropTables(ctx, schema.TableNames()...); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err = sm.Create(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if st, err = sm.Status(ctx); err == nil {
		printStatus(st)
	}
	gn.Info("Next steps:")
	gn.Info("  - Run 'biosync sync <country>' to fetch occurrences")
	gn.Info("  - Run 'biosync import <file|dir>' to load prepared species")
	return nil
}

func confirm(tables []string) bool {
	gn.Warn("Database contains biosync tables:")
	for _, v := range tables {
		gn.Warn("  - %s", v)
	}
	gn.Warn("Creating schema drops them with all their data.")
	fmt.Print("Do you want to continue? (yes/no): ")

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

func printStatus(st []lifecycle.TableStatus) {
	for _, v := range st {
		switch {
		case !v.Exists:
			gn.Warn("Table <em>%s</em> is missing", v.Table)
		case len(v.MissingIndexes) > 0:
			gn.Warn("Table <em>%s</em>: %s rows, missing indexes %s",
				v.Table, humanize.Comma(v.Rows),
				strings.Join(v.MissingIndexes, ", "))
		default:
			gn.Info("Table <em>%s</em>: %s rows",
				v.Table, humanize.Comma(v.Rows))
		}
	}
}
