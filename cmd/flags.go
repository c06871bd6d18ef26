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
	"fmt"

	app "github.com/ecoglobe/biosync/pkg"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/spf13/cobra"
)

func versionString() string {
	return fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build)
}

type funcFlag func(cmd *cobra.Command) []config.Option

var flagReaders = []funcFlag{
	progressFlag,
	noEnrichFlag,
	jobsFlag,
	portFlag,
}

// flagOptions converts flags set by the user to config options.
// Flags that were not set keep values from config file and environment.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	for _, fn := range flagReaders {
		res = append(res, fn(cmd)...)
	}
	return res
}

func progressFlag(cmd *cobra.Command) []config.Option {
	f := cmd.Flags().Lookup("progress")
	if f == nil {
		return nil
	}
	b, _ := cmd.Flags().GetBool("progress")
	return []config.Option{config.OptSyncWithProgress(b)}
}

func noEnrichFlag(cmd *cobra.Command) []config.Option {
	f := cmd.Flags().Lookup("no-enrich")
	if f == nil {
		return nil
	}
	b, _ := cmd.Flags().GetBool("no-enrich")
	return []config.Option{config.OptSyncNoEnrich(b)}
}

func jobsFlag(cmd *cobra.Command) []config.Option {
	f := cmd.Flags().Lookup("jobs")
	if f == nil || !f.Changed {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptSyncEnrichJobs(i)}
}

func portFlag(cmd *cobra.Command) []config.Option {
	f := cmd.Flags().Lookup("port")
	if f == nil || !f.Changed {
		return nil
	}
	i, _ := cmd.Flags().GetInt("port")
	return []config.Option{config.OptServerPort(i)}
}
