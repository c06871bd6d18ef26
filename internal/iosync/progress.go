package iosync

import (
	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a page progress bar, or nil when progress is
// not shown.
func newProgressBar(total int, prefix string, show bool) *pb.ProgressBar {
	if !show || total == 0 {
		return nil
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
