package iosync

import (
	"time"
)

// window returns the inclusive delta window of a sync as UTC calendar
// days. A zero lastUpdated means the cluster was never synced and the
// window starts at initialDate.
func window(lastUpdated time.Time, initialDate string, now time.Time) (string, string) {
	dateMax := now.UTC().Format(time.DateOnly)
	if lastUpdated.IsZero() {
		return initialDate, dateMax
	}
	return lastUpdated.UTC().Format(time.DateOnly), dateMax
}

// pages returns the number of pages needed to fetch total records.
func pages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
