package iosync

import (
	"fmt"
	"runtime"

	"github.com/ecoglobe/biosync/pkg/errcode"
	"github.com/gnames/gn"
)

// CountryError is returned for country codes that are not known.
func CountryError(country string) error {
	msg := "Unknown country code <em>%s</em>"
	vars := []any{country}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SyncCountryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown country code %q", fn, country),
	}
}

// ProbeError is returned when the number of occurrences of a window
// cannot be obtained.
func ProbeError(country, dateMin, dateMax string, err error) error {
	msg := "Cannot count occurrences of <em>%s</em> from %s to %s"
	vars := []any{country, dateMin, dateMax}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SyncProbeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: probe %s [%s, %s]: %w",
			fn, country, dateMin, dateMax, err),
	}
}

// PageError is returned when a page of occurrences cannot be fetched
// or processed.
func PageError(country string, offset int, err error) error {
	msg := "Cannot process occurrences of <em>%s</em> at offset <em>%d</em>"
	vars := []any{country, offset}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SyncPageError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: page %s offset %d: %w", fn, country, offset, err),
	}
}

// RecomputeError is returned when the aggregate of a country cannot be
// computed or stored.
func RecomputeError(country string, err error) error {
	msg := "Cannot recompute cluster of <em>%s</em>"
	vars := []any{country}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SyncRecomputeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: recompute %s: %w", fn, country, err),
	}
}

// ClusterError is returned when the cluster of a country cannot be
// created or read.
func ClusterError(country string, err error) error {
	msg := "Cannot ensure cluster of <em>%s</em>"
	vars := []any{country}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SyncClusterError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: ensure cluster %s: %w", fn, country, err),
	}
}

// AllFailedError is returned by SyncAll when no country was synced.
func AllFailedError(failed int, err error) error {
	msg := "All <em>%d</em> countries failed to sync"
	vars := []any{failed}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SyncAllFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %d countries failed: %w", fn, failed, err),
	}
}
