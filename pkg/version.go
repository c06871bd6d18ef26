// Package biosync keeps build information of the application.
package biosync

var (
	// Version of biosync, set during the build.
	Version = "v0.1.0"

	// Build timestamp, set during the build.
	Build = "n/a"
)
