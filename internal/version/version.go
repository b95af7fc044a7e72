// Package version carries the application version reported in responses.
package version

// Version is overridden at build time with -ldflags "-X findability/internal/version.Version=...".
var Version = "0.1.0"
