// Package version holds the build version, set at link time with
// -ldflags "-X github.com/battlesnakeio/duel/version.Version=...".
package version

// Version of the duel binary.
var Version = "dev"
