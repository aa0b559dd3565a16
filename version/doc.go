// Package version reports build information of the running binary.
//
// Version and commit can be stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/scopekit/version.Version=1.0.0"
//
// Anything left unset falls back to the VCS data the Go toolchain embeds.
package version
