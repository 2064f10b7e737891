// Package deps checks the external tools and services shortcast relies
// on: binaries on PATH, directory permissions, free disk space, and the
// hook API when enabled.
package deps
