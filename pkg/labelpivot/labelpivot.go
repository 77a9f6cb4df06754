// Package labelpivot exposes the module version.
package labelpivot

// Version is the labelpivot release version.
const Version = "0.1.0"
