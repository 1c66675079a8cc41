// Package entrypath canonicalizes archive entry paths so they cannot escape
// an extraction or lookup root ("zip slip").
//
// Every untrusted entry name must go through [Sanitize] before it is used as a
// filesystem-relative path. [Join] combines sanitizing with a containment
// check against a host directory.
//
// Paths always use '/' as the separator, whatever the host convention.
package entrypath
