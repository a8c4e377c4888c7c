// Package filesystem provides the POSIX permission and ownership primitives
// underlying the exchange: access checks, shared-mode computation, recursive
// permission normalization, and atomic file writes.
package filesystem
