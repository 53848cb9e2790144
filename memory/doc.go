// Package memory provides the byte mover used by the signal-safe packages.
//
// Both functions copy min(len(source), len(target)) bytes and report how
// many were copied. Neither allocates, locks or calls into the runtime
// beyond a memmove, so they are safe on any path.
package memory
