// Package file persists templates as one JSON document per slug under a
// root directory, plus the read-only preset library shipped with the
// binary. Writes are atomic: temp file, fsync, rename.
package file
