// Package repoerr collects the repository-level error kinds from §7 that
// don't already have a natural home in the package that detects them
// (ObjectNotFound lives in internal/store, FormatError in internal/canon).
package repoerr

import "errors"

var (
	// ErrNotInitialized is returned when a required path is missing
	// beneath .snapfs/.
	ErrNotInitialized = errors.New("repo: not initialized")

	// ErrNoReference is returned when HEAD is Empty and an operation
	// requires a reference to resolve.
	ErrNoReference = errors.New("repo: no reference (HEAD is empty)")

	// ErrInvalidReference is returned when HEAD's ref string is
	// well-formed but its target file is missing.
	ErrInvalidReference = errors.New("repo: invalid reference")

	// ErrEmptyBlob names the optional EmptyBlob error kind (§7, §9) for a
	// zero-byte input; no operation in this module returns it.
	ErrEmptyBlob = errors.New("repo: empty blob")
)
