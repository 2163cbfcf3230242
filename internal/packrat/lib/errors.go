// Package lib contains the core, reusable services for packrat: content
// hashing, the manifest tree, the object store, codec backends, and the
// package store that orchestrates them.
package lib

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPackageNotFound is returned by read operations on a store whose
// manifest could not be located in any package root.
var ErrPackageNotFound = errors.New("package not found")

// InvalidNameError reports a user, package, or node name that does not
// match the required pattern (a letter, then letters/digits/underscore).
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: must start with a letter and continue with letters, digits, or underscores", e.Name)
}

// PathNotFoundError reports a manifest path lookup that ran off the
// tree. Matched holds the segments that resolved; Missing is the first
// segment that did not.
type PathNotFoundError struct {
	User    string
	Package string
	Matched []string
	Missing string
}

func (e *PathNotFoundError) Error() string {
	matched := strings.Join(e.Matched, "/")
	if matched == "" {
		return fmt.Sprintf("key %q not found in package %s/%s", e.Missing, e.User, e.Package)
	}
	return fmt.Sprintf("key %q not found in package %s/%s (matched %q)",
		matched+"/"+e.Missing, e.User, e.Package, matched)
}

// UnknownTargetError reports an unrecognized target kind passed to
// AddNode. Unknown kinds fail loudly instead of defaulting.
type UnknownTargetError struct {
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unrecognized target kind %q", e.Target)
}

// MissingCodecError reports a codec format with no registered backend.
// It is fatal at store construction, never deferred to first use.
type MissingCodecError struct {
	Format string
}

func (e *MissingCodecError) Error() string {
	return fmt.Sprintf("no codec backend registered for format %q", e.Format)
}

// IntegrityError reports a digest mismatch between expected and actual
// content. It aborts the surrounding operation.
type IntegrityError struct {
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("mismatched hash: expected %s, got %s", e.Expected, e.Actual)
}

// TransferError reports a non-2xx response while fetching an object.
type TransferError struct {
	Digest     string
	StatusCode int
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("download of %s failed: HTTP status %d", e.Digest, e.StatusCode)
}
