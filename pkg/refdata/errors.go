package refdata

import (
	"fmt"
	"strings"
)

// UnknownVersionError reports a catalog lookup for an unregistered version id.
type UnknownVersionError struct {
	ID    string
	Known []string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unsupported reference version %q (supported: %s)",
		e.ID, strings.Join(e.Known, ", "))
}

// ConflictError reports a bucket that exists but does not match the expected
// layout. The core never silently patches such a bucket: a partial state may
// hide an earlier aborted clone whose cause is unknown, so a human must
// decide whether to re-clone or intervene.
type ConflictError struct {
	Bucket  string
	Reasons []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("bucket %q failed verification: %s",
		e.Bucket, strings.Join(e.Reasons, ", "))
}

// ActionError reports a plan action that failed during execution. Actions
// already completed are not rolled back.
type ActionError struct {
	Action Action
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %s failed: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// StorageErrorKind classifies collaborator failures. The core propagates them
// unchanged rather than retrying; a wrong read would corrupt the plan.
type StorageErrorKind int

const (
	// StorageAccessDenied marks an authorization failure.
	StorageAccessDenied StorageErrorKind = iota
	// StorageNotFound marks a missing bucket or object where the operation
	// required one to exist.
	StorageNotFound
	// StorageTransient marks a network or availability failure that the
	// caller may retry at whole-action granularity.
	StorageTransient
)

func (k StorageErrorKind) String() string {
	switch k {
	case StorageAccessDenied:
		return "access denied"
	case StorageNotFound:
		return "not found"
	case StorageTransient:
		return "transient storage error"
	}
	return "unknown storage error"
}

// StorageError wraps a collaborator failure with its classification.
type StorageError struct {
	Kind StorageErrorKind
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
