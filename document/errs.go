package document

import "errors"

var (
	// ErrTypeMismatch reports navigation into a non-container value.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNoSuchElement reports a missing key or index with no schema
	// default to fall back on.
	ErrNoSuchElement = errors.New("no such element")

	// ErrNoDefault reports a default-value operation on a schema that
	// declares none.
	ErrNoDefault = errors.New("no default value")

	// ErrOrphaned reports a mutation attempt on a fragment whose path
	// is no longer reachable from its document root.
	ErrOrphaned = errors.New("orphaned fragment")

	// ErrRevertUnsupported reports RevertToDefault on an array
	// element; positional slots cannot be deleted without shifting
	// sibling identities.
	ErrRevertUnsupported = errors.New("revert not supported for array elements")

	// ErrUnknownFragmentClass reports a schema fragment class tag with
	// no registered builder.
	ErrUnknownFragmentClass = errors.New("unknown fragment class")
)
