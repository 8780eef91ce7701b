package diagnostics

// Code classifies a diagnostic by the compiler phase and error family
// that raised it. Grounded on prior art's analyzer error codes
// (diagnostics.ErrA001, ErrA003, ...) seen threaded through
// internal/analyzer/analyzer.go, generalized into a `KindXNNN` scheme
// so the family is visible without a lookup table.
type Code string

const (
	// Resolution: unresolved module/type/variant/path; unknown generic;
	// wrong arity for newtype.
	ErrUnresolvedModule  Code = "R001"
	ErrUnresolvedImport  Code = "R002"
	ErrUnresolvedPath    Code = "R003"
	ErrUnresolvedLocal   Code = "R004"
	ErrUnknownGeneric    Code = "R005"
	ErrNewtypeArity      Code = "R006"
	ErrTooManyGenerics   Code = "R007"

	// Duplicate: duplicate function, variant, record field, newtype name.
	ErrDuplicateBody    Code = "D001"
	ErrDuplicateNewtype Code = "D002"
	ErrDuplicateVariant Code = "D003"
	ErrDuplicateField   Code = "D004"

	// Type: cannot unify, numeric bound violated, field bound violated,
	// tuple arity mismatch.
	ErrUnifyMismatch  Code = "T001"
	ErrTupleArity     Code = "T002"
	ErrNewtypeMismatch Code = "T003"
	ErrNotNumeric     Code = "T004"
	ErrNoSuchField    Code = "T005"
	ErrFieldMismatch  Code = "T006"
	ErrMissingField   Code = "T007"
	ErrExtraField     Code = "T008"

	// Pattern: refutable pattern in let/parameter; non-exhaustive match.
	ErrRefutablePattern  Code = "P001"
	ErrNonExhaustive     Code = "P002"

	// Shape: variant lacks payload type when used with sub-pattern; payload
	// variant used without one. (Too many generic arguments is
	// ErrTooManyGenerics, in the resolution group above.)
	ErrVariantNoPayload Code = "S001"
	ErrVariantNeedsArg  Code = "S002"

	// Bug: internal specialization shape mismatch.
	ErrInternal Code = "B001"
)
