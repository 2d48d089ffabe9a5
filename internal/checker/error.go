package checker

import (
	"fmt"

	"github.com/quill-lang/quill/internal/source"
	"github.com/quill-lang/quill/internal/types"
)

// Category classifies a CheckError. String() renders the exact prefix
// spec.md §6.3 requires — the test suite matches on these prefixes, so
// wording here is part of the external contract, not a style choice.
type Category int

const (
	CategoryTypeMismatch Category = iota
	CategoryReturnTypeMismatch
	CategoryInferenceError
	CategoryChecking
	CategoryArrayElementMismatch
	CategoryAssertionFailed
	CategoryInvariantViolated
)

func (c Category) String() string {
	switch c {
	case CategoryTypeMismatch:
		return "Type mismatch"
	case CategoryReturnTypeMismatch:
		return "Return type mismatch"
	case CategoryInferenceError:
		return "Type inference error"
	case CategoryChecking:
		return "Type checking"
	case CategoryArrayElementMismatch:
		return "array elements must be of the same type"
	case CategoryAssertionFailed:
		return "Assertion failed"
	case CategoryInvariantViolated:
		return "Invariant violated"
	default:
		return "Type error"
	}
}

// CheckError is the one error kind raised by any of the three passes (spec
// §7: "One error kind per category... Errors are raised immediately at the
// first violation; there is no multi-error accumulation"). Detail carries
// the category-specific message text; for CategoryChecking it is appended
// after the category ("Type checking: <detail>"), for the others the
// category string already reads as a full sentence lead-in.
type CheckError struct {
	Category Category
	Detail   string
	Pos      source.Position
	Expected *types.Type
	Got      *types.Type
}

func (e *CheckError) Error() string {
	switch e.Category {
	case CategoryChecking:
		return fmt.Sprintf("Type checking: %s at %s", e.Detail, e.Pos)
	case CategoryArrayElementMismatch, CategoryAssertionFailed, CategoryInvariantViolated:
		if e.Detail == "" {
			return fmt.Sprintf("%s at %s", e.Category, e.Pos)
		}
		return fmt.Sprintf("%s: %s at %s", e.Category, e.Detail, e.Pos)
	default:
		if e.Detail == "" {
			return fmt.Sprintf("%s at %s", e.Category, e.Pos)
		}
		return fmt.Sprintf("%s at %s: %s", e.Category, e.Pos, e.Detail)
	}
}

func newTypeMismatch(pos source.Position, detail string, expected, got *types.Type) *CheckError {
	return &CheckError{Category: CategoryTypeMismatch, Detail: detail, Pos: pos, Expected: expected, Got: got}
}

func newReturnTypeMismatch(pos source.Position, detail string, expected, got *types.Type) *CheckError {
	return &CheckError{Category: CategoryReturnTypeMismatch, Detail: detail, Pos: pos, Expected: expected, Got: got}
}

func newInferenceError(pos source.Position, detail string) *CheckError {
	return &CheckError{Category: CategoryInferenceError, Detail: detail, Pos: pos}
}

func newCheckingError(pos source.Position, detail string) *CheckError {
	return &CheckError{Category: CategoryChecking, Detail: detail, Pos: pos}
}

func newArrayElementMismatch(pos source.Position) *CheckError {
	return &CheckError{Category: CategoryArrayElementMismatch, Pos: pos}
}
