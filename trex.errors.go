package trex

import (
	"errors"
	"fmt"

	"github.com/itsatony/go-cuserr"
)

// FinalError is a terminal rendering defect. It is never redirected to the
// "404" or "500" handlers again; it propagates to the top-level caller, where
// a chained cause (if any) is unwrapped and re-surfaced with the terminal
// message appended.
type FinalError struct {
	Message string
	Cause   error
}

// NewFinalError creates a terminal error with an optional chained cause.
func NewFinalError(message string, cause error) *FinalError {
	return &FinalError{
		Message: message,
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *FinalError) Error() string {
	return e.Message
}

// Unwrap returns the chained cause error.
func (e *FinalError) Unwrap() error {
	return e.Cause
}

// IsFinalError reports whether err is (or wraps) a FinalError.
func IsFinalError(err error) bool {
	var fe *FinalError
	return errors.As(err, &fe)
}

// newNotFoundFinalError creates the terminal error for an unhandled miss.
// The message embeds the originally requested name and the call-stack trace.
func newNotFoundFinalError(name string, trace string) *FinalError {
	return NewFinalError(fmt.Sprintf(ErrFmtNotFound, name, trace), nil)
}

// newTerminalStackError creates the terminal error for a failure that escaped
// "500" handling, chaining the underlying cause.
func newTerminalStackError(trace string, cause error) *FinalError {
	return NewFinalError(fmt.Sprintf(ErrFmtTerminalStack, trace), cause)
}

// amendedError re-surfaces an original error at the top level with the
// terminal message appended. Unwrap exposes the original so errors.Is and
// errors.As keep working against it.
type amendedError struct {
	original error
	message  string
}

func (e *amendedError) Error() string {
	return e.message
}

func (e *amendedError) Unwrap() error {
	return e.original
}

// unwrapFinal converts an escaping render error into what the caller
// observes: a FinalError carrying a chained cause becomes the cause with the
// terminal message appended after " --> "; anything else passes unchanged.
func unwrapFinal(err error) error {
	var fe *FinalError
	if !errors.As(err, &fe) || fe.Cause == nil {
		return err
	}
	return &amendedError{
		original: fe.Cause,
		message:  fe.Cause.Error() + AmendedMessageSep + fe.Message,
	}
}

// newMissingIDError creates a validation error for a provider without a
// string id, naming the already-validated child (or the chain head label).
func newMissingIDError(kind string, childLabel string) error {
	return cuserr.NewValidationError(ErrCodeChain, fmt.Sprintf(ErrFmtMissingID, kind, childLabel)).
		WithMetadata(MetaKeyChainKind, kind).
		WithMetadata(MetaKeyChildID, childLabel)
}

// newDuplicateIDError creates a validation error for an id that appears more
// than once across the merged template+context chain.
func newDuplicateIDError(id string) error {
	return cuserr.NewValidationError(ErrCodeChain, fmt.Sprintf(ErrFmtDuplicateID, id)).
		WithMetadata(MetaKeyProviderID, id)
}

// newNilTemplateError creates a validation error for a missing template chain.
func newNilTemplateError() error {
	return cuserr.NewValidationError(ErrCodeChain, ErrMsgNilTemplate).
		WithMetadata(MetaKeyChainKind, ChainKindTemplate)
}

// newParentNoFrameError creates the error for "parent" used as entrypoint.
func newParentNoFrameError() error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgParentNoFrame).
		WithMetadata(MetaKeyLocation, LocationParent)
}

// newIterateError creates an error for a malformed iterate call.
func newIterateError(msg string) error {
	return cuserr.NewValidationError(ErrCodeRender, msg).
		WithMetadata(MetaKeyLocation, LocationIterate)
}

// newNotIterableError creates the error for an iterate sequence that does not
// support iteration.
func newNotIterableError(value any) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgNotIterable).
		WithMetadata(MetaKeyLocation, LocationIterate).
		WithMetadata(MetaKeyValue, fmt.Sprintf("%T", value))
}
