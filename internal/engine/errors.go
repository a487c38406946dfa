package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an operation against a story, user, or report id that
// no longer exists. The operation is a no-op.
var ErrNotFound = errors.New("not found")

// Invariant rejection reasons. Each maps to a distinct precondition; a
// rejection never mutates any state and is never retried by the engine.
const (
	ReasonInsufficientBalance = "insufficient_balance"
	ReasonDuplicateSticker    = "duplicate_sticker"
	ReasonUnknownSticker      = "unknown_sticker"
	ReasonCooldownActive      = "cooldown_active"
	ReasonNotOwner            = "not_owner"
	ReasonCategoryRequired    = "category_required"
	ReasonUnknownCategory     = "unknown_category"
	ReasonContentTooLong      = "content_too_long"
	ReasonDraftExists         = "draft_exists"
	ReasonTerminalReport      = "terminal_report"
)

// InvariantError is a rejection by a domain invariant. Message is
// user-presentable and actionable (e.g. remaining cooldown days).
type InvariantError struct {
	Reason  string
	Message string
}

func (e *InvariantError) Error() string {
	return e.Message
}

func rejectf(reason, format string, args ...interface{}) *InvariantError {
	return &InvariantError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// AsInvariant returns the InvariantError wrapped in err, or nil.
func AsInvariant(err error) *InvariantError {
	var inv *InvariantError
	if errors.As(err, &inv) {
		return inv
	}
	return nil
}
