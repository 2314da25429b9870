package ledger

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/finpulse/finpulse_ledger/internal/apperrors"
)

// kindError is a ledger error kind. Each kind unwraps to an apperrors class.
type kindError struct {
	code  string
	msg   string
	class error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.class }

func newKind(code, msg string, class error) *kindError {
	return &kindError{code: code, msg: msg, class: class}
}

var (
	ErrInvalidInput      = newKind("INVALID_INPUT", "ledger: invalid input", apperrors.ErrValidation)
	ErrDuplicateCode     = newKind("DUPLICATE_CODE", "ledger: account code already exists", apperrors.ErrDuplicate)
	ErrDuplicateTemplate = newKind("DUPLICATE_TEMPLATE", "ledger: template name already exists", apperrors.ErrDuplicate)
	ErrInvalidParent     = newKind("INVALID_PARENT", "ledger: parent account is missing or would create a cycle", apperrors.ErrValidation)
	ErrAccountNotFound   = newKind("ACCOUNT_NOT_FOUND", "ledger: account not found", apperrors.ErrNotFound)

	ErrTooFewLines              = newKind("TOO_FEW_LINES", "ledger: entry needs at least two lines", apperrors.ErrValidation)
	ErrUnknownOrInactiveAccount = newKind("UNKNOWN_OR_INACTIVE_ACCOUNT", "ledger: line references an unknown or inactive account", apperrors.ErrValidation)
	ErrAmbiguousLine            = newKind("AMBIGUOUS_LINE", "ledger: line must carry exactly one non-negative nonzero side", apperrors.ErrValidation)
	ErrUnbalancedEntry          = newKind("UNBALANCED_ENTRY", "ledger: debits do not equal credits", apperrors.ErrValidation)
	ErrZeroAmountEntry          = newKind("ZERO_AMOUNT_ENTRY", "ledger: entry amount is zero", apperrors.ErrValidation)

	ErrEntryNotFound    = newKind("ENTRY_NOT_FOUND", "ledger: journal entry not found", apperrors.ErrNotFound)
	ErrTemplateNotFound = newKind("TEMPLATE_NOT_FOUND", "ledger: template not found", apperrors.ErrNotFound)
	ErrAlreadyReversed  = newKind("ALREADY_REVERSED", "ledger: journal entry already reversed", apperrors.ErrConflict)
	ErrInvalidState     = newKind("INVALID_STATE", "ledger: journal entry is not in a valid state for this operation", apperrors.ErrConflict)
	ErrPeriodClosed     = newKind("PERIOD_CLOSED", "ledger: date falls in a closed period", apperrors.ErrConflict)
)

// NoLine is the LineIndex of a ValidationError that concerns the whole entry.
const NoLine = -1

// ValidationError reports which rule an entry broke and, where it applies,
// the offending line.
type ValidationError struct {
	Kind      error
	LineIndex int
	AccountID string
	Detail    string
}

func (e *ValidationError) Error() string {
	msg := e.Kind.Error()
	if e.LineIndex != NoLine {
		msg = fmt.Sprintf("%s (line %d)", msg, e.LineIndex)
	}
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func lineError(kind error, idx int, accountID, detail string) *ValidationError {
	return &ValidationError{Kind: kind, LineIndex: idx, AccountID: accountID, Detail: detail}
}

func entryError(kind error, detail string) *ValidationError {
	return &ValidationError{Kind: kind, LineIndex: NoLine, Detail: detail}
}

// ErrorCode returns the machine-readable kind of a ledger error, or "" when
// err is not one.
func ErrorCode(err error) string {
	var k *kindError
	if errors.As(err, &k) {
		return k.code
	}
	return ""
}

// LineIndex returns the failing line of a ValidationError.
func LineIndex(err error) (int, bool) {
	var v *ValidationError
	if errors.As(err, &v) && v.LineIndex != NoLine {
		return v.LineIndex, true
	}
	return 0, false
}

func storeError(op string, err error) error {
	return apperrors.NewAppError(http.StatusInternalServerError, "ledger: failed to "+op, err)
}
