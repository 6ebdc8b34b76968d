// Package apperrors defines the error taxonomy shared by the mutation
// entry points and the deletion workflows, together with the HTTP/JSON
// rendering for it.
//
// Guard failures (Unauthorized, ActionNotAllowed, ItemNotFound, and the
// last-holder violation) always abort before any mutation, so a caller that
// receives one of these can retry safely. Anything outside the taxonomy is
// rendered as a 500 and logged with its real cause.
package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Error is a caller-visible domain error with a stable code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrUnauthorized means no authenticated actor is present.
	ErrUnauthorized = &Error{Code: "unauthorized", Message: "you must be signed in", Status: http.StatusUnauthorized}

	// ErrActionNotAllowed means the actor is authenticated but the action is
	// forbidden: missing capability, self-deletion, or ownership mismatch.
	ErrActionNotAllowed = &Error{Code: "action_not_allowed", Message: "you are not allowed to perform this action", Status: http.StatusForbidden}

	// ErrItemNotFound means the target does not resolve in the actor's domain.
	ErrItemNotFound = &Error{Code: "item_not_found", Message: "item not found", Status: http.StatusNotFound}

	// ErrRejectionReasonMissing means a membership rejection was submitted
	// without the required justification.
	ErrRejectionReasonMissing = &Error{Code: "rejection_reason_missing", Message: "a reason is required to reject a membership", Status: http.StatusBadRequest}
)

// LastPermissionHolderCode identifies the safety-invariant violation raised
// when deleting an account would leave a domain without any active holder of
// a critical capability.
const LastPermissionHolderCode = "cannot_delete_last_permission_holder"

// LastPermissionHolder builds the safety-invariant violation, naming the
// offending capability in the message.
func LastPermissionHolder(capability string) *Error {
	return &Error{
		Code:    LastPermissionHolderCode,
		Message: fmt.Sprintf("cannot delete the last active account holding %q", capability),
		Status:  http.StatusConflict,
	}
}

// IsLastPermissionHolder reports whether err is the safety-invariant
// violation (any capability).
func IsLastPermissionHolder(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == LastPermissionHolderCode
}

// Write renders err as a JSON error response. Taxonomy errors keep their
// status and code; everything else becomes an opaque 500 and is logged.
func Write(w http.ResponseWriter, log *zap.Logger, err error) {
	var e *Error
	if !errors.As(err, &e) {
		if log != nil {
			log.Error("internal error", zap.Error(err))
		}
		e = &Error{Code: "internal", Message: "an internal error occurred", Status: http.StatusInternalServerError}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// WriteSuccess renders a {"success": true} body, the response shape both
// deletion mutations share.
func WriteSuccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
