package communities

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codelitdev/coursehub/internal/app/policy/communitypolicy"
	"github.com/codelitdev/coursehub/internal/app/store/memberships"
	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/timeouts"
	"github.com/codelitdev/coursehub/internal/domain/models"
)

// HandleMemberStatus serves the caller's standing in the community as a
// structured value rather than a bare status string.
func (h *Handler) HandleMemberStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.CurrentSession(r)
	if session.UserID.IsZero() {
		apperrors.Write(w, h.Log, apperrors.ErrUnauthorized)
		return
	}

	communityID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	status, err := h.memberships.StatusOf(ctx, session.DomainID, session.UserID, communityID, models.EntityCommunity)
	if err == membershipstore.ErrNotFound {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}
	if err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

type setStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// HandleSetMembershipStatus moves a membership between pending, active, and
// rejected. Rejection requires a reason; any other transition clears it.
func (h *Handler) HandleSetMembershipStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.CurrentSession(r)
	if err := communitypolicy.CanManageCommunity(session); err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}

	membershipID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "membershipId"))
	if err != nil {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.Write(w, h.Log, &apperrors.Error{
			Code: "bad_request", Message: "invalid request body", Status: http.StatusBadRequest,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.memberships.SetStatus(ctx, session.DomainID, membershipID, req.Status, req.Reason)
	if err == membershipstore.ErrNotFound {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}
	if err == membershipstore.ErrBadStatus {
		apperrors.Write(w, h.Log, &apperrors.Error{
			Code: "bad_status", Message: err.Error(), Status: http.StatusBadRequest,
		})
		return
	}
	if err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}
	apperrors.WriteSuccess(w)
}
