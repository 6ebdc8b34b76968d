package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/timeouts"
)

// HandleDelete removes an account and cascades everything it owns, touches,
// or is referenced by. The acting user inherits ownership of the target's
// resources.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.CurrentSession(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Workflows.DeleteUser(ctx, session, id); err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}
	apperrors.WriteSuccess(w)
}
