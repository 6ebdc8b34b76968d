package communities

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/timeouts"
)

// HandleDelete tears down a community and everything scoped to it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.CurrentSession(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Workflows.DeleteCommunity(ctx, session, id); err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}
	apperrors.WriteSuccess(w)
}
