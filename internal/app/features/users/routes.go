package users

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/users. Authentication is
// applied by the parent router; the deletion guard itself lives in the
// workflow so unauthenticated calls still map to the right error.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/{id}", h.HandleDelete)
	return r
}
