package communities

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/communities.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Delete("/{id}", h.HandleDelete)
	r.Get("/{id}/membership", h.HandleMemberStatus)
	r.Post("/{id}/memberships/{membershipId}/status", h.HandleSetMembershipStatus)

	r.Get("/{id}/posts/{postId}/comments/count", h.HandleCommentCount)
	r.Delete("/{id}/posts/{postId}/comments/{commentId}", h.HandleDeleteComment)

	return r
}
