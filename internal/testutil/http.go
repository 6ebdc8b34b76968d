package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context. Use this
// in handler tests that call chi.URLParam without going through a router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// WithSession attaches an authenticated session for u to the request,
// bypassing token verification.
func WithSession(r *http.Request, u models.User) *http.Request {
	s := auth.Session{
		UserID:      u.ID,
		DomainID:    u.DomainID,
		Name:        u.Name,
		Permissions: u.Permissions,
	}
	return r.WithContext(auth.WithSession(r.Context(), s))
}
