package communities

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codelitdev/coursehub/internal/app/policy/communitypolicy"
	"github.com/codelitdev/coursehub/internal/app/store/comments"
	"github.com/codelitdev/coursehub/internal/app/system/apperrors"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/timeouts"
	"github.com/codelitdev/coursehub/internal/domain/models"
)

// HandleDeleteComment deletes a single comment, or one reply inside it when
// the replyId query parameter is present. A node with live children is
// soft-deleted so the thread stays addressable; a childless node is removed
// outright. Either way the post's comment counter drops by one.
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.CurrentSession(r)

	communityID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postId"))
	if err != nil {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}
	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentId"))
	if err != nil {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comment, err := h.comments.GetByID(ctx, session.DomainID, commentID)
	if err == commentstore.ErrNotFound {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}
	if err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}
	if comment.CommunityID != communityID || comment.PostID != postID {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}
	// A soft-deleted comment is still loadable (its thread may hold live
	// replies) but is not itself a deletable target anymore.
	if comment.Deleted && r.URL.Query().Get("replyId") == "" {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}

	if raw := r.URL.Query().Get("replyId"); raw != "" {
		replyID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
			return
		}
		reply, ok := findReply(comment, replyID)
		if !ok {
			apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
			return
		}
		if err := communitypolicy.CanDeleteComment(session, reply.AuthorID); err != nil {
			apperrors.Write(w, h.Log, err)
			return
		}
		err = h.comments.DeleteReply(ctx, session.DomainID, postID, commentID, replyID)
		if err == commentstore.ErrNotFound {
			apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
			return
		}
		if err != nil {
			apperrors.Write(w, h.Log, err)
			return
		}
		apperrors.WriteSuccess(w)
		return
	}

	if err := communitypolicy.CanDeleteComment(session, comment.AuthorID); err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}
	err = h.comments.DeleteComment(ctx, session.DomainID, postID, commentID)
	if err == commentstore.ErrNotFound {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}
	if err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}
	apperrors.WriteSuccess(w)
}

func findReply(c *models.Comment, replyID primitive.ObjectID) (models.Reply, bool) {
	for _, rep := range c.Replies {
		if rep.ReplyID == replyID && !rep.Deleted {
			return rep, true
		}
	}
	return models.Reply{}, false
}

// HandleCommentCount serves the live comment count for a post: non-deleted
// top-level comments plus non-deleted replies, computed from the documents
// rather than the denormalized counter.
func (h *Handler) HandleCommentCount(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.CurrentSession(r)
	if session.UserID.IsZero() {
		apperrors.Write(w, h.Log, apperrors.ErrUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postId"))
	if err != nil {
		apperrors.Write(w, h.Log, apperrors.ErrItemNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.comments.CountForPost(ctx, session.DomainID, postID)
	if err != nil {
		apperrors.Write(w, h.Log, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"count": n})
}
