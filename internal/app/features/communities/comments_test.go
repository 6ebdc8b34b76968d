package communities_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/app/features/communities"
	"github.com/codelitdev/coursehub/internal/app/media"
	"github.com/codelitdev/coursehub/internal/app/payments"
	"github.com/codelitdev/coursehub/internal/app/system/authz"
	"github.com/codelitdev/coursehub/internal/app/workflow/deletion"
	"github.com/codelitdev/coursehub/internal/domain/models"
	"github.com/codelitdev/coursehub/internal/testutil"
)

func newHandler(t *testing.T) (*communities.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	log := zap.NewNop()
	workflows := deletion.New(db, log, payments.Resolve, &media.Disabled{Log: log}, nil)
	return communities.NewHandler(db, log, workflows), testutil.NewFixtures(t, db)
}

func TestHandleDeleteCommentAuthorization(t *testing.T) {
	h, f := newHandler(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	author := f.CreateUser(ctx, d.ID, "Author", "author@acme.test")
	bystander := f.CreateUser(ctx, d.ID, "Bystander", "bystander@acme.test")
	manager := f.CreateUser(ctx, d.ID, "Manager", "manager@acme.test", authz.ManageCommunity)
	c := f.CreateCommunity(ctx, d.ID, "gophers")
	post := f.CreatePost(ctx, d.ID, c.ID, author.ID)

	mkReq := func(commentID string, as *models.User) *http.Request {
		r := httptest.NewRequest(http.MethodDelete,
			"/api/communities/"+c.ID.Hex()+"/posts/"+post.ID.Hex()+"/comments/"+commentID, nil)
		r = testutil.WithChiURLParam(r, "id", c.ID.Hex())
		r = testutil.WithChiURLParam(r, "postId", post.ID.Hex())
		r = testutil.WithChiURLParam(r, "commentId", commentID)
		if as != nil {
			r = testutil.WithSession(r, *as)
		}
		return r
	}

	comment := f.CreateComment(ctx, models.Comment{
		DomainID: d.ID, CommunityID: c.ID, PostID: post.ID, AuthorID: author.ID,
	})

	// No session at all.
	w := httptest.NewRecorder()
	h.HandleDeleteComment(w, mkReq(comment.ID.Hex(), nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", w.Code)
	}

	// A third party may not delete someone else's comment.
	w = httptest.NewRecorder()
	h.HandleDeleteComment(w, mkReq(comment.ID.Hex(), &bystander))
	if w.Code != http.StatusForbidden {
		t.Fatalf("bystander: status = %d, want 403", w.Code)
	}

	// The author may.
	w = httptest.NewRecorder()
	h.HandleDeleteComment(w, mkReq(comment.ID.Hex(), &author))
	if w.Code != http.StatusOK {
		t.Fatalf("author: status = %d, body = %s", w.Code, w.Body.String())
	}
	var body map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || !body["success"] {
		t.Fatalf("author delete body = %s", w.Body.String())
	}

	// So may a community manager for another author's comment.
	other := f.CreateComment(ctx, models.Comment{
		DomainID: d.ID, CommunityID: c.ID, PostID: post.ID, AuthorID: author.ID,
	})
	w = httptest.NewRecorder()
	h.HandleDeleteComment(w, mkReq(other.ID.Hex(), &manager))
	if w.Code != http.StatusOK {
		t.Fatalf("manager: status = %d, body = %s", w.Code, w.Body.String())
	}

	// Deleting the same comment again: gone.
	w = httptest.NewRecorder()
	h.HandleDeleteComment(w, mkReq(other.ID.Hex(), &manager))
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: status = %d, want 404", w.Code)
	}

	if n := f.Count(ctx, "comments", bson.M{"post_id": post.ID}); n != 0 {
		t.Fatalf("comments left = %d, want 0", n)
	}
}

func TestHandleDeleteCommentSoftDeletedIsGone(t *testing.T) {
	h, f := newHandler(t)
	ctx := testutil.TestContext(t)

	d := f.CreateDomain(ctx, "acme", models.DomainSettings{})
	author := f.CreateUser(ctx, d.ID, "Author", "author@acme.test")
	c := f.CreateCommunity(ctx, d.ID, "gophers")
	post := f.CreatePost(ctx, d.ID, c.ID, author.ID)
	if _, err := f.DB().Collection("posts").UpdateOne(ctx,
		bson.M{"_id": post.ID}, bson.M{"$set": bson.M{"comment_count": int64(2)}}); err != nil {
		t.Fatal(err)
	}

	// A reply keeps the comment document around after deletion.
	comment := f.CreateComment(ctx, models.Comment{
		DomainID: d.ID, CommunityID: c.ID, PostID: post.ID, AuthorID: author.ID,
		Replies: []models.Reply{f.Reply(author.ID, nil)},
	})

	mkReq := func() *http.Request {
		r := httptest.NewRequest(http.MethodDelete,
			"/api/communities/"+c.ID.Hex()+"/posts/"+post.ID.Hex()+"/comments/"+comment.ID.Hex(), nil)
		r = testutil.WithChiURLParam(r, "id", c.ID.Hex())
		r = testutil.WithChiURLParam(r, "postId", post.ID.Hex())
		r = testutil.WithChiURLParam(r, "commentId", comment.ID.Hex())
		return testutil.WithSession(r, author)
	}

	w := httptest.NewRecorder()
	h.HandleDeleteComment(w, mkReq())
	if w.Code != http.StatusOK {
		t.Fatalf("first delete: status = %d, body = %s", w.Code, w.Body.String())
	}

	// The soft-deleted comment is no longer a deletable target, and the
	// post's counter must not drop a second time.
	w = httptest.NewRecorder()
	h.HandleDeleteComment(w, mkReq())
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: status = %d, want 404", w.Code)
	}

	var p models.Post
	if err := f.DB().Collection("posts").FindOne(ctx, bson.M{"_id": post.ID}).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.CommentCount != 1 {
		t.Fatalf("comment_count = %d, want 1", p.CommentCount)
	}
}
