// Package deletion implements the cascading removal of accounts and
// communities.
//
// Both workflows are sagas in the sense of internal/app/system/saga: an
// ordered list of idempotent phases over a store with no multi-document
// transactions. Phases run strictly in order because each assumes the
// previous one's writes are visible; independent writes inside a phase are
// dispatched together and jointly awaited. External calls (subscription
// cancellation, media reclamation) are best-effort: logged on failure,
// never blocking the local deletes around them.
package deletion

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/app/media"
	"github.com/codelitdev/coursehub/internal/app/payments"
	"github.com/codelitdev/coursehub/internal/app/store/comments"
	"github.com/codelitdev/coursehub/internal/app/store/communities"
	"github.com/codelitdev/coursehub/internal/app/store/invoices"
	"github.com/codelitdev/coursehub/internal/app/store/memberships"
	"github.com/codelitdev/coursehub/internal/app/store/pages"
	"github.com/codelitdev/coursehub/internal/app/store/paymentplans"
	"github.com/codelitdev/coursehub/internal/app/store/posts"
	"github.com/codelitdev/coursehub/internal/app/store/users"
	"github.com/codelitdev/coursehub/internal/app/system/saga"
	"github.com/codelitdev/coursehub/internal/domain/models"
)

// Workflow names used for progress markers.
const (
	userWorkflow      = "user-deletion"
	communityWorkflow = "community-deletion"
)

// Workflows bundles the dependencies of the deletion sagas.
type Workflows struct {
	db       *mongo.Database
	log      *zap.Logger
	payments payments.Resolver
	media    media.Store
	runner   *saga.Runner

	users       *userstore.Store
	communities *communitystore.Store
	memberships *membershipstore.Store
	plans       *planstore.Store
	invoices    *invoicestore.Store
	posts       *poststore.Store
	comments    *commentstore.Store
	pages       *pagestore.Store
}

// New wires the workflows. progress may be nil; without it a retried
// deletion re-runs every phase (all phases are idempotent, but external
// best-effort calls repeat).
func New(db *mongo.Database, log *zap.Logger, resolver payments.Resolver, mediaStore media.Store, progress saga.ProgressRecorder) *Workflows {
	return &Workflows{
		db:       db,
		log:      log,
		payments: resolver,
		media:    mediaStore,
		runner:   &saga.Runner{Log: log, Progress: progress},

		users:       userstore.New(db),
		communities: communitystore.New(db),
		memberships: membershipstore.New(db),
		plans:       planstore.New(db),
		invoices:    invoicestore.New(db),
		posts:       poststore.New(db),
		comments:    commentstore.New(db),
		pages:       pagestore.New(db),
	}
}

// domainSettings loads the tenant's settings. A missing domain document
// yields zero settings; downstream consumers (payment resolver, media field
// list) degrade to their defaults.
func (w *Workflows) domainSettings(ctx context.Context, domainID primitive.ObjectID) (models.DomainSettings, error) {
	var d models.Domain
	err := w.db.Collection("domains").FindOne(ctx, bson.M{"_id": domainID}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		w.log.Warn("domain document missing, using zero settings", zap.String("domain_id", domainID.Hex()))
		return models.DomainSettings{}, nil
	}
	if err != nil {
		return models.DomainSettings{}, err
	}
	return d.Settings, nil
}
