package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type reportDocument struct {
	ID         string             `firestore:"id"`
	Screen     string             `firestore:"screen"`
	ReportType string             `firestore:"report_type"`
	Object     model.ReportObject `firestore:"report"`
	User       string             `firestore:"user"`
	URL        string             `firestore:"url"`
	CreatedAt  time.Time          `firestore:"created_at"`
}

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionReportRequests))
}

func toReportDocument(req *model.ReportRequest) *reportDocument {
	return &reportDocument{
		ID:         req.ID.String(),
		Screen:     req.Screen.String(),
		ReportType: req.ReportType.String(),
		Object:     req.Object,
		User:       req.User,
		URL:        req.URL,
		CreatedAt:  req.CreatedAt,
	}
}

func toReportModel(doc *reportDocument) *model.ReportRequest {
	return &model.ReportRequest{
		ID:         model.ReportRequestID(doc.ID),
		Screen:     types.Screen(doc.Screen),
		ReportType: types.ReportType(doc.ReportType),
		Object:     doc.Object,
		User:       doc.User,
		URL:        doc.URL,
		CreatedAt:  doc.CreatedAt,
	}
}

func (r *reportRepository) Put(ctx context.Context, req *model.ReportRequest) error {
	if req.ID == "" {
		return goerr.New("report request ID is empty")
	}
	if _, err := r.collection().Doc(req.ID.String()).Set(ctx, toReportDocument(req)); err != nil {
		return goerr.Wrap(err, "failed to put report request", goerr.V("id", req.ID))
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id model.ReportRequestID) (*model.ReportRequest, error) {
	snap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "report request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get report request", goerr.V("id", id))
	}

	var doc reportDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode report request", goerr.V("id", id))
	}
	return toReportModel(&doc), nil
}

func (r *reportRepository) List(ctx context.Context, screen types.Screen, limit int) ([]*model.ReportRequest, error) {
	q := r.collection().
		Where("screen", "==", screen.String()).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var reqs []*model.ReportRequest
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate report requests", goerr.V("screen", screen))
		}

		var doc reportDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode report request", goerr.V("docID", snap.Ref.ID))
		}
		reqs = append(reqs, toReportModel(&doc))
	}

	if reqs == nil {
		reqs = []*model.ReportRequest{}
	}
	return reqs, nil
}
