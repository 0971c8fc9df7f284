package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type exportDocument struct {
	ID        string    `firestore:"id"`
	Screen    string    `firestore:"screen"`
	Format    string    `firestore:"format"`
	FileName  string    `firestore:"file_name"`
	Rows      int       `firestore:"rows"`
	Location  string    `firestore:"location"`
	SharedTo  string    `firestore:"shared_to"`
	CreatedAt time.Time `firestore:"created_at"`
}

type exportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newExportRepository(client *firestore.Client) *exportRepository {
	return &exportRepository{client: client}
}

func (r *exportRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionExportRecords))
}

func toExportDocument(rec *model.ExportRecord) *exportDocument {
	return &exportDocument{
		ID:        rec.ID.String(),
		Screen:    rec.Screen.String(),
		Format:    rec.Format.String(),
		FileName:  rec.FileName,
		Rows:      rec.Rows,
		Location:  rec.Location,
		SharedTo:  rec.SharedTo,
		CreatedAt: rec.CreatedAt,
	}
}

func toExportModel(doc *exportDocument) *model.ExportRecord {
	return &model.ExportRecord{
		ID:        model.ExportRecordID(doc.ID),
		Screen:    types.Screen(doc.Screen),
		Format:    types.ExportFormat(doc.Format),
		FileName:  doc.FileName,
		Rows:      doc.Rows,
		Location:  doc.Location,
		SharedTo:  doc.SharedTo,
		CreatedAt: doc.CreatedAt,
	}
}

func (r *exportRepository) Put(ctx context.Context, rec *model.ExportRecord) error {
	if rec.ID == "" {
		return goerr.New("export record ID is empty")
	}
	if _, err := r.collection().Doc(rec.ID.String()).Set(ctx, toExportDocument(rec)); err != nil {
		return goerr.Wrap(err, "failed to put export record", goerr.V("id", rec.ID))
	}
	return nil
}

func (r *exportRepository) List(ctx context.Context, screen types.Screen, limit int) ([]*model.ExportRecord, error) {
	q := r.collection().
		Where("screen", "==", screen.String()).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var recs []*model.ExportRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate export records", goerr.V("screen", screen))
		}

		var doc exportDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode export record", goerr.V("docID", snap.Ref.ID))
		}
		recs = append(recs, toExportModel(&doc))
	}

	if recs == nil {
		recs = []*model.ExportRecord{}
	}
	return recs, nil
}
