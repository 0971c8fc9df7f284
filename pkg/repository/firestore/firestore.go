package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
)

// Collection names, before any prefix
const (
	CollectionReportRequests = "report_requests"
	CollectionExportRecords  = "export_records"
)

// DefaultDatabaseID is used when no database is given
const DefaultDatabaseID = firestore.DefaultDatabaseID

type Firestore struct {
	client *firestore.Client
	report *reportRepository
	export *exportRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.report.collectionPrefix = prefix
		f.export.collectionPrefix = prefix
	}
}

// New connects to Firestore. An empty databaseID selects the default database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
		report: newReportRepository(client),
		export: newExportRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Report() interfaces.ReportRepository {
	return f.report
}

func (f *Firestore) Export() interfaces.ExportRepository {
	return f.export
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// CollectionName returns the prefixed name of a collection
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
