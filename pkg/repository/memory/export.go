package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

type exportRepository struct {
	mu      sync.RWMutex
	records map[model.ExportRecordID]*model.ExportRecord
}

func newExportRepository() *exportRepository {
	return &exportRepository{
		records: make(map[model.ExportRecordID]*model.ExportRecord),
	}
}

func copyExportRecord(rec *model.ExportRecord) *model.ExportRecord {
	copied := *rec
	return &copied
}

func (r *exportRepository) Put(ctx context.Context, rec *model.ExportRecord) error {
	if rec.ID == "" {
		return goerr.New("export record ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.ID] = copyExportRecord(rec)
	return nil
}

func (r *exportRepository) List(ctx context.Context, screen types.Screen, limit int) ([]*model.ExportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := make([]*model.ExportRecord, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Screen == screen {
			recs = append(recs, copyExportRecord(rec))
		}
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}
