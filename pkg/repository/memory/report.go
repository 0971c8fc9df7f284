package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

type reportRepository struct {
	mu       sync.RWMutex
	requests map[model.ReportRequestID]*model.ReportRequest
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		requests: make(map[model.ReportRequestID]*model.ReportRequest),
	}
}

func copyReportRequest(req *model.ReportRequest) *model.ReportRequest {
	copied := *req
	return &copied
}

func (r *reportRepository) Put(ctx context.Context, req *model.ReportRequest) error {
	if req.ID == "" {
		return goerr.New("report request ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests[req.ID] = copyReportRequest(req)
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id model.ReportRequestID) (*model.ReportRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, exists := r.requests[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "report request not found", goerr.V("id", id))
	}
	return copyReportRequest(req), nil
}

func (r *reportRepository) List(ctx context.Context, screen types.Screen, limit int) ([]*model.ReportRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reqs := make([]*model.ReportRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if req.Screen == screen {
			reqs = append(reqs, copyReportRequest(req))
		}
	}

	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
	if limit > 0 && len(reqs) > limit {
		reqs = reqs[:limit]
	}
	return reqs, nil
}
