package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// gatewayMock is a hand-written interfaces.Gateway whose behavior is set per test
type gatewayMock struct {
	FetchFilterSourceFunc        func(ctx context.Context, field types.FieldID) ([]byte, error)
	SearchPOItemsFunc            func(ctx context.Context, c *model.POItemCriteria) ([]*model.POItem, error)
	SearchProductionScheduleFunc func(ctx context.Context, c *model.ProductionSchedCriteria) ([]*model.ProductionSchedRecord, error)
	SearchPOsPaidFunc            func(ctx context.Context, c *model.POsPaidCriteria) ([]*model.POPayment, error)

	fetchCalls atomic.Int32
}

var _ interfaces.Gateway = &gatewayMock{}

var errMockNotSet = goerr.New("mock function not set")

func (m *gatewayMock) FetchFilterSource(ctx context.Context, field types.FieldID) ([]byte, error) {
	m.fetchCalls.Add(1)
	if m.FetchFilterSourceFunc == nil {
		return nil, errMockNotSet
	}
	return m.FetchFilterSourceFunc(ctx, field)
}

func (m *gatewayMock) SearchPOItems(ctx context.Context, c *model.POItemCriteria) ([]*model.POItem, error) {
	if m.SearchPOItemsFunc == nil {
		return nil, errMockNotSet
	}
	return m.SearchPOItemsFunc(ctx, c)
}

func (m *gatewayMock) SearchProductionSchedule(ctx context.Context, c *model.ProductionSchedCriteria) ([]*model.ProductionSchedRecord, error) {
	if m.SearchProductionScheduleFunc == nil {
		return nil, errMockNotSet
	}
	return m.SearchProductionScheduleFunc(ctx, c)
}

func (m *gatewayMock) SearchPOsPaid(ctx context.Context, c *model.POsPaidCriteria) ([]*model.POPayment, error) {
	if m.SearchPOsPaidFunc == nil {
		return nil, errMockNotSet
	}
	return m.SearchPOsPaidFunc(ctx, c)
}

// storageMock records uploaded files
type storageMock struct {
	mu    sync.Mutex
	files []*model.ExportFile
	err   error
}

func (m *storageMock) Put(ctx context.Context, file *model.ExportFile) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, file)
	return "gs://exports/" + file.FileName, nil
}

// sharerMock records shared files and comments
type sharerMock struct {
	mu       sync.Mutex
	files    []*model.ExportFile
	comments []string
}

func (m *sharerMock) Share(ctx context.Context, file *model.ExportFile, comment string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, file)
	m.comments = append(m.comments, comment)
	return "C0EXPORTS", nil
}
