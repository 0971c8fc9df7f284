package interfaces

import (
	"context"

	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// Gateway is the backend inquiry REST gateway
type Gateway interface {
	// FetchFilterSource returns the raw response body of a filter field's
	// lookup endpoint. Normalization happens in the caller.
	FetchFilterSource(ctx context.Context, field types.FieldID) ([]byte, error)

	SearchPOItems(ctx context.Context, c *model.POItemCriteria) ([]*model.POItem, error)
	SearchProductionSchedule(ctx context.Context, c *model.ProductionSchedCriteria) ([]*model.ProductionSchedRecord, error)
	SearchPOsPaid(ctx context.Context, c *model.POsPaidCriteria) ([]*model.POPayment, error)
}
