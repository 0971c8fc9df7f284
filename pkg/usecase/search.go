package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
)

// SearchResult is one page of a search
type SearchResult[R any] struct {
	Screen   types.Screen `json:"screen"`
	Sequence uint64       `json:"sequence"`
	Rows     []R          `json:"rows"`
	Total    int          `json:"total"`
	Page     model.Page   `json:"page"`
}

// StoredResult is the full result set of the latest search of a session
// and screen, kept for export
type StoredResult struct {
	Screen     types.Screen
	Sequence   uint64
	SearchedAt time.Time

	POItemCriteria *model.POItemCriteria
	POItems        []*model.POItem

	ScheduleCriteria *model.ProductionSchedCriteria
	Schedule         []*model.ProductionSchedRecord

	POsPaidCriteria *model.POsPaidCriteria
	Payments        []*model.POPayment
}

// Rows returns the row count of the stored result
func (r *StoredResult) Rows() int {
	switch r.Screen {
	case types.ScreenPOItems:
		return len(r.POItems)
	case types.ScreenProductionSchedule:
		return len(r.Schedule)
	case types.ScreenPOsPaid:
		return len(r.Payments)
	default:
		return 0
	}
}

// DefaultResultRetention is how long the latest result of a session and
// screen stays available for export
const DefaultResultRetention = 30 * time.Minute

// SearchUseCase composes gateway searches and shapes their results
type SearchUseCase struct {
	gateway   interfaces.Gateway
	seq       *sequencer
	now       func() time.Time
	retention time.Duration

	mu      sync.RWMutex
	results map[sequenceKey]*StoredResult
}

type SearchOption func(*SearchUseCase)

// WithResultRetention sets the lifetime of stored results. Non-positive
// values keep the default.
func WithResultRetention(d time.Duration) SearchOption {
	return func(uc *SearchUseCase) {
		if d > 0 {
			uc.retention = d
		}
	}
}

// NewSearchUseCase creates a SearchUseCase
func NewSearchUseCase(gw interfaces.Gateway, opts ...SearchOption) *SearchUseCase {
	uc := &SearchUseCase{
		gateway:   gw,
		seq:       newSequencer(),
		now:       time.Now,
		retention: DefaultResultRetention,
		results:   make(map[sequenceKey]*StoredResult),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// LastResult returns the latest complete result of a session and screen
func (uc *SearchUseCase) LastResult(session string, screen types.Screen) (*StoredResult, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	r, ok := uc.results[sequenceKey{session: session, screen: screen}]
	if !ok || r.Rows() == 0 || uc.expired(r, uc.now()) {
		return nil, goerr.Wrap(ErrNoResult, "no search result",
			goerr.V(SessionKey, session), goerr.V(ScreenKey, screen))
	}
	return r, nil
}

// SearchPOItems runs the PO item inquiry
func (uc *SearchUseCase) SearchPOItems(ctx context.Context, session string, c *model.POItemCriteria, page model.Page) (*SearchResult[*model.POItem], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return runSearch(ctx, uc, session, types.ScreenPOItems, page,
		func(ctx context.Context) ([]*model.POItem, error) {
			return uc.gateway.SearchPOItems(ctx, c)
		},
		func(r *model.POItem) bool { return matchesItemNumber(r.ItemNumber, c.ItemNumber) },
		func(res *StoredResult, rows []*model.POItem) {
			res.POItemCriteria = c
			res.POItems = rows
		},
	)
}

// SearchProductionSchedule runs the production schedule search
func (uc *SearchUseCase) SearchProductionSchedule(ctx context.Context, session string, c *model.ProductionSchedCriteria, page model.Page) (*SearchResult[*model.ProductionSchedRecord], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	item := c.FilterValue(types.FieldItem)
	return runSearch(ctx, uc, session, types.ScreenProductionSchedule, page,
		func(ctx context.Context) ([]*model.ProductionSchedRecord, error) {
			return uc.gateway.SearchProductionSchedule(ctx, c)
		},
		func(r *model.ProductionSchedRecord) bool { return matchesItemNumber(r.ItemNum, item) },
		func(res *StoredResult, rows []*model.ProductionSchedRecord) {
			res.ScheduleCriteria = c
			res.Schedule = rows
		},
	)
}

// SearchPOsPaid runs the POs paid inquiry
func (uc *SearchUseCase) SearchPOsPaid(ctx context.Context, session string, c *model.POsPaidCriteria, page model.Page) (*SearchResult[*model.POPayment], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return runSearch(ctx, uc, session, types.ScreenPOsPaid, page,
		func(ctx context.Context) ([]*model.POPayment, error) {
			return uc.gateway.SearchPOsPaid(ctx, c)
		},
		nil,
		func(res *StoredResult, rows []*model.POPayment) {
			res.POsPaidCriteria = c
			res.Payments = rows
		},
	)
}

// matchesItemNumber is the case-insensitive substring refinement applied
// to every result set
func matchesItemNumber(itemNumber, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(itemNumber), strings.ToLower(query))
}

func isNilRecord[R comparable](r R) bool {
	var zero R
	return r == zero
}

func (uc *SearchUseCase) expired(r *StoredResult, now time.Time) bool {
	return !now.Before(r.SearchedAt.Add(uc.retention))
}

// storeResult saves res under key and drops every expired result. Called
// with uc.mu held.
func (uc *SearchUseCase) storeResult(key sequenceKey, res *StoredResult) {
	for k, r := range uc.results {
		if uc.expired(r, res.SearchedAt) {
			delete(uc.results, k)
		}
	}
	uc.results[key] = res
}

func runSearch[R interface {
	model.Record
	comparable
}](
	ctx context.Context,
	uc *SearchUseCase,
	session string,
	screen types.Screen,
	page model.Page,
	fetch func(context.Context) ([]R, error),
	refine func(R) bool,
	store func(*StoredResult, []R),
) (*SearchResult[R], error) {
	key := sequenceKey{session: session, screen: screen}
	sctx, seq, release := uc.seq.begin(ctx, key)
	defer release()

	logger := logging.From(ctx).With(
		slog.String("screen", screen.String()),
		slog.Uint64("sequence", seq),
	)
	started := uc.now()

	rows, err := fetch(sctx)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil, goerr.Wrap(ErrStaleSearch, "search cancelled by a newer request",
				goerr.V(ScreenKey, screen), goerr.V(SequenceKey, seq))
		}
		return nil, goerr.Wrap(err, "search failed", goerr.V(ScreenKey, screen), goerr.V(SequenceKey, seq))
	}

	// null elements of the gateway array decode to nil records
	filtered := make([]R, 0, len(rows))
	for _, r := range rows {
		if isNilRecord(r) {
			continue
		}
		if refine == nil || refine(r) {
			filtered = append(filtered, r)
		}
	}
	rows = filtered

	page = page.Normalize(screen)
	model.SortRecords(rows, page.SortBy, page.Desc)

	published := uc.seq.publish(key, seq, func() {
		res := &StoredResult{Screen: screen, Sequence: seq, SearchedAt: uc.now()}
		store(res, rows)
		uc.mu.Lock()
		uc.storeResult(key, res)
		uc.mu.Unlock()
	})
	if !published {
		logger.Info("discarding stale search result")
		return nil, goerr.Wrap(ErrStaleSearch, "search superseded",
			goerr.V(ScreenKey, screen), goerr.V(SequenceKey, seq))
	}

	pageRows, total := model.Paginate(rows, page)
	logger.Info("search completed",
		slog.Int("total", total),
		slog.Duration("duration", uc.now().Sub(started)),
	)

	return &SearchResult[R]{
		Screen:   screen,
		Sequence: seq,
		Rows:     pageRows,
		Total:    total,
		Page:     page,
	}, nil
}
