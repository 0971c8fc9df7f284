package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/model/config"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// builtinStatic are fields served without a gateway lookup
var builtinStatic = map[types.FieldID][]config.FieldOption{
	types.FieldProductionResource: {{ID: "ALL", Name: "ALL Production Resource"}},
}

// builtinFallback are served (uncached) when a lookup fails
var builtinFallback = map[types.FieldID][]config.FieldOption{
	types.FieldPOStatus: {
		{ID: "10", Name: "Cfm Required"},
		{ID: "20", Name: "On-Order"},
		{ID: "30", Name: "In-Transit"},
		{ID: "35", Name: "Partial RcToStk"},
		{ID: "40", Name: "Rc. to Stk."},
		{ID: "50", Name: "Paid"},
	},
	types.FieldOffice: {
		{ID: "AFI", Name: "Ashley Furniture Industries"},
		{ID: "HOM", Name: "Home Office"},
		{ID: "MFG", Name: "Manufacturing"},
	},
}

// FilterUseCase resolves dropdown values through the cache
type FilterUseCase struct {
	gateway interfaces.Gateway
	cache   *FilterCache
	schema  *config.FilterSchema
	group   singleflight.Group
}

// FilterOption is a functional option for FilterUseCase
type FilterOption func(*FilterUseCase)

// WithFilterCache replaces the default 5 minute cache
func WithFilterCache(cache *FilterCache) FilterOption {
	return func(uc *FilterUseCase) {
		uc.cache = cache
	}
}

// WithFilterSchema sets configured static and fallback options
func WithFilterSchema(schema *config.FilterSchema) FilterOption {
	return func(uc *FilterUseCase) {
		uc.schema = schema
	}
}

// NewFilterUseCase creates a FilterUseCase
func NewFilterUseCase(gw interfaces.Gateway, opts ...FilterOption) *FilterUseCase {
	uc := &FilterUseCase{
		gateway: gw,
		cache:   NewFilterCache(DefaultFilterCacheTTL),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Fields returns the dropdown fields of a screen
func (uc *FilterUseCase) Fields(screen types.Screen) ([]model.FilterField, error) {
	if !screen.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownScreen, "unknown screen", goerr.V(ScreenKey, screen))
	}
	return model.FieldsOf(screen), nil
}

// Values resolves the option list of one field. Lookup failures are not
// returned: the field degrades to its fallback list, which is never cached.
func (uc *FilterUseCase) Values(ctx context.Context, field types.FieldID) (*model.FilterValueSet, error) {
	if !field.HasValues() {
		return nil, goerr.Wrap(model.ErrUnknownField, "field has no values", goerr.V(FieldIDKey, field))
	}

	if static := uc.staticOptions(field); static != nil {
		return &model.FilterValueSet{Field: field, Values: toFilterValues(field, static)}, nil
	}

	if values, ok := uc.cache.Get(field); ok {
		return &model.FilterValueSet{Field: field, Values: values, Cached: true}, nil
	}

	values, err := uc.fetch(ctx, field)
	if err != nil {
		logging.From(ctx).Warn("filter lookup failed, serving fallback",
			slog.String("field", field.String()),
			slog.Any("error", err),
		)
		return &model.FilterValueSet{
			Field:    field,
			Values:   toFilterValues(field, uc.fallbackOptions(field)),
			Degraded: true,
		}, nil
	}

	return &model.FilterValueSet{Field: field, Values: values}, nil
}

// Refresh fetches a field through the gateway and stores a successful
// result, regardless of the current cache entry
func (uc *FilterUseCase) Refresh(ctx context.Context, field types.FieldID) error {
	if !field.HasValues() {
		return goerr.Wrap(model.ErrUnknownField, "field has no values", goerr.V(FieldIDKey, field))
	}
	if uc.staticOptions(field) != nil {
		return nil
	}
	_, err := uc.fetch(ctx, field)
	return err
}

// ScreenValues resolves every field of a screen concurrently. Each field
// is guarded on its own, so one failing lookup degrades only that field.
func (uc *FilterUseCase) ScreenValues(ctx context.Context, screen types.Screen) ([]*model.FilterValueSet, error) {
	fields, err := uc.Fields(screen)
	if err != nil {
		return nil, err
	}

	sets := make([]*model.FilterValueSet, len(fields))
	var eg errgroup.Group
	for i, f := range fields {
		eg.Go(func() error {
			set, err := uc.Values(ctx, f.FieldID)
			if err != nil {
				return err
			}
			sets[i] = set
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

// fetch shares one in-flight lookup per field and caches only successes
func (uc *FilterUseCase) fetch(ctx context.Context, field types.FieldID) ([]model.FilterValue, error) {
	v, err, _ := uc.group.Do(field.String(), func() (any, error) {
		// the shared lookup outlives any single caller's cancellation
		fctx := context.WithoutCancel(ctx)

		raw, err := uc.gateway.FetchFilterSource(fctx, field)
		if err != nil {
			return nil, err
		}
		if !json.Valid(raw) {
			return nil, goerr.Wrap(ErrMalformedFilterSource, "lookup returned invalid JSON", goerr.V(FieldIDKey, field))
		}

		values := NormalizeFilterValues(field, raw)
		uc.cache.Set(field, values)
		logging.From(ctx).Debug("filter values loaded",
			slog.String("field", field.String()),
			slog.Int("count", len(values)),
		)
		return values, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneValues(v.([]model.FilterValue)), nil
}

func (uc *FilterUseCase) staticOptions(field types.FieldID) []config.FieldOption {
	if def := uc.schema.Field(field); def != nil && len(def.Static) > 0 {
		return def.Static
	}
	return builtinStatic[field]
}

func (uc *FilterUseCase) fallbackOptions(field types.FieldID) []config.FieldOption {
	if def := uc.schema.Field(field); def != nil && len(def.Fallback) > 0 {
		return def.Fallback
	}
	return builtinFallback[field]
}

func toFilterValues(field types.FieldID, opts []config.FieldOption) []model.FilterValue {
	out := make([]model.FilterValue, 0, len(opts))
	for _, o := range opts {
		out = append(out, model.FilterValue{FieldID: field, FilterID: o.ID, FilterDesc: o.Name})
	}
	return out
}
