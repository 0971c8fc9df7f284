package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/service/gateway"
	"github.com/secmon-lab/inquiry/pkg/usecase"
)

func TestMatchesItemNumber(t *testing.T) {
	testCases := []struct {
		item  string
		query string
		want  bool
	}{
		{"ITM001", "ITM001", true},
		{"ITM001", "itm001", true},
		{"XITM0012", "Itm001", true},
		{"ITM002", "ITM001", false},
		{"ITM002", "", true},
		{"ITM002", "   ", true},
	}
	for _, tc := range testCases {
		gt.Value(t, usecase.MatchesItemNumber(tc.item, tc.query)).Equal(tc.want)
	}
}

func TestSearchUseCase_SearchPOItems(t *testing.T) {
	ctx := context.Background()

	t.Run("item number is refined case-insensitively", func(t *testing.T) {
		gw := &gatewayMock{
			SearchPOItemsFunc: func(ctx context.Context, c *model.POItemCriteria) ([]*model.POItem, error) {
				return []*model.POItem{
					{ItemNumber: "ITM001"},
					{ItemNumber: "itm001-b"},
					{ItemNumber: "ITM002"},
					{ItemNumber: "AITM001"},
				}, nil
			},
		}
		uc := usecase.NewSearchUseCase(gw)

		res, err := uc.SearchPOItems(ctx, "s1", &model.POItemCriteria{ItemNumber: "itm001"}, model.Page{})
		gt.NoError(t, err).Required()
		gt.Value(t, res.Total).Equal(3)
		for _, r := range res.Rows {
			gt.Value(t, r.ItemNumber).NotEqual("ITM002")
		}
	})

	t.Run("pages and sorts the mock data set", func(t *testing.T) {
		uc := usecase.NewSearchUseCase(gateway.NewMock())

		res, err := uc.SearchPOItems(ctx, "s1", &model.POItemCriteria{}, model.Page{Page: 2, PageSize: 50, SortBy: "itemNumber", Desc: true})
		gt.NoError(t, err).Required()
		gt.Value(t, res.Total).Equal(500)
		gt.A(t, res.Rows).Length(50)
		gt.Value(t, res.Rows[0].ItemNumber).Equal("ITM450")
		gt.Value(t, res.Page.PageSize).Equal(50)
	})

	t.Run("unsupported page size falls back to the default", func(t *testing.T) {
		uc := usecase.NewSearchUseCase(gateway.NewMock())

		res, err := uc.SearchPOItems(ctx, "s1", &model.POItemCriteria{}, model.Page{PageSize: 33})
		gt.NoError(t, err).Required()
		gt.A(t, res.Rows).Length(25)
		gt.Value(t, res.Page.Page).Equal(1)
	})

	t.Run("reversed date range is rejected before the gateway", func(t *testing.T) {
		gw := &gatewayMock{}
		uc := usecase.NewSearchUseCase(gw)

		_, err := uc.SearchPOItems(ctx, "s1", &model.POItemCriteria{DueDateFrom: "2025-02-01", DueDateTo: "2025-01-01"}, model.Page{})
		gt.Error(t, err).Is(model.ErrInvalidCriteria)
	})

	t.Run("null rows from the gateway are skipped", func(t *testing.T) {
		gw := &gatewayMock{
			SearchPOItemsFunc: func(ctx context.Context, c *model.POItemCriteria) ([]*model.POItem, error) {
				return []*model.POItem{{ItemNumber: "ITM001"}, nil}, nil
			},
		}
		uc := usecase.NewSearchUseCase(gw)

		res, err := uc.SearchPOItems(ctx, "s1", &model.POItemCriteria{ItemNumber: "itm"}, model.Page{SortBy: "itemNumber"})
		gt.NoError(t, err).Required()
		gt.Value(t, res.Total).Equal(1)
		gt.Value(t, res.Rows[0].ItemNumber).Equal("ITM001")
	})

	t.Run("gateway error is returned", func(t *testing.T) {
		gw := &gatewayMock{
			SearchPOItemsFunc: func(ctx context.Context, c *model.POItemCriteria) ([]*model.POItem, error) {
				return nil, gateway.ErrSearchFailed
			},
		}
		uc := usecase.NewSearchUseCase(gw)

		_, err := uc.SearchPOItems(ctx, "s1", &model.POItemCriteria{}, model.Page{})
		gt.Error(t, err).Is(gateway.ErrSearchFailed)
	})
}

func TestSearchUseCase_SearchProductionSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("past weeks out of range is rejected", func(t *testing.T) {
		gw := &gatewayMock{}
		uc := usecase.NewSearchUseCase(gw)

		c := &model.ProductionSchedCriteria{
			FilterRows:       []model.FilterRow{{FieldType: types.FieldItem, FilterValue: "ITM001", IsActive: true}},
			OrderTypeFilters: model.OrderTypeFilters{PlannedOrders: true},
			TimePeriod:       model.TimePeriod{PastWeeks: 100, FutureWeeks: 4},
		}
		_, err := uc.SearchProductionSchedule(ctx, "s1", c, model.Page{})
		gt.Error(t, err).Is(model.ErrInvalidCriteria)

		var verrs model.ValidationErrors
		gt.Bool(t, errors.As(err, &verrs)).True()
		gt.Value(t, []string(verrs)).Equal([]string{model.MsgPastWeeksRange})
	})

	t.Run("item row refines the schedule", func(t *testing.T) {
		uc := usecase.NewSearchUseCase(gateway.NewMock())

		c := &model.ProductionSchedCriteria{
			FilterRows: []model.FilterRow{
				{FieldType: types.FieldItem, ComparisonOperator: types.CompareEquals, FilterValue: "itm001", IsActive: true},
			},
			OrderTypeFilters: model.OrderTypeFilters{PlannedOrders: true, FirmedOrders: true},
			TimePeriod:       model.TimePeriod{FutureWeeks: 4},
		}
		res, err := uc.SearchProductionSchedule(ctx, "s1", c, model.Page{PageSize: 12})
		gt.NoError(t, err).Required()
		gt.Value(t, res.Total).Equal(4)
		for _, r := range res.Rows {
			gt.Value(t, r.ItemNum).Equal("ITM001")
			gt.Value(t, r.SQty).Equal(0.0)
		}
	})
}

func TestSearchUseCase_SearchPOsPaid(t *testing.T) {
	uc := usecase.NewSearchUseCase(gateway.NewMock())

	res, err := uc.SearchPOsPaid(context.Background(), "s1", &model.POsPaidCriteria{Vendor: "V100"}, model.Page{PageSize: 100})
	gt.NoError(t, err).Required()
	gt.Value(t, res.Total).Equal(30)
	for _, p := range res.Rows {
		gt.Value(t, p.VendorNum).Equal("V100")
	}
}

func TestSearchUseCase_NewerSearchSupersedesOlder(t *testing.T) {
	started := make(chan struct{})
	gw := &gatewayMock{
		SearchPOItemsFunc: func(ctx context.Context, c *model.POItemCriteria) ([]*model.POItem, error) {
			if c.ItemNumber == "slow" {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			}
			return []*model.POItem{{ItemNumber: "FAST1"}}, nil
		},
	}
	uc := usecase.NewSearchUseCase(gw)
	ctx := context.Background()

	slowErr := make(chan error, 1)
	go func() {
		_, err := uc.SearchPOItems(ctx, "s1", &model.POItemCriteria{ItemNumber: "slow"}, model.Page{})
		slowErr <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("slow search did not start")
	}

	res, err := uc.SearchPOItems(ctx, "s1", &model.POItemCriteria{}, model.Page{})
	gt.NoError(t, err).Required()
	gt.Value(t, res.Total).Equal(1)

	select {
	case err := <-slowErr:
		gt.Error(t, err).Is(usecase.ErrStaleSearch)
	case <-time.After(5 * time.Second):
		t.Fatal("slow search was not cancelled")
	}

	stored, err := uc.LastResult("s1", types.ScreenPOItems)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.Sequence).Equal(res.Sequence)
	gt.Value(t, stored.POItems[0].ItemNumber).Equal("FAST1")
}

func TestSearchUseCase_SessionsAreIndependent(t *testing.T) {
	uc := usecase.NewSearchUseCase(gateway.NewMock())
	ctx := context.Background()

	_, err := uc.SearchPOItems(ctx, "a", &model.POItemCriteria{ItemNumber: "ITM001"}, model.Page{})
	gt.NoError(t, err).Required()
	_, err = uc.SearchPOItems(ctx, "b", &model.POItemCriteria{ItemNumber: "ITM002"}, model.Page{})
	gt.NoError(t, err).Required()

	a, err := uc.LastResult("a", types.ScreenPOItems)
	gt.NoError(t, err).Required()
	gt.Value(t, a.POItems[0].ItemNumber).Equal("ITM001")

	_, err = uc.LastResult("a", types.ScreenPOsPaid)
	gt.Error(t, err).Is(usecase.ErrNoResult)
}

func TestSearchUseCase_ResultRetention(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	uc := usecase.NewSearchUseCase(gateway.NewMock(), usecase.WithResultRetention(10*time.Minute))
	usecase.SetSearchClock(uc, func() time.Time { return now })

	_, err := uc.SearchPOItems(ctx, "old", &model.POItemCriteria{}, model.Page{})
	gt.NoError(t, err).Required()
	_, err = uc.LastResult("old", types.ScreenPOItems)
	gt.NoError(t, err)

	now = now.Add(10 * time.Minute)
	_, err = uc.LastResult("old", types.ScreenPOItems)
	gt.Error(t, err).Is(usecase.ErrNoResult)

	for i := range 5 {
		_, err := uc.SearchPOItems(ctx, fmt.Sprintf("s%d", i), &model.POItemCriteria{}, model.Page{})
		gt.NoError(t, err).Required()
	}
	gt.Value(t, usecase.StoredResultCount(uc)).Equal(5)

	now = now.Add(11 * time.Minute)
	_, err = uc.SearchPOItems(ctx, "new", &model.POItemCriteria{}, model.Page{})
	gt.NoError(t, err).Required()
	gt.Value(t, usecase.StoredResultCount(uc)).Equal(1)

	_, err = uc.LastResult("new", types.ScreenPOItems)
	gt.NoError(t, err)
}

func TestSearchUseCase_LatestNumberWinsUnderConcurrency(t *testing.T) {
	uc := usecase.NewSearchUseCase(gateway.NewMock())

	type started struct {
		ctx     context.Context
		seq     uint64
		release func()
	}
	const n = 64
	results := make([]started, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, seq, release := usecase.BeginSearch(uc, "s1", types.ScreenPOItems)
			results[i] = started{ctx: ctx, seq: seq, release: release}
		}()
	}
	wg.Wait()

	var latest started
	for _, r := range results {
		if r.seq > latest.seq {
			latest = r
		}
	}
	for _, r := range results {
		if r.seq == latest.seq {
			gt.NoError(t, r.ctx.Err())
		} else {
			gt.Error(t, r.ctx.Err()).Is(context.Canceled)
		}
		r.release()
	}
}
