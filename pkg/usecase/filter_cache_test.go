package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/usecase"
)

func TestFilterCache(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cache := usecase.NewFilterCache(5 * time.Minute)
	usecase.SetCacheClock(cache, func() time.Time { return now })

	values := []model.FilterValue{{FieldID: types.FieldWarehouse, FilterID: "W01", FilterDesc: "Arcadia"}}

	t.Run("miss before set", func(t *testing.T) {
		_, ok := cache.Get(types.FieldWarehouse)
		gt.Bool(t, ok).False()
	})

	cache.Set(types.FieldWarehouse, values)

	t.Run("hit within TTL", func(t *testing.T) {
		now = now.Add(4*time.Minute + 59*time.Second)
		got, ok := cache.Get(types.FieldWarehouse)
		gt.Bool(t, ok).True()
		gt.A(t, got).Length(1)
		gt.Value(t, got[0].FilterID).Equal("W01")
	})

	t.Run("expiry is now plus TTL", func(t *testing.T) {
		exp, ok := cache.ExpiresAt(types.FieldWarehouse)
		gt.Bool(t, ok).True()
		gt.Bool(t, exp.Equal(time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC))).True()
	})

	t.Run("miss at expiry", func(t *testing.T) {
		now = time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC)
		_, ok := cache.Get(types.FieldWarehouse)
		gt.Bool(t, ok).False()
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		cache.Set(types.FieldVendor, values)
		got, ok := cache.Get(types.FieldVendor)
		gt.Bool(t, ok).True()
		got[0].FilterDesc = "changed"

		again, _ := cache.Get(types.FieldVendor)
		gt.Value(t, again[0].FilterDesc).Equal("Arcadia")
	})
}
