package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/paceline/paceline/internal/adapters/repository"
	"github.com/paceline/paceline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func snap(loadID string, n int) *repository.Snapshot {
	records := make([]model.Record, n)
	for i := range records {
		records[i] = model.Record{Runner: "Runner", Year: 2023, PaceSeconds: 300}
	}
	return &repository.Snapshot{
		LoadID:   loadID,
		LoadedAt: time.Now(),
		Records:  records,
	}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(ctx)

		Convey("Then there is no snapshot before the first load", func() {
			_, ok := store.Snapshot(ctx)
			So(ok, ShouldBeFalse)
		})

		Convey("When a load begins and commits", func() {
			token := store.Begin(ctx)
			committed := store.Replace(ctx, token, snap("first", 3))

			So(committed, ShouldBeTrue)

			Convey("Then the snapshot is readable", func() {
				got, ok := store.Snapshot(ctx)
				So(ok, ShouldBeTrue)
				So(got.LoadID, ShouldEqual, "first")
				So(got.Records, ShouldHaveLength, 3)
			})
		})

		Convey("When tokens commit in begin order", func() {
			t1 := store.Begin(ctx)
			t2 := store.Begin(ctx)

			So(store.Replace(ctx, t1, snap("first", 1)), ShouldBeTrue)
			So(store.Replace(ctx, t2, snap("second", 2)), ShouldBeTrue)

			Convey("Then the newer load wins", func() {
				got, _ := store.Snapshot(ctx)
				So(got.LoadID, ShouldEqual, "second")
			})
		})

		Convey("When an older load commits after a newer one", func() {
			t1 := store.Begin(ctx)
			t2 := store.Begin(ctx)

			So(store.Replace(ctx, t2, snap("newer", 2)), ShouldBeTrue)

			Convey("Then the stale commit is discarded", func() {
				So(store.Replace(ctx, t1, snap("stale", 1)), ShouldBeFalse)

				got, _ := store.Snapshot(ctx)
				So(got.LoadID, ShouldEqual, "newer")
				So(got.Records, ShouldHaveLength, 2)
			})
		})

		Convey("When the same token commits twice", func() {
			token := store.Begin(ctx)

			So(store.Replace(ctx, token, snap("once", 1)), ShouldBeTrue)
			So(store.Replace(ctx, token, snap("twice", 1)), ShouldBeFalse)

			got, _ := store.Snapshot(ctx)
			So(got.LoadID, ShouldEqual, "once")
		})

		Convey("When tokens are reserved concurrently", func() {
			const loaders = 16
			tokens := make(chan uint64, loaders)
			for i := 0; i < loaders; i++ {
				go func() { tokens <- store.Begin(ctx) }()
			}

			Convey("Then every token is distinct", func() {
				seen := make(map[uint64]struct{}, loaders)
				for i := 0; i < loaders; i++ {
					seen[<-tokens] = struct{}{}
				}
				So(seen, ShouldHaveLength, loaders)
			})
		})
	})
}
