package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clubops/rosterd/internal/adapters/repository"
	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/mutate"
	. "github.com/smartystreets/goconvey/convey"
)

func storeFixture() []model.Player {
	return []model.Player{
		{
			ID: "p1", Name: "alice hart", MainTeam: "PL", Status: "Returning",
			Appearances: []model.Appearance{
				{Team: "PL", Games: 15, IsMain: true},
				{Team: "PB", Games: 3},
			},
		},
		{
			ID: "p2", Name: "Ben Young", MainTeam: "PB", Status: "Not returning",
			Appearances: []model.Appearance{{Team: "PB", Games: 12, IsMain: true}},
		},
		{
			ID: "p3", Name: "Cara Im", Status: "Not heard from", Recruit: true,
		},
	}
}

func TestMemStoreListAndGet(t *testing.T) {
	Convey("Given a preloaded store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(repository.WithPlayers(storeFixture()))

		Convey("When listing everyone", func() {
			players, err := store.ListPlayers(ctx, repository.Filter{})

			Convey("Then all players come back name-sorted", func() {
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 3)
				So(players[0].Name, ShouldEqual, "alice hart")
				So(players[1].Name, ShouldEqual, "Ben Young")
				So(players[2].Name, ShouldEqual, "Cara Im")
			})
		})

		Convey("When filtering by team", func() {
			players, err := store.ListPlayers(ctx, repository.Filter{Team: "PB"})

			Convey("Then main and fill-in appearances both match", func() {
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 2)
			})
		})

		Convey("When filtering to recruits", func() {
			players, err := store.ListPlayers(ctx, repository.Filter{RecruitsOnly: true})
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 1)
			So(players[0].ID, ShouldEqual, "p3")
		})

		Convey("When getting one player", func() {
			p, err := store.GetPlayer(ctx, "p1")
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "alice hart")
			So(p.Appearances, ShouldHaveLength, 2)
		})

		Convey("When getting a missing player", func() {
			_, err := store.GetPlayer(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When mutating a returned player", func() {
			p, err := store.GetPlayer(ctx, "p1")
			So(err, ShouldBeNil)
			p.Appearances[0].Games = 99

			Convey("Then the stored copy is untouched", func() {
				again, err := store.GetPlayer(ctx, "p1")
				So(err, ShouldBeNil)
				So(again.Appearances[0].Games, ShouldEqual, 15)
			})
		})

		Convey("Then Count matches", func() {
			So(store.Count(ctx), ShouldEqual, 3)
		})
	})
}

func TestMemStoreWrites(t *testing.T) {
	Convey("Given a store with a fixed clock", t, func() {
		ctx := context.Background()
		at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
		store := repository.NewMemStore(
			repository.WithPlayers(storeFixture()),
			repository.WithClock(func() time.Time { return at }),
		)
		str := func(s string) *string { return &s }

		Convey("When putting a new player", func() {
			err := store.PutPlayer(ctx, model.Player{ID: "p4", Name: "Dana Cole"})
			So(err, ShouldBeNil)

			Convey("Then timestamps are stamped", func() {
				p, err := store.GetPlayer(ctx, "p4")
				So(err, ShouldBeNil)
				So(p.CreatedAt, ShouldEqual, "2026-01-15T10:00:00Z")
				So(p.UpdatedAt, ShouldEqual, "2026-01-15T10:00:00Z")
			})
		})

		Convey("When patching a player", func() {
			p, err := store.UpdatePlayer(ctx, "p1", mutate.Patch{Status: str("Not returning"), Notes: str("knee")})

			Convey("Then only the patched fields change", func() {
				So(err, ShouldBeNil)
				So(p.Status, ShouldEqual, "Not returning")
				So(p.Notes, ShouldEqual, "knee")
				So(p.Name, ShouldEqual, "alice hart")
				So(p.UpdatedAt, ShouldEqual, "2026-01-15T10:00:00Z")
			})
		})

		Convey("When patching a missing player", func() {
			_, err := store.UpdatePlayer(ctx, "nope", mutate.Patch{Status: str("Returning")})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When adding and removing an appearance", func() {
			p, err := store.AddAppearance(ctx, "p2", "PL", 4)
			So(err, ShouldBeNil)
			So(p.Appearances, ShouldHaveLength, 2)

			So(store.RemoveAppearance(ctx, "p2", "PL"), ShouldBeNil)
			p, err = store.GetPlayer(ctx, "p2")
			So(err, ShouldBeNil)
			So(p.Appearances, ShouldHaveLength, 1)
		})

		Convey("When removing an absent appearance", func() {
			err := store.RemoveAppearance(ctx, "p2", "Metro")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
