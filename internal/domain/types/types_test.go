package types_test

import (
	"encoding/json"
	"testing"

	"github.com/clubops/rosterd/internal/domain/model"
	types "github.com/clubops/rosterd/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPlanningView(t *testing.T) {
	Convey("Given a planning view", t, func() {
		view := types.PlanningView{
			Team:        "PB",
			MainSquad:   []model.Player{{ID: "p1", Name: "Alice Hart"}},
			FillIns:     []model.Player{},
			Planned2026: []model.Player{},
		}

		Convey("When marshalled", func() {
			b, err := json.Marshal(view)
			So(err, ShouldBeNil)

			Convey("Then the season-labelled keys are used", func() {
				s := string(b)
				So(s, ShouldContainSubstring, `"team":"PB"`)
				So(s, ShouldContainSubstring, `"main_squad_2025"`)
				So(s, ShouldContainSubstring, `"fill_ins_2025":[]`)
				So(s, ShouldContainSubstring, `"squad_2026":[]`)
			})
		})
	})
}
