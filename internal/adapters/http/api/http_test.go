package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clubops/rosterd/internal/adapters/http/api"
	"github.com/clubops/rosterd/internal/adapters/repository"
	service "github.com/clubops/rosterd/internal/app"
	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/refdata"
	"github.com/clubops/rosterd/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func testRef() *refdata.Set {
	return refdata.New(
		[]string{"PL", "PB", "Metro"},
		[]string{"Returning", "Not returning", "Not heard from"},
		[]string{"GK", "Striker"},
	)
}

func clubFixture() []model.Player {
	return []model.Player{
		{
			ID: "p1", Name: "Alice Hart", MainTeam: "PL", Status: "Returning", Position: "GK",
			Team2026: "PL",
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

func newTestServer() *httptest.Server {
	svc := service.New(
		service.WithReference(testRef()),
		service.WithStore(repository.NewMemStore(repository.WithPlayers(clubFixture()))),
	)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func getJSON(t *testing.T, ts *httptest.Server, path string, v any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, body string, v any) int {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build %s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestHealthAndMeta(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When checking health", func() {
			var body map[string]string
			code := getJSON(t, ts, "/healthz", &body)
			So(code, ShouldEqual, http.StatusOK)
			So(body["status"], ShouldEqual, "ok")
		})

		Convey("When scraping metrics", func() {
			resp, err := http.Get(ts.URL + "/metrics")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()
		})

		Convey("When fetching stats", func() {
			var stats map[string]any
			code := getJSON(t, ts, "/stats", &stats)
			So(code, ShouldEqual, http.StatusOK)
			So(stats["players"], ShouldEqual, 3)
		})

		Convey("When fetching the reference lists", func() {
			var teams []string
			So(getJSON(t, ts, "/api/teams", &teams), ShouldEqual, http.StatusOK)
			So(teams, ShouldResemble, []string{"PL", "PB", "Metro"})

			var statuses []string
			So(getJSON(t, ts, "/api/statuses", &statuses), ShouldEqual, http.StatusOK)
			So(statuses, ShouldHaveLength, 3)

			var positions []string
			So(getJSON(t, ts, "/api/positions", &positions), ShouldEqual, http.StatusOK)
			So(positions, ShouldResemble, []string{"GK", "Striker"})
		})
	})
}

func TestPlayerRoutes(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When listing players", func() {
			var players []model.Player
			code := getJSON(t, ts, "/api/players", &players)
			So(code, ShouldEqual, http.StatusOK)
			So(players, ShouldHaveLength, 3)
		})

		Convey("When filtering by team, recruit flag, and name", func() {
			var players []model.Player
			So(getJSON(t, ts, "/api/players?team=PB", &players), ShouldEqual, http.StatusOK)
			So(players, ShouldHaveLength, 2)

			So(getJSON(t, ts, "/api/players?recruits=true", &players), ShouldEqual, http.StatusOK)
			So(players, ShouldHaveLength, 1)
			So(players[0].ID, ShouldEqual, "p3")

			So(getJSON(t, ts, "/api/players?q=young", &players), ShouldEqual, http.StatusOK)
			So(players, ShouldHaveLength, 1)
		})

		Convey("When no player matches", func() {
			var players []model.Player
			So(getJSON(t, ts, "/api/players?q=nobody", &players), ShouldEqual, http.StatusOK)

			Convey("Then the body is an empty array, not null", func() {
				So(players, ShouldNotBeNil)
				So(players, ShouldBeEmpty)
			})
		})

		Convey("When fetching one player", func() {
			var p model.Player
			code := getJSON(t, ts, "/api/players/p1", &p)
			So(code, ShouldEqual, http.StatusOK)
			So(p.Name, ShouldEqual, "Alice Hart")
			So(p.Appearances, ShouldHaveLength, 2)
		})

		Convey("When fetching a missing player", func() {
			So(getJSON(t, ts, "/api/players/nope", nil), ShouldEqual, http.StatusNotFound)
		})

		Convey("When patching a player", func() {
			var p model.Player
			code := doJSON(t, ts, http.MethodPatch, "/api/players/p3",
				`{"status":"Returning","notes":"called 12 Jan"}`, &p)
			So(code, ShouldEqual, http.StatusOK)
			So(p.Status, ShouldEqual, "Returning")
			So(p.Notes, ShouldEqual, "called 12 Jan")
		})

		Convey("When patching with an invalid status", func() {
			code := doJSON(t, ts, http.MethodPatch, "/api/players/p3", `{"status":"Maybe"}`, nil)
			So(code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When patching with an unknown 2026 team", func() {
			code := doJSON(t, ts, http.MethodPatch, "/api/players/p3", `{"team_2026":"Rogue"}`, nil)
			So(code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When patching with an empty body", func() {
			code := doJSON(t, ts, http.MethodPatch, "/api/players/p3", `{}`, nil)
			So(code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When patching with malformed JSON", func() {
			code := doJSON(t, ts, http.MethodPatch, "/api/players/p3", `{"status"`, nil)
			So(code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When clearing a position via empty string", func() {
			var p model.Player
			code := doJSON(t, ts, http.MethodPatch, "/api/players/p1", `{"position":""}`, &p)
			So(code, ShouldEqual, http.StatusOK)
			So(p.Position, ShouldEqual, "")
		})
	})
}

func TestAppearanceRoutes(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When adding a fill-in appearance", func() {
			var p model.Player
			code := doJSON(t, ts, http.MethodPost, "/api/players/p2/appearances",
				`{"team":"Metro","games":2}`, &p)

			Convey("Then it lands with 201", func() {
				So(code, ShouldEqual, http.StatusCreated)
				So(p.HasAppearance("Metro"), ShouldBeTrue)
			})

			Convey("And adding the same team again conflicts", func() {
				code := doJSON(t, ts, http.MethodPost, "/api/players/p2/appearances",
					`{"team":"Metro","games":2}`, nil)
				So(code, ShouldEqual, http.StatusConflict)
			})

			Convey("And deleting it succeeds", func() {
				var ok map[string]bool
				code := doJSON(t, ts, http.MethodDelete, "/api/players/p2/appearances/Metro", "", &ok)
				So(code, ShouldEqual, http.StatusOK)
				So(ok["ok"], ShouldBeTrue)
			})
		})

		Convey("When adding an appearance for an unknown team", func() {
			code := doJSON(t, ts, http.MethodPost, "/api/players/p2/appearances",
				`{"team":"Rogue","games":2}`, nil)
			So(code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the team field is missing", func() {
			code := doJSON(t, ts, http.MethodPost, "/api/players/p2/appearances", `{"games":2}`, nil)
			So(code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When deleting a main appearance", func() {
			code := doJSON(t, ts, http.MethodDelete, "/api/players/p2/appearances/PB", "", nil)
			So(code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When deleting an absent appearance", func() {
			code := doJSON(t, ts, http.MethodDelete, "/api/players/p2/appearances/Metro", "", nil)
			So(code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the player does not exist", func() {
			code := doJSON(t, ts, http.MethodPost, "/api/players/nope/appearances",
				`{"team":"Metro","games":2}`, nil)
			So(code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestPlanningRoutes(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When fetching team planning", func() {
			var view struct {
				Team        string         `json:"team"`
				MainSquad   []model.Player `json:"main_squad_2025"`
				FillIns     []model.Player `json:"fill_ins_2025"`
				Planned2026 []model.Player `json:"squad_2026"`
			}
			code := getJSON(t, ts, "/api/planning/PB", &view)

			Convey("Then the three squad lists come back", func() {
				So(code, ShouldEqual, http.StatusOK)
				So(view.Team, ShouldEqual, "PB")
				So(view.MainSquad, ShouldHaveLength, 1)
				So(view.FillIns, ShouldHaveLength, 1)
				So(view.Planned2026, ShouldNotBeNil)
				So(view.Planned2026, ShouldBeEmpty)
			})
		})

		Convey("When fetching planning for an unknown team", func() {
			So(getJSON(t, ts, "/api/planning/Rogue", nil), ShouldEqual, http.StatusBadRequest)
		})

		Convey("When fetching planning with no team", func() {
			So(getJSON(t, ts, "/api/planning/", nil), ShouldEqual, http.StatusBadRequest)
		})

		Convey("When fetching the dashboard", func() {
			var sum struct {
				Teams        map[string]map[string]any `json:"teams"`
				TotalMain    int                       `json:"total_main"`
				TotalFillIns int                       `json:"total_fill_ins"`
			}
			code := getJSON(t, ts, "/api/dashboard", &sum)
			So(code, ShouldEqual, http.StatusOK)
			So(sum.TotalMain, ShouldEqual, 2)
			So(sum.TotalFillIns, ShouldEqual, 1)
			So(sum.Teams, ShouldContainKey, "Metro")
		})

		Convey("When fetching goalkeepers and recruits", func() {
			var gks []model.Player
			So(getJSON(t, ts, "/api/goalkeepers", &gks), ShouldEqual, http.StatusOK)
			So(gks, ShouldHaveLength, 1)
			So(gks[0].Position, ShouldEqual, "GK")

			var recruits []model.Player
			So(getJSON(t, ts, "/api/recruits", &recruits), ShouldEqual, http.StatusOK)
			So(recruits, ShouldHaveLength, 1)
		})
	})
}

func TestErrorBodies(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When a request fails", func() {
			var body struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			code := getJSON(t, ts, "/api/players/nope", &body)

			Convey("Then the body carries a machine-readable code", func() {
				So(code, ShouldEqual, http.StatusNotFound)
				So(body.Code, ShouldEqual, "not_found")
				So(body.Message, ShouldNotBeEmpty)
			})
		})
	})
}
