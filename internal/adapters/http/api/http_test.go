package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/standings/internal/adapters/http/api"
	service "github.com/okian/standings/internal/app"
	"github.com/okian/standings/internal/domain/types"
	"github.com/okian/standings/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type mockLeaderboard struct {
	board types.Board
	err   error
	calls int
}

func (m *mockLeaderboard) Leaderboard(ctx context.Context, req types.Request) (types.Board, error) {
	m.calls++
	if m.err != nil {
		return types.Board{}, m.err
	}
	return m.board, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newMux(deps api.LeaderboardDependencies, stats api.StatsProvider) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, stats).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(&mockLeaderboard{}, &mockStatsProvider{stats: map[string]interface{}{"leaderboards": 3}})

		Convey("Then the health endpoint serves metrics", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/plain")
		})

		Convey("Then the stats endpoint serves JSON", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["leaderboards"], ShouldEqual, 3.0)
		})

		Convey("Then stats rejects other methods", func() {
			w := do(mux, http.MethodPost, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then unknown paths are not found", func() {
			w := do(mux, http.MethodGet, "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then every response carries a request id", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("Then a caller supplied request id is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})
	})
}

func TestLeaderboardHandler(t *testing.T) {
	Convey("Given a leaderboard handler backed by a mock", t, func() {
		lb := &mockLeaderboard{}
		mux := newMux(lb, nil)

		Convey("When the method is not POST", func() {
			w := do(mux, http.MethodGet, "/leaderboard", "")

			Convey("Then it is not found and the service is not called", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(lb.calls, ShouldEqual, 0)
			})
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/leaderboard", "{nope")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body errorBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "bad_request")
				So(lb.calls, ShouldEqual, 0)
			})
		})

		Convey("When the body has trailing data after the JSON value", func() {
			w := do(mux, http.MethodPost, "/leaderboard", `{"results":[]} garbage{{`)

			Convey("Then it is a bad request and the service is not called", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body errorBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "bad_request")
				So(lb.calls, ShouldEqual, 0)
			})
		})

		Convey("When the body carries a second JSON value", func() {
			w := do(mux, http.MethodPost, "/leaderboard", `{"results":[]}{"results":[]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(lb.calls, ShouldEqual, 0)
		})

		Convey("When the body ends with whitespace", func() {
			w := do(mux, http.MethodPost, "/leaderboard", "{\"results\":[]}\n  \n")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(lb.calls, ShouldEqual, 1)
		})

		Convey("When the body is larger than allowed", func() {
			body := `{"results":[],"pad":"` + strings.Repeat("x", 32<<20) + `"}`
			w := do(mux, http.MethodPost, "/leaderboard", body)

			Convey("Then it is rejected as too large", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(w.Body.String(), ShouldContainSubstring, "payload_too_large")
				So(lb.calls, ShouldEqual, 0)
			})
		})

		Convey("When the service reports too many entries", func() {
			lb.err = types.ErrTooManyEntries
			w := do(mux, http.MethodPost, "/leaderboard", `{"results":[]}`)

			Convey("Then the limit is reported", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body errorBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When the service reports an invalid score", func() {
			lb.err = types.ErrInvalidScore
			w := do(mux, http.MethodPost, "/leaderboard", `{"results":[]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the service fails unexpectedly", func() {
			lb.err = errors.New("boom")
			w := do(mux, http.MethodPost, "/leaderboard", `{"results":[]}`)

			Convey("Then it is an internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var body errorBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "internal_error")
			})
		})
	})
}

func TestLeaderboardEndToEnd(t *testing.T) {
	Convey("Given the API wired to the ranking service", t, func() {
		svc := service.New(service.WithMaxEntries(5))
		mux := newMux(svc, svc)

		Convey("When posting tied numeric scores", func() {
			w := do(mux, http.MethodPost, "/leaderboard",
				`{"results":[{"name":"Alice","score":100},{"name":"Bob","score":90},{"name":"Charlie","score":90},{"name":"David","score":80}]}`)

			Convey("Then the board is ranked 1224", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var board struct {
					Scale     string      `json:"scale"`
					Direction string      `json:"direction"`
					Entries   []types.Entry `json:"entries"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &board), ShouldBeNil)
				So(board.Scale, ShouldEqual, "numeric")
				So(board.Direction, ShouldEqual, "desc")
				So(len(board.Entries), ShouldEqual, 4)
				ranks := []int{board.Entries[0].Rank, board.Entries[1].Rank, board.Entries[2].Rank, board.Entries[3].Rank}
				So(ranks, ShouldResemble, []int{1, 2, 2, 4})
				So(board.Entries[1].Name, ShouldEqual, "Bob")
				So(board.Entries[2].Name, ShouldEqual, "Charlie")
			})
		})

		Convey("When posting verdicts lowest first", func() {
			w := do(mux, http.MethodPost, "/leaderboard",
				`{"scale":"verdict","direction":"asc","results":[{"name":"Luke","score":"Awesome"},{"name":"C3PO","score":"I Can't Even"}]}`)

			Convey("Then labels come back as text", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"name":"C3PO","score":"I Can't Even"`)
			})
		})

		Convey("When posting more results than allowed", func() {
			w := do(mux, http.MethodPost, "/leaderboard",
				`{"results":[{"name":"a","score":1},{"name":"b","score":1},{"name":"c","score":1},{"name":"d","score":1},{"name":"e","score":1},{"name":"f","score":1}]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})

		Convey("When posting an unknown scale", func() {
			w := do(mux, http.MethodPost, "/leaderboard", `{"scale":"stars","results":[]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting an unknown direction", func() {
			w := do(mux, http.MethodPost, "/leaderboard", `{"direction":"up","results":[]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then stats reflect served boards", func() {
			_ = do(mux, http.MethodPost, "/leaderboard", `{"results":[{"name":"a","score":1}]}`)
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Body.String(), ShouldContainSubstring, `"leaderboards":1`)
		})
	})
}
