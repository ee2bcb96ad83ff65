package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/standings/internal/domain/types"
	"github.com/okian/standings/internal/domain/verdict"
	"github.com/okian/standings/pkg/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRequestDecoding(t *testing.T) {
	Convey("Given a leaderboard request body", t, func() {
		body := `{"scale":"verdict","direction":"asc","results":[{"name":"Luke","score":"Awesome"},{"name":"Vader","score":12}]}`

		Convey("When decoding it", func() {
			var req types.Request
			err := json.Unmarshal([]byte(body), &req)

			Convey("Then scores stay raw until the scale is applied", func() {
				So(err, ShouldBeNil)
				So(req.Scale, ShouldEqual, types.ScaleVerdict)
				So(req.Direction, ShouldEqual, "asc")
				So(len(req.Results), ShouldEqual, 2)
				So(string(req.Results[0].Score), ShouldEqual, `"Awesome"`)
				So(string(req.Results[1].Score), ShouldEqual, `12`)
			})
		})

		Convey("When scale and direction are omitted", func() {
			var req types.Request
			err := json.Unmarshal([]byte(`{"results":[]}`), &req)

			Convey("Then they decode to their zero values", func() {
				So(err, ShouldBeNil)
				So(req.Scale, ShouldEqual, types.Scale(""))
				So(req.Direction, ShouldEqual, "")
				So(req.Results, ShouldNotBeNil)
			})
		})
	})
}

func TestBoardEncoding(t *testing.T) {
	Convey("Given a ranked board", t, func() {
		board := types.Board{
			Scale:     types.ScaleVerdict,
			Direction: ranking.Ascending,
			Entries: []types.Entry{
				{Rank: 1, Name: "C3PO", Score: verdict.ICantEven, Percentile: 100},
				{Rank: 2, Name: "Vader", Score: 9.5, Percentile: 0},
			},
		}

		Convey("When encoding it", func() {
			data, err := json.Marshal(board)

			Convey("Then direction and verdict scores are written as text", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual,
					`{"scale":"verdict","direction":"asc","entries":[`+
						`{"rank":1,"name":"C3PO","score":"I Can't Even","percentile":100},`+
						`{"rank":2,"name":"Vader","score":9.5,"percentile":0}]}`)
			})
		})
	})
}
