package verdict_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/standings/internal/domain/verdict"
	"github.com/okian/standings/pkg/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVerdictOrdering(t *testing.T) {
	Convey("Given the verdict scale", t, func() {
		all := verdict.All()

		Convey("Then it has seven levels from worst to best", func() {
			So(len(all), ShouldEqual, 7)
			So(all[0], ShouldEqual, verdict.ICantEven)
			So(all[6], ShouldEqual, verdict.Awesome)
		})

		Convey("Then every level compares below its successor", func() {
			for i := 1; i < len(all); i++ {
				So(all[i-1].Compare(all[i]), ShouldBeLessThan, 0)
				So(all[i].Compare(all[i-1]), ShouldBeGreaterThan, 0)
			}
		})

		Convey("Then a level compares equal to itself", func() {
			for _, v := range all {
				So(v.Compare(v), ShouldEqual, 0)
			}
		})
	})
}

func TestVerdictParse(t *testing.T) {
	Convey("Given verdict labels", t, func() {
		Convey("When parsing canonical labels", func() {
			for _, v := range verdict.All() {
				parsed, err := verdict.Parse(v.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, v)
			}
		})

		Convey("When parsing loose spellings", func() {
			for _, label := range []string{"icanteven", "I_CANT_EVEN", " i can't even ", "I-Can’t-Even"} {
				parsed, err := verdict.Parse(label)
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, verdict.ICantEven)
			}
			parsed, err := verdict.Parse("omg")
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, verdict.OMG)
		})

		Convey("When parsing an unknown label", func() {
			_, err := verdict.Parse("Mediocre")
			So(errors.Is(err, verdict.ErrUnknownVerdict), ShouldBeTrue)
		})
	})
}

func TestVerdictText(t *testing.T) {
	Convey("Given a verdict in JSON", t, func() {
		Convey("When marshaling", func() {
			data, err := json.Marshal([]verdict.Verdict{verdict.Meh, verdict.ICantEven})
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `["Meh","I Can't Even"]`)
		})

		Convey("When unmarshaling", func() {
			var got []verdict.Verdict
			err := json.Unmarshal([]byte(`["great","OMG"]`), &got)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []verdict.Verdict{verdict.Great, verdict.OMG})
		})

		Convey("When marshaling an out of range value", func() {
			_, err := json.Marshal(verdict.Verdict(42))
			So(err, ShouldNotBeNil)
			So(verdict.Verdict(42).String(), ShouldEqual, "Verdict(42)")
		})
	})
}

func TestVerdictLeaderboard(t *testing.T) {
	Convey("Given verdict results ranked lowest first", t, func() {
		engine := ranking.NewComparable[verdict.Verdict](ranking.WithDirection(ranking.Ascending))
		input := []ranking.ScoredEntry[verdict.Verdict]{
			{Name: "Vader", Score: verdict.Bad},
			{Name: "Luke", Score: verdict.Awesome},
			{Name: "Palpatine", Score: verdict.Bad},
			{Name: "Chewie", Score: verdict.Meh},
			{Name: "C3PO", Score: verdict.ICantEven},
		}

		board := engine.GenerateLeaderboard(input)

		Convey("Then the tied Bad pair shares rank 2 and rank 3 is skipped", func() {
			names := make([]string, len(board))
			ranks := make([]int, len(board))
			for i, e := range board {
				names[i] = e.Name
				ranks[i] = e.Rank
			}
			So(names, ShouldResemble, []string{"C3PO", "Vader", "Palpatine", "Chewie", "Luke"})
			So(ranks, ShouldResemble, []int{1, 2, 2, 4, 5})
		})
	})

	Convey("Given verdict results ranked highest first", t, func() {
		engine := ranking.NewComparable[verdict.Verdict]()
		board := engine.GenerateLeaderboard([]ranking.ScoredEntry[verdict.Verdict]{
			{Name: "a", Score: verdict.Good},
			{Name: "b", Score: verdict.Great},
			{Name: "c", Score: verdict.Good},
		})

		Convey("Then Great leads and the Good pair ties at 2", func() {
			So(board[0].Name, ShouldEqual, "b")
			So(board[0].Rank, ShouldEqual, 1)
			So(board[1].Rank, ShouldEqual, 2)
			So(board[2].Rank, ShouldEqual, 2)
		})
	})
}
