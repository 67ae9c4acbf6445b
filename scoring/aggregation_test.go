package scoring

import (
	"testing"
	"time"

	"fairway/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func testCourse() *repository.Course {
	pars := make(pq.Int64Array, 18)
	index := make(pq.Int64Array, 18)
	for i := range pars {
		pars[i] = 4
		index[i] = int64(i + 1)
	}
	return &repository.Course{Id: 1, Name: "Fairview", Pars: pars, StrokeIndex: index}
}

func fullRound(score int) pq.Int64Array {
	scores := make(pq.Int64Array, 18)
	for i := range scores {
		scores[i] = int64(score)
	}
	return scores
}

func TestAggregateGrossFullRound(t *testing.T) {
	competition := &repository.Competition{ScoringMode: repository.ScoringModeGross}
	participant := &repository.Participant{Id: 1, Name: "Ann", Score: fullRound(5), IsLocked: true}

	card, err := AggregateScore(participant, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 18, card.HolesPlayed)
	assert.Equal(t, 90, card.GrossTotal)
	assert.Equal(t, 18, card.RelativeToPar)
	assert.True(t, card.Finished)
	assert.Nil(t, card.NetTotal)
}

func TestAggregatePartialRoundNotFinished(t *testing.T) {
	competition := &repository.Competition{ScoringMode: repository.ScoringModeGross}
	scores := make(pq.Int64Array, 18)
	for i := 0; i < 9; i++ {
		scores[i] = 4
	}
	participant := &repository.Participant{Id: 1, Name: "Ann", Score: scores}

	card, err := AggregateScore(participant, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 9, card.HolesPlayed)
	assert.Equal(t, 36, card.GrossTotal)
	assert.Equal(t, 0, card.RelativeToPar)
	assert.False(t, card.Finished)
	assert.False(t, card.DNF)
	assert.True(t, card.HasStarted())
}

func TestUnreportedHolePoisonsNet(t *testing.T) {
	competition := &repository.Competition{ScoringMode: repository.ScoringModeBoth}
	scores := fullRound(4)
	scores[3] = repository.UnreportedHole
	participant := &repository.Participant{Id: 1, Name: "Ann", Score: scores, HandicapIndex: floatPtr(10), IsLocked: true}

	card, err := AggregateScore(participant, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	// the sentinel counts as played but blocks completion and net scoring
	assert.Equal(t, 18, card.HolesPlayed)
	assert.True(t, card.HasUnreported)
	assert.False(t, card.Finished)
	assert.Nil(t, card.NetTotal)
	assert.Nil(t, card.CourseHandicap)
	assert.Equal(t, 68, card.GrossTotal)
}

func TestFullRoundNetMatchesPerHoleSum(t *testing.T) {
	course := testCourse()
	tee := &repository.Tee{CourseRating: 71.2, SlopeRating: 128}
	competition := &repository.Competition{ScoringMode: repository.ScoringModeNet, Tee: tee}
	participant := &repository.Participant{Id: 1, Name: "Ann", Score: fullRound(5), HandicapIndex: floatPtr(9.4), IsLocked: true}

	card, err := AggregateScore(participant, course, competition, time.Now())
	assert.NoError(t, err)
	assert.NotNil(t, card.CourseHandicap)
	assert.Equal(t, 10, *card.CourseHandicap)
	assert.Equal(t, 80, *card.NetTotal)
	assert.Equal(t, 8, *card.NetRelativeToPar)

	// the per-hole subtraction gives the same total on a full round
	strokes, err := DistributeStrokes(*card.CourseHandicap, course.StrokeIndexValues())
	assert.NoError(t, err)
	perHole := 0
	for hole, score := range participant.HoleScores() {
		perHole += score - strokes[hole]
	}
	assert.Equal(t, *card.NetTotal, perHole)
}

func TestPartialNetUsesPlayedParBaseline(t *testing.T) {
	competition := &repository.Competition{ScoringMode: repository.ScoringModeNet}
	scores := make(pq.Int64Array, 18)
	for i := 0; i < 9; i++ {
		scores[i] = 5
	}
	// hi 10 on the neutral slope gives a course handicap of 10, so the first
	// nine holes (stroke index 1..9) each receive one stroke
	participant := &repository.Participant{Id: 1, Name: "Ann", Score: scores, HandicapIndex: floatPtr(10)}

	card, err := AggregateScore(participant, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 10, *card.CourseHandicap)
	assert.Equal(t, 36, *card.NetTotal)
	assert.Equal(t, 0, *card.NetRelativeToPar)
}

func TestManualScore(t *testing.T) {
	competition := &repository.Competition{ScoringMode: repository.ScoringModeBoth}
	participant := &repository.Participant{Id: 1, Name: "Ann", ManualTotal: intPtr(85), HandicapIndex: floatPtr(10)}

	card, err := AggregateScore(participant, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	assert.True(t, card.Finished)
	assert.Equal(t, 18, card.HolesPlayed)
	assert.Equal(t, 85, card.GrossTotal)
	assert.Equal(t, 13, card.RelativeToPar)
	assert.Equal(t, 75, *card.NetTotal)
	assert.Equal(t, 3, *card.NetRelativeToPar)
}

func TestManualOutInHalves(t *testing.T) {
	competition := &repository.Competition{ScoringMode: repository.ScoringModeGross}
	participant := &repository.Participant{Id: 1, Name: "Ann", ManualOut: intPtr(40), ManualIn: intPtr(42)}

	card, err := AggregateScore(participant, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 82, card.GrossTotal)
	assert.True(t, card.Finished)
}

func TestOpenWindowClassification(t *testing.T) {
	closed := time.Now().Add(-time.Hour)
	competition := &repository.Competition{
		ScoringMode: repository.ScoringModeGross,
		StartMode:   repository.StartModeOpen,
		OpenEnd:     timePtr(closed),
	}

	scores := make(pq.Int64Array, 18)
	for i := 0; i < 12; i++ {
		scores[i] = 4
	}
	abandoned := &repository.Participant{Id: 1, Name: "Ann", Score: scores}
	card, err := AggregateScore(abandoned, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	assert.False(t, card.Finished)
	assert.True(t, card.DNF)

	// a full unlocked round completes once the window closes
	complete := &repository.Participant{Id: 2, Name: "Bea", Score: fullRound(4)}
	card, err = AggregateScore(complete, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	assert.True(t, card.Finished)
	assert.False(t, card.DNF)
}

func TestNetRequiresStrokeIndex(t *testing.T) {
	course := testCourse()
	course.StrokeIndex = nil
	competition := &repository.Competition{ScoringMode: repository.ScoringModeNet}
	participant := &repository.Participant{Id: 1, Name: "Ann", Score: fullRound(5), HandicapIndex: floatPtr(10), IsLocked: true}

	_, err := AggregateScore(participant, course, competition, time.Now())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "strokeIndex")
}

func TestDisqualifiedNeverFinishes(t *testing.T) {
	competition := &repository.Competition{ScoringMode: repository.ScoringModeGross}
	participant := &repository.Participant{Id: 1, Name: "Ann", Score: fullRound(4), IsLocked: true, IsDQ: true}

	card, err := AggregateScore(participant, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	assert.False(t, card.Finished)
	assert.False(t, card.DNF)
	assert.True(t, card.DQ)
}

func TestCategoryTeeOverride(t *testing.T) {
	competition := &repository.Competition{
		ScoringMode: repository.ScoringModeNet,
		Tee:         &repository.Tee{CourseRating: 72, SlopeRating: 113},
		CategoryTees: []*repository.CategoryTee{
			{CategoryId: 2, Tee: &repository.Tee{CourseRating: 74, SlopeRating: 130}},
		},
	}
	participant := &repository.Participant{
		Id: 1, Name: "Ann", CategoryId: intPtr(2),
		Score: fullRound(5), HandicapIndex: floatPtr(10), IsLocked: true,
	}

	card, err := AggregateScore(participant, testCourse(), competition, time.Now())
	assert.NoError(t, err)
	// round(10*130/113 + (74-72)) = round(13.50) = 14
	assert.Equal(t, 14, *card.CourseHandicap)
}

func TestAggregateRejectsMalformedScores(t *testing.T) {
	competition := &repository.Competition{ScoringMode: repository.ScoringModeGross}

	short := &repository.Participant{Id: 1, Name: "Ann", Score: make(pq.Int64Array, 17)}
	_, err := AggregateScore(short, testCourse(), competition, time.Now())
	assert.Error(t, err)

	bad := &repository.Participant{Id: 2, Name: "Bea", Score: fullRound(4)}
	bad.Score[0] = -2
	_, err = AggregateScore(bad, testCourse(), competition, time.Now())
	assert.Error(t, err)
}
