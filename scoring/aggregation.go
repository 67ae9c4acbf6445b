package scoring

import (
	"fairway/metrics"
	"fairway/repository"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScoreCard is the aggregated state of one participant's round, the unit
// everything downstream (ranking, teams, tour standings) works on.
type ScoreCard struct {
	ParticipantId int
	PlayerId      int
	Name          string
	CategoryId    *int
	TeamId        *int
	StartTime     *time.Time
	HolesPlayed   int
	GrossTotal    int
	RelativeToPar int
	// Net fields stay nil when the round has an unreported hole or the
	// participant has no handicap index.
	CourseHandicap   *int
	NetTotal         *int
	NetRelativeToPar *int
	HasUnreported    bool
	Locked           bool
	Finished         bool
	DNF              bool
	DQ               bool
}

// HasStarted reports whether the participant has recorded anything at all.
func (c *ScoreCard) HasStarted() bool {
	return c.HolesPlayed > 0
}

// effectiveTee resolves the tee rating a participant plays off: a
// category-specific override wins over the competition tee.
func effectiveTee(participant *repository.Participant, competition *repository.Competition) *repository.Tee {
	if participant.CategoryId != nil {
		for _, categoryTee := range competition.CategoryTees {
			if categoryTee.CategoryId == *participant.CategoryId && categoryTee.Tee != nil {
				return categoryTee.Tee
			}
		}
	}
	return competition.Tee
}

// AggregateScore turns one participant's raw score record into a ScoreCard.
// now is passed in so open-window cutoffs are testable.
func AggregateScore(participant *repository.Participant, course *repository.Course, competition *repository.Competition, now time.Time) (*ScoreCard, error) {
	if err := participant.Validate(); err != nil {
		return nil, err
	}
	card := &ScoreCard{
		ParticipantId: participant.Id,
		PlayerId:      participant.PlayerId,
		Name:          participant.Name,
		CategoryId:    participant.CategoryId,
		TeamId:        participant.TeamId,
		StartTime:     participant.StartTime,
		Locked:        participant.IsLocked,
		DQ:            participant.IsDQ,
	}
	totalPar := course.TotalPar()

	if participant.HasManualScore() {
		card.GrossTotal = participant.ManualGross()
		card.RelativeToPar = card.GrossTotal - totalPar
		card.HolesPlayed = repository.HolesPerRound
		// Manual totals are final the moment they are entered.
		card.Finished = !participant.IsDQ
	} else {
		for hole, score := range participant.HoleScores() {
			if score == repository.UnreportedHole {
				card.HolesPlayed++
				card.HasUnreported = true
				continue
			}
			if score > 0 {
				card.HolesPlayed++
				card.GrossTotal += score
				card.RelativeToPar += score - int(course.Pars[hole])
			}
		}
		completedByWindow := competition.IsOpenWindowClosed(now) && card.HolesPlayed == repository.HolesPerRound
		card.Finished = !participant.IsDQ && !card.HasUnreported && (participant.IsLocked || completedByWindow)
	}

	if !card.Finished && !participant.IsDQ && competition.IsOpenWindowClosed(now) {
		card.DNF = true
	}

	if competition.ScoringMode != repository.ScoringModeGross && participant.HandicapIndex != nil {
		if err := computeNet(card, participant, course, competition, totalPar); err != nil {
			return nil, err
		}
	}
	return card, nil
}

func computeNet(card *ScoreCard, participant *repository.Participant, course *repository.Course, competition *repository.Competition, totalPar int) error {
	// An unreported hole poisons net scoring for the whole round.
	if card.HasUnreported {
		return nil
	}
	courseRating := float64(totalPar)
	slopeRating := repository.DefaultSlopeRating
	if tee := effectiveTee(participant, competition); tee != nil {
		courseRating = tee.CourseRating
		slopeRating = tee.SlopeRating
	}
	courseHandicap := CourseHandicap(*participant.HandicapIndex, slopeRating, courseRating, totalPar)
	card.CourseHandicap = &courseHandicap

	if participant.HasManualScore() {
		netTotal := card.GrossTotal - courseHandicap
		netRelative := netTotal - totalPar
		card.NetTotal = &netTotal
		card.NetRelativeToPar = &netRelative
		return nil
	}
	if card.HolesPlayed == 0 {
		return nil
	}
	// Hole-by-hole net always requires a stroke index; there is no silent
	// fallback, the course setup has to be fixed instead.
	strokeIndex := course.StrokeIndexValues()
	if strokeIndex == nil {
		return fmt.Errorf("course %q is missing strokeIndex, which net scoring requires", course.Name)
	}
	strokes, err := DistributeStrokes(courseHandicap, strokeIndex)
	if err != nil {
		return fmt.Errorf("course %q has an invalid strokeIndex: %w", course.Name, err)
	}
	if card.HolesPlayed == repository.HolesPerRound {
		// Full rounds use the aggregate subtraction; it matches the per-hole
		// sum exactly because the distributed strokes add up to the handicap.
		netTotal := card.GrossTotal - courseHandicap
		netRelative := netTotal - totalPar
		card.NetTotal = &netTotal
		card.NetRelativeToPar = &netRelative
		return nil
	}
	netTotal := 0
	playedPar := 0
	for hole, score := range participant.HoleScores() {
		if score > 0 {
			netTotal += score - strokes[hole]
			playedPar += int(course.Pars[hole])
		}
	}
	netRelative := netTotal - playedPar
	card.NetTotal = &netTotal
	card.NetRelativeToPar = &netRelative
	return nil
}

// AggregateCompetition builds score cards for every participant of a competition.
func AggregateCompetition(competition *repository.Competition, course *repository.Course, participants []*repository.Participant, now time.Time) ([]*ScoreCard, error) {
	timer := prometheus.NewTimer(metrics.ScoreAggregationDuration)
	defer timer.ObserveDuration()
	cards := make([]*ScoreCard, 0, len(participants))
	for _, participant := range participants {
		card, err := AggregateScore(participant, course, competition, now)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
