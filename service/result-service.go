package service

import (
	"errors"
	"fairway/metrics"
	"fairway/repository"
	"fairway/scoring"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNoCourse       = errors.New("competition has no course assigned")
	ErrNoParticipants = errors.New("competition has no participants, nothing to finalize")
)

// ResultService finalizes competitions: it recomputes every result from the
// current participant data and swaps the stored rows atomically. Re-running
// it after score corrections is the only way to change a finalized result.
type ResultService struct {
	competitionRepository *repository.CompetitionRepository
	resultRepository      *repository.ResultRepository
	tourRepository        *repository.TourRepository
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{
		competitionRepository: repository.NewCompetitionRepository(db),
		resultRepository:      repository.NewResultRepository(db),
		tourRepository:        repository.NewTourRepository(db),
	}
}

// FinalizeCompetition recomputes and persists the full result set for a
// competition. Gross results are always written; net results additionally
// when the competition's scoring mode asks for them. Finalizing twice with
// unchanged data produces identical rows.
func (s *ResultService) FinalizeCompetition(competitionId int, now time.Time) ([]*repository.Result, error) {
	competition, err := s.competitionRepository.GetCompetitionById(competitionId, competitionPreloads...)
	if err != nil {
		metrics.FinalizeCounter.WithLabelValues("error").Inc()
		return nil, err
	}
	if competition.Course == nil {
		metrics.FinalizeCounter.WithLabelValues("error").Inc()
		return nil, ErrNoCourse
	}
	if len(competition.Participants) == 0 {
		metrics.FinalizeCounter.WithLabelValues("error").Inc()
		return nil, ErrNoParticipants
	}

	cards, err := scoring.AggregateCompetition(competition, competition.Course, competition.Participants, now)
	if err != nil {
		metrics.FinalizeCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	entryCount, err := s.entryCount(competition, cards)
	if err != nil {
		metrics.FinalizeCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	batchId := uuid.New()
	results := s.buildResults(competition, cards, repository.ScoringTypeGross, entryCount, batchId)
	if competition.ScoringMode != repository.ScoringModeGross {
		results = append(results, s.buildResults(competition, cards, repository.ScoringTypeNet, entryCount, batchId)...)
	}

	if err := s.resultRepository.ReplaceForCompetition(competitionId, results, now); err != nil {
		metrics.FinalizeCounter.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.FinalizeCounter.WithLabelValues("success").Inc()
	return results, nil
}

// entryCount picks the N for the default points formula: active tour
// enrollees for tour competitions, otherwise the number of finishers.
func (s *ResultService) entryCount(competition *repository.Competition, cards []*scoring.ScoreCard) (int, error) {
	if competition.TourId != nil {
		return s.tourRepository.CountActiveEnrollments(*competition.TourId)
	}
	finishers := 0
	for _, card := range cards {
		if card.Finished {
			finishers++
		}
	}
	return finishers, nil
}

func (s *ResultService) buildResults(competition *repository.Competition, cards []*scoring.ScoreCard, scoringType repository.ScoringType, entryCount int, batchId uuid.UUID) []*repository.Result {
	ranking := scoring.Rank(cards, scoring.RankOptions{
		ScoringType: scoringType,
		Template:    competition.PointTemplate,
		Multiplier:  competition.PointsMultiplier,
		EntryCount:  entryCount,
		Finalize:    true,
	})
	results := make([]*repository.Result, 0, len(ranking))
	for _, entry := range ranking {
		results = append(results, &repository.Result{
			CompetitionId: competition.Id,
			ParticipantId: entry.ParticipantId,
			PlayerId:      entry.PlayerId,
			BatchId:       batchId,
			ScoringType:   scoringType,
			Position:      entry.Position,
			Points:        entry.Points,
			GrossScore:    entry.GrossTotal,
			NetScore:      entry.NetTotal,
			RelativeToPar: relativeForType(entry, scoringType),
		})
	}
	return results
}

func relativeForType(entry *scoring.RankedEntry, scoringType repository.ScoringType) int {
	if scoringType == repository.ScoringTypeNet && entry.NetRelativeToPar != nil {
		return *entry.NetRelativeToPar
	}
	return entry.RelativeToPar
}

func (s *ResultService) GetResultsForCompetition(competitionId int) ([]*repository.Result, error) {
	return s.resultRepository.GetResultsForCompetition(competitionId)
}
