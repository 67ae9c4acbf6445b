package service

import (
	"fairway/repository"
	"fairway/scoring"
	"fairway/utils"
	"sort"
	"time"

	"gorm.io/gorm"
)

type CompetitionPoints struct {
	CompetitionId int    `json:"competition_id"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	Projected     bool   `json:"projected"`
}

// TourStanding is one player's row in the season-long points table.
type TourStanding struct {
	PlayerId           int                  `json:"player_id"`
	Name               string               `json:"name"`
	TotalPoints        int                  `json:"total_points"`
	CompetitionsPlayed int                  `json:"competitions_played"`
	Position           int                  `json:"position"`
	Breakdown          []*CompetitionPoints `json:"breakdown"`
}

// TourService merges finalized results with live projections across all
// competitions of a tour.
type TourService struct {
	tourRepository        *repository.TourRepository
	competitionRepository *repository.CompetitionRepository
	resultRepository      *repository.ResultRepository
}

func NewTourService(db *gorm.DB) *TourService {
	return &TourService{
		tourRepository:        repository.NewTourRepository(db),
		competitionRepository: repository.NewCompetitionRepository(db),
		resultRepository:      repository.NewResultRepository(db),
	}
}

// GetStandings builds the season points table for a tour. Finalized
// competitions contribute their stored rows; everything else contributes a
// projection recomputed from live data. categoryId optionally restricts the
// table to participants of one category.
func (s *TourService) GetStandings(tourId int, categoryId *int, now time.Time) ([]*TourStanding, error) {
	if _, err := s.tourRepository.GetTourById(tourId); err != nil {
		return nil, err
	}
	competitions, err := s.competitionRepository.GetCompetitionsForTour(tourId, competitionPreloads...)
	if err != nil {
		return nil, err
	}
	finalizedIds := make([]int, 0)
	for _, competition := range competitions {
		if competition.IsResultsFinal {
			finalizedIds = append(finalizedIds, competition.Id)
		}
	}
	finalizedResults, err := s.resultRepository.GetResultsForCompetitions(finalizedIds)
	if err != nil {
		return nil, err
	}
	resultsByCompetition := make(map[int][]*repository.Result)
	for _, result := range finalizedResults {
		resultsByCompetition[result.CompetitionId] = append(resultsByCompetition[result.CompetitionId], result)
	}

	standingsByPlayer := make(map[int]*TourStanding)
	for _, competition := range competitions {
		if competition.IsResultsFinal {
			s.addFinalized(standingsByPlayer, competition, resultsByCompetition[competition.Id], categoryId)
			continue
		}
		if err := s.addProjected(standingsByPlayer, competition, categoryId, now); err != nil {
			return nil, err
		}
	}

	standings := utils.Values(standingsByPlayer)
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		if standings[i].CompetitionsPlayed != standings[j].CompetitionsPlayed {
			return standings[i].CompetitionsPlayed > standings[j].CompetitionsPlayed
		}
		return standings[i].Name < standings[j].Name
	})
	// Shared positions with gap-skip: the position only moves when the points
	// total differs from the previous row.
	position := 0
	for i, standing := range standings {
		if i == 0 || standing.TotalPoints != standings[i-1].TotalPoints {
			position = i + 1
		}
		standing.Position = position
	}
	return standings, nil
}

// standingsScoringType picks which stored rows feed the points table: net
// rows for net-only competitions, gross rows otherwise.
func standingsScoringType(competition *repository.Competition) repository.ScoringType {
	if competition.ScoringMode == repository.ScoringModeNet {
		return repository.ScoringTypeNet
	}
	return repository.ScoringTypeGross
}

func (s *TourService) addFinalized(standingsByPlayer map[int]*TourStanding, competition *repository.Competition, results []*repository.Result, categoryId *int) {
	participantsById := make(map[int]*repository.Participant)
	for _, participant := range competition.Participants {
		participantsById[participant.Id] = participant
	}
	scoringType := standingsScoringType(competition)
	for _, result := range results {
		if result.ScoringType != scoringType {
			continue
		}
		participant, ok := participantsById[result.ParticipantId]
		if !ok || !matchesCategory(participant.CategoryId, categoryId) {
			continue
		}
		standing := getOrCreateStanding(standingsByPlayer, result.PlayerId, participant.Name)
		standing.TotalPoints += result.Points
		standing.CompetitionsPlayed++
		standing.Breakdown = append(standing.Breakdown, &CompetitionPoints{
			CompetitionId: competition.Id,
			Name:          competition.Name,
			Points:        result.Points,
		})
	}
}

// addProjected re-runs the live aggregation and ranking for a competition
// that is not finalized yet. It only contributes once at least one
// participant has finished or the competition date is in the past.
func (s *TourService) addProjected(standingsByPlayer map[int]*TourStanding, competition *repository.Competition, categoryId *int, now time.Time) error {
	if competition.Course == nil || len(competition.Participants) == 0 {
		return nil
	}
	participants := utils.Filter(competition.Participants, func(participant *repository.Participant) bool {
		return matchesCategory(participant.CategoryId, categoryId)
	})
	cards, err := scoring.AggregateCompetition(competition, competition.Course, participants, now)
	if err != nil {
		return err
	}
	anyFinished := false
	finishers := 0
	for _, card := range cards {
		if card.Finished {
			anyFinished = true
			finishers++
		}
	}
	inThePast := competition.Date() != nil && competition.Date().Before(now)
	if !anyFinished && !inThePast {
		return nil
	}
	ranking := scoring.Rank(cards, scoring.RankOptions{
		ScoringType: standingsScoringType(competition),
		Template:    competition.PointTemplate,
		Multiplier:  competition.PointsMultiplier,
		EntryCount:  finishers,
	})
	for _, entry := range ranking {
		if !entry.HasStarted() {
			continue
		}
		standing := getOrCreateStanding(standingsByPlayer, entry.PlayerId, entry.Name)
		standing.TotalPoints += entry.Points
		standing.CompetitionsPlayed++
		standing.Breakdown = append(standing.Breakdown, &CompetitionPoints{
			CompetitionId: competition.Id,
			Name:          competition.Name,
			Points:        entry.Points,
			Projected:     true,
		})
	}
	return nil
}

func matchesCategory(participantCategory *int, filter *int) bool {
	if filter == nil {
		return true
	}
	return participantCategory != nil && *participantCategory == *filter
}

func getOrCreateStanding(standingsByPlayer map[int]*TourStanding, playerId int, name string) *TourStanding {
	if standing, ok := standingsByPlayer[playerId]; ok {
		return standing
	}
	standing := &TourStanding{PlayerId: playerId, Name: name, Breakdown: make([]*CompetitionPoints, 0)}
	standingsByPlayer[playerId] = standing
	return standing
}
