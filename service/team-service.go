package service

import (
	"fairway/app_error"
	"fairway/repository"
	"fairway/scoring"
	"time"

	"gorm.io/gorm"
)

type TeamService struct {
	competitionRepository *repository.CompetitionRepository
	teamRepository        *repository.TeamRepository
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		competitionRepository: repository.NewCompetitionRepository(db),
		teamRepository:        repository.NewTeamRepository(db),
	}
}

// GetTeamStandings rebuilds the team leaderboard from the current participant
// rows. Standings are derived on every call and never stored.
func (s *TeamService) GetTeamStandings(competitionId int, now time.Time) ([]*scoring.TeamStanding, error) {
	competition, err := s.competitionRepository.GetCompetitionById(competitionId, competitionPreloads...)
	if err != nil {
		return nil, err
	}
	if competition.Course == nil {
		return nil, app_error.New("competition has no course assigned", 409)
	}
	teams, err := s.teamRepository.GetTeamsForCompetition(competitionId)
	if err != nil {
		return nil, err
	}
	cards, err := scoring.AggregateCompetition(competition, competition.Course, competition.Participants, now)
	if err != nil {
		return nil, err
	}
	return scoring.AggregateTeams(cards, teams), nil
}
