package service

import (
	"fairway/repository"

	"gorm.io/gorm"
)

type CompetitionService struct {
	competitionRepository *repository.CompetitionRepository
}

func NewCompetitionService(db *gorm.DB) *CompetitionService {
	return &CompetitionService{
		competitionRepository: repository.NewCompetitionRepository(db),
	}
}

func (s *CompetitionService) GetCompetitionById(competitionId int, preloads ...string) (*repository.Competition, error) {
	return s.competitionRepository.GetCompetitionById(competitionId, preloads...)
}

func (s *CompetitionService) SaveCompetition(competition *repository.Competition) (*repository.Competition, error) {
	return s.competitionRepository.Save(competition)
}
