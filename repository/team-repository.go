package repository

import (
	"gorm.io/gorm"
)

type Team struct {
	Id            int    `gorm:"primaryKey"`
	CompetitionId int    `gorm:"not null;references competitions(id)"`
	Name          string `gorm:"not null"`
}

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) GetTeamsForCompetition(competitionId int) ([]*Team, error) {
	teams := make([]*Team, 0)
	result := r.DB.Find(&teams, "competition_id = ?", competitionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return teams, nil
}

func (r *TeamRepository) Save(team *Team) (*Team, error) {
	result := r.DB.Save(team)
	if result.Error != nil {
		return nil, result.Error
	}
	return team, nil
}
