package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScoringType string

const (
	ScoringTypeGross ScoringType = "gross"
	ScoringTypeNet   ScoringType = "net"
)

// Result is one immutable finalized row per (participant, scoring type).
// Rows are only ever replaced wholesale by a recompute, never edited.
type Result struct {
	Id            int         `gorm:"primaryKey"`
	CompetitionId int         `gorm:"not null;index;references competitions(id)"`
	ParticipantId int         `gorm:"not null;references participants(id)"`
	PlayerId      int         `gorm:"not null"`
	BatchId       uuid.UUID   `gorm:"not null;type:uuid"`
	ScoringType   ScoringType `gorm:"not null"`
	Position      int         `gorm:"not null"`
	Points        int         `gorm:"not null"`
	GrossScore    int         `gorm:"not null"`
	NetScore      *int        `gorm:"null"`
	RelativeToPar int         `gorm:"not null"`
	CreatedAt     time.Time
}

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// ReplaceForCompetition swaps the competition's full result set and marks the
// competition final, all inside one transaction so a reader never observes a
// partially replaced set.
func (r *ResultRepository) ReplaceForCompetition(competitionId int, results []*Result, finalizedAt time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Result{}, "competition_id = ?", competitionId).Error; err != nil {
			return err
		}
		if len(results) > 0 {
			if err := tx.CreateInBatches(results, len(results)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&Competition{}).Where("id = ?", competitionId).
			Updates(map[string]interface{}{"is_results_final": true, "finalized_at": finalizedAt}).Error
	})
}

func (r *ResultRepository) GetResultsForCompetition(competitionId int) ([]*Result, error) {
	results := make([]*Result, 0)
	result := r.DB.Order("scoring_type, position, id").Find(&results, "competition_id = ?", competitionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return results, nil
}

func (r *ResultRepository) GetResultsForCompetitions(competitionIds []int) ([]*Result, error) {
	results := make([]*Result, 0)
	if len(competitionIds) == 0 {
		return results, nil
	}
	result := r.DB.Find(&results, "competition_id IN ?", competitionIds)
	if result.Error != nil {
		return nil, result.Error
	}
	return results, nil
}
