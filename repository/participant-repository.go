package repository

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UnreportedHole is the sentinel stored for a hole that was abandoned or never
// reported. It counts as played for completion checks but poisons the whole
// round's net score.
const UnreportedHole = -1

type Participant struct {
	Id            int           `gorm:"primaryKey"`
	CompetitionId int           `gorm:"not null;references competitions(id)"`
	PlayerId      int           `gorm:"not null"`
	Name          string        `gorm:"not null"`
	CategoryId    *int          `gorm:"null"`
	TeamId        *int          `gorm:"null;references teams(id)"`
	Score         pq.Int64Array `gorm:"type:integer[]"`
	ManualTotal   *int          `gorm:"null"`
	ManualOut     *int          `gorm:"null"`
	ManualIn      *int          `gorm:"null"`
	// HandicapIndex is snapshotted when the first score is recorded so later
	// handicap changes do not retroactively alter the round.
	HandicapIndex *float64   `gorm:"null;type:decimal(4,1)"`
	IsLocked      bool       `gorm:"not null;default:false"`
	IsDQ          bool       `gorm:"not null;default:false"`
	StartTime     *time.Time `gorm:"null"`
}

// HasManualScore reports whether the participant entered totals instead of
// hole-by-hole scores.
func (p *Participant) HasManualScore() bool {
	return p.ManualTotal != nil || (p.ManualOut != nil && p.ManualIn != nil)
}

// ManualGross returns the manually entered gross total.
func (p *Participant) ManualGross() int {
	if p.ManualTotal != nil {
		return *p.ManualTotal
	}
	if p.ManualOut != nil && p.ManualIn != nil {
		return *p.ManualOut + *p.ManualIn
	}
	return 0
}

// HoleScores returns the hole-by-hole scores as plain ints.
func (p *Participant) HoleScores() []int {
	scores := make([]int, len(p.Score))
	for i, score := range p.Score {
		scores[i] = int(score)
	}
	return scores
}

// Validate rejects malformed score records before any aggregation happens.
func (p *Participant) Validate() error {
	if p.HasManualScore() {
		if p.ManualGross() < 0 {
			return fmt.Errorf("participant %d has a negative manual total", p.Id)
		}
		return nil
	}
	if len(p.Score) == 0 {
		return nil
	}
	if len(p.Score) != HolesPerRound {
		return fmt.Errorf("participant %d score has %d holes, expected %d", p.Id, len(p.Score), HolesPerRound)
	}
	for hole, score := range p.Score {
		if score < UnreportedHole {
			return fmt.Errorf("participant %d has invalid score %d on hole %d", p.Id, score, hole+1)
		}
	}
	return nil
}

type ParticipantRepository struct {
	DB *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

func (r *ParticipantRepository) GetParticipantById(participantId int) (*Participant, error) {
	var participant Participant
	result := r.DB.First(&participant, participantId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &participant, nil
}

func (r *ParticipantRepository) GetParticipantsForCompetition(competitionId int) ([]*Participant, error) {
	participants := make([]*Participant, 0)
	result := r.DB.Find(&participants, "competition_id = ?", competitionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return participants, nil
}

func (r *ParticipantRepository) Save(participant *Participant) (*Participant, error) {
	if err := participant.Validate(); err != nil {
		return nil, err
	}
	result := r.DB.Save(participant)
	if result.Error != nil {
		return nil, result.Error
	}
	return participant, nil
}
