package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
)

type StartMode string

const (
	StartModeScheduled StartMode = "scheduled"
	StartModeOpen      StartMode = "open"
)

type ScoringMode string

const (
	ScoringModeGross ScoringMode = "gross"
	ScoringModeNet   ScoringMode = "net"
	ScoringModeBoth  ScoringMode = "both"
)

// PointTemplate maps a finishing position (string key) to the points it awards.
// The "default" key is used as a fallback for positions without an explicit entry.
type PointTemplate map[string]int

func (t PointTemplate) PointsForPosition(position int) (int, bool) {
	if t == nil {
		return 0, false
	}
	if points, ok := t[strconv.Itoa(position)]; ok {
		return points, true
	}
	if points, ok := t["default"]; ok {
		return points, true
	}
	return 0, true
}

func (t *PointTemplate) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return errors.New("unsupported data type for PointTemplate")
	}
}

func (t PointTemplate) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

type Competition struct {
	Id               int           `gorm:"primaryKey"`
	Name             string        `gorm:"not null"`
	CourseId         *int          `gorm:"references courses(id)"`
	Course           *Course       `gorm:"foreignKey:CourseId"`
	TeeId            *int          `gorm:"references tees(id)"`
	Tee              *Tee          `gorm:"foreignKey:TeeId"`
	TourId           *int          `gorm:"references tours(id)"`
	StartMode        StartMode     `gorm:"not null;default:'scheduled'"`
	StartTime        *time.Time    `gorm:"null"`
	OpenStart        *time.Time    `gorm:"null"`
	OpenEnd          *time.Time    `gorm:"null"`
	ScoringMode      ScoringMode   `gorm:"not null;default:'gross'"`
	PointsMultiplier float64       `gorm:"not null;default:1"`
	PointTemplate    PointTemplate `gorm:"type:jsonb"`
	IsResultsFinal   bool          `gorm:"not null;default:false"`
	FinalizedAt      *time.Time    `gorm:"null"`
	CategoryTees     []*CategoryTee `gorm:"foreignKey:CompetitionId;constraint:OnDelete:CASCADE"`
	Participants     []*Participant `gorm:"foreignKey:CompetitionId;constraint:OnDelete:CASCADE"`
	Teams            []*Team        `gorm:"foreignKey:CompetitionId;constraint:OnDelete:CASCADE"`
}

// IsOpenWindowClosed reports whether an open-start competition's entry window has passed.
func (c *Competition) IsOpenWindowClosed(now time.Time) bool {
	return c.StartMode == StartModeOpen && c.OpenEnd != nil && now.After(*c.OpenEnd)
}

// Date returns the best-known date of the competition for past/future checks.
func (c *Competition) Date() *time.Time {
	if c.StartTime != nil {
		return c.StartTime
	}
	if c.OpenEnd != nil {
		return c.OpenEnd
	}
	return nil
}

// CategoryTee assigns a category-specific tee, overriding the competition tee
// for participants of that category.
type CategoryTee struct {
	CompetitionId int  `gorm:"primaryKey"`
	CategoryId    int  `gorm:"primaryKey"`
	TeeId         int  `gorm:"not null;references tees(id)"`
	Tee           *Tee `gorm:"foreignKey:TeeId"`
}

type CompetitionRepository struct {
	DB *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) *CompetitionRepository {
	return &CompetitionRepository{DB: db}
}

func (r *CompetitionRepository) GetCompetitionById(competitionId int, preloads ...string) (*Competition, error) {
	var competition Competition
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&competition, competitionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &competition, nil
}

func (r *CompetitionRepository) Save(competition *Competition) (*Competition, error) {
	result := r.DB.Save(competition)
	if result.Error != nil {
		return nil, result.Error
	}
	return competition, nil
}

func (r *CompetitionRepository) GetCompetitionsForTour(tourId int, preloads ...string) ([]*Competition, error) {
	competitions := make([]*Competition, 0)
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Find(&competitions, "tour_id = ?", tourId)
	if result.Error != nil {
		return nil, result.Error
	}
	return competitions, nil
}
