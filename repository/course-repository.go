package repository

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TeeGender string

const (
	TeeGenderMens   TeeGender = "mens"
	TeeGenderWomens TeeGender = "womens"
	TeeGenderUnisex TeeGender = "unisex"
)

const HolesPerRound = 18

// DefaultSlopeRating is the neutral USGA slope, used when no tee is assigned.
const DefaultSlopeRating = 113

type Course struct {
	Id          int           `gorm:"primaryKey"`
	Name        string        `gorm:"not null"`
	Pars        pq.Int64Array `gorm:"not null;type:integer[]"`
	StrokeIndex pq.Int64Array `gorm:"type:integer[]"`
	Tees        []*Tee        `gorm:"foreignKey:CourseId;constraint:OnDelete:CASCADE"`
}

// ParValues returns the per-hole pars as plain ints.
func (c *Course) ParValues() []int {
	pars := make([]int, len(c.Pars))
	for i, par := range c.Pars {
		pars[i] = int(par)
	}
	return pars
}

// StrokeIndexValues returns the per-hole stroke index, or nil when the course has none.
func (c *Course) StrokeIndexValues() []int {
	if len(c.StrokeIndex) == 0 {
		return nil
	}
	index := make([]int, len(c.StrokeIndex))
	for i, value := range c.StrokeIndex {
		index[i] = int(value)
	}
	return index
}

func (c *Course) TotalPar() int {
	total := 0
	for _, par := range c.Pars {
		total += int(par)
	}
	return total
}

// Tee is one rated set of tee boxes on a course (e.g. "Blue", "White").
type Tee struct {
	Id           int       `gorm:"primaryKey"`
	CourseId     int       `gorm:"not null;references courses(id)"`
	Name         string    `gorm:"not null"`
	Gender       TeeGender `gorm:"not null;default:'unisex'"`
	CourseRating float64   `gorm:"not null;type:decimal(4,1)"`
	SlopeRating  int       `gorm:"not null;default:113"`
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) GetCourseById(courseId int) (*Course, error) {
	var course Course
	result := r.DB.Preload("Tees").First(&course, courseId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &course, nil
}

func (r *CourseRepository) Save(course *Course) (*Course, error) {
	result := r.DB.Save(course)
	if result.Error != nil {
		return nil, result.Error
	}
	return course, nil
}

func (r *CourseRepository) GetTeeById(teeId int) (*Tee, error) {
	var tee Tee
	result := r.DB.First(&tee, teeId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &tee, nil
}
