package service

import (
	"fairway/app_error"
	"fairway/repository"
	"fairway/scoring"
	"fmt"

	"gorm.io/gorm"
)

type CourseService struct {
	courseRepository *repository.CourseRepository
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{
		courseRepository: repository.NewCourseRepository(db),
	}
}

func (s *CourseService) GetCourseById(courseId int) (*repository.Course, error) {
	return s.courseRepository.GetCourseById(courseId)
}

func (s *CourseService) GetTeeById(teeId int) (*repository.Tee, error) {
	return s.courseRepository.GetTeeById(teeId)
}

// SaveCourse validates the course setup before it can break scoring: pars
// must cover all 18 holes and a stroke index, when present, must be a
// permutation of 1..18.
func (s *CourseService) SaveCourse(course *repository.Course) (*repository.Course, error) {
	if len(course.Pars) != repository.HolesPerRound {
		return nil, app_error.New(fmt.Sprintf("course has %d pars, expected %d", len(course.Pars), repository.HolesPerRound), 400)
	}
	if strokeIndex := course.StrokeIndexValues(); strokeIndex != nil {
		if err := scoring.ValidateStrokeIndex(strokeIndex); err != nil {
			return nil, app_error.New(err.Error(), 400)
		}
	}
	return s.courseRepository.Save(course)
}
