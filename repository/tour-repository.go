package repository

import (
	"gorm.io/gorm"
)

type Tour struct {
	Id   int    `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

type TourEnrollment struct {
	TourId     int  `gorm:"primaryKey"`
	PlayerId   int  `gorm:"primaryKey"`
	CategoryId *int `gorm:"null"`
	Active     bool `gorm:"not null;default:true"`
}

type TourRepository struct {
	DB *gorm.DB
}

func NewTourRepository(db *gorm.DB) *TourRepository {
	return &TourRepository{DB: db}
}

func (r *TourRepository) GetTourById(tourId int) (*Tour, error) {
	var tour Tour
	result := r.DB.First(&tour, tourId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &tour, nil
}

func (r *TourRepository) CountActiveEnrollments(tourId int) (int, error) {
	var count int64
	result := r.DB.Model(&TourEnrollment{}).Where("tour_id = ? AND active", tourId).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

func (r *TourRepository) GetEnrollments(tourId int) ([]*TourEnrollment, error) {
	enrollments := make([]*TourEnrollment, 0)
	result := r.DB.Find(&enrollments, "tour_id = ?", tourId)
	if result.Error != nil {
		return nil, result.Error
	}
	return enrollments, nil
}

func (r *TourRepository) Save(tour *Tour) (*Tour, error) {
	result := r.DB.Save(tour)
	if result.Error != nil {
		return nil, result.Error
	}
	return tour, nil
}

func (r *TourRepository) AddEnrollment(enrollment *TourEnrollment) error {
	return r.DB.Save(enrollment).Error
}
