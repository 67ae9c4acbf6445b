package config

import (
	"fairway/repository"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func InitDB(host string, port string, user string, password string, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "fairway.",
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS fairway`)
	if x.Error != nil {
		return nil, x.Error
	}
	err = db.AutoMigrate(
		&repository.Course{},
		&repository.Tee{},
		&repository.Tour{},
		&repository.TourEnrollment{},
		&repository.Competition{},
		&repository.CategoryTee{},
		&repository.Team{},
		&repository.Participant{},
		&repository.Result{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
