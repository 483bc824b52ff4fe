package database

import (
	"fmt"
	"log"

	"pedagogia_backend/internal/config"
	"pedagogia_backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		cfg.SSLMode,
		cfg.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.EscolaRow{},
		&model.TurmaRow{},
		&model.SerieRow{},
		&model.AlunoRow{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Séries padrão da educação infantil e fundamental I, inseridas apenas
	// quando a tabela está vazia.
	var count int64
	db.Model(&model.SerieRow{}).Count(&count)
	if count == 0 {
		defaultSeries := []string{
			"Infantil I",
			"Infantil II",
			"1º Ano",
			"2º Ano",
			"3º Ano",
		}
		for _, s := range defaultSeries {
			db.Create(&model.SerieRow{Serie: s})
		}
	}

	return db, nil
}
