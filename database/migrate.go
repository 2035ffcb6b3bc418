package database

import (
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models/chat"
)

// Migrate приводит схему к актуальному состоянию.
// Чат живет в отдельной postgres-схеме "chat".
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS chat").Error; err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Professional{},
		&models.Hire{},
		&models.Review{},
		&models.ClientReview{},
		&models.Notification{},
		&models.PaymentEvent{},
		&chat.Conversation{},
		&chat.Message{},
	)
	if err != nil {
		return err
	}

	logger.Info("database migration complete")
	return nil
}
