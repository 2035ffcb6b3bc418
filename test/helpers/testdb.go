package helpers

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/database"
)

var (
	dbOnce sync.Once
	testDB *gorm.DB
	dbErr  error
)

// OpenTestDB открывает тестовую БД из TEST_DATABASE_URL и гоняет миграции
// один раз на процесс. Без переменной окружения тест пропускается.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	dbOnce.Do(func() {
		testDB, dbErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if dbErr != nil {
			return
		}
		dbErr = database.Migrate(testDB)
	})
	if dbErr != nil {
		t.Fatalf("test database setup failed: %v", dbErr)
	}
	return testDB
}

// WithTx отдает транзакцию, которая откатывается по завершении теста.
// Тесты не видят данных друг друга и не оставляют мусора.
func WithTx(t *testing.T, db *gorm.DB) *gorm.DB {
	t.Helper()

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("begin transaction: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})
	return tx
}
