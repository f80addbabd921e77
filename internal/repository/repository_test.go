package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

// fakeClock hands out a strictly increasing timestamp per call, so tests can
// assert updated_at moved without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// seqIDs hands out t-1, t-2, ... so fixtures are readable.
func seqIDs() IDFunc {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("t-%d", n)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// one :memory: database per pooled connection otherwise
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Ledger{},
		&models.Account{},
		&models.Category{},
		&models.Tag{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedLedger(t *testing.T, ledgers *LedgerRepository, userID, name string) *models.Ledger {
	t.Helper()
	l, err := ledgers.Create(&models.Ledger{
		UserID:       userID,
		Name:         name,
		CurrencyCode: "CNY",
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("seed ledger %s: %v", name, err)
	}
	return l
}
