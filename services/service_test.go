package services

import (
	"fmt"
	"strings"
	"testing"

	"partypair/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test. The shared-cache
// DSN keeps the database alive across the connections gorm pools.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Admin{},
		&models.GameRoom{},
		&models.User{},
		&models.GameSession{},
		&models.Answer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestRoom(t *testing.T, rooms *RoomService, expiryHours int) *models.GameRoom {
	t.Helper()
	room, err := rooms.CreateRoom(&CreateRoomRequest{ExpiryHours: expiryHours})
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return room
}
