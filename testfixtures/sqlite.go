package testfixtures

import (
	"path/filepath"
	"testing"
	"time"

	"hotel-booking-api/config"
	"hotel-booking-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in a temporary directory. The pool
// holds a single connection, so concurrent transactions run one after the
// other. Callers must run every statement of a transaction on its tx handle.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "hotel.db")
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		tb.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func CreateRoomType(tb testing.TB, db *gorm.DB, name string) models.RoomType {
	tb.Helper()
	rt := models.RoomType{Name: name, Description: name + " room"}
	if err := db.Create(&rt).Error; err != nil {
		tb.Fatalf("failed to create room type: %v", err)
	}
	return rt
}

func CreateRoom(tb testing.TB, db *gorm.DB, roomTypeID uint, number string, price float64) models.Room {
	tb.Helper()
	room := models.Room{
		RoomNumber: number,
		Capacity:   2,
		Price:      price,
		Facilities: datatypes.JSONSlice[string]{"wifi"},
		RoomTypeID: roomTypeID,
		Version:    1,
	}
	if err := db.Create(&room).Error; err != nil {
		tb.Fatalf("failed to create room: %v", err)
	}
	return room
}

// CreateCustomer stores a customer with the given id and a user without a
// local password.
func CreateCustomer(tb testing.TB, db *gorm.DB, id uint, email string) models.Customer {
	tb.Helper()
	user := models.User{Email: email, RegisteredAt: time.Now().UTC()}
	if err := db.Create(&user).Error; err != nil {
		tb.Fatalf("failed to create user: %v", err)
	}
	customer := models.Customer{ID: id, UserID: user.ID, Name: email}
	if err := db.Omit("User").Create(&customer).Error; err != nil {
		tb.Fatalf("failed to create customer: %v", err)
	}
	return customer
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
