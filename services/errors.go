package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed date ranges or missing required fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable is returned when no free inventory matches a request.
	ErrUnavailable = errors.New("unavailable")
	// ErrConflict is returned when a concurrent modification is detected at save time.
	ErrConflict = errors.New("concurrent modification")
	// ErrUnauthorized is returned when credentials do not verify.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicate is returned when a unique key would be violated.
	ErrDuplicate = errors.New("duplicate")
	// ErrInUse is returned when a delete is refused because dependents still exist.
	ErrInUse = errors.New("in use")
)

// notFoundOr translates gorm's ErrRecordNotFound into ErrNotFound and leaves
// other errors untouched.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isDuplicateKey detects unique-index violations from MySQL (1062) and from
// drivers that only report them textually.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate entry") || strings.Contains(lower, "unique constraint failed")
}
