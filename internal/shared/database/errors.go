package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"

	"gorm.io/gorm"
)

// Classify returns the taxonomy sentinel for an error coming out of GORM or the driver.
// Unknown failures, including constraint violations, are ErrPersistence.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return sharedError.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return sharedError.ErrConnection
	default:
		return sharedError.ErrPersistence
	}
}

// Wrap prefixes err with op and attaches its taxonomy sentinel, keeping the cause in the chain.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr sharedError.DomainError
	if errors.As(err, &domainErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, Classify(err), err)
}
