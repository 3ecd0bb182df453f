package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Common service errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflicting state")
	ErrInvalidPassword  = errors.New("invalid credentials")
	ErrDuplicate        = errors.New("duplicate record")
)

// notFoundOrErr maps a missing row to ErrNotFound. Any other lookup
// failure (connection loss, timeout) is returned as-is so it surfaces
// as a server error instead of a 404.
func notFoundOrErr(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %v", ErrNotFound, entity, id)
	}
	return err
}
