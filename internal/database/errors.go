package database

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record already exists")
	ErrSelfFollow  = errors.New("cannot follow yourself")
	ErrInvalidPage = errors.New("page size must be positive")
)

// translate maps gorm errors onto the package's sentinel errors so that
// handlers never have to import gorm.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
