package services

import (
	"errors"
	"fmt"

	"github.com/baharkarakas/store-ratings/internal/repository"
	"github.com/baharkarakas/store-ratings/internal/validate"
)

var (
	// ErrValidation is matched by every validate.Errs value as well.
	ErrValidation         = validate.ErrInvalid
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// storageErr maps repository sentinels to the service taxonomy. Anything it
// does not recognize is wrapped and surfaces as an internal error.
func storageErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, repository.ErrReference):
		return fmt.Errorf("%w: referenced record does not exist", ErrValidation)
	}
	return fmt.Errorf("%s: %w", op, err)
}
