package persistence

import (
	"errors"
	"fmt"

	"github.com/credito/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM's translated driver errors onto domain errors.
// entity names the record kind in the resulting message.
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewDomainError(shared.ErrNotFound.Code, entity+" not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, entity+" already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainError(shared.ErrBrokenRef.Code, entity+" references a missing record")
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.InvalidInput(entity + " violates a check constraint")
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}

// requireAffected turns an update that touched no row into ErrNotFound.
func requireAffected(res *gorm.DB, entity string) error {
	if res.Error != nil {
		return translateError(res.Error, entity)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, entity)
	}
	return nil
}
