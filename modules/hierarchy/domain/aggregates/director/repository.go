package director

import (
	"context"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/pkg/serrors"
)

var ErrNotFound = serrors.NewError("DIRECTOR_NOT_FOUND", "director not found", "")

type FindParams struct {
	IncludeInactive bool
	Limit           int
	Offset          int
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]Director, error)
	GetByID(ctx context.Context, id uuid.UUID) (Director, error)
	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction so concurrent link mutations serialize on it.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (Director, error)
	GetByUsername(ctx context.Context, username string) (Director, error)
	GetByEmail(ctx context.Context, email string) (Director, error)
	// GetByEmployeeID resolves the director account linked to an employee
	// record, enforcing the one-account-per-employee rule.
	GetByEmployeeID(ctx context.Context, employeeID uuid.UUID) (Director, error)
	Create(ctx context.Context, d Director) (Director, error)
	Update(ctx context.Context, d Director) (Director, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
