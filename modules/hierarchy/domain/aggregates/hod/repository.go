package hod

import (
	"context"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/pkg/serrors"
)

var ErrNotFound = serrors.NewError("HOD_NOT_FOUND", "hod not found", "")

type FindParams struct {
	Department      string
	IncludeInactive bool
	Limit           int
	Offset          int
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]HOD, error)
	GetByID(ctx context.Context, id uuid.UUID) (HOD, error)
	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction so concurrent link mutations serialize on it.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (HOD, error)
	GetByUsername(ctx context.Context, username string) (HOD, error)
	GetByEmail(ctx context.Context, email string) (HOD, error)
	// GetActiveByDepartment returns the active HOD of a department, enforcing
	// the one-active-HOD-per-department rule on create and update.
	GetActiveByDepartment(ctx context.Context, department string) (HOD, error)
	GetByDirector(ctx context.Context, directorID uuid.UUID) ([]HOD, error)
	GetUnassigned(ctx context.Context) ([]HOD, error)
	CountByDirector(ctx context.Context, directorID uuid.UUID) (int64, error)
	Create(ctx context.Context, h HOD) (HOD, error)
	Update(ctx context.Context, h HOD) (HOD, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
