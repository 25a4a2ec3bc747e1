package employee

import (
	"context"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/pkg/serrors"
)

var ErrNotFound = serrors.NewError("EMPLOYEE_NOT_FOUND", "employee not found", "")

type FindParams struct {
	Department string
	Status     Status
	Limit      int
	Offset     int
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (Employee, error)
	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction so concurrent link mutations serialize on it.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (Employee, error)
	GetByEmpID(ctx context.Context, empID string) (Employee, error)
	GetByHOD(ctx context.Context, hodID uuid.UUID) ([]Employee, error)
	GetByDirector(ctx context.Context, directorID uuid.UUID) ([]Employee, error)
	// GetUnassigned lists working employees linked on neither axis.
	GetUnassigned(ctx context.Context) ([]Employee, error)
	CountByHOD(ctx context.Context, hodID uuid.UUID) (int64, error)
	CountByDirector(ctx context.Context, directorID uuid.UUID) (int64, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
}
