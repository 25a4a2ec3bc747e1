package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
)

// DeletionGuard blocks deletion of entities that still own subordinates.
// Callers resolve the entity first so a missing record surfaces as not found
// rather than as a guard pass.
type DeletionGuard struct {
	hods      hod.Repository
	employees employee.Repository
}

func NewDeletionGuard(hods hod.Repository, employees employee.Repository) *DeletionGuard {
	return &DeletionGuard{hods: hods, employees: employees}
}

func (g *DeletionGuard) CanDeleteDirector(ctx context.Context, directorID uuid.UUID) error {
	hodCount, err := g.hods.CountByDirector(ctx, directorID)
	if err != nil {
		return err
	}
	employeeCount, err := g.employees.CountByDirector(ctx, directorID)
	if err != nil {
		return err
	}
	if hodCount > 0 || employeeCount > 0 {
		return conflict(fmt.Sprintf(
			"cannot delete director: %d hod(s) and %d employee(s) are still assigned", hodCount, employeeCount,
		), nil)
	}
	return nil
}

func (g *DeletionGuard) CanDeleteHOD(ctx context.Context, hodID uuid.UUID) error {
	employeeCount, err := g.employees.CountByHOD(ctx, hodID)
	if err != nil {
		return err
	}
	if employeeCount > 0 {
		return conflict(fmt.Sprintf(
			"cannot delete hod: %d employee(s) are still assigned", employeeCount,
		), nil)
	}
	return nil
}
