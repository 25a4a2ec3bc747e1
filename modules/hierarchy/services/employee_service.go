package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
)

// EmployeeService is the read surface over the employee directory. Employee
// records originate elsewhere; the hierarchy module only links them.
type EmployeeService struct {
	repo employee.Repository
}

func NewEmployeeService(repo employee.Repository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

func (s *EmployeeService) List(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	out, err := s.repo.GetAll(ctx, params)
	if err != nil {
		return nil, mapPgErrorToServiceError(err)
	}
	return out, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return employee.Employee{}, notFound("employee not found", err)
		}
		return employee.Employee{}, mapPgErrorToServiceError(err)
	}
	return e, nil
}
