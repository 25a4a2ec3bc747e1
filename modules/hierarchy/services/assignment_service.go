package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
)

type BatchItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// FailedItem keeps the raw input id so malformed ids can be reported back
// alongside well-formed ones that failed for domain reasons.
type FailedItem struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

type BatchResult struct {
	Success []BatchItem  `json:"success"`
	Failed  []FailedItem `json:"failed"`
}

// AssignmentService runs batch link and unlink operations on top of the
// registry. Candidates are processed in input order; a failed candidate is
// recorded and never aborts the batch, and every success is committed state
// by the time the result is returned.
type AssignmentService struct {
	registry  *AssignmentRegistry
	hods      hod.Repository
	employees employee.Repository
}

func NewAssignmentService(registry *AssignmentRegistry, hods hod.Repository, employees employee.Repository) *AssignmentService {
	return &AssignmentService{registry: registry, hods: hods, employees: employees}
}

func (s *AssignmentService) AssignHODsToDirector(ctx context.Context, directorID uuid.UUID, hodIDs []string) (*BatchResult, error) {
	if len(hodIDs) == 0 {
		return nil, invalidBody("hodIds must be a non-empty array")
	}
	result := &BatchResult{Success: []BatchItem{}, Failed: []FailedItem{}}
	for _, raw := range hodIDs {
		hodID, err := uuid.Parse(raw)
		if err != nil {
			result.Failed = append(result.Failed, FailedItem{ID: raw, Reason: "hod not found"})
			continue
		}
		h, err := s.hods.GetByID(ctx, hodID)
		if err != nil {
			result.Failed = append(result.Failed, FailedItem{ID: raw, Reason: "hod not found"})
			continue
		}
		if err := s.registry.LinkHODToDirector(ctx, directorID, hodID); err != nil {
			if isTargetMissing(err) {
				return nil, notFound("director not found", err)
			}
			result.Failed = append(result.Failed, FailedItem{ID: raw, Name: h.Name(), Reason: failureReason(err)})
			continue
		}
		result.Success = append(result.Success, BatchItem{ID: h.ID(), Name: h.Name()})
	}
	return result, nil
}

func (s *AssignmentService) AssignEmployeesToDirector(ctx context.Context, directorID uuid.UUID, employeeIDs []string) (*BatchResult, error) {
	return s.assignEmployees(ctx, employeeIDs, func(ctx context.Context, employeeID uuid.UUID) error {
		return s.registry.LinkEmployeeToDirector(ctx, directorID, employeeID)
	}, "director not found")
}

func (s *AssignmentService) AssignEmployeesToHOD(ctx context.Context, hodID uuid.UUID, employeeIDs []string) (*BatchResult, error) {
	return s.assignEmployees(ctx, employeeIDs, func(ctx context.Context, employeeID uuid.UUID) error {
		return s.registry.LinkEmployeeToHOD(ctx, hodID, employeeID)
	}, "hod not found")
}

func (s *AssignmentService) assignEmployees(
	ctx context.Context,
	employeeIDs []string,
	link func(ctx context.Context, employeeID uuid.UUID) error,
	targetMissing string,
) (*BatchResult, error) {
	if len(employeeIDs) == 0 {
		return nil, invalidBody("employeeIds must be a non-empty array")
	}
	result := &BatchResult{Success: []BatchItem{}, Failed: []FailedItem{}}
	for _, raw := range employeeIDs {
		employeeID, err := uuid.Parse(raw)
		if err != nil {
			result.Failed = append(result.Failed, FailedItem{ID: raw, Reason: "employee not found"})
			continue
		}
		e, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			result.Failed = append(result.Failed, FailedItem{ID: raw, Reason: "employee not found"})
			continue
		}
		if err := link(ctx, employeeID); err != nil {
			if isTargetMissing(err) {
				return nil, notFound(targetMissing, err)
			}
			result.Failed = append(result.Failed, FailedItem{ID: raw, Name: e.Name(), Reason: failureReason(err)})
			continue
		}
		result.Success = append(result.Success, BatchItem{ID: e.ID(), Name: e.Name()})
	}
	return result, nil
}

// isTargetMissing reports whether the link failed because the assignment
// target itself does not resolve. Subordinates are looked up before linking,
// so a not-found out of the registry can only be the target.
func isTargetMissing(err error) bool {
	return errors.Is(err, director.ErrNotFound) || errors.Is(err, hod.ErrNotFound)
}

func failureReason(err error) string {
	var assigned *AlreadyAssignedError
	if errors.As(err, &assigned) {
		return "already assigned to " + assigned.OwnerName
	}
	if errors.Is(err, ErrNotWorking) {
		return "employee is not working"
	}
	return err.Error()
}
