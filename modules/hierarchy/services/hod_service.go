package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/events"
	"github.com/accordhr/accord-hrms/pkg/configuration"
	"github.com/accordhr/accord-hrms/pkg/eventbus"
)

type HODWithCount struct {
	HOD                    hod.HOD
	AssignedEmployeesCount int64
}

type HODDetails struct {
	HOD               hod.HOD
	AssignedEmployees []employee.Employee
}

type HODService struct {
	repo      hod.Repository
	employees employee.Repository
	guard     *DeletionGuard
	publisher eventbus.EventBus
	options   configuration.HierarchyOptions
}

func NewHODService(
	repo hod.Repository,
	employees employee.Repository,
	guard *DeletionGuard,
	publisher eventbus.EventBus,
	options configuration.HierarchyOptions,
) *HODService {
	return &HODService{
		repo:      repo,
		employees: employees,
		guard:     guard,
		publisher: publisher,
		options:   options,
	}
}

func (s *HODService) List(ctx context.Context) ([]HODWithCount, error) {
	hods, err := s.repo.GetAll(ctx, &hod.FindParams{})
	if err != nil {
		return nil, mapPgErrorToServiceError(err)
	}
	out := make([]HODWithCount, 0, len(hods))
	for _, h := range hods {
		count, err := s.employees.CountByHOD(ctx, h.ID())
		if err != nil {
			return nil, mapPgErrorToServiceError(err)
		}
		out = append(out, HODWithCount{HOD: h, AssignedEmployeesCount: count})
	}
	return out, nil
}

func (s *HODService) GetByID(ctx context.Context, id uuid.UUID) (*HODDetails, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, hod.ErrNotFound) {
			return nil, notFound("hod not found", err)
		}
		return nil, mapPgErrorToServiceError(err)
	}
	team, err := s.employees.GetByHOD(ctx, h.ID())
	if err != nil {
		return nil, mapPgErrorToServiceError(err)
	}
	return &HODDetails{HOD: h, AssignedEmployees: team}, nil
}

func (s *HODService) Create(ctx context.Context, dto *hod.CreateDTO) (hod.HOD, error) {
	if msgs, ok := dto.Ok(ctx); !ok {
		return hod.HOD{}, invalidBody(joinFieldErrors(msgs))
	}
	if err := s.checkUsernameFree(ctx, dto.Username, uuid.Nil); err != nil {
		return hod.HOD{}, err
	}
	if err := s.checkEmailFree(ctx, dto.Email, uuid.Nil); err != nil {
		return hod.HOD{}, err
	}
	if err := s.checkDepartmentFree(ctx, dto.Department, uuid.Nil); err != nil {
		return hod.HOD{}, err
	}

	h := hod.New(dto.Name, dto.Username, dto.Department).WithEmail(dto.Email)
	h, err := s.applyPassword(h, dto.Password)
	if err != nil {
		return hod.HOD{}, err
	}

	created, err := s.repo.Create(ctx, h)
	if err != nil {
		return hod.HOD{}, mapPgErrorToServiceError(err)
	}
	s.publish(events.EntityCreated{
		Kind:       events.KindHOD,
		ID:         created.ID(),
		Name:       created.Name(),
		Department: created.Department(),
		OccurredAt: time.Now(),
	})
	return created, nil
}

func (s *HODService) Update(ctx context.Context, id uuid.UUID, dto *hod.UpdateDTO) (hod.HOD, error) {
	if msgs, ok := dto.Ok(ctx); !ok {
		return hod.HOD{}, invalidBody(joinFieldErrors(msgs))
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, hod.ErrNotFound) {
			return hod.HOD{}, notFound("hod not found", err)
		}
		return hod.HOD{}, mapPgErrorToServiceError(err)
	}
	if err := s.checkUsernameFree(ctx, dto.Username, id); err != nil {
		return hod.HOD{}, err
	}
	if err := s.checkEmailFree(ctx, dto.Email, id); err != nil {
		return hod.HOD{}, err
	}
	active := existing.IsActive()
	if dto.IsActive != nil {
		active = *dto.IsActive
	}
	if active {
		if err := s.checkDepartmentFree(ctx, dto.Department, id); err != nil {
			return hod.HOD{}, err
		}
	}

	h := existing.
		WithName(dto.Name).
		WithUsername(dto.Username).
		WithDepartment(dto.Department).
		WithEmail(dto.Email).
		WithActive(active)
	if dto.Password != "" {
		hash, err := hashPassword(dto.Password)
		if err != nil {
			return hod.HOD{}, err
		}
		h = h.WithPasswordHash(hash)
	}

	updated, err := s.repo.Update(ctx, h)
	if err != nil {
		return hod.HOD{}, mapPgErrorToServiceError(err)
	}
	s.publish(events.EntityUpdated{Kind: events.KindHOD, ID: updated.ID(), Name: updated.Name(), OccurredAt: time.Now()})
	return updated, nil
}

func (s *HODService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, hod.ErrNotFound) {
			return notFound("hod not found", err)
		}
		return mapPgErrorToServiceError(err)
	}
	if err := s.guard.CanDeleteHOD(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, hod.ErrNotFound) {
			return notFound("hod not found", err)
		}
		return mapPgErrorToServiceError(err)
	}
	s.publish(events.EntityDeleted{Kind: events.KindHOD, ID: existing.ID(), Name: existing.Name(), OccurredAt: time.Now()})
	return nil
}

func (s *HODService) checkUsernameFree(ctx context.Context, username string, self uuid.UUID) error {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, hod.ErrNotFound) {
			return nil
		}
		return mapPgErrorToServiceError(err)
	}
	if existing.ID() != self {
		return conflict("username already exists", nil)
	}
	return nil
}

func (s *HODService) checkEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	if email == "" {
		return nil
	}
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, hod.ErrNotFound) {
			return nil
		}
		return mapPgErrorToServiceError(err)
	}
	if existing.ID() != self {
		return conflict("email already exists", nil)
	}
	return nil
}

// checkDepartmentFree enforces one active hod per department.
func (s *HODService) checkDepartmentFree(ctx context.Context, department string, self uuid.UUID) error {
	existing, err := s.repo.GetActiveByDepartment(ctx, department)
	if err != nil {
		if errors.Is(err, hod.ErrNotFound) {
			return nil
		}
		return mapPgErrorToServiceError(err)
	}
	if existing.ID() != self {
		return conflict("department already has an active hod", nil)
	}
	return nil
}

func (s *HODService) applyPassword(h hod.HOD, password string) (hod.HOD, error) {
	if password == "" {
		hash, err := hashPassword(s.options.DefaultPassword)
		if err != nil {
			return hod.HOD{}, err
		}
		return h.WithDefaultPasswordHash(hash), nil
	}
	hash, err := hashPassword(password)
	if err != nil {
		return hod.HOD{}, err
	}
	return h.WithPasswordHash(hash), nil
}

func (s *HODService) publish(event interface{}) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}
