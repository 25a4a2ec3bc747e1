package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/events"
	"github.com/accordhr/accord-hrms/pkg/configuration"
	"github.com/accordhr/accord-hrms/pkg/eventbus"
)

type DirectorWithCounts struct {
	Director               director.Director
	AssignedHODsCount      int64
	AssignedEmployeesCount int64
}

type DirectorDetails struct {
	Director          director.Director
	AssignedHODs      []hod.HOD
	AssignedEmployees []employee.Employee
}

type HODWithEmployees struct {
	HOD       hod.HOD
	Employees []employee.Employee
}

type DirectorHierarchy struct {
	Director        director.Director
	HODs            []HODWithEmployees
	DirectEmployees []employee.Employee
	TotalHODs       int
	TotalEmployees  int
}

type DirectorService struct {
	repo      director.Repository
	hods      hod.Repository
	employees employee.Repository
	guard     *DeletionGuard
	publisher eventbus.EventBus
	options   configuration.HierarchyOptions
}

func NewDirectorService(
	repo director.Repository,
	hods hod.Repository,
	employees employee.Repository,
	guard *DeletionGuard,
	publisher eventbus.EventBus,
	options configuration.HierarchyOptions,
) *DirectorService {
	return &DirectorService{
		repo:      repo,
		hods:      hods,
		employees: employees,
		guard:     guard,
		publisher: publisher,
		options:   options,
	}
}

// List returns active directors with their assignment counts recomputed from
// the link columns.
func (s *DirectorService) List(ctx context.Context) ([]DirectorWithCounts, error) {
	directors, err := s.repo.GetAll(ctx, &director.FindParams{})
	if err != nil {
		return nil, mapPgErrorToServiceError(err)
	}
	out := make([]DirectorWithCounts, 0, len(directors))
	for _, d := range directors {
		hodCount, err := s.hods.CountByDirector(ctx, d.ID())
		if err != nil {
			return nil, mapPgErrorToServiceError(err)
		}
		employeeCount, err := s.employees.CountByDirector(ctx, d.ID())
		if err != nil {
			return nil, mapPgErrorToServiceError(err)
		}
		out = append(out, DirectorWithCounts{
			Director:               d,
			AssignedHODsCount:      hodCount,
			AssignedEmployeesCount: employeeCount,
		})
	}
	return out, nil
}

// GetByID resolves a director together with its assigned hods and directly
// assigned employees.
func (s *DirectorService) GetByID(ctx context.Context, id uuid.UUID) (*DirectorDetails, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, director.ErrNotFound) {
			return nil, notFound("director not found", err)
		}
		return nil, mapPgErrorToServiceError(err)
	}
	hods, err := s.hods.GetByDirector(ctx, d.ID())
	if err != nil {
		return nil, mapPgErrorToServiceError(err)
	}
	employees, err := s.employees.GetByDirector(ctx, d.ID())
	if err != nil {
		return nil, mapPgErrorToServiceError(err)
	}
	return &DirectorDetails{Director: d, AssignedHODs: hods, AssignedEmployees: employees}, nil
}

// GetHierarchy rolls up the full tree under a director: each assigned hod
// with its employees, the directly assigned employees, and totals.
func (s *DirectorService) GetHierarchy(ctx context.Context, id uuid.UUID) (*DirectorHierarchy, error) {
	details, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hierarchy := &DirectorHierarchy{
		Director:        details.Director,
		HODs:            make([]HODWithEmployees, 0, len(details.AssignedHODs)),
		DirectEmployees: details.AssignedEmployees,
		TotalHODs:       len(details.AssignedHODs),
	}
	seen := map[uuid.UUID]struct{}{}
	for _, h := range details.AssignedHODs {
		team, err := s.employees.GetByHOD(ctx, h.ID())
		if err != nil {
			return nil, mapPgErrorToServiceError(err)
		}
		hierarchy.HODs = append(hierarchy.HODs, HODWithEmployees{HOD: h, Employees: team})
		for _, e := range team {
			seen[e.ID()] = struct{}{}
		}
	}
	total := len(seen)
	for _, e := range details.AssignedEmployees {
		if _, dup := seen[e.ID()]; !dup {
			total++
		}
	}
	hierarchy.TotalEmployees = total
	return hierarchy, nil
}

func (s *DirectorService) Create(ctx context.Context, dto *director.CreateDTO) (director.Director, error) {
	if msgs, ok := dto.Ok(ctx); !ok {
		return director.Director{}, invalidBody(joinFieldErrors(msgs))
	}
	if err := s.checkUsernameFree(ctx, dto.Username, uuid.Nil); err != nil {
		return director.Director{}, err
	}
	if err := s.checkEmailFree(ctx, dto.Email, uuid.Nil); err != nil {
		return director.Director{}, err
	}

	d := director.New(dto.Name, dto.Username).WithEmail(dto.Email)
	d, err := s.applyEmployeeLink(ctx, d, dto.EmployeeID, uuid.Nil)
	if err != nil {
		return director.Director{}, err
	}
	d, err = s.applyPassword(d, dto.Password)
	if err != nil {
		return director.Director{}, err
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return director.Director{}, mapPgErrorToServiceError(err)
	}
	s.publish(events.EntityCreated{Kind: events.KindDirector, ID: created.ID(), Name: created.Name(), OccurredAt: time.Now()})
	return created, nil
}

func (s *DirectorService) Update(ctx context.Context, id uuid.UUID, dto *director.UpdateDTO) (director.Director, error) {
	if msgs, ok := dto.Ok(ctx); !ok {
		return director.Director{}, invalidBody(joinFieldErrors(msgs))
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, director.ErrNotFound) {
			return director.Director{}, notFound("director not found", err)
		}
		return director.Director{}, mapPgErrorToServiceError(err)
	}
	if err := s.checkUsernameFree(ctx, dto.Username, id); err != nil {
		return director.Director{}, err
	}
	if err := s.checkEmailFree(ctx, dto.Email, id); err != nil {
		return director.Director{}, err
	}

	d := existing.WithName(dto.Name).WithUsername(dto.Username).WithEmail(dto.Email)
	d, err = s.applyEmployeeLink(ctx, d, dto.EmployeeID, id)
	if err != nil {
		return director.Director{}, err
	}
	if dto.Password != "" {
		hash, err := hashPassword(dto.Password)
		if err != nil {
			return director.Director{}, err
		}
		d = d.WithPasswordHash(hash)
	}
	if dto.IsActive != nil {
		d = d.WithActive(*dto.IsActive)
	}

	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return director.Director{}, mapPgErrorToServiceError(err)
	}
	s.publish(events.EntityUpdated{Kind: events.KindDirector, ID: updated.ID(), Name: updated.Name(), OccurredAt: time.Now()})
	return updated, nil
}

// Delete removes a director. It fails with a conflict while hods or
// employees are still assigned and with not found when the record is gone,
// so callers can tell "blocked" apart from "already deleted".
func (s *DirectorService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, director.ErrNotFound) {
			return notFound("director not found", err)
		}
		return mapPgErrorToServiceError(err)
	}
	if err := s.guard.CanDeleteDirector(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, director.ErrNotFound) {
			return notFound("director not found", err)
		}
		return mapPgErrorToServiceError(err)
	}
	s.publish(events.EntityDeleted{Kind: events.KindDirector, ID: existing.ID(), Name: existing.Name(), OccurredAt: time.Now()})
	return nil
}

func (s *DirectorService) checkUsernameFree(ctx context.Context, username string, self uuid.UUID) error {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, director.ErrNotFound) {
			return nil
		}
		return mapPgErrorToServiceError(err)
	}
	if existing.ID() != self {
		return conflict("username already exists", nil)
	}
	return nil
}

func (s *DirectorService) checkEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	if email == "" {
		return nil
	}
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, director.ErrNotFound) {
			return nil
		}
		return mapPgErrorToServiceError(err)
	}
	if existing.ID() != self {
		return conflict("email already exists", nil)
	}
	return nil
}

// applyEmployeeLink resolves the optional employee record backing this
// director account. An employee can back at most one account.
func (s *DirectorService) applyEmployeeLink(ctx context.Context, d director.Director, rawEmployeeID string, self uuid.UUID) (director.Director, error) {
	if rawEmployeeID == "" {
		return d.WithEmployeeID(uuid.Nil), nil
	}
	employeeID, err := uuid.Parse(rawEmployeeID)
	if err != nil {
		return director.Director{}, invalidBody("employeeId must be a valid uuid")
	}
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return director.Director{}, notFound("employee not found", err)
		}
		return director.Director{}, mapPgErrorToServiceError(err)
	}
	owner, err := s.repo.GetByEmployeeID(ctx, employeeID)
	if err != nil && !errors.Is(err, director.ErrNotFound) {
		return director.Director{}, mapPgErrorToServiceError(err)
	}
	if err == nil && owner.ID() != self {
		return director.Director{}, conflict("employee already has a director account", nil)
	}
	return d.WithEmployeeID(employeeID), nil
}

func (s *DirectorService) applyPassword(d director.Director, password string) (director.Director, error) {
	if password == "" {
		hash, err := hashPassword(s.options.DefaultPassword)
		if err != nil {
			return director.Director{}, err
		}
		return d.WithDefaultPasswordHash(hash), nil
	}
	hash, err := hashPassword(password)
	if err != nil {
		return director.Director{}, err
	}
	return d.WithPasswordHash(hash), nil
}

func (s *DirectorService) publish(event interface{}) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}

func joinFieldErrors(msgs map[string]string) string {
	parts := make([]string, 0, len(msgs))
	for field, msg := range msgs {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
