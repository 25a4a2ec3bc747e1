package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/events"
	"github.com/accordhr/accord-hrms/pkg/eventbus"
)

// entityLocks hands out one mutex per subordinate id so concurrent link
// mutations on the same entity serialize in-process. Postgres row locks
// (FOR UPDATE reads) cover cross-process races. Entries are refcounted and
// dropped once the last holder releases, so the map stays bounded by the
// number of in-flight mutations.
type entityLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entityLock
}

type entityLock struct {
	sync.Mutex
	refs int
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: map[uuid.UUID]*entityLock{}}
}

func (l *entityLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &entityLock{}
		l.locks[id] = m
	}
	m.refs++
	l.mu.Unlock()
	m.Lock()
	return func() {
		m.Unlock()
		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// AssignmentRegistry is the source of truth for the three link axes:
// hod to director, employee to director and employee to hod. The two
// employee axes are independent and may coexist.
type AssignmentRegistry struct {
	directors director.Repository
	hods      hod.Repository
	employees employee.Repository
	publisher eventbus.EventBus
	locks     *entityLocks
}

func NewAssignmentRegistry(
	directors director.Repository,
	hods hod.Repository,
	employees employee.Repository,
	publisher eventbus.EventBus,
) *AssignmentRegistry {
	return &AssignmentRegistry{
		directors: directors,
		hods:      hods,
		employees: employees,
		publisher: publisher,
		locks:     newEntityLocks(),
	}
}

func (r *AssignmentRegistry) ListUnassignedHODs(ctx context.Context) ([]hod.HOD, error) {
	return r.hods.GetUnassigned(ctx)
}

func (r *AssignmentRegistry) ListUnassignedEmployees(ctx context.Context) ([]employee.Employee, error) {
	return r.employees.GetUnassigned(ctx)
}

// LinkHODToDirector links an hod under a director. Linking an hod that is
// already under the same director succeeds without a write; an hod under a
// different director fails with AlreadyAssignedError.
func (r *AssignmentRegistry) LinkHODToDirector(ctx context.Context, directorID, hodID uuid.UUID) error {
	unlock := r.locks.lock(hodID)
	defer unlock()

	d, err := r.directors.GetByID(ctx, directorID)
	if err != nil {
		return err
	}
	h, err := r.hods.GetByIDForUpdate(ctx, hodID)
	if err != nil {
		return err
	}
	if h.DirectorID() == directorID {
		return nil
	}
	if h.IsAssigned() {
		return r.alreadyAssignedToDirector(ctx, events.AxisHODToDirector, h.DirectorID())
	}
	if _, err := r.hods.Update(ctx, h.WithDirector(directorID)); err != nil {
		return err
	}
	r.publishAssignment(events.AxisHODToDirector, d.ID(), d.Name(), h.ID(), h.Name(), true)
	return nil
}

func (r *AssignmentRegistry) UnlinkHODFromDirector(ctx context.Context, directorID, hodID uuid.UUID) error {
	unlock := r.locks.lock(hodID)
	defer unlock()

	d, err := r.directors.GetByID(ctx, directorID)
	if err != nil {
		return err
	}
	h, err := r.hods.GetByIDForUpdate(ctx, hodID)
	if err != nil {
		return err
	}
	if h.DirectorID() != directorID {
		return ErrNotLinked
	}
	if _, err := r.hods.Update(ctx, h.WithoutDirector()); err != nil {
		return err
	}
	r.publishAssignment(events.AxisHODToDirector, d.ID(), d.Name(), h.ID(), h.Name(), false)
	return nil
}

func (r *AssignmentRegistry) LinkEmployeeToDirector(ctx context.Context, directorID, employeeID uuid.UUID) error {
	unlock := r.locks.lock(employeeID)
	defer unlock()

	d, err := r.directors.GetByID(ctx, directorID)
	if err != nil {
		return err
	}
	e, err := r.employees.GetByIDForUpdate(ctx, employeeID)
	if err != nil {
		return err
	}
	// Same-owner re-link stays a no-op even after the employee left.
	if e.DirectorID() == directorID {
		return nil
	}
	if !e.IsWorking() {
		return ErrNotWorking
	}
	if e.HasDirector() {
		return r.alreadyAssignedToDirector(ctx, events.AxisEmployeeToDirector, e.DirectorID())
	}
	if _, err := r.employees.Update(ctx, e.WithDirector(directorID)); err != nil {
		return err
	}
	r.publishAssignment(events.AxisEmployeeToDirector, d.ID(), d.Name(), e.ID(), e.Name(), true)
	return nil
}

func (r *AssignmentRegistry) UnlinkEmployeeFromDirector(ctx context.Context, directorID, employeeID uuid.UUID) error {
	unlock := r.locks.lock(employeeID)
	defer unlock()

	d, err := r.directors.GetByID(ctx, directorID)
	if err != nil {
		return err
	}
	e, err := r.employees.GetByIDForUpdate(ctx, employeeID)
	if err != nil {
		return err
	}
	if e.DirectorID() != directorID {
		return ErrNotLinked
	}
	if _, err := r.employees.Update(ctx, e.WithoutDirector()); err != nil {
		return err
	}
	r.publishAssignment(events.AxisEmployeeToDirector, d.ID(), d.Name(), e.ID(), e.Name(), false)
	return nil
}

func (r *AssignmentRegistry) LinkEmployeeToHOD(ctx context.Context, hodID, employeeID uuid.UUID) error {
	unlock := r.locks.lock(employeeID)
	defer unlock()

	h, err := r.hods.GetByID(ctx, hodID)
	if err != nil {
		return err
	}
	e, err := r.employees.GetByIDForUpdate(ctx, employeeID)
	if err != nil {
		return err
	}
	// Same-owner re-link stays a no-op even after the employee left.
	if e.HODID() == hodID {
		return nil
	}
	if !e.IsWorking() {
		return ErrNotWorking
	}
	if e.HasHOD() {
		owner, err := r.hods.GetByID(ctx, e.HODID())
		ownerName := "another hod"
		if err == nil {
			ownerName = "HOD: " + owner.Name()
		}
		return &AlreadyAssignedError{Axis: events.AxisEmployeeToHOD, OwnerID: e.HODID(), OwnerName: ownerName}
	}
	if _, err := r.employees.Update(ctx, e.WithHOD(hodID)); err != nil {
		return err
	}
	r.publishAssignment(events.AxisEmployeeToHOD, h.ID(), h.Name(), e.ID(), e.Name(), true)
	return nil
}

func (r *AssignmentRegistry) UnlinkEmployeeFromHOD(ctx context.Context, hodID, employeeID uuid.UUID) error {
	unlock := r.locks.lock(employeeID)
	defer unlock()

	h, err := r.hods.GetByID(ctx, hodID)
	if err != nil {
		return err
	}
	e, err := r.employees.GetByIDForUpdate(ctx, employeeID)
	if err != nil {
		return err
	}
	if e.HODID() != hodID {
		return ErrNotLinked
	}
	if _, err := r.employees.Update(ctx, e.WithoutHOD()); err != nil {
		return err
	}
	r.publishAssignment(events.AxisEmployeeToHOD, h.ID(), h.Name(), e.ID(), e.Name(), false)
	return nil
}

func (r *AssignmentRegistry) alreadyAssignedToDirector(ctx context.Context, axis events.Axis, ownerID uuid.UUID) error {
	ownerName := "another director"
	if owner, err := r.directors.GetByID(ctx, ownerID); err == nil {
		ownerName = "Director: " + owner.Name()
	}
	return &AlreadyAssignedError{Axis: axis, OwnerID: ownerID, OwnerName: ownerName}
}

func (r *AssignmentRegistry) publishAssignment(axis events.Axis, ownerID uuid.UUID, ownerName string, subID uuid.UUID, subName string, linked bool) {
	if r.publisher == nil {
		return
	}
	r.publisher.Publish(events.AssignmentChanged{
		Axis:            axis,
		OwnerID:         ownerID,
		OwnerName:       ownerName,
		SubordinateID:   subID,
		SubordinateName: subName,
		Linked:          linked,
		OccurredAt:      time.Now(),
	})
}
