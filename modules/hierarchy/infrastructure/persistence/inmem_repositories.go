package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
)

type SafeMap[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{
		m: make(map[K]V),
	}
}

func (s *SafeMap[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *SafeMap[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, found := s.m[key]
	return val, found
}

func (s *SafeMap[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (s *SafeMap[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vals := make([]V, 0, len(s.m))
	for _, v := range s.m {
		vals = append(vals, v)
	}
	return vals
}

// InmemDirectorRepository backs service tests without a database. Link
// serialization is the registry's job, so row locking degrades to a plain read.
type InmemDirectorRepository struct {
	storage *SafeMap[uuid.UUID, director.Director]
}

func NewInmemDirectorRepository() *InmemDirectorRepository {
	return &InmemDirectorRepository{storage: NewSafeMap[uuid.UUID, director.Director]()}
}

func (r *InmemDirectorRepository) GetAll(ctx context.Context, params *director.FindParams) ([]director.Director, error) {
	out := make([]director.Director, 0)
	for _, d := range r.storage.Values() {
		if !params.IncludeInactive && !d.IsActive() {
			continue
		}
		out = append(out, d)
	}
	sortByName(out, func(d director.Director) string { return d.Name() })
	return out, nil
}

func (r *InmemDirectorRepository) GetByID(ctx context.Context, id uuid.UUID) (director.Director, error) {
	d, found := r.storage.Get(id)
	if !found {
		return director.Director{}, director.ErrNotFound
	}
	return d, nil
}

func (r *InmemDirectorRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (director.Director, error) {
	return r.GetByID(ctx, id)
}

func (r *InmemDirectorRepository) GetByUsername(ctx context.Context, username string) (director.Director, error) {
	for _, d := range r.storage.Values() {
		if d.Username() == username {
			return d, nil
		}
	}
	return director.Director{}, director.ErrNotFound
}

func (r *InmemDirectorRepository) GetByEmail(ctx context.Context, email string) (director.Director, error) {
	for _, d := range r.storage.Values() {
		if d.Email() != "" && d.Email() == email {
			return d, nil
		}
	}
	return director.Director{}, director.ErrNotFound
}

func (r *InmemDirectorRepository) GetByEmployeeID(ctx context.Context, employeeID uuid.UUID) (director.Director, error) {
	for _, d := range r.storage.Values() {
		if d.EmployeeID() != uuid.Nil && d.EmployeeID() == employeeID {
			return d, nil
		}
	}
	return director.Director{}, director.ErrNotFound
}

func (r *InmemDirectorRepository) Create(ctx context.Context, d director.Director) (director.Director, error) {
	now := time.Now()
	d = director.Hydrate(
		uuid.New(), d.Name(), d.Username(), d.Email(), d.PasswordHash(),
		d.MustChangePassword(), d.EmployeeID(), d.IsActive(), now, now,
	)
	r.storage.Set(d.ID(), d)
	return d, nil
}

func (r *InmemDirectorRepository) Update(ctx context.Context, d director.Director) (director.Director, error) {
	if _, found := r.storage.Get(d.ID()); !found {
		return director.Director{}, director.ErrNotFound
	}
	r.storage.Set(d.ID(), d)
	return d, nil
}

func (r *InmemDirectorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, found := r.storage.Get(id); !found {
		return director.ErrNotFound
	}
	r.storage.Delete(id)
	return nil
}

type InmemHODRepository struct {
	storage *SafeMap[uuid.UUID, hod.HOD]
}

func NewInmemHODRepository() *InmemHODRepository {
	return &InmemHODRepository{storage: NewSafeMap[uuid.UUID, hod.HOD]()}
}

func (r *InmemHODRepository) GetAll(ctx context.Context, params *hod.FindParams) ([]hod.HOD, error) {
	out := make([]hod.HOD, 0)
	for _, h := range r.storage.Values() {
		if !params.IncludeInactive && !h.IsActive() {
			continue
		}
		if params.Department != "" && h.Department() != params.Department {
			continue
		}
		out = append(out, h)
	}
	sortByName(out, func(h hod.HOD) string { return h.Name() })
	return out, nil
}

func (r *InmemHODRepository) GetByID(ctx context.Context, id uuid.UUID) (hod.HOD, error) {
	h, found := r.storage.Get(id)
	if !found {
		return hod.HOD{}, hod.ErrNotFound
	}
	return h, nil
}

func (r *InmemHODRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (hod.HOD, error) {
	return r.GetByID(ctx, id)
}

func (r *InmemHODRepository) GetByUsername(ctx context.Context, username string) (hod.HOD, error) {
	for _, h := range r.storage.Values() {
		if h.Username() == username {
			return h, nil
		}
	}
	return hod.HOD{}, hod.ErrNotFound
}

func (r *InmemHODRepository) GetByEmail(ctx context.Context, email string) (hod.HOD, error) {
	for _, h := range r.storage.Values() {
		if h.Email() != "" && h.Email() == email {
			return h, nil
		}
	}
	return hod.HOD{}, hod.ErrNotFound
}

func (r *InmemHODRepository) GetActiveByDepartment(ctx context.Context, department string) (hod.HOD, error) {
	for _, h := range r.storage.Values() {
		if h.IsActive() && h.Department() == department {
			return h, nil
		}
	}
	return hod.HOD{}, hod.ErrNotFound
}

func (r *InmemHODRepository) GetByDirector(ctx context.Context, directorID uuid.UUID) ([]hod.HOD, error) {
	out := make([]hod.HOD, 0)
	for _, h := range r.storage.Values() {
		if h.DirectorID() == directorID {
			out = append(out, h)
		}
	}
	sortByName(out, func(h hod.HOD) string { return h.Name() })
	return out, nil
}

func (r *InmemHODRepository) GetUnassigned(ctx context.Context) ([]hod.HOD, error) {
	out := make([]hod.HOD, 0)
	for _, h := range r.storage.Values() {
		if h.IsActive() && !h.IsAssigned() {
			out = append(out, h)
		}
	}
	sortByName(out, func(h hod.HOD) string { return h.Name() })
	return out, nil
}

func (r *InmemHODRepository) CountByDirector(ctx context.Context, directorID uuid.UUID) (int64, error) {
	var count int64
	for _, h := range r.storage.Values() {
		if h.DirectorID() == directorID {
			count++
		}
	}
	return count, nil
}

func (r *InmemHODRepository) Create(ctx context.Context, h hod.HOD) (hod.HOD, error) {
	now := time.Now()
	h = hod.Hydrate(
		uuid.New(), h.Name(), h.Username(), h.Department(), h.Email(), h.PasswordHash(),
		h.MustChangePassword(), h.DirectorID(), h.IsActive(), now, now,
	)
	r.storage.Set(h.ID(), h)
	return h, nil
}

func (r *InmemHODRepository) Update(ctx context.Context, h hod.HOD) (hod.HOD, error) {
	if _, found := r.storage.Get(h.ID()); !found {
		return hod.HOD{}, hod.ErrNotFound
	}
	r.storage.Set(h.ID(), h)
	return h, nil
}

func (r *InmemHODRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, found := r.storage.Get(id); !found {
		return hod.ErrNotFound
	}
	r.storage.Delete(id)
	return nil
}

type InmemEmployeeRepository struct {
	storage *SafeMap[uuid.UUID, employee.Employee]
}

func NewInmemEmployeeRepository() *InmemEmployeeRepository {
	return &InmemEmployeeRepository{storage: NewSafeMap[uuid.UUID, employee.Employee]()}
}

func (r *InmemEmployeeRepository) GetAll(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0)
	for _, e := range r.storage.Values() {
		if params.Department != "" && e.Department() != params.Department {
			continue
		}
		if params.Status != "" && e.Status() != params.Status {
			continue
		}
		out = append(out, e)
	}
	sortByName(out, func(e employee.Employee) string { return e.Name() })
	return out, nil
}

func (r *InmemEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	e, found := r.storage.Get(id)
	if !found {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func (r *InmemEmployeeRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *InmemEmployeeRepository) GetByEmpID(ctx context.Context, empID string) (employee.Employee, error) {
	for _, e := range r.storage.Values() {
		if e.EmpID() == empID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (r *InmemEmployeeRepository) GetByHOD(ctx context.Context, hodID uuid.UUID) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0)
	for _, e := range r.storage.Values() {
		if e.HODID() == hodID {
			out = append(out, e)
		}
	}
	sortByName(out, func(e employee.Employee) string { return e.Name() })
	return out, nil
}

func (r *InmemEmployeeRepository) GetByDirector(ctx context.Context, directorID uuid.UUID) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0)
	for _, e := range r.storage.Values() {
		if e.DirectorID() == directorID {
			out = append(out, e)
		}
	}
	sortByName(out, func(e employee.Employee) string { return e.Name() })
	return out, nil
}

func (r *InmemEmployeeRepository) GetUnassigned(ctx context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0)
	for _, e := range r.storage.Values() {
		if e.IsWorking() && !e.HasHOD() && !e.HasDirector() {
			out = append(out, e)
		}
	}
	sortByName(out, func(e employee.Employee) string { return e.Name() })
	return out, nil
}

func (r *InmemEmployeeRepository) CountByHOD(ctx context.Context, hodID uuid.UUID) (int64, error) {
	var count int64
	for _, e := range r.storage.Values() {
		if e.HODID() == hodID {
			count++
		}
	}
	return count, nil
}

func (r *InmemEmployeeRepository) CountByDirector(ctx context.Context, directorID uuid.UUID) (int64, error) {
	var count int64
	for _, e := range r.storage.Values() {
		if e.DirectorID() == directorID {
			count++
		}
	}
	return count, nil
}

func (r *InmemEmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	now := time.Now()
	e = employee.Hydrate(
		uuid.New(), e.EmpID(), e.Name(), e.Department(),
		e.HODID(), e.DirectorID(), e.Status(), now, now,
	)
	r.storage.Set(e.ID(), e)
	return e, nil
}

func (r *InmemEmployeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if _, found := r.storage.Get(e.ID()); !found {
		return employee.Employee{}, employee.ErrNotFound
	}
	r.storage.Set(e.ID(), e)
	return e, nil
}

func sortByName[T any](items []T, name func(T) string) {
	sort.Slice(items, func(i, j int) bool { return name(items[i]) < name(items[j]) })
}
