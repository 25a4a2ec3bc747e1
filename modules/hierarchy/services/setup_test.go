package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/infrastructure/persistence"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
	"github.com/accordhr/accord-hrms/pkg/configuration"
)

type fixtures struct {
	ctx       context.Context
	directors *persistence.InmemDirectorRepository
	hods      *persistence.InmemHODRepository
	employees *persistence.InmemEmployeeRepository

	registry    *services.AssignmentRegistry
	assignments *services.AssignmentService
	guard       *services.DeletionGuard
	directorSvc *services.DirectorService
	hodSvc      *services.HODService
}

func setupTest(t *testing.T) *fixtures {
	t.Helper()

	directorRepo := persistence.NewInmemDirectorRepository()
	hodRepo := persistence.NewInmemHODRepository()
	employeeRepo := persistence.NewInmemEmployeeRepository()

	guard := services.NewDeletionGuard(hodRepo, employeeRepo)
	registry := services.NewAssignmentRegistry(directorRepo, hodRepo, employeeRepo, nil)
	options := configuration.HierarchyOptions{DefaultPassword: "accord@123"}

	return &fixtures{
		ctx:         context.Background(),
		directors:   directorRepo,
		hods:        hodRepo,
		employees:   employeeRepo,
		registry:    registry,
		assignments: services.NewAssignmentService(registry, hodRepo, employeeRepo),
		guard:       guard,
		directorSvc: services.NewDirectorService(directorRepo, hodRepo, employeeRepo, guard, nil, options),
		hodSvc:      services.NewHODService(hodRepo, employeeRepo, guard, nil, options),
	}
}

func (f *fixtures) seedDirector(t *testing.T, name, username string) director.Director {
	t.Helper()
	d, err := f.directors.Create(f.ctx, director.New(name, username))
	require.NoError(t, err)
	return d
}

func (f *fixtures) seedHOD(t *testing.T, name, username, department string) hod.HOD {
	t.Helper()
	h, err := f.hods.Create(f.ctx, hod.New(name, username, department))
	require.NoError(t, err)
	return h
}

func (f *fixtures) seedEmployee(t *testing.T, empID, name, department string) employee.Employee {
	t.Helper()
	e, err := f.employees.Create(f.ctx, employee.New(empID, name, department))
	require.NoError(t, err)
	return e
}
