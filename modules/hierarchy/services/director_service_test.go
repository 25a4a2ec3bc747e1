package services_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
)

func TestDirectorService_CreateWithDefaultPassword(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.directorSvc.Create(f.ctx, &director.CreateDTO{
		Name:     "Asha Verma",
		Username: "asha.verma",
		Email:    "Asha.Verma@Example.COM",
	})
	require.NoError(t, err)

	assert.True(t, created.MustChangePassword())
	assert.Equal(t, "asha.verma@example.com", created.Email())
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash()), []byte("accord@123")))
}

func TestDirectorService_CreateWithExplicitPassword(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.directorSvc.Create(f.ctx, &director.CreateDTO{
		Name:     "Asha Verma",
		Username: "asha.verma",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.False(t, created.MustChangePassword())
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash()), []byte("s3cret-pass")))
}

func TestDirectorService_CreateValidation(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	_, err := f.directorSvc.Create(f.ctx, &director.CreateDTO{Name: "", Username: ""})
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.Status)
}

func TestDirectorService_CreateDuplicateUsername(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	f.seedDirector(t, "Asha Verma", "asha.verma")

	_, err := f.directorSvc.Create(f.ctx, &director.CreateDTO{Name: "Other", Username: "asha.verma"})
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.Status)
	assert.Equal(t, "username already exists", svcErr.Message)
}

func TestDirectorService_EmployeeLinkConflicts(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")

	first, err := f.directorSvc.Create(f.ctx, &director.CreateDTO{
		Name:       "Asha Verma",
		Username:   "asha.verma",
		EmployeeID: e.ID().String(),
	})
	require.NoError(t, err)
	assert.Equal(t, e.ID(), first.EmployeeID())

	// The same employee cannot back a second account.
	_, err = f.directorSvc.Create(f.ctx, &director.CreateDTO{
		Name:       "Nikhil Rao",
		Username:   "nikhil.rao",
		EmployeeID: e.ID().String(),
	})
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.Status)

	// Linking a nonexistent employee is a not found, not a silent skip.
	_, err = f.directorSvc.Create(f.ctx, &director.CreateDTO{
		Name:       "Nikhil Rao",
		Username:   "nikhil.rao",
		EmployeeID: uuid.New().String(),
	})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Status)
}

func TestDirectorService_UpdatePasswordClearsFlag(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.directorSvc.Create(f.ctx, &director.CreateDTO{Name: "Asha Verma", Username: "asha.verma"})
	require.NoError(t, err)
	require.True(t, created.MustChangePassword())

	updated, err := f.directorSvc.Update(f.ctx, created.ID(), &director.UpdateDTO{
		Name:     "Asha Verma",
		Username: "asha.verma",
		Password: "chosen-by-user",
	})
	require.NoError(t, err)
	assert.False(t, updated.MustChangePassword())
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash()), []byte("chosen-by-user")))
}

func TestDirectorService_UpdateKeepsPasswordWhenOmitted(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.directorSvc.Create(f.ctx, &director.CreateDTO{Name: "Asha Verma", Username: "asha.verma"})
	require.NoError(t, err)

	inactive := false
	updated, err := f.directorSvc.Update(f.ctx, created.ID(), &director.UpdateDTO{
		Name:     "Asha V",
		Username: "asha.verma",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, created.PasswordHash(), updated.PasswordHash())
	assert.True(t, updated.MustChangePassword())
	assert.False(t, updated.IsActive())
	assert.Equal(t, "Asha V", updated.Name())
}

func TestDirectorService_DeleteBlockedByAssignments(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	d := f.seedDirector(t, "Asha Verma", "asha.verma")
	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")
	require.NoError(t, f.registry.LinkHODToDirector(f.ctx, d.ID(), h.ID()))
	require.NoError(t, f.registry.LinkEmployeeToDirector(f.ctx, d.ID(), e.ID()))

	err := f.directorSvc.Delete(f.ctx, d.ID())
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.Status)
	assert.Contains(t, svcErr.Message, "1 hod(s)")
	assert.Contains(t, svcErr.Message, "1 employee(s)")

	// Unassigning everything lifts the guard.
	require.NoError(t, f.registry.UnlinkHODFromDirector(f.ctx, d.ID(), h.ID()))
	require.NoError(t, f.registry.UnlinkEmployeeFromDirector(f.ctx, d.ID(), e.ID()))
	require.NoError(t, f.directorSvc.Delete(f.ctx, d.ID()))

	// A second delete reports not found rather than blocked.
	err = f.directorSvc.Delete(f.ctx, d.ID())
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Status)
}

func TestDirectorService_GetHierarchyTotals(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	d := f.seedDirector(t, "Asha Verma", "asha.verma")
	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	team := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")
	direct := f.seedEmployee(t, "EMP002", "Arjun Nair", "Finance")
	both := f.seedEmployee(t, "EMP003", "Kavya Menon", "Engineering")

	require.NoError(t, f.registry.LinkHODToDirector(f.ctx, d.ID(), h.ID()))
	require.NoError(t, f.registry.LinkEmployeeToHOD(f.ctx, h.ID(), team.ID()))
	require.NoError(t, f.registry.LinkEmployeeToDirector(f.ctx, d.ID(), direct.ID()))
	require.NoError(t, f.registry.LinkEmployeeToHOD(f.ctx, h.ID(), both.ID()))
	require.NoError(t, f.registry.LinkEmployeeToDirector(f.ctx, d.ID(), both.ID()))

	hierarchy, err := f.directorSvc.GetHierarchy(f.ctx, d.ID())
	require.NoError(t, err)

	assert.Equal(t, 1, hierarchy.TotalHODs)
	require.Len(t, hierarchy.HODs, 1)
	assert.Len(t, hierarchy.HODs[0].Employees, 2)
	assert.Len(t, hierarchy.DirectEmployees, 2)
	// Kavya sits on both axes and is counted once.
	assert.Equal(t, 3, hierarchy.TotalEmployees)
}

func TestDirectorService_ListCounts(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	d := f.seedDirector(t, "Asha Verma", "asha.verma")
	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")
	require.NoError(t, f.registry.LinkHODToDirector(f.ctx, d.ID(), h.ID()))
	require.NoError(t, f.registry.LinkEmployeeToDirector(f.ctx, d.ID(), e.ID()))

	list, err := f.directorSvc.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].AssignedHODsCount)
	assert.Equal(t, int64(1), list[0].AssignedEmployeesCount)
}
