package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
)

func TestHODService_Create(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.hodSvc.Create(f.ctx, &hod.CreateDTO{
		Name:       "Ravi Kumar",
		Username:   "9876543210",
		Department: "Engineering",
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", created.Department())
	assert.True(t, created.MustChangePassword())
	assert.True(t, created.IsActive())
}

func TestHODService_UsernameMustBeTenDigits(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	for _, username := range []string{"12345", "98765432101", "98765abc10"} {
		_, err := f.hodSvc.Create(f.ctx, &hod.CreateDTO{
			Name:       "Ravi Kumar",
			Username:   username,
			Department: "Engineering",
		})
		var svcErr *services.ServiceError
		require.ErrorAs(t, err, &svcErr, "username %q", username)
		assert.Equal(t, http.StatusBadRequest, svcErr.Status)
	}
}

func TestHODService_OneActivePerDepartment(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	_, err := f.hodSvc.Create(f.ctx, &hod.CreateDTO{
		Name:       "Ravi Kumar",
		Username:   "9876543210",
		Department: "Engineering",
	})
	require.NoError(t, err)

	_, err = f.hodSvc.Create(f.ctx, &hod.CreateDTO{
		Name:       "Meena Iyer",
		Username:   "9876543211",
		Department: "Engineering",
	})
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.Status)
	assert.Equal(t, "department already has an active hod", svcErr.Message)
}

func TestHODService_DeactivatedHODFreesDepartment(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	first, err := f.hodSvc.Create(f.ctx, &hod.CreateDTO{
		Name:       "Ravi Kumar",
		Username:   "9876543210",
		Department: "Engineering",
	})
	require.NoError(t, err)

	inactive := false
	_, err = f.hodSvc.Update(f.ctx, first.ID(), &hod.UpdateDTO{
		Name:       "Ravi Kumar",
		Username:   "9876543210",
		Department: "Engineering",
		IsActive:   &inactive,
	})
	require.NoError(t, err)

	_, err = f.hodSvc.Create(f.ctx, &hod.CreateDTO{
		Name:       "Meena Iyer",
		Username:   "9876543211",
		Department: "Engineering",
	})
	require.NoError(t, err)
}

func TestHODService_UpdateSelfDoesNotConflict(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.hodSvc.Create(f.ctx, &hod.CreateDTO{
		Name:       "Ravi Kumar",
		Username:   "9876543210",
		Department: "Engineering",
		Email:      "ravi@example.com",
	})
	require.NoError(t, err)

	updated, err := f.hodSvc.Update(f.ctx, created.ID(), &hod.UpdateDTO{
		Name:       "Ravi K",
		Username:   "9876543210",
		Department: "Engineering",
		Email:      "ravi@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", updated.Name())
}

func TestHODService_DeleteBlockedByTeam(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")
	require.NoError(t, f.registry.LinkEmployeeToHOD(f.ctx, h.ID(), e.ID()))

	err := f.hodSvc.Delete(f.ctx, h.ID())
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.Status)
	assert.Contains(t, svcErr.Message, "1 employee(s)")

	require.NoError(t, f.registry.UnlinkEmployeeFromHOD(f.ctx, h.ID(), e.ID()))
	require.NoError(t, f.hodSvc.Delete(f.ctx, h.ID()))
}

func TestHODService_GetByIDResolvesTeam(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")
	require.NoError(t, f.registry.LinkEmployeeToHOD(f.ctx, h.ID(), e.ID()))

	details, err := f.hodSvc.GetByID(f.ctx, h.ID())
	require.NoError(t, err)
	require.Len(t, details.AssignedEmployees, 1)
	assert.Equal(t, "EMP001", details.AssignedEmployees[0].EmpID())
}
