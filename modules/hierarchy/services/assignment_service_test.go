package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
)

func TestAssignmentService_AssignEmployeesToHOD_PartialFailure(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	h1 := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	h2 := f.seedHOD(t, "Meena Iyer", "9876543211", "Engineering")
	e1 := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")
	e2 := f.seedEmployee(t, "EMP002", "Arjun Nair", "Engineering")
	e3 := f.seedEmployee(t, "EMP003", "Kavya Menon", "Engineering")

	require.NoError(t, f.registry.LinkEmployeeToHOD(f.ctx, h2.ID(), e2.ID()))

	result, err := f.assignments.AssignEmployeesToHOD(f.ctx, h1.ID(), []string{
		e1.ID().String(), e2.ID().String(), e3.ID().String(),
	})
	require.NoError(t, err)

	require.Len(t, result.Success, 2)
	assert.Equal(t, e1.ID(), result.Success[0].ID)
	assert.Equal(t, e3.ID(), result.Success[1].ID)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, e2.ID().String(), result.Failed[0].ID)
	assert.Equal(t, "Arjun Nair", result.Failed[0].Name)
	assert.Equal(t, "already assigned to HOD: Meena Iyer", result.Failed[0].Reason)

	// The failed candidate keeps its original owner.
	linked, err := f.employees.GetByID(f.ctx, e2.ID())
	require.NoError(t, err)
	assert.Equal(t, h2.ID(), linked.HODID())
}

func TestAssignmentService_EmptyBatchRejected(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")

	_, err := f.assignments.AssignEmployeesToHOD(f.ctx, h.ID(), nil)
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)

	_, err = f.assignments.AssignHODsToDirector(f.ctx, uuid.New(), []string{})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestAssignmentService_TargetMissingAbortsBatch(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")

	_, err := f.assignments.AssignEmployeesToHOD(f.ctx, uuid.New(), []string{e.ID().String()})
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
	assert.Equal(t, "hod not found", svcErr.Message)

	// Nothing was linked before the abort.
	linked, err := f.employees.GetByID(f.ctx, e.ID())
	require.NoError(t, err)
	assert.False(t, linked.HasHOD())
}

func TestAssignmentService_MalformedAndUnknownIDs(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")

	result, err := f.assignments.AssignEmployeesToHOD(f.ctx, h.ID(), []string{
		"not-a-uuid", uuid.New().String(), e.ID().String(),
	})
	require.NoError(t, err)

	require.Len(t, result.Failed, 2)
	assert.Equal(t, "not-a-uuid", result.Failed[0].ID)
	assert.Equal(t, "employee not found", result.Failed[0].Reason)
	assert.Equal(t, "employee not found", result.Failed[1].Reason)

	require.Len(t, result.Success, 1)
	assert.Equal(t, e.ID(), result.Success[0].ID)
}

func TestAssignmentService_AssignHODsToDirector(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	d := f.seedDirector(t, "Asha Verma", "asha.verma")
	other := f.seedDirector(t, "Nikhil Rao", "nikhil.rao")
	h1 := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	h2 := f.seedHOD(t, "Meena Iyer", "9876543211", "Finance")

	require.NoError(t, f.registry.LinkHODToDirector(f.ctx, other.ID(), h2.ID()))

	result, err := f.assignments.AssignHODsToDirector(f.ctx, d.ID(), []string{
		h1.ID().String(), h2.ID().String(),
	})
	require.NoError(t, err)

	require.Len(t, result.Success, 1)
	assert.Equal(t, h1.ID(), result.Success[0].ID)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "already assigned to Director: Nikhil Rao", result.Failed[0].Reason)
}

func TestAssignmentService_LeftEmployeeFailsInBatch(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")
	_, err := f.employees.Update(f.ctx, e.WithStatus(employee.StatusLeft))
	require.NoError(t, err)

	result, err := f.assignments.AssignEmployeesToHOD(f.ctx, h.ID(), []string{e.ID().String()})
	require.NoError(t, err)
	require.Empty(t, result.Success)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "employee is not working", result.Failed[0].Reason)
}

func TestAssignmentService_ReassignAfterBatchIsIdempotent(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	h := f.seedHOD(t, "Ravi Kumar", "9876543210", "Engineering")
	e := f.seedEmployee(t, "EMP001", "Priya Singh", "Engineering")

	first, err := f.assignments.AssignEmployeesToHOD(f.ctx, h.ID(), []string{e.ID().String()})
	require.NoError(t, err)
	require.Len(t, first.Success, 1)

	second, err := f.assignments.AssignEmployeesToHOD(f.ctx, h.ID(), []string{e.ID().String()})
	require.NoError(t, err)
	require.Len(t, second.Success, 1)
	require.Empty(t, second.Failed)
}
