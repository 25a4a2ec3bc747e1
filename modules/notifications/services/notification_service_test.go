package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accordhr/accord-hrms/modules/notifications/domain/entities/notice"
	"github.com/accordhr/accord-hrms/modules/notifications/infrastructure/persistence"
	"github.com/accordhr/accord-hrms/modules/notifications/services"
	"github.com/accordhr/accord-hrms/pkg/composables"
	"github.com/accordhr/accord-hrms/pkg/configuration"
)

type staticDirectory map[uuid.UUID]uuid.UUID

func (d staticDirectory) HODOf(ctx context.Context, employeeID uuid.UUID) (uuid.UUID, error) {
	return d[employeeID], nil
}

type fixtures struct {
	repo      *persistence.InmemNoticeRepository
	reporting staticDirectory
	svc       *services.NotificationService
}

func setupTest(t *testing.T) *fixtures {
	t.Helper()
	repo := persistence.NewInmemNoticeRepository()
	reporting := staticDirectory{}
	svc := services.NewNotificationService(repo, reporting, configuration.NotificationOptions{
		UnreadWindow: 7 * 24 * time.Hour,
		ListLimit:    100,
	})
	return &fixtures{repo: repo, reporting: reporting, svc: svc}
}

func employeeCtx(employeeID uuid.UUID, department string) context.Context {
	return composables.WithActor(context.Background(), composables.Actor{
		ID:         uuid.New(),
		Role:       composables.RoleEmployee,
		Username:   "worker",
		EmployeeID: employeeID,
		Department: department,
	})
}

func adminCtx() context.Context {
	return composables.WithActor(context.Background(), composables.Actor{
		ID:       uuid.New(),
		Role:     composables.RoleHRMSHandler,
		Username: "hr.admin",
	})
}

func (f *fixtures) publish(t *testing.T, n notice.Notice) notice.Notice {
	t.Helper()
	created, err := f.repo.Create(context.Background(), n)
	require.NoError(t, err)
	return created
}

func TestUnreadCount_AudienceMatching(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	employeeID := uuid.New()
	hodID := uuid.New()
	f.reporting[employeeID] = hodID

	f.publish(t, notice.New("Holiday", "Office closed Monday", notice.AudienceAll))
	f.publish(t, notice.New("Dept", "Finance town hall", notice.AudienceDepartment).WithDepartment("Finance"))
	f.publish(t, notice.New("Dept", "Engineering sync", notice.AudienceDepartment).WithDepartment("engineering"))
	f.publish(t, notice.New("Direct", "See HR", notice.AudienceIndividual).WithRecipients([]uuid.UUID{employeeID}))
	f.publish(t, notice.New("Direct", "Other person", notice.AudienceIndividual).WithRecipients([]uuid.UUID{uuid.New()}))
	f.publish(t, notice.New("Team", "Standup moved", notice.AudienceTeam).WithTeamHOD(hodID))
	f.publish(t, notice.New("Team", "Not my team", notice.AudienceTeam).WithTeamHOD(uuid.New()))

	// all + department (case-insensitive) + individual + team
	count, err := f.svc.UnreadCount(employeeCtx(employeeID, "Engineering"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestUnreadCount_RoleGating(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	f.publish(t, notice.New("Holiday", "Office closed", notice.AudienceAll))

	for _, role := range []composables.Role{
		composables.RoleHOD,
		composables.RoleDirector,
		composables.RoleHRMSHandler,
		composables.RoleSuperAdmin,
	} {
		ctx := composables.WithActor(context.Background(), composables.Actor{
			ID:         uuid.New(),
			Role:       role,
			EmployeeID: uuid.New(),
		})
		count, err := f.svc.UnreadCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count, "role %s", role)
	}

	// No actor at all also reads as zero, not an error.
	count, err := f.svc.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUnreadCount_WatermarkResetsOnView(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	employeeID := uuid.New()
	ctx := employeeCtx(employeeID, "Engineering")

	f.publish(t, notice.New("Before", "published before viewing", notice.AudienceAll))

	count, err := f.svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, f.svc.MarkViewed(ctx))

	count, err = f.svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// A notice published after the watermark is unread again.
	time.Sleep(2 * time.Millisecond)
	f.publish(t, notice.New("After", "published after viewing", notice.AudienceAll))

	count, err = f.svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnreadCount_RetentionWindow(t *testing.T) {
	t.Parallel()

	repo := persistence.NewInmemNoticeRepository()
	svc := services.NewNotificationService(repo, nil, configuration.NotificationOptions{
		UnreadWindow: time.Millisecond,
		ListLimit:    100,
	})

	_, err := repo.Create(context.Background(), notice.New("Old", "already expired", notice.AudienceAll))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	count, err := svc.UnreadCount(employeeCtx(uuid.New(), "Engineering"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCreate_RoleMatrix(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	dto := &notice.CreateDTO{Title: "Holiday", Message: "Office closed", Audience: "all"}

	created, err := f.svc.Create(adminCtx(), dto)
	require.NoError(t, err)
	assert.Equal(t, notice.AudienceAll, created.Audience())
	assert.Equal(t, "hr.admin", created.CreatedByName())

	hodCtx := composables.WithActor(context.Background(), composables.Actor{
		ID:       uuid.New(),
		Role:     composables.RoleHOD,
		Username: "9876543210",
	})
	_, err = f.svc.Create(hodCtx, dto)
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Status)

	// An hod may still target its own team.
	_, err = f.svc.Create(hodCtx, &notice.CreateDTO{
		Title:     "Standup",
		Message:   "Moved to 10am",
		Audience:  "team",
		TeamHODID: uuid.New().String(),
	})
	require.NoError(t, err)

	_, err = f.svc.Create(employeeCtx(uuid.New(), "Engineering"), dto)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Status)
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	var svcErr *services.ServiceError

	_, err := f.svc.Create(adminCtx(), &notice.CreateDTO{Title: "", Message: "", Audience: "all"})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.Status)

	_, err = f.svc.Create(adminCtx(), &notice.CreateDTO{Title: "T", Message: "M", Audience: "everyone"})
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.Status)
}

func TestDelete_AuthorOrAdmin(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	author := composables.Actor{ID: uuid.New(), Role: composables.RoleHOD, Username: "9876543210"}
	authorCtx := composables.WithActor(context.Background(), author)

	created, err := f.svc.Create(authorCtx, &notice.CreateDTO{
		Title:     "Standup",
		Message:   "Moved",
		Audience:  "team",
		TeamHODID: uuid.New().String(),
	})
	require.NoError(t, err)

	otherCtx := composables.WithActor(context.Background(), composables.Actor{
		ID:   uuid.New(),
		Role: composables.RoleHOD,
	})
	err = f.svc.Delete(otherCtx, created.ID())
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Status)

	// Administrative roles may delete anyone's notice.
	require.NoError(t, f.svc.Delete(adminCtx(), created.ID()))

	err = f.svc.Delete(adminCtx(), created.ID())
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Status)
}

func TestListForRecipient_NewestFirst(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	employeeID := uuid.New()
	ctx := employeeCtx(employeeID, "Engineering")

	f.publish(t, notice.New("First", "oldest", notice.AudienceAll))
	time.Sleep(2 * time.Millisecond)
	f.publish(t, notice.New("Second", "newest", notice.AudienceAll))
	f.publish(t, notice.New("Other", "not targeted", notice.AudienceIndividual).WithRecipients([]uuid.UUID{uuid.New()}))

	list, err := f.svc.ListForRecipient(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Title())
	assert.Equal(t, "First", list[1].Title())
}

func TestMarkViewed_RequiresActor(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	err := f.svc.MarkViewed(context.Background())
	var svcErr *services.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.Status)
}
