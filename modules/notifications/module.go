package notifications

import (
	"context"
	"embed"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	hierarchyPersistence "github.com/accordhr/accord-hrms/modules/hierarchy/infrastructure/persistence"
	"github.com/accordhr/accord-hrms/modules/notifications/handlers"
	"github.com/accordhr/accord-hrms/modules/notifications/infrastructure/persistence"
	"github.com/accordhr/accord-hrms/modules/notifications/presentation/controllers"
	"github.com/accordhr/accord-hrms/modules/notifications/services"
	"github.com/accordhr/accord-hrms/pkg/application"
	"github.com/accordhr/accord-hrms/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/notifications-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	conf := configuration.Use()
	noticeRepo := persistence.NewNoticeRepository()
	reporting := &reportingDirectory{employees: hierarchyPersistence.NewEmployeeRepository()}

	notificationService := services.NewNotificationService(noticeRepo, reporting, conf.Notifications)
	app.RegisterServices(notificationService)

	app.RegisterControllers(
		controllers.NewNotificationsAPIController(app),
	)

	handler := handlers.NewAssignmentNoticeHandler(notificationService, app.Pool(), app.Logger())
	app.EventPublisher().Subscribe(handler.OnAssignmentChanged)

	return nil
}

func (m *Module) Name() string {
	return "notifications"
}

// reportingDirectory adapts the hierarchy employee repository to the
// notifications module's lookup seam.
type reportingDirectory struct {
	employees employee.Repository
}

func (d *reportingDirectory) HODOf(ctx context.Context, employeeID uuid.UUID) (uuid.UUID, error) {
	e, err := d.employees.GetByID(ctx, employeeID)
	if err != nil {
		return uuid.Nil, err
	}
	return e.HODID(), nil
}
