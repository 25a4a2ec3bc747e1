package hierarchy

import (
	"embed"

	"github.com/accordhr/accord-hrms/modules/hierarchy/infrastructure/persistence"
	"github.com/accordhr/accord-hrms/modules/hierarchy/presentation/controllers"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
	"github.com/accordhr/accord-hrms/pkg/application"
	"github.com/accordhr/accord-hrms/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/hierarchy-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	conf := configuration.Use()
	directorRepo := persistence.NewDirectorRepository()
	hodRepo := persistence.NewHODRepository()
	employeeRepo := persistence.NewEmployeeRepository()

	guard := services.NewDeletionGuard(hodRepo, employeeRepo)
	registry := services.NewAssignmentRegistry(directorRepo, hodRepo, employeeRepo, app.EventPublisher())

	app.RegisterServices(
		registry,
		guard,
		services.NewAssignmentService(registry, hodRepo, employeeRepo),
		services.NewDirectorService(directorRepo, hodRepo, employeeRepo, guard, app.EventPublisher(), conf.Hierarchy),
		services.NewHODService(hodRepo, employeeRepo, guard, app.EventPublisher(), conf.Hierarchy),
		services.NewEmployeeService(employeeRepo),
	)

	app.RegisterControllers(
		controllers.NewDirectorAPIController(app),
		controllers.NewHODAPIController(app),
		controllers.NewEmployeeAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "hierarchy"
}
