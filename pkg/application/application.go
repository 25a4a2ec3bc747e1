package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/accordhr/accord-hrms/pkg/eventbus"
)

// Module is a self-contained feature unit that registers its services,
// controllers and schema against the application.
type Module interface {
	Register(app Application) error
	Name() string
}

// Controller mounts a set of routes on the root router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

type Application interface {
	Pool() *pgxpool.Pool
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus

	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}

	RegisterControllers(controllers ...Controller)
	Controllers() []Controller

	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	Middleware() []mux.MiddlewareFunc

	RegisterSchema(fsys *embed.FS)
	ApplySchema(ctx context.Context) error
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:     opts.Pool,
		eventBus: opts.EventBus,
		logger:   opts.Logger,
		services: map[reflect.Type]interface{}{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	services    map[reflect.Type]interface{}
	controllers []Controller
	middleware  []mux.MiddlewareFunc
	schemas     []*embed.FS
}

func (a *application) Pool() *pgxpool.Pool               { return a.pool }
func (a *application) Logger() *logrus.Logger            { return a.logger }
func (a *application) EventPublisher() eventbus.EventBus { return a.eventBus }
func (a *application) Controllers() []Controller         { return a.controllers }
func (a *application) Middleware() []mux.MiddlewareFunc  { return a.middleware }

func (a *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		a.services[reflect.TypeOf(service).Elem()] = service
	}
}

// Service returns the registered instance of the given service type. Panics
// when the module that provides it was not loaded.
func (a *application) Service(service interface{}) interface{} {
	svc, ok := a.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("service %s not found", reflect.TypeOf(service).Name()))
	}
	return svc
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) RegisterSchema(fsys *embed.FS) {
	a.schemas = append(a.schemas, fsys)
}

// ApplySchema executes every registered schema file against the pool. Schema
// files are written to be idempotent (CREATE TABLE IF NOT EXISTS), so boot-time
// application is safe.
func (a *application) ApplySchema(ctx context.Context) error {
	for _, fsys := range a.schemas {
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			sql, err := fs.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("read schema %s: %w", path, err)
			}
			if _, err := a.pool.Exec(ctx, string(sql)); err != nil {
				return fmt.Errorf("apply schema %s: %w", path, err)
			}
			a.logger.Infof("applied schema %s", path)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
