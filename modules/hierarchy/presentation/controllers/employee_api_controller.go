package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/presentation/mappers"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
	"github.com/accordhr/accord-hrms/pkg/application"
)

type EmployeeAPIController struct {
	app       application.Application
	employees *services.EmployeeService
	registry  *services.AssignmentRegistry
	basePath  string
}

func NewEmployeeAPIController(app application.Application) application.Controller {
	return &EmployeeAPIController{
		app:       app,
		employees: app.Service(services.EmployeeService{}).(*services.EmployeeService),
		registry:  app.Service(services.AssignmentRegistry{}).(*services.AssignmentRegistry),
		basePath:  "/hierarchy/api/employees",
	}
}

func (c *EmployeeAPIController) Key() string {
	return c.basePath
}

func (c *EmployeeAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/unassigned", c.Unassigned).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
}

func (c *EmployeeAPIController) List(w http.ResponseWriter, r *http.Request) {
	params := &employee.FindParams{
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
		Status:     employee.Status(strings.TrimSpace(r.URL.Query().Get("status"))),
	}
	items, err := c.employees.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employees": mappers.EmployeesToVM(items)})
}

func (c *EmployeeAPIController) Unassigned(w http.ResponseWriter, r *http.Request) {
	items, err := c.registry.ListUnassignedEmployees(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employees": mappers.EmployeesToVM(items)})
}

func (c *EmployeeAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	e, err := c.employees.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.EmployeeToVM(e))
}
