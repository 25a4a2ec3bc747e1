package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/presentation/mappers"
	"github.com/accordhr/accord-hrms/modules/hierarchy/presentation/viewmodels"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
	"github.com/accordhr/accord-hrms/pkg/application"
	"github.com/accordhr/accord-hrms/pkg/middleware"
)

type HODAPIController struct {
	app         application.Application
	hods        *services.HODService
	assignments *services.AssignmentService
	registry    *services.AssignmentRegistry
	basePath    string
}

func NewHODAPIController(app application.Application) application.Controller {
	return &HODAPIController{
		app:         app,
		hods:        app.Service(services.HODService{}).(*services.HODService),
		assignments: app.Service(services.AssignmentService{}).(*services.AssignmentService),
		registry:    app.Service(services.AssignmentRegistry{}).(*services.AssignmentRegistry),
		basePath:    "/hierarchy/api/hods",
	}
}

func (c *HODAPIController) Key() string {
	return c.basePath
}

func (c *HODAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/unassigned", c.Unassigned).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/{id}/employees", c.AssignEmployees).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/employees/{employeeId}", c.UnassignEmployee).Methods(http.MethodDelete)
}

func (c *HODAPIController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.hods.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]viewmodels.HOD, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.HODToVM(item.HOD, item.AssignedEmployeesCount))
	}
	writeJSON(w, http.StatusOK, map[string]any{"hods": out})
}

func (c *HODAPIController) Unassigned(w http.ResponseWriter, r *http.Request) {
	items, err := c.registry.ListUnassignedHODs(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hods": mappers.HODsToVM(items)})
}

func (c *HODAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	details, err := c.hods.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.HODDetailsToVM(details))
}

func (c *HODAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto hod.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "HIERARCHY_INVALID_BODY", "invalid json")
		return
	}
	created, err := c.hods.Create(r.Context(), &dto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.HODToVM(created, 0))
}

func (c *HODAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var dto hod.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "HIERARCHY_INVALID_BODY", "invalid json")
		return
	}
	updated, err := c.hods.Update(r.Context(), id, &dto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.HODToVM(updated, 0))
}

func (c *HODAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.hods.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "hod deleted"})
}

func (c *HODAPIController) AssignEmployees(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req assignEmployeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "HIERARCHY_INVALID_BODY", "invalid json")
		return
	}
	result, err := c.assignments.AssignEmployeesToHOD(r.Context(), id, req.EmployeeIDs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": result})
}

func (c *HODAPIController) UnassignEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	employeeID, ok := pathUUID(w, r, "employeeId")
	if !ok {
		return
	}
	err := c.registry.UnlinkEmployeeFromHOD(r.Context(), id, employeeID)
	if err != nil && !errors.Is(err, services.ErrNotLinked) {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "employee unassigned"})
}
