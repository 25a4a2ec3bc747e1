package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/presentation/mappers"
	"github.com/accordhr/accord-hrms/modules/hierarchy/presentation/viewmodels"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
	"github.com/accordhr/accord-hrms/pkg/application"
	"github.com/accordhr/accord-hrms/pkg/middleware"
)

type DirectorAPIController struct {
	app         application.Application
	directors   *services.DirectorService
	assignments *services.AssignmentService
	registry    *services.AssignmentRegistry
	basePath    string
}

func NewDirectorAPIController(app application.Application) application.Controller {
	return &DirectorAPIController{
		app:         app,
		directors:   app.Service(services.DirectorService{}).(*services.DirectorService),
		assignments: app.Service(services.AssignmentService{}).(*services.AssignmentService),
		registry:    app.Service(services.AssignmentRegistry{}).(*services.AssignmentRegistry),
		basePath:    "/hierarchy/api/directors",
	}
}

func (c *DirectorAPIController) Key() string {
	return c.basePath
}

func (c *DirectorAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}/hierarchy", c.Hierarchy).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/{id}/hods", c.AssignHODs).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/hods/{hodId}", c.UnassignHOD).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/{id}/employees", c.AssignEmployees).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/employees/{employeeId}", c.UnassignEmployee).Methods(http.MethodDelete)
}

func (c *DirectorAPIController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.directors.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]viewmodels.Director, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.DirectorToVM(item.Director, item.AssignedHODsCount, item.AssignedEmployeesCount))
	}
	writeJSON(w, http.StatusOK, map[string]any{"directors": out})
}

func (c *DirectorAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	details, err := c.directors.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.DirectorDetailsToVM(details))
}

func (c *DirectorAPIController) Hierarchy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	hierarchy, err := c.directors.GetHierarchy(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.HierarchyToVM(hierarchy))
}

func (c *DirectorAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto director.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "HIERARCHY_INVALID_BODY", "invalid json")
		return
	}
	created, err := c.directors.Create(r.Context(), &dto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.DirectorToVM(created, 0, 0))
}

func (c *DirectorAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var dto director.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "HIERARCHY_INVALID_BODY", "invalid json")
		return
	}
	updated, err := c.directors.Update(r.Context(), id, &dto)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.DirectorToVM(updated, 0, 0))
}

func (c *DirectorAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.directors.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "director deleted"})
}

type assignHODsRequest struct {
	HODIDs []string `json:"hodIds"`
}

type assignEmployeesRequest struct {
	EmployeeIDs []string `json:"employeeIds"`
}

func (c *DirectorAPIController) AssignHODs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req assignHODsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "HIERARCHY_INVALID_BODY", "invalid json")
		return
	}
	result, err := c.assignments.AssignHODsToDirector(r.Context(), id, req.HODIDs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": result})
}

func (c *DirectorAPIController) AssignEmployees(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req assignEmployeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "HIERARCHY_INVALID_BODY", "invalid json")
		return
	}
	result, err := c.assignments.AssignEmployeesToDirector(r.Context(), id, req.EmployeeIDs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": result})
}

// UnassignHOD removes the hod from the director. A link that is already gone
// is reported as success so the caller lands on the same end state either way.
func (c *DirectorAPIController) UnassignHOD(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	hodID, ok := pathUUID(w, r, "hodId")
	if !ok {
		return
	}
	err := c.registry.UnlinkHODFromDirector(r.Context(), id, hodID)
	if err != nil && !errors.Is(err, services.ErrNotLinked) {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "hod unassigned"})
}

func (c *DirectorAPIController) UnassignEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	employeeID, ok := pathUUID(w, r, "employeeId")
	if !ok {
		return
	}
	err := c.registry.UnlinkEmployeeFromDirector(r.Context(), id, employeeID)
	if err != nil && !errors.Is(err, services.ErrNotLinked) {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "employee unassigned"})
}
