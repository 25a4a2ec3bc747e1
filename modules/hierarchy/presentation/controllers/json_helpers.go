package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
	"github.com/accordhr/accord-hrms/pkg/composables"
	"github.com/accordhr/accord-hrms/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		panic(err)
	}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	meta := map[string]string{
		"request_id": ensureRequestID(w, r),
	}
	_ = httpapi.WriteError(w, status, code, message, meta)
}

// writeServiceError renders coded service errors with their own status and
// everything else as an opaque internal error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		writeAPIError(w, r, svcErr.Status, svcErr.Code, svcErr.Message)
		return
	}
	if errors.Is(err, director.ErrNotFound) || errors.Is(err, hod.ErrNotFound) || errors.Is(err, employee.ErrNotFound) {
		writeAPIError(w, r, http.StatusNotFound, "HIERARCHY_NOT_FOUND", err.Error())
		return
	}
	if errors.Is(err, services.ErrAlreadyAssigned) {
		writeAPIError(w, r, http.StatusConflict, "HIERARCHY_CONFLICT", err.Error())
		return
	}
	if logger, ok := composables.TryUseLogger(r.Context()); ok {
		logger.WithError(err).Error("hierarchy request failed")
	}
	writeAPIError(w, r, http.StatusInternalServerError, "HIERARCHY_INTERNAL", "internal error")
}

func ensureRequestID(w http.ResponseWriter, r *http.Request) string {
	if r == nil {
		return ""
	}
	requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
	if requestID == "" {
		requestID = strings.TrimSpace(r.Header.Get("X-Request-Id"))
	}
	if requestID == "" {
		requestID = uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
	}
	return requestID
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		writeAPIError(w, r, http.StatusNotFound, "HIERARCHY_NOT_FOUND", "not found")
		return uuid.Nil, false
	}
	return id, true
}
