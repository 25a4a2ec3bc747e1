package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/accordhr/accord-hrms/modules/notifications/domain/entities/notice"
	"github.com/accordhr/accord-hrms/modules/notifications/services"
	"github.com/accordhr/accord-hrms/pkg/application"
	"github.com/accordhr/accord-hrms/pkg/composables"
	"github.com/accordhr/accord-hrms/pkg/httpapi"
	"github.com/accordhr/accord-hrms/pkg/middleware"
)

type noticeVM struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Audience      string    `json:"audience"`
	Department    string    `json:"department,omitempty"`
	TeamHODID     string    `json:"teamHodId,omitempty"`
	CreatedByName string    `json:"createdByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toNoticeVM(n notice.Notice) noticeVM {
	vm := noticeVM{
		ID:            n.ID().String(),
		Title:         n.Title(),
		Message:       n.Message(),
		Audience:      string(n.Audience()),
		Department:    n.Department(),
		CreatedByName: n.CreatedByName(),
		CreatedAt:     n.CreatedAt(),
	}
	if n.TeamHODID() != uuid.Nil {
		vm.TeamHODID = n.TeamHODID().String()
	}
	return vm
}

type NotificationsAPIController struct {
	app           application.Application
	notifications *services.NotificationService
	basePath      string
}

func NewNotificationsAPIController(app application.Application) application.Controller {
	return &NotificationsAPIController{
		app:           app,
		notifications: app.Service(services.NotificationService{}).(*services.NotificationService),
		basePath:      "/notifications/api",
	}
}

func (c *NotificationsAPIController) Key() string {
	return c.basePath
}

func (c *NotificationsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/unread-count", c.UnreadCount).Methods(http.MethodGet)
	router.HandleFunc("", c.List).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/viewed", c.MarkViewed).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

// UnreadCount never fails toward the reader: any error degrades to zero so a
// broken badge shows nothing instead of an error.
func (c *NotificationsAPIController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := c.notifications.UnreadCount(r.Context())
	if err != nil {
		if logger, ok := composables.TryUseLogger(r.Context()); ok {
			logger.WithError(err).Warn("unread count failed")
		}
		count = 0
	}
	c.writeJSON(w, http.StatusOK, map[string]any{"count": count})
}

func (c *NotificationsAPIController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.notifications.ListForRecipient(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	out := make([]noticeVM, 0, len(items))
	for _, n := range items {
		out = append(out, toNoticeVM(n))
	}
	c.writeJSON(w, http.StatusOK, map[string]any{"notifications": out})
}

func (c *NotificationsAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto notice.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "NOTIFICATIONS_INVALID_BODY", "invalid json", nil)
		return
	}
	created, err := c.notifications.Create(r.Context(), &dto)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeJSON(w, http.StatusCreated, toNoticeVM(created))
}

func (c *NotificationsAPIController) MarkViewed(w http.ResponseWriter, r *http.Request) {
	if err := c.notifications.MarkViewed(r.Context()); err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeJSON(w, http.StatusOK, map[string]any{"message": "viewed"})
}

func (c *NotificationsAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(mux.Vars(r)["id"])
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOTIFICATIONS_NOT_FOUND", "notice not found", nil)
		return
	}
	if err := c.notifications.Delete(r.Context(), id); err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeJSON(w, http.StatusOK, map[string]any{"message": "notice deleted"})
}

func (c *NotificationsAPIController) writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		panic(err)
	}
}

func (c *NotificationsAPIController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		_ = httpapi.WriteError(w, svcErr.Status, svcErr.Code, svcErr.Message, nil)
		return
	}
	if logger, ok := composables.TryUseLogger(r.Context()); ok {
		logger.WithError(err).Error("notifications request failed")
	}
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "NOTIFICATIONS_INTERNAL", "internal error", nil)
}
