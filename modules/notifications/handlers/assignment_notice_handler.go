package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	hierarchyevents "github.com/accordhr/accord-hrms/modules/hierarchy/domain/events"
	"github.com/accordhr/accord-hrms/modules/notifications/domain/entities/notice"
	"github.com/accordhr/accord-hrms/modules/notifications/services"
	"github.com/accordhr/accord-hrms/pkg/composables"
)

// AssignmentNoticeHandler turns hierarchy assignment changes into system
// notices for the affected employee, so the unread badge reacts to
// organizational moves without anyone authoring a notice by hand.
type AssignmentNoticeHandler struct {
	notifications *services.NotificationService
	pool          *pgxpool.Pool
	logger        *logrus.Logger
}

func NewAssignmentNoticeHandler(notifications *services.NotificationService, pool *pgxpool.Pool, logger *logrus.Logger) *AssignmentNoticeHandler {
	return &AssignmentNoticeHandler{notifications: notifications, pool: pool, logger: logger}
}

func (h *AssignmentNoticeHandler) OnAssignmentChanged(event hierarchyevents.AssignmentChanged) {
	if event.Axis == hierarchyevents.AxisHODToDirector {
		return
	}

	verb := "assigned to"
	if !event.Linked {
		verb = "unassigned from"
	}
	n := notice.New(
		"Reporting change",
		fmt.Sprintf("You have been %s %s.", verb, event.OwnerName),
		notice.AudienceIndividual,
	).WithRecipients([]uuid.UUID{event.SubordinateID}).WithAuthor(uuid.Nil, "system")

	ctx := composables.WithPool(context.Background(), h.pool)
	if _, err := h.notifications.Publish(ctx, n); err != nil {
		h.logger.WithError(err).Warn("failed to record assignment notice")
	}
}
