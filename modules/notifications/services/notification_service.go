package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/notifications/domain/entities/notice"
	"github.com/accordhr/accord-hrms/pkg/composables"
	"github.com/accordhr/accord-hrms/pkg/configuration"
)

type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

// ReportingDirectory resolves the hod an employee currently reports to.
// Implemented by the hierarchy module.
type ReportingDirectory interface {
	HODOf(ctx context.Context, employeeID uuid.UUID) (uuid.UUID, error)
}

// NotificationService counts and manages notices. Unread counting combines a
// per-recipient viewed watermark with a retention window: only notices newer
// than both are unread. Counts are computed on read and never stored.
type NotificationService struct {
	repo      notice.Repository
	reporting ReportingDirectory
	options   configuration.NotificationOptions
}

func NewNotificationService(repo notice.Repository, reporting ReportingDirectory, options configuration.NotificationOptions) *NotificationService {
	return &NotificationService{repo: repo, reporting: reporting, options: options}
}

// UnreadCount returns the number of unread notices for the acting user.
// Only employee-facing roles carry a badge; everyone else always sees zero.
func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return 0, nil
	}
	if actor.Role != composables.RoleEmployee && actor.Role != composables.RoleHREmployee {
		return 0, nil
	}
	if actor.EmployeeID == uuid.Nil {
		return 0, nil
	}
	rec, err := s.resolveRecipient(ctx, actor)
	if err != nil {
		return 0, err
	}
	since, err := s.unreadSince(ctx, actor.EmployeeID)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.CountForRecipient(ctx, rec, since)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkViewed advances the actor's watermark to now. Later notices become the
// only unread ones.
func (s *NotificationService) MarkViewed(ctx context.Context) error {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return newServiceError(http.StatusUnauthorized, "NOTIFICATIONS_NO_ACTOR", "not authenticated", err)
	}
	if actor.EmployeeID == uuid.Nil {
		return nil
	}
	return s.repo.SetLastViewed(ctx, actor.EmployeeID, time.Now())
}

// ListForRecipient returns the actor's notices inside the retention window,
// newest first.
func (s *NotificationService) ListForRecipient(ctx context.Context) ([]notice.Notice, error) {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return nil, newServiceError(http.StatusUnauthorized, "NOTIFICATIONS_NO_ACTOR", "not authenticated", err)
	}
	if actor.EmployeeID == uuid.Nil {
		return []notice.Notice{}, nil
	}
	rec, err := s.resolveRecipient(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForRecipient(ctx, rec, time.Now().Add(-s.options.UnreadWindow), s.options.ListLimit)
}

// Create publishes a notice. Only hierarchy managers and hods may author;
// hods can only target their own team or department members individually.
func (s *NotificationService) Create(ctx context.Context, dto *notice.CreateDTO) (notice.Notice, error) {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return notice.Notice{}, newServiceError(http.StatusUnauthorized, "NOTIFICATIONS_NO_ACTOR", "not authenticated", err)
	}
	if !actor.Role.IsAdministrative() && actor.Role != composables.RoleHOD {
		return notice.Notice{}, newServiceError(http.StatusForbidden, "NOTIFICATIONS_FORBIDDEN", "role may not publish notices", nil)
	}
	if msgs, ok := dto.Ok(ctx); !ok {
		return notice.Notice{}, newServiceError(http.StatusBadRequest, "NOTIFICATIONS_INVALID_BODY", joinFieldErrors(msgs), nil)
	}
	audience := notice.Audience(dto.Audience)
	if actor.Role == composables.RoleHOD && audience == notice.AudienceAll {
		return notice.Notice{}, newServiceError(http.StatusForbidden, "NOTIFICATIONS_FORBIDDEN", "hods may not target all employees", nil)
	}

	n := notice.New(dto.Title, dto.Message, audience).WithAuthor(actor.ID, actor.Username)
	switch audience {
	case notice.AudienceDepartment:
		n = n.WithDepartment(dto.Department)
	case notice.AudienceTeam:
		hodID, err := uuid.Parse(dto.TeamHODID)
		if err != nil {
			return notice.Notice{}, newServiceError(http.StatusBadRequest, "NOTIFICATIONS_INVALID_BODY", "teamHodId must be a valid uuid", err)
		}
		n = n.WithTeamHOD(hodID)
	case notice.AudienceIndividual:
		recipients := make([]uuid.UUID, 0, len(dto.RecipientIDs))
		for _, raw := range dto.RecipientIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return notice.Notice{}, newServiceError(http.StatusBadRequest, "NOTIFICATIONS_INVALID_BODY", "recipientIds must be valid uuids", err)
			}
			recipients = append(recipients, id)
		}
		n = n.WithRecipients(recipients)
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return notice.Notice{}, err
	}
	return created, nil
}

// Delete removes a notice. Administrative roles may delete any notice,
// everyone else only their own.
func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := composables.UseActor(ctx)
	if err != nil {
		return newServiceError(http.StatusUnauthorized, "NOTIFICATIONS_NO_ACTOR", "not authenticated", err)
	}
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, notice.ErrNotFound) {
			return newServiceError(http.StatusNotFound, "NOTIFICATIONS_NOT_FOUND", "notice not found", err)
		}
		return err
	}
	if !actor.Role.IsAdministrative() && n.CreatedBy() != actor.ID {
		return newServiceError(http.StatusForbidden, "NOTIFICATIONS_FORBIDDEN", "only the author may delete this notice", nil)
	}
	return s.repo.Delete(ctx, id)
}

// Publish records a system-authored notice, used by event handlers.
func (s *NotificationService) Publish(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	return s.repo.Create(ctx, n)
}

func (s *NotificationService) resolveRecipient(ctx context.Context, actor composables.Actor) (notice.Recipient, error) {
	rec := notice.Recipient{EmployeeID: actor.EmployeeID, Department: actor.Department}
	if s.reporting != nil {
		hodID, err := s.reporting.HODOf(ctx, actor.EmployeeID)
		if err == nil {
			rec.HODID = hodID
		}
	}
	return rec, nil
}

// unreadSince is the later of the viewed watermark and the retention cutoff.
func (s *NotificationService) unreadSince(ctx context.Context, recipientID uuid.UUID) (time.Time, error) {
	cutoff := time.Now().Add(-s.options.UnreadWindow)
	viewed, err := s.repo.GetLastViewed(ctx, recipientID)
	if err != nil {
		return time.Time{}, err
	}
	if viewed.After(cutoff) {
		return viewed, nil
	}
	return cutoff, nil
}

func joinFieldErrors(msgs map[string]string) string {
	parts := make([]string, 0, len(msgs))
	for field, msg := range msgs {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
