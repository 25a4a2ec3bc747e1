package notice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/pkg/serrors"
)

var ErrNotFound = serrors.NewError("NOTICE_NOT_FOUND", "notice not found", "")

// Recipient identifies one reader for audience matching.
type Recipient struct {
	EmployeeID uuid.UUID
	Department string
	HODID      uuid.UUID
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Notice, error)
	Create(ctx context.Context, n Notice) (Notice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListForRecipient returns audience-matched notices created after since,
	// newest first.
	ListForRecipient(ctx context.Context, r Recipient, since time.Time, limit int) ([]Notice, error)
	CountForRecipient(ctx context.Context, r Recipient, since time.Time) (int64, error)

	// Per-recipient unread watermark. A zero time means never viewed.
	GetLastViewed(ctx context.Context, recipientID uuid.UUID) (time.Time, error)
	SetLastViewed(ctx context.Context, recipientID uuid.UUID, viewedAt time.Time) error
}
