package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/accordhr/accord-hrms/modules/notifications/domain/entities/notice"
	"github.com/accordhr/accord-hrms/pkg/composables"
)

const noticeColumns = `id, title, message, audience, department, team_hod_id, recipient_ids, created_by, created_by_name, created_at`

// audienceMatch selects notices reaching one recipient across all four
// audience kinds. Placeholders: $1 employee id (text), $2 department,
// $3 hod id.
const audienceMatch = `(
	audience = 'all'
	OR (audience = 'department' AND lower(department) = lower($2))
	OR (audience = 'individual' AND $1 = ANY(recipient_ids))
	OR (audience = 'team' AND team_hod_id = $3)
)`

type NoticeRepository struct{}

func NewNoticeRepository() notice.Repository {
	return &NoticeRepository{}
}

func (r *NoticeRepository) GetByID(ctx context.Context, id uuid.UUID) (notice.Notice, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return notice.Notice{}, err
	}
	n, err := scanNotice(tx.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notice.Notice{}, notice.ErrNotFound
		}
		return notice.Notice{}, err
	}
	return n, nil
}

func (r *NoticeRepository) Create(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return notice.Notice{}, err
	}
	recipients := make([]string, 0, len(n.RecipientIDs()))
	for _, id := range n.RecipientIDs() {
		recipients = append(recipients, id.String())
	}
	row := tx.QueryRow(ctx, `
INSERT INTO notices (title, message, audience, department, team_hod_id, recipient_ids, created_by, created_by_name)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+noticeColumns,
		n.Title(),
		n.Message(),
		string(n.Audience()),
		pgNullableText(n.Department()),
		pgNullableUUID(n.TeamHODID()),
		recipients,
		pgNullableUUID(n.CreatedBy()),
		n.CreatedByName(),
	)
	return scanNotice(row)
}

func (r *NoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM notices WHERE id = $1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notice.ErrNotFound
	}
	return nil
}

func (r *NoticeRepository) ListForRecipient(ctx context.Context, rec notice.Recipient, since time.Time, limit int) ([]notice.Notice, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
SELECT `+noticeColumns+`
FROM notices
WHERE `+audienceMatch+` AND created_at > $4
ORDER BY created_at DESC
LIMIT $5`,
		rec.EmployeeID.String(),
		rec.Department,
		pgNullableUUID(rec.HODID),
		since,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notice.Notice, 0)
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NoticeRepository) CountForRecipient(ctx context.Context, rec notice.Recipient, since time.Time) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	err = tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM notices
WHERE `+audienceMatch+` AND created_at > $4`,
		rec.EmployeeID.String(),
		rec.Department,
		pgNullableUUID(rec.HODID),
		since,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NoticeRepository) GetLastViewed(ctx context.Context, recipientID uuid.UUID) (time.Time, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return time.Time{}, err
	}
	var viewedAt time.Time
	err = tx.QueryRow(ctx, `SELECT last_viewed_at FROM notice_watermarks WHERE recipient_id = $1`, pgUUID(recipientID)).Scan(&viewedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return viewedAt, nil
}

// SetLastViewed upserts the watermark, last write wins.
func (r *NoticeRepository) SetLastViewed(ctx context.Context, recipientID uuid.UUID, viewedAt time.Time) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO notice_watermarks (recipient_id, last_viewed_at)
VALUES ($1, $2)
ON CONFLICT (recipient_id)
DO UPDATE SET last_viewed_at = GREATEST(notice_watermarks.last_viewed_at, EXCLUDED.last_viewed_at)`,
		pgUUID(recipientID), viewedAt)
	return err
}

func scanNotice(row pgx.Row) (notice.Notice, error) {
	var (
		id            pgtype.UUID
		title         string
		message       string
		audience      string
		department    pgtype.Text
		teamHODID     pgtype.UUID
		recipientRaw  []string
		createdBy     pgtype.UUID
		createdByName string
		createdAt     time.Time
	)
	if err := row.Scan(&id, &title, &message, &audience, &department, &teamHODID, &recipientRaw, &createdBy, &createdByName, &createdAt); err != nil {
		return notice.Notice{}, err
	}
	recipients := make([]uuid.UUID, 0, len(recipientRaw))
	for _, raw := range recipientRaw {
		rid, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		recipients = append(recipients, rid)
	}
	return notice.Hydrate(
		asUUID(id),
		title,
		message,
		notice.Audience(audience),
		asText(department),
		asUUID(teamHODID),
		recipients,
		asUUID(createdBy),
		createdByName,
		createdAt,
	), nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgNullableUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgNullableText(v string) pgtype.Text {
	if v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}

func asUUID(v pgtype.UUID) uuid.UUID {
	if !v.Valid {
		return uuid.Nil
	}
	return uuid.UUID(v.Bytes)
}

func asText(v pgtype.Text) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
