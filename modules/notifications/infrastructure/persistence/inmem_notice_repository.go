package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/notifications/domain/entities/notice"
)

// InmemNoticeRepository backs service and badge tests without a database.
type InmemNoticeRepository struct {
	mu         sync.RWMutex
	notices    map[uuid.UUID]notice.Notice
	watermarks map[uuid.UUID]time.Time
}

func NewInmemNoticeRepository() *InmemNoticeRepository {
	return &InmemNoticeRepository{
		notices:    map[uuid.UUID]notice.Notice{},
		watermarks: map[uuid.UUID]time.Time{},
	}
}

func (r *InmemNoticeRepository) GetByID(ctx context.Context, id uuid.UUID) (notice.Notice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, found := r.notices[id]
	if !found {
		return notice.Notice{}, notice.ErrNotFound
	}
	return n, nil
}

func (r *InmemNoticeRepository) Create(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := notice.Hydrate(
		uuid.New(), n.Title(), n.Message(), n.Audience(), n.Department(),
		n.TeamHODID(), n.RecipientIDs(), n.CreatedBy(), n.CreatedByName(), time.Now(),
	)
	r.notices[created.ID()] = created
	return created, nil
}

func (r *InmemNoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.notices[id]; !found {
		return notice.ErrNotFound
	}
	delete(r.notices, id)
	return nil
}

func (r *InmemNoticeRepository) ListForRecipient(ctx context.Context, rec notice.Recipient, since time.Time, limit int) ([]notice.Notice, error) {
	r.mu.RLock()
	all := make([]notice.Notice, 0, len(r.notices))
	for _, n := range r.notices {
		all = append(all, n)
	}
	r.mu.RUnlock()

	out := make([]notice.Notice, 0)
	for _, n := range all {
		if n.Targets(rec) && n.CreatedAt().After(since) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InmemNoticeRepository) CountForRecipient(ctx context.Context, rec notice.Recipient, since time.Time) (int64, error) {
	items, err := r.ListForRecipient(ctx, rec, since, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (r *InmemNoticeRepository) GetLastViewed(ctx context.Context, recipientID uuid.UUID) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.watermarks[recipientID], nil
}

func (r *InmemNoticeRepository) SetLastViewed(ctx context.Context, recipientID uuid.UUID, viewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, found := r.watermarks[recipientID]; found && current.After(viewedAt) {
		return nil
	}
	r.watermarks[recipientID] = viewedAt
	return nil
}
