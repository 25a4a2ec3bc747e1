package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/infrastructure/persistence/models"
	"github.com/accordhr/accord-hrms/pkg/composables"
)

const hodColumns = `id, name, username, department, email, password_hash, must_change_password, director_id, is_active, created_at, updated_at`

type HODRepository struct{}

func NewHODRepository() hod.Repository {
	return &HODRepository{}
}

func (r *HODRepository) GetAll(ctx context.Context, params *hod.FindParams) ([]hod.HOD, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + hodColumns + ` FROM hods`
	conds := []string{}
	args := []interface{}{}
	if !params.IncludeInactive {
		conds = append(conds, `is_active`)
	}
	if params.Department != "" {
		args = append(args, params.Department)
		conds = append(conds, `department = $1`)
	}
	for i, c := range conds {
		if i == 0 {
			q += ` WHERE ` + c
		} else {
			q += ` AND ` + c
		}
	}
	q += ` ORDER BY name`
	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHODs(rows)
}

func (r *HODRepository) GetByID(ctx context.Context, id uuid.UUID) (hod.HOD, error) {
	return r.getOne(ctx, `SELECT `+hodColumns+` FROM hods WHERE id = $1`, pgUUID(id))
}

func (r *HODRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (hod.HOD, error) {
	return r.getOne(ctx, `SELECT `+hodColumns+` FROM hods WHERE id = $1 FOR UPDATE`, pgUUID(id))
}

func (r *HODRepository) GetByUsername(ctx context.Context, username string) (hod.HOD, error) {
	return r.getOne(ctx, `SELECT `+hodColumns+` FROM hods WHERE username = $1`, username)
}

func (r *HODRepository) GetByEmail(ctx context.Context, email string) (hod.HOD, error) {
	return r.getOne(ctx, `SELECT `+hodColumns+` FROM hods WHERE email = $1`, email)
}

func (r *HODRepository) GetActiveByDepartment(ctx context.Context, department string) (hod.HOD, error) {
	return r.getOne(ctx, `SELECT `+hodColumns+` FROM hods WHERE department = $1 AND is_active`, department)
}

func (r *HODRepository) GetByDirector(ctx context.Context, directorID uuid.UUID) ([]hod.HOD, error) {
	return r.getMany(ctx, `SELECT `+hodColumns+` FROM hods WHERE director_id = $1 ORDER BY name`, pgUUID(directorID))
}

func (r *HODRepository) GetUnassigned(ctx context.Context) ([]hod.HOD, error) {
	return r.getMany(ctx, `SELECT `+hodColumns+` FROM hods WHERE director_id IS NULL AND is_active ORDER BY name`)
}

func (r *HODRepository) CountByDirector(ctx context.Context, directorID uuid.UUID) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM hods WHERE director_id = $1`, pgUUID(directorID)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *HODRepository) Create(ctx context.Context, h hod.HOD) (hod.HOD, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return hod.HOD{}, err
	}
	row := tx.QueryRow(ctx, `
INSERT INTO hods (name, username, department, email, password_hash, must_change_password, director_id, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+hodColumns,
		h.Name(),
		h.Username(),
		h.Department(),
		pgNullableText(h.Email()),
		h.PasswordHash(),
		h.MustChangePassword(),
		pgNullableUUID(h.DirectorID()),
		h.IsActive(),
	)
	return scanHOD(row)
}

func (r *HODRepository) Update(ctx context.Context, h hod.HOD) (hod.HOD, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return hod.HOD{}, err
	}
	row := tx.QueryRow(ctx, `
UPDATE hods
SET name = $2,
    username = $3,
    department = $4,
    email = $5,
    password_hash = $6,
    must_change_password = $7,
    director_id = $8,
    is_active = $9,
    updated_at = now()
WHERE id = $1
RETURNING `+hodColumns,
		pgUUID(h.ID()),
		h.Name(),
		h.Username(),
		h.Department(),
		pgNullableText(h.Email()),
		h.PasswordHash(),
		h.MustChangePassword(),
		pgNullableUUID(h.DirectorID()),
		h.IsActive(),
	)
	return scanHOD(row)
}

func (r *HODRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM hods WHERE id = $1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return hod.ErrNotFound
	}
	return nil
}

func (r *HODRepository) getOne(ctx context.Context, q string, args ...interface{}) (hod.HOD, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return hod.HOD{}, err
	}
	h, err := scanHOD(tx.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hod.HOD{}, hod.ErrNotFound
		}
		return hod.HOD{}, err
	}
	return h, nil
}

func (r *HODRepository) getMany(ctx context.Context, q string, args ...interface{}) ([]hod.HOD, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHODs(rows)
}

func collectHODs(rows pgx.Rows) ([]hod.HOD, error) {
	out := make([]hod.HOD, 0)
	for rows.Next() {
		h, err := scanHOD(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanHOD(row pgx.Row) (hod.HOD, error) {
	var m models.HOD
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Username,
		&m.Department,
		&m.Email,
		&m.PasswordHash,
		&m.MustChangePassword,
		&m.DirectorID,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return hod.HOD{}, err
	}
	return toDomainHOD(m), nil
}
