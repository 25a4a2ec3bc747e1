package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/infrastructure/persistence/models"
	"github.com/accordhr/accord-hrms/pkg/composables"
)

const directorColumns = `id, name, username, email, password_hash, must_change_password, employee_id, is_active, created_at, updated_at`

type DirectorRepository struct{}

func NewDirectorRepository() director.Repository {
	return &DirectorRepository{}
}

func (r *DirectorRepository) GetAll(ctx context.Context, params *director.FindParams) ([]director.Director, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + directorColumns + ` FROM directors`
	if !params.IncludeInactive {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY name`
	args := []interface{}{}
	if params.Limit > 0 {
		q += ` LIMIT $1 OFFSET $2`
		args = append(args, params.Limit, params.Offset)
	}
	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]director.Director, 0)
	for rows.Next() {
		d, err := scanDirector(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DirectorRepository) GetByID(ctx context.Context, id uuid.UUID) (director.Director, error) {
	return r.getOne(ctx, `SELECT `+directorColumns+` FROM directors WHERE id = $1`, pgUUID(id))
}

func (r *DirectorRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (director.Director, error) {
	return r.getOne(ctx, `SELECT `+directorColumns+` FROM directors WHERE id = $1 FOR UPDATE`, pgUUID(id))
}

func (r *DirectorRepository) GetByUsername(ctx context.Context, username string) (director.Director, error) {
	return r.getOne(ctx, `SELECT `+directorColumns+` FROM directors WHERE username = $1`, username)
}

func (r *DirectorRepository) GetByEmail(ctx context.Context, email string) (director.Director, error) {
	return r.getOne(ctx, `SELECT `+directorColumns+` FROM directors WHERE email = $1`, email)
}

func (r *DirectorRepository) GetByEmployeeID(ctx context.Context, employeeID uuid.UUID) (director.Director, error) {
	return r.getOne(ctx, `SELECT `+directorColumns+` FROM directors WHERE employee_id = $1`, pgUUID(employeeID))
}

func (r *DirectorRepository) Create(ctx context.Context, d director.Director) (director.Director, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return director.Director{}, err
	}
	row := tx.QueryRow(ctx, `
INSERT INTO directors (name, username, email, password_hash, must_change_password, employee_id, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+directorColumns,
		d.Name(),
		d.Username(),
		pgNullableText(d.Email()),
		d.PasswordHash(),
		d.MustChangePassword(),
		pgNullableUUID(d.EmployeeID()),
		d.IsActive(),
	)
	return scanDirector(row)
}

func (r *DirectorRepository) Update(ctx context.Context, d director.Director) (director.Director, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return director.Director{}, err
	}
	row := tx.QueryRow(ctx, `
UPDATE directors
SET name = $2,
    username = $3,
    email = $4,
    password_hash = $5,
    must_change_password = $6,
    employee_id = $7,
    is_active = $8,
    updated_at = now()
WHERE id = $1
RETURNING `+directorColumns,
		pgUUID(d.ID()),
		d.Name(),
		d.Username(),
		pgNullableText(d.Email()),
		d.PasswordHash(),
		d.MustChangePassword(),
		pgNullableUUID(d.EmployeeID()),
		d.IsActive(),
	)
	out, err := scanDirector(row)
	if err != nil {
		return director.Director{}, err
	}
	return out, nil
}

func (r *DirectorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM directors WHERE id = $1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return director.ErrNotFound
	}
	return nil
}

func (r *DirectorRepository) getOne(ctx context.Context, q string, args ...interface{}) (director.Director, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return director.Director{}, err
	}
	d, err := scanDirector(tx.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return director.Director{}, director.ErrNotFound
		}
		return director.Director{}, err
	}
	return d, nil
}

func scanDirector(row pgx.Row) (director.Director, error) {
	var m models.Director
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Username,
		&m.Email,
		&m.PasswordHash,
		&m.MustChangePassword,
		&m.EmployeeID,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return director.Director{}, err
	}
	return toDomainDirector(m), nil
}
