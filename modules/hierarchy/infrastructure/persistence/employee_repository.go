package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/infrastructure/persistence/models"
	"github.com/accordhr/accord-hrms/pkg/composables"
)

const employeeColumns = `id, emp_id, name, department, hod_id, director_id, status, created_at, updated_at`

type EmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &EmployeeRepository{}
}

func (r *EmployeeRepository) GetAll(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees`
	conds := []string{}
	args := []interface{}{}
	if params.Department != "" {
		args = append(args, params.Department)
		conds = append(conds, `department = $1`)
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		if len(args) == 1 {
			conds = append(conds, `status = $1`)
		} else {
			conds = append(conds, `status = $2`)
		}
	}
	for i, c := range conds {
		if i == 0 {
			q += ` WHERE ` + c
		} else {
			q += ` AND ` + c
		}
	}
	q += ` ORDER BY name`
	if params.Limit > 0 {
		args = append(args, params.Limit, params.Offset)
		q += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	return r.getMany(ctx, q, args...)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, pgUUID(id))
}

func (r *EmployeeRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, pgUUID(id))
}

func (r *EmployeeRepository) GetByEmpID(ctx context.Context, empID string) (employee.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE emp_id = $1`, empID)
}

func (r *EmployeeRepository) GetByHOD(ctx context.Context, hodID uuid.UUID) ([]employee.Employee, error) {
	return r.getMany(ctx, `SELECT `+employeeColumns+` FROM employees WHERE hod_id = $1 ORDER BY name`, pgUUID(hodID))
}

func (r *EmployeeRepository) GetByDirector(ctx context.Context, directorID uuid.UUID) ([]employee.Employee, error) {
	return r.getMany(ctx, `SELECT `+employeeColumns+` FROM employees WHERE director_id = $1 ORDER BY name`, pgUUID(directorID))
}

func (r *EmployeeRepository) GetUnassigned(ctx context.Context) ([]employee.Employee, error) {
	return r.getMany(ctx, `SELECT `+employeeColumns+` FROM employees WHERE hod_id IS NULL AND director_id IS NULL AND status = $1 ORDER BY name`, string(employee.StatusWorking))
}

func (r *EmployeeRepository) CountByHOD(ctx context.Context, hodID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE hod_id = $1`, pgUUID(hodID))
}

func (r *EmployeeRepository) CountByDirector(ctx context.Context, directorID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE director_id = $1`, pgUUID(directorID))
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	row := tx.QueryRow(ctx, `
INSERT INTO employees (emp_id, name, department, hod_id, director_id, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+employeeColumns,
		e.EmpID(),
		e.Name(),
		e.Department(),
		pgNullableUUID(e.HODID()),
		pgNullableUUID(e.DirectorID()),
		string(e.Status()),
	)
	return scanEmployee(row)
}

func (r *EmployeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	row := tx.QueryRow(ctx, `
UPDATE employees
SET emp_id = $2,
    name = $3,
    department = $4,
    hod_id = $5,
    director_id = $6,
    status = $7,
    updated_at = now()
WHERE id = $1
RETURNING `+employeeColumns,
		pgUUID(e.ID()),
		e.EmpID(),
		e.Name(),
		e.Department(),
		pgNullableUUID(e.HODID()),
		pgNullableUUID(e.DirectorID()),
		string(e.Status()),
	)
	return scanEmployee(row)
}

func (r *EmployeeRepository) count(ctx context.Context, q string, args ...interface{}) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, q, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EmployeeRepository) getOne(ctx context.Context, q string, args ...interface{}) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	e, err := scanEmployee(tx.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *EmployeeRepository) getMany(ctx context.Context, q string, args ...interface{}) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var m models.Employee
	if err := row.Scan(
		&m.ID,
		&m.EmpID,
		&m.Name,
		&m.Department,
		&m.HODID,
		&m.DirectorID,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return employee.Employee{}, err
	}
	return toDomainEmployee(m), nil
}
