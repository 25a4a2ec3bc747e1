package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func mapPgErrorToServiceError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return notFound("not found", err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		switch pgErr.ConstraintName {
		case "directors_username_key", "hods_username_key":
			return conflict("username already exists", err)
		case "directors_email_key", "hods_email_key":
			return conflict("email already exists", err)
		case "hods_active_department_key":
			return conflict("department already has an active hod", err)
		case "employees_emp_id_key":
			return conflict("employee id already exists", err)
		default:
			return conflict("unique constraint violated", err)
		}
	case "23503": // foreign_key_violation
		return newServiceError(http.StatusUnprocessableEntity, "HIERARCHY_REFERENCE_NOT_FOUND", "referenced record not found", err)
	default:
		return newServiceError(http.StatusInternalServerError, "HIERARCHY_INTERNAL", fmt.Sprintf("database error (%s)", pgErr.Code), err)
	}
}
