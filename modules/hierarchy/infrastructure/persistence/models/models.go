package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Director struct {
	ID                 pgtype.UUID
	Name               string
	Username           string
	Email              pgtype.Text
	PasswordHash       string
	MustChangePassword bool
	EmployeeID         pgtype.UUID
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type HOD struct {
	ID                 pgtype.UUID
	Name               string
	Username           string
	Department         string
	Email              pgtype.Text
	PasswordHash       string
	MustChangePassword bool
	DirectorID         pgtype.UUID
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Employee struct {
	ID         pgtype.UUID
	EmpID      string
	Name       string
	Department string
	HODID      pgtype.UUID
	DirectorID pgtype.UUID
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
