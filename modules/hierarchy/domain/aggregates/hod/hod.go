package hod

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// HOD is a head-of-department account. The director link lives on the HOD row
// (at most one); the employee set under an HOD is derived from employee
// back-references.
type HOD struct {
	id                 uuid.UUID
	name               string
	username           string
	department         string
	email              string
	passwordHash       string
	mustChangePassword bool
	directorID         uuid.UUID
	active             bool
	createdAt          time.Time
	updatedAt          time.Time
}

func New(name, username, department string) HOD {
	return HOD{
		name:       strings.TrimSpace(name),
		username:   strings.TrimSpace(username),
		department: strings.TrimSpace(department),
		active:     true,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	username string,
	department string,
	email string,
	passwordHash string,
	mustChangePassword bool,
	directorID uuid.UUID,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) HOD {
	return HOD{
		id:                 id,
		name:               strings.TrimSpace(name),
		username:           strings.TrimSpace(username),
		department:         strings.TrimSpace(department),
		email:              strings.ToLower(strings.TrimSpace(email)),
		passwordHash:       passwordHash,
		mustChangePassword: mustChangePassword,
		directorID:         directorID,
		active:             active,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (h HOD) ID() uuid.UUID            { return h.id }
func (h HOD) Name() string             { return h.name }
func (h HOD) Username() string         { return h.username }
func (h HOD) Department() string       { return h.department }
func (h HOD) Email() string            { return h.email }
func (h HOD) PasswordHash() string     { return h.passwordHash }
func (h HOD) MustChangePassword() bool { return h.mustChangePassword }
func (h HOD) DirectorID() uuid.UUID    { return h.directorID }
func (h HOD) IsAssigned() bool         { return h.directorID != uuid.Nil }
func (h HOD) IsActive() bool           { return h.active }
func (h HOD) CreatedAt() time.Time     { return h.createdAt }
func (h HOD) UpdatedAt() time.Time     { return h.updatedAt }
func (h HOD) IsZero() bool             { return h.id == uuid.Nil && h.username == "" }

func (h HOD) WithName(name string) HOD {
	h.name = strings.TrimSpace(name)
	return h
}

func (h HOD) WithUsername(username string) HOD {
	h.username = strings.TrimSpace(username)
	return h
}

func (h HOD) WithDepartment(department string) HOD {
	h.department = strings.TrimSpace(department)
	return h
}

func (h HOD) WithEmail(email string) HOD {
	h.email = strings.ToLower(strings.TrimSpace(email))
	return h
}

func (h HOD) WithPasswordHash(hash string) HOD {
	h.passwordHash = hash
	h.mustChangePassword = false
	return h
}

func (h HOD) WithDefaultPasswordHash(hash string) HOD {
	h.passwordHash = hash
	h.mustChangePassword = true
	return h
}

func (h HOD) WithDirector(directorID uuid.UUID) HOD {
	h.directorID = directorID
	return h
}

func (h HOD) WithoutDirector() HOD {
	h.directorID = uuid.Nil
	return h
}

func (h HOD) WithActive(active bool) HOD {
	h.active = active
	return h
}
