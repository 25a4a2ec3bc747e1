package director

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Director is a top-level hierarchy account. HOD and employee links point back
// at the director from the subordinate side; the sets exposed by repositories
// are derived from those back-references, never stored on the director row.
type Director struct {
	id                 uuid.UUID
	name               string
	username           string
	email              string
	passwordHash       string
	mustChangePassword bool
	employeeID         uuid.UUID
	active             bool
	createdAt          time.Time
	updatedAt          time.Time
}

func New(name, username string) Director {
	return Director{
		name:     strings.TrimSpace(name),
		username: strings.TrimSpace(username),
		active:   true,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	username string,
	email string,
	passwordHash string,
	mustChangePassword bool,
	employeeID uuid.UUID,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) Director {
	return Director{
		id:                 id,
		name:               strings.TrimSpace(name),
		username:           strings.TrimSpace(username),
		email:              normalizeEmail(email),
		passwordHash:       passwordHash,
		mustChangePassword: mustChangePassword,
		employeeID:         employeeID,
		active:             active,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (d Director) ID() uuid.UUID            { return d.id }
func (d Director) Name() string             { return d.name }
func (d Director) Username() string         { return d.username }
func (d Director) Email() string            { return d.email }
func (d Director) PasswordHash() string     { return d.passwordHash }
func (d Director) MustChangePassword() bool { return d.mustChangePassword }
func (d Director) EmployeeID() uuid.UUID    { return d.employeeID }
func (d Director) IsActive() bool           { return d.active }
func (d Director) CreatedAt() time.Time     { return d.createdAt }
func (d Director) UpdatedAt() time.Time     { return d.updatedAt }
func (d Director) IsZero() bool             { return d.id == uuid.Nil && d.username == "" }

func (d Director) WithName(name string) Director {
	d.name = strings.TrimSpace(name)
	return d
}

func (d Director) WithUsername(username string) Director {
	d.username = strings.TrimSpace(username)
	return d
}

func (d Director) WithEmail(email string) Director {
	d.email = normalizeEmail(email)
	return d
}

// WithPasswordHash replaces the credential and clears the must-change flag.
func (d Director) WithPasswordHash(hash string) Director {
	d.passwordHash = hash
	d.mustChangePassword = false
	return d
}

// WithDefaultPasswordHash installs the provisioning credential and requires a
// change on first login.
func (d Director) WithDefaultPasswordHash(hash string) Director {
	d.passwordHash = hash
	d.mustChangePassword = true
	return d
}

func (d Director) WithEmployeeID(employeeID uuid.UUID) Director {
	d.employeeID = employeeID
	return d
}

func (d Director) WithActive(active bool) Director {
	d.active = active
	return d
}

func normalizeEmail(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
