package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusWorking Status = "working"
	StatusLeft    Status = "left"
)

// Employee is the subordinate end of both assignment axes. The HOD link and
// the director link are independent: an employee can carry either, both, or
// neither at the same time.
type Employee struct {
	id         uuid.UUID
	empID      string
	name       string
	department string
	hodID      uuid.UUID
	directorID uuid.UUID
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func New(empID, name, department string) Employee {
	return Employee{
		empID:      strings.TrimSpace(empID),
		name:       strings.TrimSpace(name),
		department: strings.TrimSpace(department),
		status:     StatusWorking,
	}
}

func Hydrate(
	id uuid.UUID,
	empID string,
	name string,
	department string,
	hodID uuid.UUID,
	directorID uuid.UUID,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) Employee {
	return Employee{
		id:         id,
		empID:      strings.TrimSpace(empID),
		name:       strings.TrimSpace(name),
		department: strings.TrimSpace(department),
		hodID:      hodID,
		directorID: directorID,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (e Employee) ID() uuid.UUID         { return e.id }
func (e Employee) EmpID() string         { return e.empID }
func (e Employee) Name() string          { return e.name }
func (e Employee) Department() string    { return e.department }
func (e Employee) HODID() uuid.UUID      { return e.hodID }
func (e Employee) DirectorID() uuid.UUID { return e.directorID }
func (e Employee) HasHOD() bool          { return e.hodID != uuid.Nil }
func (e Employee) HasDirector() bool     { return e.directorID != uuid.Nil }
func (e Employee) Status() Status        { return e.status }
func (e Employee) IsWorking() bool       { return e.status == StatusWorking }
func (e Employee) CreatedAt() time.Time  { return e.createdAt }
func (e Employee) UpdatedAt() time.Time  { return e.updatedAt }
func (e Employee) IsZero() bool          { return e.id == uuid.Nil && e.empID == "" }

func (e Employee) WithHOD(hodID uuid.UUID) Employee {
	e.hodID = hodID
	return e
}

func (e Employee) WithoutHOD() Employee {
	e.hodID = uuid.Nil
	return e
}

func (e Employee) WithDirector(directorID uuid.UUID) Employee {
	e.directorID = directorID
	return e
}

func (e Employee) WithoutDirector() Employee {
	e.directorID = uuid.Nil
	return e
}

func (e Employee) WithStatus(status Status) Employee {
	e.status = status
	return e
}
