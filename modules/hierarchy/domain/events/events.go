// Package events defines the hierarchy module's published event payloads.
// Handlers subscribe through the application event bus by concrete type.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EntityKind string

const (
	KindDirector EntityKind = "director"
	KindHOD      EntityKind = "hod"
	KindEmployee EntityKind = "employee"
)

type Axis string

const (
	AxisHODToDirector      Axis = "hod_to_director"
	AxisEmployeeToDirector Axis = "employee_to_director"
	AxisEmployeeToHOD      Axis = "employee_to_hod"
)

type EntityCreated struct {
	Kind       EntityKind
	ID         uuid.UUID
	Name       string
	Department string
	OccurredAt time.Time
}

type EntityUpdated struct {
	Kind       EntityKind
	ID         uuid.UUID
	Name       string
	OccurredAt time.Time
}

type EntityDeleted struct {
	Kind       EntityKind
	ID         uuid.UUID
	Name       string
	OccurredAt time.Time
}

// AssignmentChanged is published once per successful link or unlink.
type AssignmentChanged struct {
	Axis            Axis
	OwnerID         uuid.UUID
	OwnerName       string
	SubordinateID   uuid.UUID
	SubordinateName string
	Linked          bool
	OccurredAt      time.Time
}
