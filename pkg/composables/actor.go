package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/pkg/constants"
)

type Role string

const (
	RoleEmployee    Role = "employee"
	RoleHREmployee  Role = "hr-employee"
	RoleHOD         Role = "hod"
	RoleDirector    Role = "director"
	RoleHRMSHandler Role = "hrms_handler"
	RoleSuperAdmin  Role = "super_admin"
)

// IsAdministrative reports whether the role may manage the hierarchy and
// author organization-wide notices.
func (r Role) IsAdministrative() bool {
	return r == RoleHRMSHandler || r == RoleSuperAdmin
}

var ErrNoActor = errors.New("no actor found in context")

// Actor identifies the authenticated principal performing an operation.
// Authentication itself is an external collaborator; every operation receives
// the resolved actor explicitly instead of reading ambient session state.
type Actor struct {
	ID         uuid.UUID
	Role       Role
	Username   string
	EmployeeID uuid.UUID // linked employee record, uuid.Nil when none
	Department string
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actor)
}

func UseActor(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(constants.ActorKey).(Actor)
	if !ok {
		return Actor{}, ErrNoActor
	}
	return actor, nil
}
