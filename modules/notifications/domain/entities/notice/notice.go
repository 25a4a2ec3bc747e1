package notice

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Audience string

const (
	AudienceAll        Audience = "all"
	AudienceDepartment Audience = "department"
	AudienceIndividual Audience = "individual"
	AudienceTeam       Audience = "team"
)

func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceDepartment, AudienceIndividual, AudienceTeam:
		return true
	}
	return false
}

// Notice is a published announcement. Audience targeting is one of: every
// employee, one department, an explicit recipient list, or the team under a
// single hod.
type Notice struct {
	id            uuid.UUID
	title         string
	message       string
	audience      Audience
	department    string
	teamHODID     uuid.UUID
	recipientIDs  []uuid.UUID
	createdBy     uuid.UUID
	createdByName string
	createdAt     time.Time
}

func New(title, message string, audience Audience) Notice {
	return Notice{
		title:    strings.TrimSpace(title),
		message:  strings.TrimSpace(message),
		audience: audience,
	}
}

func Hydrate(
	id uuid.UUID,
	title string,
	message string,
	audience Audience,
	department string,
	teamHODID uuid.UUID,
	recipientIDs []uuid.UUID,
	createdBy uuid.UUID,
	createdByName string,
	createdAt time.Time,
) Notice {
	return Notice{
		id:            id,
		title:         strings.TrimSpace(title),
		message:       strings.TrimSpace(message),
		audience:      audience,
		department:    strings.TrimSpace(department),
		teamHODID:     teamHODID,
		recipientIDs:  recipientIDs,
		createdBy:     createdBy,
		createdByName: createdByName,
		createdAt:     createdAt,
	}
}

func (n Notice) ID() uuid.UUID        { return n.id }
func (n Notice) Title() string        { return n.title }
func (n Notice) Message() string      { return n.message }
func (n Notice) Audience() Audience   { return n.audience }
func (n Notice) Department() string   { return n.department }
func (n Notice) TeamHODID() uuid.UUID { return n.teamHODID }
func (n Notice) RecipientIDs() []uuid.UUID {
	return slices.Clone(n.recipientIDs)
}
func (n Notice) CreatedBy() uuid.UUID  { return n.createdBy }
func (n Notice) CreatedByName() string { return n.createdByName }
func (n Notice) CreatedAt() time.Time  { return n.createdAt }
func (n Notice) IsZero() bool          { return n.id == uuid.Nil && n.title == "" }

func (n Notice) WithDepartment(department string) Notice {
	n.department = strings.TrimSpace(department)
	return n
}

func (n Notice) WithTeamHOD(hodID uuid.UUID) Notice {
	n.teamHODID = hodID
	return n
}

func (n Notice) WithRecipients(ids []uuid.UUID) Notice {
	n.recipientIDs = slices.Clone(ids)
	return n
}

func (n Notice) WithAuthor(id uuid.UUID, name string) Notice {
	n.createdBy = id
	n.createdByName = strings.TrimSpace(name)
	return n
}

// Targets reports whether the notice reaches the given recipient.
func (n Notice) Targets(r Recipient) bool {
	switch n.audience {
	case AudienceAll:
		return true
	case AudienceDepartment:
		return n.department != "" && strings.EqualFold(n.department, r.Department)
	case AudienceIndividual:
		return slices.Contains(n.recipientIDs, r.EmployeeID)
	case AudienceTeam:
		return n.teamHODID != uuid.Nil && n.teamHODID == r.HODID
	}
	return false
}
