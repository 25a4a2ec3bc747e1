package notice

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/accordhr/accord-hrms/pkg/constants"
	"github.com/accordhr/accord-hrms/pkg/serrors"
)

type CreateDTO struct {
	Title        string   `json:"title" validate:"required"`
	Message      string   `json:"message" validate:"required"`
	Audience     string   `json:"audience" validate:"required,oneof=all department individual team"`
	Department   string   `json:"department"`
	TeamHODID    string   `json:"teamHodId" validate:"omitempty,uuid"`
	RecipientIDs []string `json:"recipientIds" validate:"dive,uuid"`
}

func (d *CreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Message = strings.TrimSpace(d.Message)
	d.Audience = strings.ToLower(strings.TrimSpace(d.Audience))
	d.Department = strings.TrimSpace(d.Department)
	d.TeamHODID = strings.TrimSpace(d.TeamHODID)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return d.okAudience()
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

// okAudience checks the audience-specific required fields the struct tags
// cannot express.
func (d *CreateDTO) okAudience() (map[string]string, bool) {
	switch Audience(d.Audience) {
	case AudienceDepartment:
		if d.Department == "" {
			return map[string]string{"Department": "department is required for department audience"}, false
		}
	case AudienceIndividual:
		if len(d.RecipientIDs) == 0 {
			return map[string]string{"RecipientIDs": "recipientIds are required for individual audience"}, false
		}
	case AudienceTeam:
		if d.TeamHODID == "" {
			return map[string]string{"TeamHODID": "teamHodId is required for team audience"}, false
		}
	}
	return map[string]string{}, true
}
