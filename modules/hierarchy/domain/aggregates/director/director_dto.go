package director

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/accordhr/accord-hrms/pkg/constants"
	"github.com/accordhr/accord-hrms/pkg/serrors"
)

type CreateDTO struct {
	Name       string `json:"name" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password"`
	EmployeeID string `json:"employeeId" validate:"omitempty,uuid"`
}

type UpdateDTO struct {
	Name       string `json:"name" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password"`
	EmployeeID string `json:"employeeId" validate:"omitempty,uuid"`
	IsActive   *bool  `json:"isActive"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	return validateStruct(d)
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	return validateStruct(d)
}

func validateStruct(dto interface{}) (map[string]string, bool) {
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}
