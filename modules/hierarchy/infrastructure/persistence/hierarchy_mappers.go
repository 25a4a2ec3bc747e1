package persistence

import (
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/infrastructure/persistence/models"
)

func toDomainDirector(m models.Director) director.Director {
	return director.Hydrate(
		asUUID(m.ID),
		m.Name,
		m.Username,
		asText(m.Email),
		m.PasswordHash,
		m.MustChangePassword,
		asUUID(m.EmployeeID),
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainHOD(m models.HOD) hod.HOD {
	return hod.Hydrate(
		asUUID(m.ID),
		m.Name,
		m.Username,
		m.Department,
		asText(m.Email),
		m.PasswordHash,
		m.MustChangePassword,
		asUUID(m.DirectorID),
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainEmployee(m models.Employee) employee.Employee {
	return employee.Hydrate(
		asUUID(m.ID),
		m.EmpID,
		m.Name,
		m.Department,
		asUUID(m.HODID),
		asUUID(m.DirectorID),
		employee.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
