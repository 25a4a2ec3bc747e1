package mappers

import (
	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/director"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/employee"
	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/aggregates/hod"
	"github.com/accordhr/accord-hrms/modules/hierarchy/presentation/viewmodels"
	"github.com/accordhr/accord-hrms/modules/hierarchy/services"
)

func EmployeeToVM(e employee.Employee) viewmodels.Employee {
	return viewmodels.Employee{
		ID:               e.ID().String(),
		EmpID:            e.EmpID(),
		Name:             e.Name(),
		Department:       e.Department(),
		Status:           string(e.Status()),
		AssignedHOD:      optionalID(e.HODID()),
		AssignedDirector: optionalID(e.DirectorID()),
		CreatedAt:        e.CreatedAt(),
	}
}

func EmployeesToVM(items []employee.Employee) []viewmodels.Employee {
	out := make([]viewmodels.Employee, 0, len(items))
	for _, e := range items {
		out = append(out, EmployeeToVM(e))
	}
	return out
}

func DirectorToVM(d director.Director, hodCount, employeeCount int64) viewmodels.Director {
	return viewmodels.Director{
		ID:                     d.ID().String(),
		Name:                   d.Name(),
		Username:               d.Username(),
		Email:                  d.Email(),
		EmployeeID:             optionalID(d.EmployeeID()),
		MustChangePassword:     d.MustChangePassword(),
		IsActive:               d.IsActive(),
		AssignedHODsCount:      hodCount,
		AssignedEmployeesCount: employeeCount,
		CreatedAt:              d.CreatedAt(),
	}
}

func HODToVM(h hod.HOD, employeeCount int64) viewmodels.HOD {
	return viewmodels.HOD{
		ID:                     h.ID().String(),
		Name:                   h.Name(),
		Username:               h.Username(),
		Department:             h.Department(),
		Email:                  h.Email(),
		AssignedDirector:       optionalID(h.DirectorID()),
		MustChangePassword:     h.MustChangePassword(),
		IsActive:               h.IsActive(),
		AssignedEmployeesCount: employeeCount,
		CreatedAt:              h.CreatedAt(),
	}
}

func HODsToVM(items []hod.HOD) []viewmodels.HOD {
	out := make([]viewmodels.HOD, 0, len(items))
	for _, h := range items {
		out = append(out, HODToVM(h, 0))
	}
	return out
}

func DirectorDetailsToVM(details *services.DirectorDetails) viewmodels.DirectorDetail {
	return viewmodels.DirectorDetail{
		Director:          DirectorToVM(details.Director, int64(len(details.AssignedHODs)), int64(len(details.AssignedEmployees))),
		AssignedHODs:      HODsToVM(details.AssignedHODs),
		AssignedEmployees: EmployeesToVM(details.AssignedEmployees),
	}
}

func HODDetailsToVM(details *services.HODDetails) viewmodels.HODDetail {
	return viewmodels.HODDetail{
		HOD:               HODToVM(details.HOD, int64(len(details.AssignedEmployees))),
		AssignedEmployees: EmployeesToVM(details.AssignedEmployees),
	}
}

func HierarchyToVM(h *services.DirectorHierarchy) viewmodels.DirectorHierarchy {
	teams := make([]viewmodels.HODTeam, 0, len(h.HODs))
	for _, team := range h.HODs {
		teams = append(teams, viewmodels.HODTeam{
			HOD:       HODToVM(team.HOD, int64(len(team.Employees))),
			Employees: EmployeesToVM(team.Employees),
		})
	}
	return viewmodels.DirectorHierarchy{
		Director:        DirectorToVM(h.Director, int64(h.TotalHODs), int64(len(h.DirectEmployees))),
		HODs:            teams,
		DirectEmployees: EmployeesToVM(h.DirectEmployees),
		TotalHODs:       h.TotalHODs,
		TotalEmployees:  h.TotalEmployees,
	}
}

func optionalID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
