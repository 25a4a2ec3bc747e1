package viewmodels

import "time"

type Employee struct {
	ID               string    `json:"id"`
	EmpID            string    `json:"empId"`
	Name             string    `json:"name"`
	Department       string    `json:"department"`
	Status           string    `json:"status"`
	AssignedHOD      string    `json:"assignedHod,omitempty"`
	AssignedDirector string    `json:"assignedDirector,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Director struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Username               string    `json:"username"`
	Email                  string    `json:"email,omitempty"`
	EmployeeID             string    `json:"employeeId,omitempty"`
	MustChangePassword     bool      `json:"mustChangePassword"`
	IsActive               bool      `json:"isActive"`
	AssignedHODsCount      int64     `json:"assignedHodsCount"`
	AssignedEmployeesCount int64     `json:"assignedEmployeesCount"`
	CreatedAt              time.Time `json:"createdAt"`
}

type HOD struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Username               string    `json:"username"`
	Department             string    `json:"department"`
	Email                  string    `json:"email,omitempty"`
	AssignedDirector       string    `json:"assignedDirector,omitempty"`
	MustChangePassword     bool      `json:"mustChangePassword"`
	IsActive               bool      `json:"isActive"`
	AssignedEmployeesCount int64     `json:"assignedEmployeesCount"`
	CreatedAt              time.Time `json:"createdAt"`
}

type DirectorDetail struct {
	Director          Director   `json:"director"`
	AssignedHODs      []HOD      `json:"assignedHods"`
	AssignedEmployees []Employee `json:"assignedEmployees"`
}

type HODDetail struct {
	HOD               HOD        `json:"hod"`
	AssignedEmployees []Employee `json:"assignedEmployees"`
}

type HODTeam struct {
	HOD       HOD        `json:"hod"`
	Employees []Employee `json:"employees"`
}

type DirectorHierarchy struct {
	Director        Director   `json:"director"`
	HODs            []HODTeam  `json:"hods"`
	DirectEmployees []Employee `json:"directEmployees"`
	TotalHODs       int        `json:"totalHods"`
	TotalEmployees  int        `json:"totalEmployees"`
}
