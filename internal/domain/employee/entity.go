package employee

import (
	"time"
)

// Employee is the directory view the attendance core needs: who, where, and since when.
type Employee struct {
	ID               string
	UserID           *string
	FullName         string
	Department       string
	JoiningDate      time.Time
	EmploymentStatus EmploymentStatus
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
