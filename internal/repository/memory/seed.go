package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
)

// Seed is the directory data a memory store starts with. Dates are YYYY-MM-DD in the
// store's location.
type Seed struct {
	Employees []struct {
		ID          string  `json:"id"`
		UserID      *string `json:"user_id,omitempty"`
		FullName    string  `json:"full_name"`
		Department  string  `json:"department"`
		JoiningDate string  `json:"joining_date"`
		Status      string  `json:"employment_status,omitempty"`
	} `json:"employees"`
	Offices []struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"offices"`
	Holidays []struct {
		ID         string `json:"id"`
		Date       string `json:"date"`
		Name       string `json:"name"`
		IsOptional bool   `json:"is_optional"`
	} `json:"holidays"`
	LeaveGrants []struct {
		ID         string `json:"id"`
		EmployeeID string `json:"employee_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
		Type       string `json:"type"`
		Status     string `json:"status"`
	} `json:"leave_grants"`
}

// LoadSeedFile reads a JSON seed from path into s.
func (s *Store) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return s.LoadSeed(f)
}

// LoadSeed decodes a JSON seed and adds every entry to s.
func (s *Store) LoadSeed(r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("failed to decode seed: %w", err)
	}

	for _, e := range seed.Employees {
		joined, err := calendar.ParseDate(e.JoiningDate, s.loc)
		if err != nil {
			return fmt.Errorf("employee %s joining_date: %w", e.ID, err)
		}
		status := employee.EmploymentStatus(e.Status)
		if status == "" {
			status = employee.EmploymentStatusActive
		}
		s.AddEmployee(employee.Employee{
			ID:               e.ID,
			UserID:           e.UserID,
			FullName:         e.FullName,
			Department:       e.Department,
			JoiningDate:      joined,
			EmploymentStatus: status,
		})
	}

	for _, o := range seed.Offices {
		s.AddOffice(office.Office{ID: o.ID, Name: o.Name, Latitude: o.Latitude, Longitude: o.Longitude})
	}

	for _, h := range seed.Holidays {
		date, err := calendar.ParseDate(h.Date, s.loc)
		if err != nil {
			return fmt.Errorf("holiday %s date: %w", h.ID, err)
		}
		s.AddHoliday(calendar.Holiday{ID: h.ID, Date: date, Name: h.Name, IsOptional: h.IsOptional})
	}

	for _, g := range seed.LeaveGrants {
		start, err := calendar.ParseDate(g.StartDate, s.loc)
		if err != nil {
			return fmt.Errorf("leave grant %s start_date: %w", g.ID, err)
		}
		end, err := calendar.ParseDate(g.EndDate, s.loc)
		if err != nil {
			return fmt.Errorf("leave grant %s end_date: %w", g.ID, err)
		}
		s.AddGrant(leave.Grant{
			ID:         g.ID,
			EmployeeID: g.EmployeeID,
			StartDate:  start,
			EndDate:    end,
			Type:       g.Type,
			Status:     leave.GrantStatus(g.Status),
		})
	}

	return nil
}
