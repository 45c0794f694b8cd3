package auth

// Claims is the caller identity carried by an access token.
type Claims struct {
	UserID     string
	EmployeeID *string
	IsAdmin    bool
}

// CanAccess reports whether the caller may read or act on employeeID's data.
func (c Claims) CanAccess(employeeID string) bool {
	return c.IsAdmin || (c.EmployeeID != nil && *c.EmployeeID == employeeID)
}
