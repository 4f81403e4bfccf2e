package user

// User is the local shape of the authenticated identity, mapped from the
// login response and persisted alongside the session token. It is replaced
// wholesale on the next login and cleared on logout, never mutated in place.
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Avatar         string `json:"avatar,omitempty"`
	Role           string `json:"role,omitempty"`
	EmployeeNumber int64  `json:"employeeNumber,omitempty"`
}
