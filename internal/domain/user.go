package domain

import "time"

// Role represents a user's role in the system.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleDriver   Role = "DRIVER"
	RoleManager  Role = "MANAGER"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleDriver || r == RoleManager
}

// User represents an account in the system. Vehicle fields are only set for
// drivers.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	LicensePlate *string
	VehicleModel *string
	CreatedAt    time.Time
}
