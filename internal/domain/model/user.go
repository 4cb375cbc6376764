package model

import "time"

// Role grants a level of access to the shop API.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents a registered shop account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal returns the access identity of the user.
func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID int64
	Name   string
	Email  string
	Role   Role
}

// IsAdmin reports whether the caller holds the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanView reports whether the caller may read the order: administrators see
// every order, everyone else only their own.
func (p Principal) CanView(order *Order) bool {
	if order == nil {
		return false
	}
	return p.IsAdmin() || order.UserID == p.UserID
}
