package model

import "time"

// Role values for HR staff accounts.
const (
	RoleAdmin = "ADMIN"
	RoleHR    = "HR"
)

// User is an HR staff account. Applicants are a separate entity.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
