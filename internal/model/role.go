package model

import (
	"time"
)

// Role names seeded at startup. New users always get RoleClient.
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// Role represents an application role a user can hold. Roles are read-only
// reference data; the association with users lives in user_has_roles.
type Role struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(50);uniqueIndex"`
	Image     string    `json:"image" gorm:"type:varchar(500)"`
	Route     string    `json:"route" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
