package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents the user model stored in the database
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Name         string         `json:"name" gorm:"type:varchar(100)"`
	Lastname     string         `json:"lastname" gorm:"type:varchar(100)"`
	Phone        string         `json:"phone" gorm:"type:varchar(30)"`
	Image        *string        `json:"image,omitempty" gorm:"type:varchar(500)"`
	Password     string         `json:"-" gorm:"type:varchar(255)"`
	SessionToken *string        `json:"session_token,omitempty" gorm:"type:varchar(500)"`
	Roles        []Role         `json:"roles,omitempty" gorm:"many2many:user_has_roles"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
