package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	UserID         string    `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Username       string    `gorm:"column:username;type:text;uniqueIndex" json:"username"`
	Email          string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;type:text" json:"-"`
	IsActive       bool      `gorm:"column:is_active;default:true" json:"is_active"`
	Role           UserRole  `gorm:"column:role;type:text;default:USER" json:"role"`
	RefreshToken   string    `gorm:"column:refresh_token;type:text" json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }
