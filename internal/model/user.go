package model

import "time"

// Role values stored on users and carried in token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a roster member.
type User struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;default:'user'"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
