package users

import "time"

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is a dashboard account for local login. Accounts of the hosted auth provider never
// get a row here.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"not null;uniqueIndex:idx_users_email"`
	Password string `gorm:"not null"`
	Role     string `gorm:"type:varchar(20);not null;default:'editor'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
