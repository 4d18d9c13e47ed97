package models

// Role determines what a profile's owner may do beyond their own rows.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Profile is the application-level record attached to a user: display
// name and role. Exactly one exists per user, created atomically with
// the user at registration time; only admins may create one directly.
type Profile struct {
	Base
	UserID   string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName string `gorm:"not null" json:"full_name"`
	Role     Role   `gorm:"not null;default:'user'" json:"role"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
