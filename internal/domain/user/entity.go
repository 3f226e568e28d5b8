package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

// Role is the tagged identity a request resolves to.
type Role int

const (
	RoleAnonymous Role = iota
	RoleMember
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Identity is the outcome of resolving a request's credentials.
// User is nil for RoleAnonymous.
type Identity struct {
	Role Role
	User *User
}

func (i Identity) IsAnonymous() bool {
	return i.Role == RoleAnonymous || i.User == nil
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin && i.User != nil
}

// IdentityOf derives the identity for u; nil is anonymous.
func IdentityOf(u *User) Identity {
	switch {
	case u == nil:
		return Identity{Role: RoleAnonymous}
	case u.IsAdmin:
		return Identity{Role: RoleAdmin, User: u}
	default:
		return Identity{Role: RoleMember, User: u}
	}
}
