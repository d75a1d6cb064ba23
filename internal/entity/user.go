package entity

import "time"

type Role string

const (
	RoleUser  Role = "User"
	RoleChef  Role = "Chef"
	RoleAdmin Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleChef, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint
	FullName     string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor may modify a resource owned by ownerID.
func (a Actor) Owns(ownerID uint) bool {
	return a.IsAdmin() || a.UserID == ownerID
}

// CanPublish reports whether the actor may author courses and recipes.
func (a Actor) CanPublish() bool {
	return a.Role == RoleChef || a.Role == RoleAdmin
}

type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}
