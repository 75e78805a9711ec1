// Package domain contains core concepts of the messaging workspace.
// This file defines User entities and their profile projection.
// No storage, network, or UI logic should be added here.
package domain

import "time"

type UserID int

// Workspace-wide permission levels. The first registered user becomes a
// global owner; everyone after that starts as a plain member.
const (
	PermGlobalOwner = 1
	PermMember      = 2
)

type User struct {
	ID           UserID
	Email        string
	PasswordHash string
	NameFirst    string
	NameLast     string
	Handle       string
	Permission   int
	CreatedAt    time.Time
}

func (u User) IsGlobalOwner() bool {
	return u.Permission == PermGlobalOwner
}

// Profile is the public projection of a User; the password hash never
// leaves the domain through it.
type Profile struct {
	UserID    UserID
	Email     string
	NameFirst string
	NameLast  string
	Handle    string
}

func (u User) Profile() Profile {
	return Profile{
		UserID:    u.ID,
		Email:     u.Email,
		NameFirst: u.NameFirst,
		NameLast:  u.NameLast,
		Handle:    u.Handle,
	}
}
