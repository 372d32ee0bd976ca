// Package tenant carries the current space and user through every service
// call. Nothing in the service layer reads the tenant from globals.
package tenant

import "github.com/google/uuid"

// Context identifies who is acting and inside which space.
type Context struct {
	SpaceID uuid.UUID
	UserID  uuid.UUID
}

// New builds a Context.
func New(spaceID, userID uuid.UUID) Context {
	return Context{SpaceID: spaceID, UserID: userID}
}

// Valid reports whether both ids are set.
func (t Context) Valid() bool {
	return t.SpaceID != uuid.Nil && t.UserID != uuid.Nil
}
