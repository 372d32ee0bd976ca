package domain

import "github.com/google/uuid"

// Space is the tenant boundary. Nearly every other entity carries a SpaceID.
type Space struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null;uniqueIndex:uq_spaces_name" json:"name"`
}

// User is an account that works inside exactly one space.
type User struct {
	BaseModel
	SpaceID   uuid.UUID `gorm:"type:uuid;not null;index:idx_users_space_id" json:"spaceId"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"lastName"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Enabled   bool      `gorm:"not null" json:"enabled"`
}

// FullName returns "First Last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (Space) TableName() string {
	return "spaces"
}

func (User) TableName() string {
	return "users"
}
