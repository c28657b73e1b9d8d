package models

import "time"

// GroupMember represents the many-to-many relationship between users and
// study groups. At most one row exists per (group_id, user_id) pair; leaving
// flips is_active instead of deleting, and a rejoin reactivates the same row
// with a fresh joined_at.
type GroupMember struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	GroupID  uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
	IsActive bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Group StudyGroup `gorm:"foreignKey:GroupID" json:"-"`
}
