package models

import "time"

// StudyGroup represents a study group created by a student.
// Deletion is soft: is_active flips to false and the row stays, so
// membership history survives the group.
type StudyGroup struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	CreatedByID uint      `gorm:"not null;index" json:"created_by"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	CreatedBy User          `gorm:"foreignKey:CreatedByID" json:"-"`
	Members   []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}
