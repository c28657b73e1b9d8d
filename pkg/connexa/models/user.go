package models

import "time"

// User represents a student profile tied to an institutional email
type User struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	FullName           string    `gorm:"not null" json:"full_name"`
	InstitutionalEmail string    `gorm:"uniqueIndex;not null" json:"institutional_email"`
	PasswordHash       string    `json:"-"`
	CourseID           *uint     `json:"course_id"`
	CurrentSemester    int       `json:"current_semester"`

	// Relationships
	Course      *Course       `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Memberships []GroupMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}
