package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: Course must be migrated first as user profiles reference it
func AllModels() []interface{} {
	return []interface{}{
		&Course{},
		&User{},
		&StudyGroup{},
		&GroupMember{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
