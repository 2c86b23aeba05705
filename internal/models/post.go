package models

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	UserID    uint      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"index"`

	// Soft delete fields. Content stays in storage; readers get a
	// placeholder selected by DeletionType.
	IsDeleted    bool   `gorm:"default:false;index"`
	DeletionType string `gorm:"type:varchar(20);default:''"` // "", "user" or "admin"

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
