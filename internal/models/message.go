package models

import "time"

type Message struct {
	ID          uint      `gorm:"primaryKey"`
	Content     string    `gorm:"type:text;not null"`
	SenderID    uint      `gorm:"not null;index"`
	RecipientID uint      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"index"`
	IsRead      bool      `gorm:"default:false"`

	// Soft delete fields
	IsDeleted    bool   `gorm:"default:false"`
	DeletionType string `gorm:"type:varchar(20);default:''"` // "", "user_deleted" or "admin_deleted"

	Sender    User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Recipient User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
}
