package models

import "time"

type PublicServiceCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PublicService struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	CategoryID  uint      `gorm:"not null;index" json:"category"`
	PhoneNumber string    `gorm:"type:varchar(30);not null" json:"phone_number"`
	Status      string    `gorm:"type:varchar(50);not null" json:"status"` // e.g. "Active", "Unavailable"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category PublicServiceCategory `gorm:"foreignKey:CategoryID" json:"-"`
}
