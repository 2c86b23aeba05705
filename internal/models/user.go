package models

import "time"

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash    string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	FullName        string    `gorm:"type:varchar(100);not null" json:"full_name"`
	BuildingNumber  string    `gorm:"type:varchar(20);not null" json:"building_number"`
	ApartmentNumber string    `gorm:"type:varchar(20);not null" json:"apartment_number"`
	IsAdmin         bool      `gorm:"default:false" json:"is_admin"`
	IsApproved      bool      `gorm:"default:false" json:"is_approved"`
	IsBanned        bool      `gorm:"default:false" json:"is_banned"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserSummary is the public-safe projection embedded in content
// projections and notifier events. Never carries moderation state
// beyond what listings already reveal.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

// Summary builds the public projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}
