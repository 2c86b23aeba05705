package models

import (
	"encoding/json"
	"time"
)

type Advertisement struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(100);not null"`
	Content     string    `gorm:"type:text;not null"`
	UserID      uint      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"index"`
	Price       float64
	PhoneNumber string `gorm:"type:varchar(30)"`

	// Stored upload references serialized as a JSON array. Order is
	// preserved; resolution to full URLs happens at read time.
	Images string `gorm:"type:text"`

	// Owner deletion removes the row entirely; only admin deletion of
	// another user's ad sets this flag.
	IsDeleted bool `gorm:"default:false;index"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// SetImages serializes refs into the Images column. An empty list
// clears the column.
func (a *Advertisement) SetImages(refs []string) error {
	if len(refs) == 0 {
		a.Images = ""
		return nil
	}
	data, err := json.Marshal(refs)
	if err != nil {
		return err
	}
	a.Images = string(data)
	return nil
}

// ImageRefs deserializes the stored reference list. Malformed or empty
// columns yield an empty list.
func (a *Advertisement) ImageRefs() []string {
	if a.Images == "" {
		return []string{}
	}
	var refs []string
	if err := json.Unmarshal([]byte(a.Images), &refs); err != nil {
		return []string{}
	}
	return refs
}
