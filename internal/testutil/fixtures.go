package testutil

import (
	"testing"

	"gorm.io/gorm"

	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/utils"
)

// CreateTestUser inserts an approved resident with a hashed password
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	return createUser(t, db, username, false, true, false)
}

// CreateAdminUser inserts an admin (approved by definition)
func CreateAdminUser(t *testing.T, db *gorm.DB, username string) *models.User {
	return createUser(t, db, username, true, true, false)
}

// CreatePendingUser inserts a resident still waiting for approval
func CreatePendingUser(t *testing.T, db *gorm.DB, username string) *models.User {
	return createUser(t, db, username, false, false, false)
}

// CreateBannedUser inserts a banned resident
func CreateBannedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	return createUser(t, db, username, false, true, true)
}

func createUser(t *testing.T, db *gorm.DB, username string, isAdmin, isApproved, isBanned bool) *models.User {
	hash, err := utils.HashPassword("Test123456")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user := &models.User{
		Username:        username,
		PasswordHash:    hash,
		FullName:        username + " Resident",
		BuildingNumber:  "4",
		ApartmentNumber: "12",
		IsAdmin:         isAdmin,
		IsApproved:      isApproved,
		IsBanned:        isBanned,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user %q: %v", username, err)
	}
	return user
}

// CreateTestPost inserts a post for the given author
func CreateTestPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	post := &models.Post{
		UserID:  userID,
		Content: content,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}

// CreateTestMessage inserts a direct message between two users
func CreateTestMessage(t *testing.T, db *gorm.DB, senderID, recipientID uint, content string) *models.Message {
	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("Failed to create test message: %v", err)
	}
	return msg
}

// CreateTestAdvertisement inserts an active advertisement
func CreateTestAdvertisement(t *testing.T, db *gorm.DB, userID uint, title string, price float64) *models.Advertisement {
	ad := &models.Advertisement{
		UserID:      userID,
		Title:       title,
		Content:     "selling " + title,
		Price:       price,
		PhoneNumber: "555-0100",
	}
	if err := db.Create(ad).Error; err != nil {
		t.Fatalf("Failed to create test advertisement: %v", err)
	}
	return ad
}
