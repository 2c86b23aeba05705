package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neighborly/forum/internal/service"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	FullName        string `json:"full_name"`
	BuildingNumber  string `json:"building_number"`
	ApartmentNumber string `json:"apartment_number"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.authService.Register(service.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		FullName:        req.FullName,
		BuildingNumber:  req.BuildingNumber,
		ApartmentNumber: req.ApartmentNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Your account is pending approval by an admin.",
		"user_id": user.ID,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		logger.Log.Warn("Login failed",
			zap.String("username", req.Username),
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		},
	})
}

// GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authService.Profile(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               user.ID,
		"username":         user.Username,
		"full_name":        user.FullName,
		"building_number":  user.BuildingNumber,
		"apartment_number": user.ApartmentNumber,
		"is_admin":         user.IsAdmin,
		"is_approved":      user.IsApproved,
		"created_at":       user.CreatedAt,
	})
}
