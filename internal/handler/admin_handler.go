package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neighborly/forum/internal/service"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

// AdminHandler exposes the moderation surface. All routes are behind
// AdminMiddleware, which checks the cached admin claim only.
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /api/admin/pending-users
func (h *AdminHandler) PendingUsers(c *gin.Context) {
	users, err := h.adminService.PendingUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/admin/users
func (h *AdminHandler) AllUsers(c *gin.Context) {
	users, err := h.adminService.AllUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /api/admin/users/:id/approve
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.Approve(targetID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s has been approved", user.Username),
	})
}

// POST /api/admin/users/:id/reject
func (h *AdminHandler) RejectUser(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.Reject(targetID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s has been rejected and deleted", user.Username),
	})
}

// POST /api/admin/users/:id/ban
func (h *AdminHandler) BanUser(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	logger.Log.Info("Admin banning user",
		zap.Uint("admin_id", currentUserID(c)),
		zap.Uint("target_user_id", targetID),
	)

	user, err := h.adminService.Ban(targetID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s has been banned", user.Username),
	})
}

// POST /api/admin/users/:id/unban
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.Unban(targetID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s has been unbanned", user.Username),
	})
}

// POST /api/admin/posts/:id/delete
func (h *AdminHandler) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeletePost(postID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post has been marked as deleted"})
}

// POST /api/admin/advertisements/:id/delete
func (h *AdminHandler) DeleteAdvertisement(c *gin.Context) {
	adID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteAdvertisement(adID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Advertisement has been marked as deleted"})
}

// GET /api/admin/audit
func (h *AdminHandler) AuditEntries(c *gin.Context) {
	entries, err := h.adminService.AuditEntries()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
