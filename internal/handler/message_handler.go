package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neighborly/forum/internal/service"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// POST /api/messages/admin
func (h *MessageHandler) SendToAdmin(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message, err := h.messageService.SendToAdmin(currentUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Message sent to admin successfully",
		"message_id": message.ID,
	})
}

// POST /api/messages/reply/:user_id
func (h *MessageHandler) Reply(c *gin.Context) {
	recipientID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message, err := h.messageService.ReplyToUser(currentUserID(c), recipientID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Reply sent successfully",
		"message_id": message.ID,
	})
}

// GET /api/messages
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messageService.List(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// POST /api/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.MarkRead(messageID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

// DELETE /api/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.Delete(messageID, currentUserID(c), isAdminClaim(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
