package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"hoperise/database"
	"hoperise/middleware"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const defaultChatPrompt = "You are the assistant for HopeRise Foundation, a charity in Ghana. " +
	"Answer questions about our projects, events, volunteering and donations. " +
	"Be brief and friendly. If you do not know something, say so and point the visitor to the contact form."

type startChatRequest struct {
	VisitorName string `json:"visitor_name" validate:"nameok"`
}

// StartChatSession opens a new assistant conversation for a visitor.
func StartChatSession(w http.ResponseWriter, r *http.Request) {
	var req startChatRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	session := models.ChatSession{
		VisitorName:   req.VisitorName,
		Status:        "active",
		LastMessageAt: time.Now(),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not start chat"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Chat started", Data: session})
}

type chatMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// PostChatMessage stores the visitor message, asks the model for a reply with
// the recent conversation as context, and stores the reply.
func PostChatMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req chatMessageRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if len(req.Content) > 2000 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Message too long"})
		return
	}

	var session models.ChatSession
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Chat session not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load chat"})
		return
	}
	if session.Status != "active" {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Chat session has ended"})
		return
	}

	userMsg := models.ChatMessage{SessionID: session.ID, Role: "user", Content: req.Content}
	if err := database.DB.Create(&userMsg).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not store message"})
		return
	}

	// Last 20 messages as model context
	var history []models.ChatMessage
	database.DB.Where("session_id = ?", session.ID).Order("id DESC").Limit(20).Find(&history)
	msgs := make([]utils.AIMessage, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		msgs = append(msgs, utils.AIMessage{Role: history[i].Role, Content: history[i].Content})
	}

	prompt := os.Getenv("CHAT_SYSTEM_PROMPT")
	if prompt == "" {
		prompt = defaultChatPrompt
	}

	reply, err := utils.CallChatAPI(msgs, prompt)
	if err != nil {
		log.Printf("[chat] completion failed for session %d: %v", session.ID, err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Assistant is unavailable right now"})
		return
	}

	assistantMsg := models.ChatMessage{SessionID: session.ID, Role: "assistant", Content: reply}
	if err := database.DB.Create(&assistantMsg).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not store reply"})
		return
	}
	database.DB.Model(&session).Update("last_message_at", time.Now())

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: assistantMsg})
}

// GetChatSession returns a session with its messages.
func GetChatSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	var session models.ChatSession
	if err := database.DB.Preload("Messages").First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Chat session not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load chat"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: session})
}

// EndChatSession marks a session ended by the visitor.
func EndChatSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	now := time.Now()
	res := database.DB.Model(&models.ChatSession{}).
		Where("id = ? AND status = ?", sessionID, "active").
		Updates(map[string]interface{}{"status": "ended", "ended_at": now, "end_reason": "user"})
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not end chat"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Chat session not found or already ended"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Chat ended"})
}
