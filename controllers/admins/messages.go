package admins

import (
	"net/http"
	"strconv"
	"time"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/subscribers
func SubscriberListHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Subscriber{})
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not count subscribers"})
		return
	}

	var subscribers []models.Subscriber
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&subscribers).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load subscribers"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"total":       total,
			"page":        page,
			"subscribers": subscribers,
		},
	})
}

// GET /v1/admin/messages
func ContactMessageListHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.ContactMessage{})
	if r.URL.Query().Get("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not count messages"})
		return
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load messages"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"total":    total,
			"page":     page,
			"messages": messages,
		},
	})
}

// POST /v1/admin/messages/{id}/read
func MarkMessageReadHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := database.DB.Model(&models.ContactMessage{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", time.Now())
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not update message"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Message marked as read"})
}
