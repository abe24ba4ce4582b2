package admins

import (
	"encoding/json"
	"net/http"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/faqs
func FaqListHandler(w http.ResponseWriter, r *http.Request) {
	var faqs []models.Faq
	if err := database.DB.Order("position ASC, id ASC").Find(&faqs).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load FAQs"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: faqs})
}

type FaqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
	Status   string `json:"status"`
}

// POST /v1/admin/faqs
func CreateFaqHandler(w http.ResponseWriter, r *http.Request) {
	var req FaqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Question == "" || req.Answer == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Question and answer are required"})
		return
	}

	faq := models.Faq{Question: req.Question, Answer: req.Answer, Position: req.Position}
	if req.Status != "" {
		faq.Status = req.Status
	}
	if err := database.DB.Create(&faq).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not create FAQ"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "FAQ created", Data: faq})
}

// PUT /v1/admin/faqs/{id}
func UpdateFaqHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req FaqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	var faq models.Faq
	if err := database.DB.First(&faq, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "FAQ not found"})
		return
	}

	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.Position = req.Position
	if req.Status != "" {
		faq.Status = req.Status
	}
	if err := database.DB.Save(&faq).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not update FAQ"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "FAQ updated", Data: faq})
}

// DELETE /v1/admin/faqs/{id}
func DeleteFaqHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := database.DB.Delete(&models.Faq{}, id)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not delete FAQ"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "FAQ not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "FAQ deleted"})
}
