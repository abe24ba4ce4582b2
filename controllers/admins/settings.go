package admins

import (
	"encoding/json"
	"errors"
	"net/http"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"gorm.io/gorm"
)

// GET /v1/admin/settings
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var setting models.Setting
	if err := database.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: models.Setting{}})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load settings"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: setting})
}

// PUT /v1/admin/settings
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.Setting
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.MinDonationAmount < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "min_donation_amount cannot be negative"})
		return
	}

	var setting models.Setting
	err := database.DB.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		req.ID = 1
		if err := database.DB.Create(&req).Error; err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not save settings"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Settings saved", Data: req})
		return
	}
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load settings"})
		return
	}

	req.ID = setting.ID
	if err := database.DB.Save(&req).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not save settings"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Settings saved", Data: req})
}
