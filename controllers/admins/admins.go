package admins

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
)

// Admin account management. Routes mounted behind RequireAdminRole; editors
// never reach these handlers.

// GET /v1/admin/admins
func AdminListHandler(w http.ResponseWriter, r *http.Request) {
	var accounts []models.Admin
	if err := database.DB.Order("created_at ASC").Find(&accounts).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load accounts"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: accounts})
}

type AdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

// POST /v1/admin/admins
func CreateAdminHandler(w http.ResponseWriter, r *http.Request) {
	var req AdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" || req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Username, password and name are required"})
		return
	}
	if len(req.Password) < 8 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Password must be at least 8 characters"})
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleEditor
	}
	if role != models.RoleAdmin && role != models.RoleEditor {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid role"})
		return
	}

	account := models.Admin{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Role:     role,
		IsActive: true,
	}
	if err := account.HashPassword(); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not hash password"})
		return
	}
	if err := database.DB.Create(&account).Error; err != nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Could not create account; username may already exist"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Account created", Data: account})
}

// PUT /v1/admin/admins/{id}
func UpdateAdminHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req AdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	var account models.Admin
	if err := database.DB.First(&account, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Account not found"})
		return
	}

	if req.Name != "" {
		account.Name = req.Name
	}
	if req.Email != "" {
		account.Email = req.Email
	}
	if req.Role != "" {
		if req.Role != models.RoleAdmin && req.Role != models.RoleEditor {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid role"})
			return
		}
		account.Role = req.Role
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Password must be at least 8 characters"})
			return
		}
		account.Password = req.Password
		if err := account.HashPassword(); err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not hash password"})
			return
		}
	}

	if err := database.DB.Save(&account).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not update account"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Account updated", Data: account})
}

// DELETE /v1/admin/admins/{id} (deactivate; accounts are never hard-deleted)
func DeactivateAdminHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	selfID, _ := r.Context().Value(utils.AdminIDKey).(int64)
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n == selfID {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "You cannot deactivate your own account"})
		return
	}

	res := database.DB.Model(&models.Admin{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not deactivate account"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Account not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Account deactivated"})
}
