package admins

import (
	"encoding/json"
	"net/http"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/team
func TeamListHandler(w http.ResponseWriter, r *http.Request) {
	var team []models.TeamMember
	if err := database.DB.Order("position ASC, id ASC").Find(&team).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load team"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: team})
}

type TeamMemberRequest struct {
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Bio      string  `json:"bio"`
	Photo    *string `json:"photo"`
	Email    *string `json:"email"`
	Position int     `json:"position"`
	Status   string  `json:"status"`
}

// POST /v1/admin/team
func CreateTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Name == "" || req.Role == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Name and role are required"})
		return
	}

	member := models.TeamMember{
		Name:     req.Name,
		Role:     req.Role,
		Bio:      req.Bio,
		Photo:    req.Photo,
		Email:    req.Email,
		Position: req.Position,
	}
	if req.Status != "" {
		member.Status = req.Status
	}
	if err := database.DB.Create(&member).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not create team member"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Team member created", Data: member})
}

// PUT /v1/admin/team/{id}
func UpdateTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	var member models.TeamMember
	if err := database.DB.First(&member, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Team member not found"})
		return
	}

	member.Name = req.Name
	member.Role = req.Role
	member.Bio = req.Bio
	member.Photo = req.Photo
	member.Email = req.Email
	member.Position = req.Position
	if req.Status != "" {
		member.Status = req.Status
	}
	if err := database.DB.Save(&member).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not update team member"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Team member updated", Data: member})
}

// DELETE /v1/admin/team/{id}
func DeleteTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := database.DB.Delete(&models.TeamMember{}, id)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not delete team member"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Team member not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Team member deleted"})
}
