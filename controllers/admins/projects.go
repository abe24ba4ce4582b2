package admins

import (
	"encoding/json"
	"net/http"
	"time"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/projects
func ProjectListHandler(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	if err := database.DB.Order("created_at DESC").Find(&projects).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Could not load projects",
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: projects})
}

type ProjectRequest struct {
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
	Body         string  `json:"body"`
	Image        *string `json:"image"`
	TargetAmount float64 `json:"target_amount"`
	StartedAt    *string `json:"started_at"`
	Status       string  `json:"status"`
}

func (req *ProjectRequest) apply(p *models.Project) error {
	p.Title = req.Title
	p.Summary = req.Summary
	p.Body = req.Body
	p.Image = req.Image
	p.TargetAmount = req.TargetAmount
	if req.Status != "" {
		p.Status = req.Status
	}
	if req.StartedAt != nil && *req.StartedAt != "" {
		t, err := time.Parse(time.RFC3339, *req.StartedAt)
		if err != nil {
			return err
		}
		p.StartedAt = &t
	}
	return nil
}

// POST /v1/admin/projects
func CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Title == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Title is required"})
		return
	}

	var project models.Project
	if err := req.apply(&project); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid started_at, expected RFC3339"})
		return
	}
	if err := database.DB.Create(&project).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not create project"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Project created", Data: project})
}

// PUT /v1/admin/projects/{id}
func UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
		return
	}

	if err := req.apply(&project); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid started_at, expected RFC3339"})
		return
	}
	if err := database.DB.Save(&project).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not update project"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Project updated", Data: project})
}

// DELETE /v1/admin/projects/{id} (archive, not hard delete)
func ArchiveProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := database.DB.Model(&models.Project{}).Where("id = ?", id).Update("status", "Archived")
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not archive project"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Project archived"})
}
