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

// GET /v1/admin/tasks
func TaskListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var tasks []models.VolunteerTask
	if err := db.Order("created_at DESC").Find(&tasks).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Could not load tasks",
		})
		return
	}

	// Assignment counts per task (GROUP BY task_id)
	type taskCount struct {
		TaskID uint
		Cnt    int64
	}
	var counts []taskCount
	countMap := make(map[uint]int64, len(tasks))
	if len(tasks) > 0 {
		var taskIDs []uint
		for _, t := range tasks {
			taskIDs = append(taskIDs, t.ID)
		}
		if err := db.
			Table("task_assignments").
			Select("task_id, COUNT(*) as cnt").
			Where("task_id IN ?", taskIDs).
			Group("task_id").
			Scan(&counts).Error; err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
				Success: false,
				Message: "Could not load assignment counts",
			})
			return
		}
		for _, c := range counts {
			countMap[c.TaskID] = c.Cnt
		}
	}

	type TaskWithStats struct {
		models.VolunteerTask
		Assigned int64 `json:"assigned"`
	}
	items := make([]TaskWithStats, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, TaskWithStats{VolunteerTask: t, Assigned: countMap[t.ID]})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: items})
}

type TaskRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ProjectID   *uint   `json:"project_id"`
	Slots       int     `json:"slots"`
	DueAt       *string `json:"due_at"`
	Status      string  `json:"status"`
}

func (req *TaskRequest) apply(t *models.VolunteerTask) error {
	t.Name = req.Name
	t.Description = req.Description
	t.ProjectID = req.ProjectID
	if req.Slots > 0 {
		t.Slots = req.Slots
	}
	if req.Status != "" {
		t.Status = req.Status
	}
	if req.DueAt != nil && *req.DueAt != "" {
		due, err := time.Parse(time.RFC3339, *req.DueAt)
		if err != nil {
			return err
		}
		t.DueAt = &due
	}
	return nil
}

// POST /v1/admin/tasks
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Name is required"})
		return
	}

	task := models.VolunteerTask{Slots: 1}
	if err := req.apply(&task); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid due_at, expected RFC3339"})
		return
	}
	if err := database.DB.Create(&task).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not create task"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Task created", Data: task})
}

// PUT /v1/admin/tasks/{id}
func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	var task models.VolunteerTask
	if err := database.DB.First(&task, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		return
	}

	if err := req.apply(&task); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid due_at, expected RFC3339"})
		return
	}
	if err := database.DB.Save(&task).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not update task"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task updated", Data: task})
}

type AssignTaskRequest struct {
	VolunteerID uint `json:"volunteer_id"`
}

// POST /v1/admin/tasks/{id}/assignments
func AssignTaskHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VolunteerID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "volunteer_id is required"})
		return
	}

	var task models.VolunteerTask
	if err := database.DB.First(&task, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		return
	}
	if task.Status != "Open" {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Task is not open"})
		return
	}

	var volunteer models.Volunteer
	if err := database.DB.First(&volunteer, req.VolunteerID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Volunteer not found"})
		return
	}

	var existing int64
	database.DB.Model(&models.TaskAssignment{}).
		Where("task_id = ? AND volunteer_id = ?", task.ID, volunteer.ID).Count(&existing)
	if existing > 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Volunteer already assigned"})
		return
	}

	var assigned int64
	database.DB.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&assigned)
	if int(assigned) >= task.Slots {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Task has no free slots"})
		return
	}

	assignment := models.TaskAssignment{TaskID: task.ID, VolunteerID: volunteer.ID, AssignedAt: time.Now()}
	if err := database.DB.Create(&assignment).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not assign volunteer"})
		return
	}

	// Activate the volunteer on first assignment
	if volunteer.Status == "Applied" {
		database.DB.Model(&volunteer).Update("status", "Active")
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Volunteer assigned", Data: assignment})
}

// GET /v1/admin/tasks/{id}/assignments
func TaskAssignmentsHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	type rowScan struct {
		ID            uint      `json:"id"`
		VolunteerID   uint      `json:"volunteer_id"`
		VolunteerName string    `json:"volunteer_name"`
		Email         string    `json:"email"`
		AssignedAt    time.Time `json:"assigned_at"`
	}
	var rows []rowScan
	if err := database.DB.
		Table("task_assignments AS ta").
		Joins("JOIN volunteers v ON ta.volunteer_id = v.id").
		Select("ta.id, ta.volunteer_id, v.name AS volunteer_name, v.email, ta.assigned_at").
		Where("ta.task_id = ?", id).
		Order("ta.assigned_at ASC").
		Scan(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load assignments"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: rows})
}
