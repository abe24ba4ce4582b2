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

// GET /v1/admin/events
func EventListHandler(w http.ResponseWriter, r *http.Request) {
	var events []models.Event
	if err := database.DB.Order("starts_at DESC").Find(&events).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load events"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: events})
}

type EventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Image       *string `json:"image"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      *string `json:"ends_at"`
	Status      string  `json:"status"`
}

func (req *EventRequest) apply(e *models.Event) error {
	e.Title = req.Title
	e.Description = req.Description
	e.Location = req.Location
	e.Image = req.Image
	if req.Status != "" {
		e.Status = req.Status
	}
	if req.StartsAt != "" {
		t, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			return err
		}
		e.StartsAt = t
	}
	if req.EndsAt != nil && *req.EndsAt != "" {
		t, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			return err
		}
		e.EndsAt = &t
	}
	return nil
}

// POST /v1/admin/events
func CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Title == "" || req.StartsAt == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Title and starts_at are required"})
		return
	}

	var event models.Event
	if err := req.apply(&event); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid timestamp, expected RFC3339"})
		return
	}
	if err := database.DB.Create(&event).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not create event"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Event created", Data: event})
}

// PUT /v1/admin/events/{id}
func UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	var event models.Event
	if err := database.DB.First(&event, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Event not found"})
		return
	}

	if err := req.apply(&event); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid timestamp, expected RFC3339"})
		return
	}
	if err := database.DB.Save(&event).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not update event"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Event updated", Data: event})
}

// DELETE /v1/admin/events/{id}
func DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := database.DB.Delete(&models.Event{}, id)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not delete event"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Event not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Event deleted"})
}
