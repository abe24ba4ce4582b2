package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"hoperise/database"
	"hoperise/middleware"
	"hoperise/models"
	"hoperise/utils"

	"gorm.io/gorm"
)

type volunteerSignupRequest struct {
	Name      string `json:"name" validate:"required,nameok"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"phone"`
	Interests string `json:"interests"`
}

// VolunteerSignup records a volunteer application. Re-applying with the same
// email returns the existing application instead of a duplicate.
func VolunteerSignup(w http.ResponseWriter, r *http.Request) {
	var req volunteerSignupRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.Volunteer
	err := database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
			Success: true,
			Message: "You have already applied. We will be in touch.",
			Data:    existing,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not process application"})
		return
	}

	volunteer := models.Volunteer{
		Name:      req.Name,
		Email:     email,
		Interests: req.Interests,
		Status:    "Applied",
	}
	if req.Phone != "" {
		phone := req.Phone
		volunteer.Phone = &phone
	}
	if err := database.DB.Create(&volunteer).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not record application"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Thank you for volunteering. We will be in touch.",
		Data:    volunteer,
	})
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe adds an email to the newsletter list. Subscribing an address that
// is already on the list is a no-op success.
func Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.Subscriber
	err := database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Status != "Subscribed" {
			database.DB.Model(&existing).Update("status", "Subscribed")
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "You are subscribed."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not subscribe"})
		return
	}

	sub := models.Subscriber{Email: email, Status: "Subscribed"}
	if err := database.DB.Create(&sub).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not subscribe"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "You are subscribed."})
}

type unsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Unsubscribe flips a subscriber to unsubscribed. Unknown addresses succeed
// silently so the endpoint leaks nothing about the list.
func Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	database.DB.Model(&models.Subscriber{}).Where("email = ?", email).Update("status", "Unsubscribed")
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "You are unsubscribed."})
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,nameok"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// Contact stores a contact-form message and notifies the office mailbox.
func Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not send message"})
		return
	}

	// Office notification is best-effort
	if office := os.Getenv("CONTACT_NOTIFY_EMAIL"); office != "" {
		mailer := utils.NewMailer()
		subject := fmt.Sprintf("New contact message: %s", req.Subject)
		html := fmt.Sprintf("<p>From: %s (%s)</p><p>%s</p>", msg.Name, msg.Email, msg.Message)
		if err := mailer.Send(office, subject, html); err != nil {
			log.Printf("[contact] notify email failed: %v", err)
		}
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Message received. We will get back to you."})
}
