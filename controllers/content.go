package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Public read-only content endpoints. These use the shared database handle
// directly; only the donation flow carries injected dependencies.

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}
	return limit, offset
}

// ListProjects returns active and completed projects, newest first.
func ListProjects(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	var projects []models.Project
	q := database.DB.Where("status <> ?", "Archived").Order("created_at DESC").Limit(limit).Offset(offset)
	if status := r.URL.Query().Get("status"); status != "" {
		q = database.DB.Where("status = ?", status).Order("created_at DESC").Limit(limit).Offset(offset)
	}
	if err := q.Find(&projects).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load projects"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: projects})
}

func GetProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var project models.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load project"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: project})
}

// ListEvents returns events; by default upcoming and ongoing ones.
func ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	var events []models.Event
	q := database.DB.Order("starts_at ASC").Limit(limit).Offset(offset)
	if r.URL.Query().Get("all") == "true" {
		q = q.Where("status <> ?", "Cancelled")
	} else {
		q = q.Where("status IN ?", []string{"Upcoming", "Ongoing"})
	}
	if err := q.Find(&events).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load events"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: events})
}

func GetEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var event models.Event
	if err := database.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Event not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load event"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: event})
}

// ListPosts returns published blog posts, newest first.
func ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	var posts []models.Post
	if err := database.DB.Where("status = ?", "Published").
		Order("published_at DESC").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load posts"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: posts})
}

// GetPostBySlug looks up a single published post by its slug.
func GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	var post models.Post
	if err := database.DB.Where("slug = ? AND status = ?", slug, "Published").First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Post not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load post"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: post})
}

// ListFaqs returns active FAQs in display order.
func ListFaqs(w http.ResponseWriter, r *http.Request) {
	var faqs []models.Faq
	if err := database.DB.Where("status = ?", "Active").Order("position ASC, id ASC").Find(&faqs).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load FAQs"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: faqs})
}

// ListTeam returns active team members in display order.
func ListTeam(w http.ResponseWriter, r *http.Request) {
	var team []models.TeamMember
	if err := database.DB.Where("status = ?", "Active").Order("position ASC, id ASC").Find(&team).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load team"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: team})
}

// GetOrgInfo returns public organization settings plus simple totals.
func GetOrgInfo(w http.ResponseWriter, r *http.Request) {
	var setting models.Setting
	if err := database.DB.First(&setting).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load settings"})
		return
	}

	var totalRaised float64
	database.DB.Model(&models.Donation{}).
		Where("payment_status = ?", models.DonationSuccessful).
		Select("COALESCE(SUM(amount),0)").Scan(&totalRaised)

	var donorCount int64
	database.DB.Model(&models.Donation{}).
		Where("payment_status = ?", models.DonationSuccessful).
		Distinct("donor_email").Count(&donorCount)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"org_name":            setting.OrgName,
			"tagline":             setting.Tagline,
			"logo":                setting.Logo,
			"contact_email":       setting.ContactEmail,
			"contact_phone":       setting.ContactPhone,
			"address":             setting.Address,
			"min_donation_amount": setting.MinDonationAmount,
			"maintenance":         setting.Maintenance,
			"links": map[string]string{
				"facebook":  setting.LinkFacebook,
				"twitter":   setting.LinkTwitter,
				"instagram": setting.LinkInstagram,
			},
			"total_raised": totalRaised,
			"donor_count":  donorCount,
			"as_of":        time.Now(),
		},
	})
}
