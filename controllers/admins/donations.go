package admins

import (
	"net/http"
	"strconv"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/donations
func DonationListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := db.Model(&models.Donation{})
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("donor_name LIKE ? OR donor_email LIKE ? OR payment_reference LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not count donations"})
		return
	}

	var donations []models.Donation
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&donations).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load donations"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"total":     total,
			"page":      page,
			"donations": donations,
		},
	})
}

// GET /v1/admin/donations/{id}
func DonationDetailHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var donation models.Donation
	if err := database.DB.First(&donation, "id = ?", id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Donation not found"})
		return
	}

	data := map[string]interface{}{"donation": donation}
	var receipt models.DonationReceipt
	if err := database.DB.First(&receipt, "donation_id = ?", donation.ID).Error; err == nil {
		data["receipt"] = receipt
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: data})
}
