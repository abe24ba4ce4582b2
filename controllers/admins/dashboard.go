package admins

import (
	"net/http"
	"time"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"
)

// DashboardHandler returns the headline numbers for the back office landing
// page plus a 30-day daily donation series.
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var totalRaised float64
	db.Model(&models.Donation{}).
		Where("payment_status = ?", models.DonationSuccessful).
		Select("COALESCE(SUM(amount),0)").Scan(&totalRaised)

	var donationCounts struct {
		Pending    int64
		Successful int64
		Failed     int64
	}
	db.Model(&models.Donation{}).Where("payment_status = ?", models.DonationPending).Count(&donationCounts.Pending)
	db.Model(&models.Donation{}).Where("payment_status = ?", models.DonationSuccessful).Count(&donationCounts.Successful)
	db.Model(&models.Donation{}).Where("payment_status = ?", models.DonationFailed).Count(&donationCounts.Failed)

	var volunteerCount, subscriberCount, unreadMessages int64
	db.Model(&models.Volunteer{}).Count(&volunteerCount)
	db.Model(&models.Subscriber{}).Where("status = ?", "Subscribed").Count(&subscriberCount)
	db.Model(&models.ContactMessage{}).Where("read_at IS NULL").Count(&unreadMessages)

	var activeProjects int64
	db.Model(&models.Project{}).Where("status = ?", "Active").Count(&activeProjects)

	// Daily totals for the last 30 days
	type dailyRow struct {
		Day    string  `json:"day"`
		Total  float64 `json:"total"`
		Number int64   `json:"count"`
	}
	var daily []dailyRow
	since := time.Now().AddDate(0, 0, -30)
	db.Model(&models.Donation{}).
		Select("DATE(created_at) AS day, COALESCE(SUM(amount),0) AS total, COUNT(*) AS number").
		Where("payment_status = ? AND created_at >= ?", models.DonationSuccessful, since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&daily)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"total_raised": totalRaised,
			"donations": map[string]int64{
				"pending":    donationCounts.Pending,
				"successful": donationCounts.Successful,
				"failed":     donationCounts.Failed,
			},
			"volunteers":      volunteerCount,
			"subscribers":     subscriberCount,
			"unread_messages": unreadMessages,
			"active_projects": activeProjects,
			"daily_donations": daily,
			"generated_at":    time.Now(),
		},
	})
}
