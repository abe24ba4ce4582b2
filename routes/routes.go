package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"hoperise/controllers"
	"hoperise/database"
	"hoperise/middleware"
	"hoperise/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "hoperise-api",
	})
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for Docker health checks (root level)
	r.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	origins := []string{
		"https://hoperise.org", "https://www.hoperise.org", "https://admin.hoperise.org",
		"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:3000", "http://127.0.0.1:8080",
	}
	if originsEnv != "" {
		parts := strings.Split(originsEnv, ",")
		for _, p := range parts {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-CRON-KEY", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Rate limiter for cron: 1000/hour
	cronLimiter := middleware.NewIPRateLimiter(1000, time.Hour)
	// Rate limiter for webhook: 500/ip, whitelist, sliding window
	webhookLimiter := middleware.NewWebhookLimiter(500, time.Hour, webhookWhitelist())
	// Donation form submissions: 30/ip/hour
	donateLimiter := middleware.NewIPRateLimiter(30, time.Hour)

	donationController := controllers.NewDonationController(database.DB, utils.NewPaystackClient(), utils.NewMailer())

	// Donation payment flow
	api.Handle("/donations", donateLimiter.Middleware(http.HandlerFunc(donationController.CreateDonation))).Methods(http.MethodPost)
	api.Handle("/donations/{id}", http.HandlerFunc(donationController.GetDonation)).Methods(http.MethodGet)
	api.Handle("/webhooks/paystack", webhookLimiter.Middleware(http.HandlerFunc(donationController.PaystackWebhook))).Methods(http.MethodPost)

	// Cron endpoint reconciling stale pending donations (protected via X-CRON-KEY header)
	api.Handle("/cron/reconcile", cronLimiter.Middleware(http.HandlerFunc(donationController.ReconcileCron))).Methods(http.MethodPost)

	// Health check under the API prefix too
	api.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// Public site routes
	PublicRoutes(api)

	// Back office routes
	SetAdminRoutes(api)

	return r
}

func webhookWhitelist() []string {
	var list []string
	if v := os.Getenv("WEBHOOK_IP_WHITELIST"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if ip := strings.TrimSpace(p); ip != "" {
				list = append(list, ip)
			}
		}
	}
	return list
}
