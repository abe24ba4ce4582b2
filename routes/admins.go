package routes

import (
	"net/http"
	"time"

	"hoperise/controllers/admins"
	"hoperise/middleware"

	"github.com/gorilla/mux"
)

// SetAdminRoutes mounts the back office under /admin. Everything except login
// sits behind AdminAuthMiddleware; account and settings management additionally
// require the admin role.
func SetAdminRoutes(api *mux.Router) {
	// Login attempts: 20/ip/hour on top of the per-account lockout
	loginLimiter := middleware.NewIPRateLimiter(20, time.Hour)
	api.Handle("/admin/login", loginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuthMiddleware)

	admin.Handle("/logout", http.HandlerFunc(admins.Logout)).Methods(http.MethodPost)
	admin.Handle("/dashboard", http.HandlerFunc(admins.DashboardHandler)).Methods(http.MethodGet)

	// Content
	admin.Handle("/projects", http.HandlerFunc(admins.ProjectListHandler)).Methods(http.MethodGet)
	admin.Handle("/projects", http.HandlerFunc(admins.CreateProjectHandler)).Methods(http.MethodPost)
	admin.Handle("/projects/{id}", http.HandlerFunc(admins.UpdateProjectHandler)).Methods(http.MethodPut)
	admin.Handle("/projects/{id}", http.HandlerFunc(admins.ArchiveProjectHandler)).Methods(http.MethodDelete)

	admin.Handle("/events", http.HandlerFunc(admins.EventListHandler)).Methods(http.MethodGet)
	admin.Handle("/events", http.HandlerFunc(admins.CreateEventHandler)).Methods(http.MethodPost)
	admin.Handle("/events/{id}", http.HandlerFunc(admins.UpdateEventHandler)).Methods(http.MethodPut)
	admin.Handle("/events/{id}", http.HandlerFunc(admins.DeleteEventHandler)).Methods(http.MethodDelete)

	admin.Handle("/posts", http.HandlerFunc(admins.PostListHandler)).Methods(http.MethodGet)
	admin.Handle("/posts", http.HandlerFunc(admins.CreatePostHandler)).Methods(http.MethodPost)
	admin.Handle("/posts/{id}", http.HandlerFunc(admins.UpdatePostHandler)).Methods(http.MethodPut)
	admin.Handle("/posts/{id}", http.HandlerFunc(admins.DeletePostHandler)).Methods(http.MethodDelete)

	admin.Handle("/faqs", http.HandlerFunc(admins.FaqListHandler)).Methods(http.MethodGet)
	admin.Handle("/faqs", http.HandlerFunc(admins.CreateFaqHandler)).Methods(http.MethodPost)
	admin.Handle("/faqs/{id}", http.HandlerFunc(admins.UpdateFaqHandler)).Methods(http.MethodPut)
	admin.Handle("/faqs/{id}", http.HandlerFunc(admins.DeleteFaqHandler)).Methods(http.MethodDelete)

	admin.Handle("/team", http.HandlerFunc(admins.TeamListHandler)).Methods(http.MethodGet)
	admin.Handle("/team", http.HandlerFunc(admins.CreateTeamMemberHandler)).Methods(http.MethodPost)
	admin.Handle("/team/{id}", http.HandlerFunc(admins.UpdateTeamMemberHandler)).Methods(http.MethodPut)
	admin.Handle("/team/{id}", http.HandlerFunc(admins.DeleteTeamMemberHandler)).Methods(http.MethodDelete)

	// Volunteer coordination
	admin.Handle("/tasks", http.HandlerFunc(admins.TaskListHandler)).Methods(http.MethodGet)
	admin.Handle("/tasks", http.HandlerFunc(admins.CreateTaskHandler)).Methods(http.MethodPost)
	admin.Handle("/tasks/{id}", http.HandlerFunc(admins.UpdateTaskHandler)).Methods(http.MethodPut)
	admin.Handle("/tasks/{id}/assignments", http.HandlerFunc(admins.TaskAssignmentsHandler)).Methods(http.MethodGet)
	admin.Handle("/tasks/{id}/assignments", http.HandlerFunc(admins.AssignTaskHandler)).Methods(http.MethodPost)

	admin.Handle("/volunteers", http.HandlerFunc(admins.VolunteerListHandler)).Methods(http.MethodGet)
	admin.Handle("/volunteers/{id}", http.HandlerFunc(admins.UpdateVolunteerStatusHandler)).Methods(http.MethodPatch)

	// Donations (read-only; status transitions belong to the webhook)
	admin.Handle("/donations", http.HandlerFunc(admins.DonationListHandler)).Methods(http.MethodGet)
	admin.Handle("/donations/{id}", http.HandlerFunc(admins.DonationDetailHandler)).Methods(http.MethodGet)

	// Audience
	admin.Handle("/subscribers", http.HandlerFunc(admins.SubscriberListHandler)).Methods(http.MethodGet)
	admin.Handle("/messages", http.HandlerFunc(admins.ContactMessageListHandler)).Methods(http.MethodGet)
	admin.Handle("/messages/{id}/read", http.HandlerFunc(admins.MarkMessageReadHandler)).Methods(http.MethodPost)

	// Media uploads
	admin.Handle("/media", http.HandlerFunc(admins.UploadMediaHandler)).Methods(http.MethodPost)
	admin.Handle("/media", http.HandlerFunc(admins.DeleteMediaHandler)).Methods(http.MethodDelete)

	// Admin-only: account and settings management
	admin.Handle("/admins", middleware.RequireAdminRole(http.HandlerFunc(admins.AdminListHandler))).Methods(http.MethodGet)
	admin.Handle("/admins", middleware.RequireAdminRole(http.HandlerFunc(admins.CreateAdminHandler))).Methods(http.MethodPost)
	admin.Handle("/admins/{id}", middleware.RequireAdminRole(http.HandlerFunc(admins.UpdateAdminHandler))).Methods(http.MethodPut)
	admin.Handle("/admins/{id}", middleware.RequireAdminRole(http.HandlerFunc(admins.DeactivateAdminHandler))).Methods(http.MethodDelete)
	admin.Handle("/settings", middleware.RequireAdminRole(http.HandlerFunc(admins.GetSettingsHandler))).Methods(http.MethodGet)
	admin.Handle("/settings", middleware.RequireAdminRole(http.HandlerFunc(admins.UpdateSettingsHandler))).Methods(http.MethodPut)
}
