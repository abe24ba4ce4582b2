package routes

import (
	"net/http"
	"time"

	"hoperise/controllers"
	"hoperise/middleware"

	"github.com/gorilla/mux"
)

// PublicRoutes mounts the unauthenticated site endpoints.
func PublicRoutes(api *mux.Router) {
	// Form submissions share one limiter: 60/ip/hour
	formLimiter := middleware.NewIPRateLimiter(60, time.Hour)

	// Organization info and content
	api.Handle("/info", http.HandlerFunc(controllers.GetOrgInfo)).Methods(http.MethodGet)
	api.Handle("/projects", http.HandlerFunc(controllers.ListProjects)).Methods(http.MethodGet)
	api.Handle("/projects/{id}", http.HandlerFunc(controllers.GetProject)).Methods(http.MethodGet)
	api.Handle("/events", http.HandlerFunc(controllers.ListEvents)).Methods(http.MethodGet)
	api.Handle("/events/{id}", http.HandlerFunc(controllers.GetEvent)).Methods(http.MethodGet)
	api.Handle("/posts", http.HandlerFunc(controllers.ListPosts)).Methods(http.MethodGet)
	api.Handle("/posts/{slug}", http.HandlerFunc(controllers.GetPostBySlug)).Methods(http.MethodGet)
	api.Handle("/faqs", http.HandlerFunc(controllers.ListFaqs)).Methods(http.MethodGet)
	api.Handle("/team", http.HandlerFunc(controllers.ListTeam)).Methods(http.MethodGet)

	// Forms
	api.Handle("/volunteers", formLimiter.Middleware(http.HandlerFunc(controllers.VolunteerSignup))).Methods(http.MethodPost)
	api.Handle("/newsletter/subscribe", formLimiter.Middleware(http.HandlerFunc(controllers.Subscribe))).Methods(http.MethodPost)
	api.Handle("/newsletter/unsubscribe", formLimiter.Middleware(http.HandlerFunc(controllers.Unsubscribe))).Methods(http.MethodPost)
	api.Handle("/contact", formLimiter.Middleware(http.HandlerFunc(controllers.Contact))).Methods(http.MethodPost)

	// Site assistant
	chatLimiter := middleware.NewIPRateLimiter(120, time.Hour)
	api.Handle("/chat/sessions", chatLimiter.Middleware(http.HandlerFunc(controllers.StartChatSession))).Methods(http.MethodPost)
	api.Handle("/chat/sessions/{id}", http.HandlerFunc(controllers.GetChatSession)).Methods(http.MethodGet)
	api.Handle("/chat/sessions/{id}/messages", chatLimiter.Middleware(http.HandlerFunc(controllers.PostChatMessage))).Methods(http.MethodPost)
	api.Handle("/chat/sessions/{id}/end", http.HandlerFunc(controllers.EndChatSession)).Methods(http.MethodPost)
}
