package admins

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"hoperise/database"
	"hoperise/models"
	"hoperise/utils"

	"github.com/gorilla/mux"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 150 {
		s = s[:150]
	}
	return s
}

// GET /v1/admin/posts
func PostListHandler(w http.ResponseWriter, r *http.Request) {
	var posts []models.Post
	if err := database.DB.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not load posts"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: posts})
}

type PostRequest struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Excerpt string  `json:"excerpt"`
	Body    string  `json:"body"`
	Image   *string `json:"image"`
	Status  string  `json:"status"`
}

// POST /v1/admin/posts
func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Title == "" || req.Body == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Title and body are required"})
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}

	authorID, _ := r.Context().Value(utils.AdminIDKey).(int64)

	post := models.Post{
		Title:    req.Title,
		Slug:     slug,
		Excerpt:  req.Excerpt,
		Body:     req.Body,
		Image:    req.Image,
		AuthorID: authorID,
		Status:   "Draft",
	}
	if req.Status == "Published" {
		now := time.Now()
		post.Status = "Published"
		post.PublishedAt = &now
	}

	if err := database.DB.Create(&post).Error; err != nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Could not create post; slug may already exist"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Post created", Data: post})
}

// PUT /v1/admin/posts/{id}
func UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Post not found"})
		return
	}

	post.Title = req.Title
	post.Excerpt = req.Excerpt
	post.Body = req.Body
	post.Image = req.Image
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	if req.Status != "" && req.Status != post.Status {
		if req.Status == "Published" && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = req.Status
	}

	if err := database.DB.Save(&post).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not update post"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Post updated", Data: post})
}

// DELETE /v1/admin/posts/{id}
func DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res := database.DB.Delete(&models.Post{}, id)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not delete post"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Post not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Post deleted"})
}
