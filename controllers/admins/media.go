package admins

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"hoperise/utils"
)

var allowedUploadExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// POST /v1/admin/media
// Accepts a multipart form with a "file" field, stores the object in R2 and
// returns a presigned URL for immediate use.
func UploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing file field"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExt[ext] {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unsupported file type"})
		return
	}

	objectName := fmt.Sprintf("media/%d%s", time.Now().UnixNano(), ext)
	url, err := utils.StoreMediaAndPresign(r.Context(), objectName, file, 7*24*time.Hour)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Upload failed"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Uploaded",
		Data: map[string]interface{}{
			"object": objectName,
			"url":    url,
		},
	})
}

// DELETE /v1/admin/media?object=media/...
func DeleteMediaHandler(w http.ResponseWriter, r *http.Request) {
	object := r.URL.Query().Get("object")
	if object == "" || !strings.HasPrefix(object, "media/") {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid object name"})
		return
	}
	if err := utils.RemoveMediaObject(r.Context(), object); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Delete failed"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Deleted"})
}
