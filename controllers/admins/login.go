package admins

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"hoperise/database"
	"hoperise/middleware"
	"hoperise/models"
	"hoperise/utils"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid JSON body",
		})
		return
	}

	admin, err := models.GetAdminByUsername(database.DB, req.Username)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid username or password",
		})
		return
	}

	if locked, ttl := middleware.IsAccountLocked(admin.ID); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Message: fmt.Sprintf("Account temporarily locked. Try again in %d seconds", int(ttl.Seconds())+1),
		})
		return
	}

	if !admin.ValidatePassword(req.Password) {
		middleware.RecordFailedLogin(admin.ID)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Invalid username or password",
		})
		return
	}

	middleware.ResetFailedLogin(admin.ID)

	token, err := utils.GenerateJWT(admin.ID, admin.Username, admin.Role)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Could not create token",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Logged in",
		Data: map[string]interface{}{
			"token":      token,
			"admin":      admin,
			"expires_at": time.Now().Add(6 * time.Hour),
		},
	})
}

// Logout revokes the current token's jti so it cannot be replayed.
func Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}
	if tokenString == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No token provided"})
		return
	}

	_, claims, err := utils.ValidateAccessToken(tokenString)
	if err != nil {
		// Already invalid; nothing to revoke
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
		return
	}

	if jti, ok := claims["jti"].(string); ok && jti != "" {
		ttl := 6 * time.Hour
		if exp, ok := claims["exp"].(float64); ok {
			if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
				ttl = remaining
			}
		}
		if err := utils.RevokeJTI(jti, ttl); err != nil {
			log.Printf("[auth] revoke jti failed: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Could not revoke session"})
			return
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
