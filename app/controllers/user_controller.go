package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"instakilo/app/apperrors"
	"instakilo/app/middleware"
	"instakilo/app/models"
	"instakilo/app/services"
)

// UserController handles profile reads and edits.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// MyProfile handles GET /profile. The caller's own profile includes the
// email address.
func (uc *UserController) MyProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		sendError(w, apperrors.AuthInvalid(""))
		return
	}

	profile, err := uc.users.GetProfile(user.ID, true)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "profile": profile})
}

// OtherProfile handles GET /users/{id}. Email stays private.
func (uc *UserController) OtherProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := uc.users.GetProfile(mux.Vars(r)["id"], false)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "profile": profile})
}

// EditProfile handles PUT /profile.
func (uc *UserController) EditProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		sendError(w, apperrors.AuthInvalid(""))
		return
	}

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		sendError(w, apperrors.Validation("Invalid JSON: "+err.Error()))
		return
	}

	if err := uc.users.UpdateProfile(user.ID, upd); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true})
}
