package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"instakilo/app/apperrors"
	"instakilo/app/middleware"
	"instakilo/app/models"
	"instakilo/app/services"
)

// PostController handles the HTTP surface of the post lifecycle.
type PostController struct {
	posts *services.PostService
}

func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// Create handles POST /posts.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		sendError(w, apperrors.AuthInvalid(""))
		return
	}

	var content models.PostContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		sendError(w, apperrors.Validation("Invalid JSON: "+err.Error()))
		return
	}

	post, err := pc.posts.Create(content, user)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, map[string]any{"success": true, "post": post})
}

// Update handles PUT /posts/{id}.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		sendError(w, apperrors.AuthInvalid(""))
		return
	}

	var upd models.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		sendError(w, apperrors.Validation("Invalid JSON: "+err.Error()))
		return
	}

	post, err := pc.posts.Update(mux.Vars(r)["id"], upd, user.ID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "post": post})
}

// Delete handles DELETE /posts/{id}.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		sendError(w, apperrors.AuthInvalid(""))
		return
	}

	if err := pc.posts.Delete(mux.Vars(r)["id"], user.ID); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Index handles GET /posts: the public feed with cursor paging.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	cursor := r.URL.Query().Get("lastKey")

	posts, next, more, err := pc.posts.ListPublic(limit, cursor)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"posts":         posts,
		"lastKey":       next,
		"moreAvailable": more,
	})
}

// Mine handles GET /posts/mine: the caller's own posts via their roster.
func (pc *PostController) Mine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		sendError(w, apperrors.AuthInvalid(""))
		return
	}

	posts, err := pc.posts.ListOwn(user.ID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "posts": posts})
}

// Show handles GET /posts/{id}.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.posts.Get(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "post": post})
}
