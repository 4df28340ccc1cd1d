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

// CommentController handles the HTTP surface of the comment ledger. Both
// mutations respond with the post's refreshed comment list.
type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// Create handles POST /posts/{id}/comments.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		sendError(w, apperrors.AuthInvalid(""))
		return
	}

	var input models.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, apperrors.Validation("Invalid JSON: "+err.Error()))
		return
	}

	postID := mux.Vars(r)["id"]
	if _, err := cc.comments.Append(postID, input.Text, user); err != nil {
		sendError(w, err)
		return
	}

	comments, err := cc.comments.List(postID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, map[string]any{"success": true, "comments": comments})
}

// Delete handles DELETE /posts/{id}/comments/{commentId}.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		sendError(w, apperrors.AuthInvalid(""))
		return
	}

	vars := mux.Vars(r)
	postID := vars["id"]
	if err := cc.comments.Remove(postID, vars["commentId"], user.ID); err != nil {
		sendError(w, err)
		return
	}

	comments, err := cc.comments.List(postID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "comments": comments})
}
