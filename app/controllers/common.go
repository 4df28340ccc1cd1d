package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"instakilo/app/apperrors"
)

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError writes the application error as the response body with the
// status its code maps to. Anything that is not an application error becomes
// unknown-error.
func sendError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Unknown("")
	}
	sendJSON(w, statusFor(appErr.Code), appErr)
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeAuthInvalid:
		return http.StatusUnauthorized
	case apperrors.CodeUnauthPostUpdate, apperrors.CodeUnauthPostDelete, apperrors.CodeUnauthCommentDelete:
		return http.StatusForbidden
	case apperrors.CodeUserNotFound, apperrors.CodePostNotFound, apperrors.CodeCommentNotFound, apperrors.CodeRogueComment:
		return http.StatusNotFound
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeConditionFailed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
