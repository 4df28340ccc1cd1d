package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"instakilo/app/apperrors"
	"instakilo/app/auth"
	"instakilo/app/models"
	"instakilo/app/services"
)

type contextKey string

const userKey contextKey = "currentUser"

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Auth verifies the bearer token and resolves the caller's user record
// before any handler runs. Every protected route gets both checks: a bad
// token stops the request with auth-invalid, a token whose subject has no
// user record stops it with user-not-found.
func Auth(authenticator auth.Authenticator, users *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, apperrors.AuthInvalid(""))
				return
			}
			subject, err := authenticator.Verify(token)
			if err != nil {
				writeAuthError(w, apperrors.AuthInvalid(""))
				return
			}
			user, err := users.GetBrief(subject)
			if err != nil {
				writeAuthError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated caller stored by Auth.
func CurrentUser(r *http.Request) (models.UserBrief, bool) {
	user, ok := r.Context().Value(userKey).(models.UserBrief)
	return user, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	if apperrors.CodeOf(err) == apperrors.CodeUserNotFound {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var appErr *apperrors.Error
	if e, ok := err.(*apperrors.Error); ok {
		appErr = e
	} else {
		appErr = apperrors.AuthInvalid("")
	}
	json.NewEncoder(w).Encode(appErr)
}
