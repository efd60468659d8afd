package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ad1tya-dev/BiteMe/models"
	"github.com/ad1tya-dev/BiteMe/services"
)

type contextKey string

const userKey contextKey = "currentUser"

// UserFrom returns the user the session middleware resolved for this
// request, if any.
func UserFrom(ctx context.Context) (models.SanitizedUser, bool) {
	user, ok := ctx.Value(userKey).(models.SanitizedUser)
	return user, ok
}

// SetCurrentUser resolves the session token from the request header into a
// user and stores it in the request context. Requests without a resolvable
// token are rejected.
func SetCurrentUser(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("token")
			if token == "" {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Access Denied; Please check the access token"))
				return
			}

			user, err := auth.ResolveToken(r.Context(), token)
			if err != nil {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Access Denied; Please check the access token"))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

//ValidateRegisterBody is a middleware function to validate the registration request Body

func ValidateRegisterBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Error reading request body", http.StatusInternalServerError)
			return
		}
		if len(body) == 0 {
			http.Error(w, "Request body is empty", http.StatusBadRequest)
			return
		}

		var requestData struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.Unmarshal(body, &requestData); err != nil {
			http.Error(w, "Error decoding JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if requestData.Name == "" || requestData.Email == "" || requestData.Password == "" {
			http.Error(w, "Name, email, and password are required fields", http.StatusBadRequest)
			return
		}

		// Hand the body back to the handler.
		r.Body = io.NopCloser(bytes.NewReader(body))

		next.ServeHTTP(w, r)
	})
}
