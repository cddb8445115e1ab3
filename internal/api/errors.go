package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/AbhishekPandey12/foodorderingapp/internal/auth"
	"github.com/AbhishekPandey12/foodorderingapp/internal/item"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to write response: %v", err)
	}
}

// writeError reports business failures with their code. Anything else is
// logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var itemErr *item.Error
	if errors.As(err, &itemErr) {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: itemErr.Code, Message: itemErr.Message})
		return
	}

	e, ok := auth.AsError(err)
	if !ok {
		log.Printf("[API] %s %s failed: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "GEN-001", Message: "Internal server error"})
		return
	}
	writeJSON(w, statusFor(e), errorResponse{Code: e.Code, Message: e.Message})
}

func statusFor(e *auth.Error) int {
	switch e.Kind {
	case auth.KindSignupRestricted, auth.KindUpdateCustomer:
		return http.StatusBadRequest
	case auth.KindAuthenticationFailed:
		return http.StatusUnauthorized
	case auth.KindAuthorizationFailed:
		if e.Code == auth.ErrLoggedOut.Code {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
