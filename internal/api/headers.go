package api

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/AbhishekPandey12/foodorderingapp/internal/auth"
)

const accessTokenHeader = "access-token"

// basicCredentials reads "Authorization: Basic base64(contact:password)".
// The password may itself contain colons.
func basicCredentials(r *http.Request) (contactNumber, password string, err error) {
	encoded, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Basic ")
	if !ok {
		return "", "", auth.ErrMalformedCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", auth.ErrMalformedCredentials
	}

	contactNumber, password, ok = strings.Cut(string(decoded), ":")
	if !ok || contactNumber == "" || password == "" {
		return "", "", auth.ErrMalformedCredentials
	}
	return contactNumber, password, nil
}

// bearerToken reads "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", auth.ErrNotLoggedIn
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", auth.ErrNotLoggedIn
	}
	return token, nil
}
