package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AbhishekPandey12/foodorderingapp/internal/auth"
	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
)

type signupRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	EmailAddress  string `json:"emailAddress"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password"`
}

type updateCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type loginResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	ContactNumber string `json:"contactNumber"`
	EmailAddress  string `json:"emailAddress"`
	Message       string `json:"message"`
}

type updateCustomerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Status    string `json:"status"`
}

// authorizedCustomer resolves the bearer token to its customer. Handlers call
// it only once their own input checks have passed.
func (api *Api) authorizedCustomer(r *http.Request) (*models.Customer, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}
	return api.auth.Authorize(r.Context(), token)
}

func (api *Api) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	// An unreadable body leaves every field empty, which the service rejects.
	_ = json.NewDecoder(r.Body).Decode(&req)

	customer, err := api.auth.Signup(r.Context(), auth.SignupInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.EmailAddress,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":     customer.UUID,
		"status": "CUSTOMER SUCCESSFULLY REGISTERED",
	})
}

func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	contactNumber, password, err := basicCredentials(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	session, err := api.auth.Authenticate(r.Context(), contactNumber, password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	customer := session.Customer
	w.Header().Set(accessTokenHeader, session.AccessToken)
	writeJSON(w, http.StatusOK, loginResponse{
		ID:            customer.UUID,
		FirstName:     customer.FirstName,
		LastName:      customer.LastName,
		ContactNumber: customer.ContactNumber,
		EmailAddress:  customer.Email,
		Message:       "LOGGED IN SUCCESSFULLY",
	})
}

func (api *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	session, err := api.auth.Logout(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":      session.Customer.UUID,
		"message": "LOGGED OUT SUCCESSFULLY",
	})
}

func (api *Api) UpdateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if strings.TrimSpace(req.FirstName) == "" {
		writeError(w, r, auth.ErrEmptyFirstName)
		return
	}

	customer, err := api.authorizedCustomer(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := api.auth.UpdateProfile(r.Context(), customer, req.FirstName, req.LastName)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updateCustomerResponse{
		ID:        updated.UUID,
		FirstName: updated.FirstName,
		LastName:  updated.LastName,
		Status:    "CUSTOMER DETAILS UPDATED SUCCESSFULLY",
	})
}

func (api *Api) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, r, auth.ErrEmptyPasswordField)
		return
	}

	customer, err := api.authorizedCustomer(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := api.auth.UpdatePassword(r.Context(), req.OldPassword, req.NewPassword, customer)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     updated.UUID,
		"status": "CUSTOMER PASSWORD UPDATED SUCCESSFULLY",
	})
}
