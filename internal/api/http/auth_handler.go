package http

import (
	"net/http"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.Auth.SignUp(r.Context(), req.Name, req.Surname, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "user created successfully",
		"user_id": user.ID,
	})
}

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var req logInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.Auth.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		// Credential failures all collapse to 401: no probing which
		// part was wrong.
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handlers) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	users, pg, err := h.Auth.ListUsers(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, users, pg)
}
