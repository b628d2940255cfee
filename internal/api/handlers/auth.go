package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/loftchat/loft-server/internal/account"
	"github.com/loftchat/loft-server/internal/api/middleware"
	"github.com/loftchat/loft-server/internal/api/services"
	"github.com/loftchat/loft-server/internal/config"
	"github.com/loftchat/loft-server/internal/utils"
)

const sessionCookieAge = 24 * time.Hour

func setSessionCookie(w http.ResponseWriter, accessToken string) {
	sameSite := http.SameSiteLaxMode
	if isProd() {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(sessionCookieAge.Seconds()),
		Secure:   isProd(),
		HttpOnly: true,
		SameSite: sameSite,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // maxAge < 0 deletes the cookie
		Secure:   isProd(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// POST /auth/sign-up
// Register godoc
// @Summary Register a new account
// @Description Creates the auth identity, the profile row and the chat identity, then starts a session
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/sign-up [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var input account.RegistrationData
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	acct, sess, err := h.Accounts.Register(r.Context(), input)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}

	setSessionCookie(w, sess.AccessToken)
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
		Data:    acct,
	})
}

// POST /auth/login
// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Email == "" || input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	acct, sess, err := h.Accounts.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		writeServiceError(w, err, http.StatusUnauthorized)
		return
	}

	setSessionCookie(w, sess.AccessToken)
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
		Data:    acct,
	})
}

// POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.Accounts.Logout(r.Context(), *sess); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}

	clearSessionCookie(w)
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

// GET /auth/google/login
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := GenerateState(map[string]string{"origin": config.Envs.ClientOrigin})
	if err != nil {
		http.Error(w, "Failed to generate OAuth state", http.StatusInternalServerError)
		return
	}

	url := services.GoogleOauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GET /auth/google/callback
//
// Exchanges the code for a Google id_token, signs into the session store with
// it, then resolves the account through the lazy-creation path: identities
// that arrive here for the first time have no row yet.
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if _, err := DecodeState(r.FormValue("state")); err != nil {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	token, err := services.GoogleOauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		return
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		http.Error(w, "No id_token in Google response", http.StatusInternalServerError)
		return
	}

	sess, err := h.Sessions.SignInWithIDToken(r.Context(), "google", idToken)
	if err != nil {
		http.Redirect(w, r, config.Envs.ClientOrigin+"/login?error=oauth_failed", http.StatusTemporaryRedirect)
		return
	}

	if _, err := h.Accounts.GetCurrent(r.Context(), sess.AccessToken); err != nil {
		http.Error(w, "Failed to resolve account", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, sess.AccessToken)
	http.Redirect(w, r, config.Envs.ClientOrigin+"/profile?status=success_login", http.StatusTemporaryRedirect)
}
