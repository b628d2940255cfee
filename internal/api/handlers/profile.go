package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loftchat/loft-server/internal/account"
	"github.com/loftchat/loft-server/internal/api/middleware"
	"github.com/loftchat/loft-server/internal/models"
	"github.com/loftchat/loft-server/internal/utils"
)

// GET /api/v1/me
//
// Not behind the auth middleware: an absent or expired session is a normal
// answer here (data: null), not a 401.
// Me godoc
// @Summary Resolve the current account from the session cookie
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var accessToken string
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		accessToken = cookie.Value
	}

	acct, err := h.Accounts.GetCurrent(r.Context(), accessToken)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    acct,
	})
}

// PATCH /api/v1/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	sess := middleware.SessionFromContext(r.Context())

	// avatar_url is deliberately absent: it is only ever written through the
	// avatar upload path, which keeps it pointing into the blob store.
	var input struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		UserName    *string `json:"user_name"`
		Bio         *string `json:"bio"`
		Email       *string `json:"email"`
		PhoneNumber *string `json:"phone_number"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	patch := models.ProfilePatch{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		UserName:    input.UserName,
		Bio:         input.Bio,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}

	if patch.IsEmpty() {
		utils.JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	applied, err := h.Accounts.UpdateProfile(r.Context(), sess, patch)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Profile updated",
		Data:    applied,
	})
}

// POST /api/v1/profile/avatar
// UploadAvatar godoc
// @Summary Upload a new avatar image
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/profile/avatar [post]
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	sess := middleware.SessionFromContext(r.Context())

	const maxAvatarSize = 5 << 20 // 5 MB
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid file upload form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "No avatar file provided")
		return
	}
	defer file.Close()

	url, err := h.Accounts.UploadAvatar(r.Context(), sess, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, account.ErrNoFileExtension) {
			utils.JSONError(w, http.StatusBadRequest, "Filename must have an extension")
			return
		}
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Avatar uploaded",
		Data:    map[string]string{"avatar_url": url},
	})
}

// GET /api/v1/chat/token
//
// Issues the chat auth token the browser widget logs in with. Unlike the
// best-effort mirror calls inside the account operations, a failure here is
// surfaced: the caller explicitly asked for chat.
func (h *Handler) ChatToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := h.Chat.AuthToken(r.Context(), sess.User.ID)
	if err != nil {
		utils.JSONError(w, http.StatusBadGateway, "Chat service unavailable")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "OK",
		Data:    map[string]string{"auth_token": token},
	})
}
