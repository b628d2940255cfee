package handlers

import (
	"errors"
	"net/http"

	"github.com/loftchat/loft-server/internal/account"
	"github.com/loftchat/loft-server/internal/config"
	"github.com/loftchat/loft-server/internal/messaging"
	"github.com/loftchat/loft-server/internal/relax"
	"github.com/loftchat/loft-server/internal/sessionstore"
	"github.com/loftchat/loft-server/internal/utils"
)

// Handler bundles the services the HTTP layer dispatches into.
type Handler struct {
	Accounts *account.Service
	Sessions *sessionstore.Client
	Chat     *messaging.Client
	Radio    *relax.RadioClient
	Art      *relax.ArtworksClient
}

func New(accounts *account.Service, sessions *sessionstore.Client, chat *messaging.Client, radio *relax.RadioClient, artworks *relax.ArtworksClient) *Handler {
	return &Handler{
		Accounts: accounts,
		Sessions: sessions,
		Chat:     chat,
		Radio:    radio,
		Art:      artworks,
	}
}

// writeServiceError maps the account error taxonomy onto HTTP responses.
// authStatus lets login distinguish bad credentials (401) from a rejected
// sign-up (400).
func writeServiceError(w http.ResponseWriter, err error, authStatus int) {
	var authErr *account.AuthError
	if errors.As(err, &authErr) {
		utils.JSONError(w, authStatus, authErr.Message)
		return
	}

	var storeErr *account.StoreError
	if errors.As(err, &storeErr) {
		utils.JSONError(w, http.StatusInternalServerError, "Storage operation failed")
		return
	}

	utils.JSONError(w, http.StatusInternalServerError, "Something went wrong")
}

func isProd() bool {
	return config.Envs.Environment == "production"
}
