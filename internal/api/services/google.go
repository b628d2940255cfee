package services

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOauthConfig drives third-party sign-in. The callback hands the
// resulting id_token to the session store, which owns the identity.
var GoogleOauthConfig = &oauth2.Config{
	ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
	ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	RedirectURL:  redirectURL(),
	Scopes: []string{
		"openid",
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	},
	Endpoint: google.Endpoint,
}

func redirectURL() string {
	if u := os.Getenv("GOOGLE_REDIRECT_URL"); u != "" {
		return u
	}
	return "http://localhost:8080/api/v1/auth/google/callback"
}
