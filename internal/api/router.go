package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/loftchat/loft-server/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/loftchat/loft-server/internal/api/handlers"
	"github.com/loftchat/loft-server/internal/api/middleware"
	"github.com/loftchat/loft-server/internal/config"
	"github.com/rs/cors"
)

func SetupRouter(h *handlers.Handler) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("/sign-up", h.Register)
	authMux.HandleFunc("/login", h.Login)
	authMux.HandleFunc("/google/login", h.HandleGoogleLogin)
	authMux.HandleFunc("/google/callback", h.HandleGoogleCallback)
	// Logout needs a session; it lives under /auth/ so it must be wrapped here,
	// the /api/v1/auth/ prefix shadows the protected mux below.
	authMux.Handle("/logout", middleware.AuthMiddleware(http.HandlerFunc(h.Logout)))

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// /me answers "no account" for anonymous visitors, so it stays public.
	mainMux.HandleFunc("/api/v1/me", h.Me)

	relaxMux := http.NewServeMux()
	relaxMux.HandleFunc("/radio/stations", h.RadioStations)
	relaxMux.HandleFunc("/artworks", h.Artworks)

	mainMux.Handle("/api/v1/relax/",
		http.StripPrefix("/api/v1/relax", relaxMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("/profile", h.UpdateProfile)
	protectedMux.HandleFunc("/profile/avatar", h.UploadAvatar)
	protectedMux.HandleFunc("/chat/token", h.ChatToken)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
