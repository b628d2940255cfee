package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/loftchat/loft-server/internal/account"
	"github.com/loftchat/loft-server/internal/api"
	"github.com/loftchat/loft-server/internal/api/handlers"
	"github.com/loftchat/loft-server/internal/config"
	"github.com/loftchat/loft-server/internal/messaging"
	"github.com/loftchat/loft-server/internal/relax"
	"github.com/loftchat/loft-server/internal/repositories"
	"github.com/loftchat/loft-server/internal/sessionstore"
)

func main() {
	cfg := config.Envs

	// Connect to database
	repositories.ConnectDatabase()

	sessions := sessionstore.New(cfg.Supabase.ProjectURL, cfg.Supabase.AnonKey)
	records := repositories.NewAccountRepository(repositories.DB)
	avatars := repositories.NewAvatarStore(cfg.Storage)
	chat := messaging.New(cfg.CometChat.AppID, cfg.CometChat.Region, cfg.CometChat.APIKey)

	accounts := account.NewService(sessions, records, avatars, chat)

	h := handlers.New(
		accounts,
		sessions,
		chat,
		relax.NewRadioClient(cfg.RadioAPIURL),
		relax.NewArtworksClient(cfg.ArticAPIURL),
	)

	mux := api.SetupRouter(h)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting Loft server on port: %s", cfg.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", cfg.Port, err)
	}
}
