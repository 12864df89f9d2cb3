package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/drivers/database"
	"github.com/vlatan/transcript-store/internal/drivers/rdb"
	miscHandlers "github.com/vlatan/transcript-store/internal/handlers/misc"
	transcriptHandlers "github.com/vlatan/transcript-store/internal/handlers/transcripts"
	"github.com/vlatan/transcript-store/internal/integrations/yt"
	transcriptsRepo "github.com/vlatan/transcript-store/internal/repositories/transcripts"
	"github.com/vlatan/transcript-store/internal/transcripts"
)

type Server struct {
	config      *config.Config
	transcripts *transcriptHandlers.Service
	misc        *miscHandlers.Service
	cleanup     func() error

	Domain     string
	HttpServer *http.Server
}

// Create new HTTP server
func NewServer() *Server {

	// Init config
	cfg := config.New()

	// Create database service
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create DB service; %v", err)
	}

	// Create Redis service
	rdb, err := rdb.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create Redis service; %v", err)
	}

	// Create YouTube service
	ctx := context.Background()
	yt, err := yt.New(ctx, cfg)
	if err != nil {
		log.Fatalf("couldn't create YouTube service: %v", err)
	}

	// Create DB repository and the fetch service
	repo := transcriptsRepo.New(db, cfg)
	service := transcripts.New(cfg, yt, rdb, repo)

	// Create new server service
	s := &Server{
		config:      cfg,
		transcripts: transcriptHandlers.New(cfg, service),
		misc:        miscHandlers.New(cfg, db, rdb),
		cleanup: func() error {
			db.Close()
			return rdb.Client.Close()
		},

		Domain: cfg.Domain,
		HttpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}

	s.HttpServer.Handler = s.RegisterRoutes()
	return s
}
