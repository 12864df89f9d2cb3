package transcripts

import (
	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/transcripts"
)

type Service struct {
	config      *config.Config
	transcripts *transcripts.Service
}

func New(config *config.Config, transcripts *transcripts.Service) *Service {
	return &Service{
		config:      config,
		transcripts: transcripts,
	}
}
