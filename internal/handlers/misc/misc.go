package misc

import (
	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/drivers/database"
	"github.com/vlatan/transcript-store/internal/drivers/rdb"
)

type Service struct {
	config *config.Config
	db     database.Service
	rdb    *rdb.Service
}

func New(config *config.Config, db database.Service, rdb *rdb.Service) *Service {
	return &Service{
		config: config,
		db:     db,
		rdb:    rdb,
	}
}
