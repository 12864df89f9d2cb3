package misc

import (
	"net/http"

	"github.com/vlatan/transcript-store/internal/utils"
)

// DB, Redis and server health status
func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {

	data := map[string]any{
		"redis_status":    s.rdb.Health(r.Context()),
		"database_status": s.db.Health(r.Context()),
		"server_status":   getServerStats(),
	}

	utils.WriteJSON(w, r, data)
}
