package server

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

func (s *Server) RegisterRoutes() http.Handler {
	mux := http.NewServeMux()

	// Register routes
	mux.HandleFunc("GET /api/transcripts/{video}", s.transcripts.GetTranscriptHandler)
	mux.HandleFunc("DELETE /api/transcripts/{video}", s.transcripts.DeleteTranscriptHandler)
	mux.HandleFunc("GET /health/{$}", s.misc.HealthHandler)

	// Chain middlewares that apply to all requests
	handler := s.muxMiddlewares(
		s.recoverPanic,
		s.logRequests,
		s.closeBody,
		func(h http.Handler) http.Handler { return gzhttp.GzipHandler(h) },
	)(mux)

	return handler
}
