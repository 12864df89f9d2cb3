package main

import (
	"log"

	"github.com/vlatan/transcript-store/internal/server"
)

func main() {
	if err := server.NewServer().Run(); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}
