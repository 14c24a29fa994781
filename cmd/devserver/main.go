// Command devserver runs the gateway over the in-memory store, for local
// frontend work and demos without a MongoDB server.
package main

import (
	"os"

	"github.com/gogotex/books-gateway/internal/document/service"
	"github.com/gogotex/books-gateway/internal/server"
	"github.com/gogotex/books-gateway/pkg/logger"
	"github.com/gogotex/books-gateway/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("DEV_SERVER_PORT")
	if port == "" {
		port = "5000"
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := server.New(server.Deps{Service: service.NewMemoryService()})

	logger.Infof("books devserver (memory store) listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
