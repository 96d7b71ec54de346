package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoang-11jjk/RealEstatePro/internal/api"
	"github.com/hoang-11jjk/RealEstatePro/internal/config"
	"github.com/hoang-11jjk/RealEstatePro/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the listing store. A missing or corrupt data file starts empty.
	fileStore, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to open listing store at %s: %v", cfg.DataFile, err)
	}

	router := api.SetupRouter(cfg, fileStore)
	srv := &http.Server{
		Addr:    ":" + cfg.ApiPort,
		Handler: router,
	}

	go func() {
		fmt.Printf("API listening on :%s\n", cfg.ApiPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API ListenAndServe error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("API server shutdown error: %v", err)
	}

	fmt.Println("Server gracefully stopped")
}
