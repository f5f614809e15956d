// Command server runs the FNOL claims triage HTTP API.
package main

import (
	"fmt"
	"log"

	"fnoltriage/internal/config"
	"fnoltriage/internal/handler"
	"fnoltriage/internal/router"
	"fnoltriage/internal/service"
	"fnoltriage/internal/triage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	engine := triage.NewEngine(cfg.Routing.FraudKeywords, cfg.Routing.FastTrackThreshold)
	claimSvc := service.NewClaimService(engine)

	claimH := handler.NewClaimHandler(claimSvc)
	healthH := handler.NewHealthHandler()

	r := router.Setup(claimH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
