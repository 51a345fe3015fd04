package main

import (
	"log"

	"github.com/strokeside/rowing-analysis-go/internal/api"
	"github.com/strokeside/rowing-analysis-go/internal/config"
	"github.com/strokeside/rowing-analysis-go/internal/database"
	"github.com/strokeside/rowing-analysis-go/internal/repository"
	"github.com/strokeside/rowing-analysis-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	trackRepo := repository.NewTrackRepository(db)
	gateRepo := repository.NewGateRepository(db)
	resultRepo := repository.NewResultRepository(db)

	gateService := service.NewGateService(gateRepo, trackRepo, cfg.GatesDir)
	if _, err := gateService.Reload(); err != nil {
		// Course tables are optional at startup; the reload endpoint can
		// retry once the directory exists.
		log.Printf("[Server] Gate tables not loaded: %v", err)
	}

	svcs := api.Services{
		Tracks: service.NewTrackService(trackRepo),
		Analysis: service.NewAnalysisService(
			trackRepo, gateRepo, resultRepo,
			cfg.ProximityThreshKm, cfg.FrontierMaxPoints, cfg.BatchMaxWorkers,
		),
		Gates: gateService,
	}

	router := api.SetupRouter(cfg, svcs)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
