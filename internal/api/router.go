package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/strokeside/rowing-analysis-go/internal/config"
	"github.com/strokeside/rowing-analysis-go/internal/handler"
	"github.com/strokeside/rowing-analysis-go/internal/middleware"
	"github.com/strokeside/rowing-analysis-go/internal/service"
)

// Services bundles the service layer for router wiring.
type Services struct {
	Tracks   *service.TrackService
	Analysis *service.AnalysisService
	Gates    *service.GateService
}

// SetupRouter builds the HTTP router. Reads are open; uploads, deletions,
// analyses and gate reloads require a bearer token.
func SetupRouter(cfg *config.Config, svcs Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Rowing Analysis API is running",
		})
	})

	authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.AdminPassword)
	trackHandler := handler.NewTrackHandler(svcs.Tracks)
	analysisHandler := handler.NewAnalysisHandler(svcs.Analysis)
	gateHandler := handler.NewGateHandler(svcs.Gates)
	reportHandler := handler.NewReportHandler(svcs.Analysis, svcs.Tracks)

	auth := middleware.Auth(cfg.JWTSecret)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		tracks := api.Group("/tracks")
		{
			tracks.GET("", trackHandler.ListTracks)
			tracks.POST("", auth, trackHandler.Upload)
			tracks.GET("/:id", trackHandler.GetTrack)
			tracks.DELETE("/:id", auth, trackHandler.DeleteTrack)
			tracks.GET("/:id/points", trackHandler.GetTrackPoints)

			tracks.POST("/:id/analyze", auth, analysisHandler.Analyze)
			tracks.GET("/:id/crossings", analysisHandler.GetCrossings)
			tracks.GET("/:id/splits", analysisHandler.GetSplits)
			tracks.GET("/:id/frontier", analysisHandler.GetFrontier)
			tracks.GET("/:id/timings", analysisHandler.GetTimings)

			tracks.GET("/:id/report/splits.csv", reportHandler.SplitsCSV)
			tracks.GET("/:id/report/crossings.csv", reportHandler.CrossingsCSV)
			tracks.GET("/:id/report/frontier", reportHandler.FrontierChart)
			tracks.GET("/:id/report/splits", reportHandler.SplitsChart)
		}

		api.POST("/analyses/batch", auth, analysisHandler.AnalyzeBatch)

		gates := api.Group("/gates")
		{
			gates.GET("", gateHandler.ListGates)
			gates.GET("/courses", gateHandler.ListCourses)
			gates.POST("/reload", auth, gateHandler.Reload)
			gates.POST("/suggest-bearing", gateHandler.SuggestBearing)
		}
	}

	return r
}
