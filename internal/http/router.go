package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/kelime/internal/http/middleware"
	"github.com/mrlokans/kelime/internal/logging"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logging.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.CORSAllowOrigins))

	if cfg.ReadOnly != nil && cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.Handler())
	}

	health := NewHealthController(cfg.Health, cfg.Version)
	router.GET("/health", health.Status)

	if cfg.WordStore == nil {
		return router
	}

	wordsController := NewWordsController(cfg.WordStore, log)

	api := router.Group("/api")
	{
		api.GET("/words", wordsController.ListWords)
		api.POST("/words", wordsController.AddWord)
		api.GET("/words/deleted", wordsController.ListDeleted)
		api.GET("/words/random", wordsController.RandomWord)
		api.GET("/words/known", wordsController.ListKnown)
		api.GET("/words/unknown", wordsController.ListUnknown)
		api.GET("/words/level/:level", wordsController.ListByLevel)
		api.GET("/words/id/:id", wordsController.GetWordByID)
		// Gin requires one wildcard name per segment, so text lookups share :id.
		api.GET("/words/:id", wordsController.GetWord)

		api.PUT("/words/:id", wordsController.UpdateWord)
		api.PATCH("/words/:id/known", wordsController.SetKnown)
		api.DELETE("/words/:id", wordsController.DeleteWord)
		api.POST("/words/:id/restore", wordsController.RestoreWord)
		api.DELETE("/words/:id/permanent", wordsController.DeleteWordPermanently)

		api.GET("/search", wordsController.Search)
		api.GET("/search/:query", wordsController.Search)
		api.GET("/stats", wordsController.Stats)
	}

	return router
}
