package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagescope/backend/analyzer"
	"github.com/pagescope/backend/config"
	"github.com/pagescope/backend/logging"
	"github.com/pagescope/backend/middleware"
	"github.com/pagescope/backend/stats"
	"github.com/pagescope/backend/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if err := logging.Init(cfg.LogLevel); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	logger := logging.Log
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	usage, err := stats.NewUsage(cfg.DataDir)
	if err != nil {
		logger.Fatal("failed to initialize usage stats", zap.Error(err))
	}

	// A missing or unreachable store only disables persistence;
	// analysis keeps working.
	var store *storage.MongoStore
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err = storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		cancel()
		if err != nil {
			logger.Warn("persistence disabled, store unreachable", zap.Error(err))
			store = nil
		}
	} else {
		logger.Info("no MONGO_URI configured, analysis results will not be persisted")
	}

	fetcher := analyzer.NewFetcher(
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
		cfg.MaxRedirects,
		cfg.UserAgent,
	)
	textEngine := analyzer.NewTextEngine(analyzer.DefaultLexicon())

	var recordStore analyzer.RecordStore
	if store != nil {
		recordStore = store
	}
	pageAnalyzer := analyzer.New(fetcher, textEngine, recordStore, usage, logger)

	r := gin.Default()

	r.Use(middleware.ErrorHandler(logger))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Request timing for the analysis endpoint
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/api/analyze" && c.Request.Method == "POST" {
			logger.Info("analyze request handled",
				zap.String("clientIp", c.ClientIP()),
				zap.Int("status", c.Writer.Status()),
				zap.Duration("elapsed", time.Since(start)))
		}
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.POST("/analyze", analyzeURL(pageAnalyzer))
		api.GET("/scrapes", listScrapes(store))
		api.DELETE("/scrapes/:id", deleteScrape(store))

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"current": usage.Current(),
				"months":  usage.Months(),
			})
		})

		api.GET("/statistics/:month", func(c *gin.Context) {
			month := c.Param("month")
			counters, found := usage.Month(month)
			if !found {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "no recorded activity for " + month,
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"month": month,
				"stats": counters,
			})
		})
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func analyzeURL(pageAnalyzer *analyzer.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			URL string `json:"url"`
		}

		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, analyzer.Response{
				Success: false,
				Error:   "invalid request body",
			})
			return
		}

		record, saved, err := pageAnalyzer.Analyze(c.Request.Context(), request.URL)
		if errors.Is(err, analyzer.ErrEmptyURL) {
			c.JSON(http.StatusBadRequest, analyzer.Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		if errors.Is(err, analyzer.ErrFetch) {
			c.JSON(http.StatusBadGateway, analyzer.Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, analyzer.Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, analyzer.Response{
			Success:         true,
			Data:            record,
			SavedToDatabase: saved,
		})
	}
}

func listScrapes(store *storage.MongoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "persistence is not configured",
			})
			return
		}

		records, err := store.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "failed to list stored analyses",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"count": len(records),
			"data":  records,
		})
	}
}

func deleteScrape(store *storage.MongoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "persistence is not configured",
			})
			return
		}

		err := store.Delete(c.Request.Context(), c.Param("id"))
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "record not found",
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"deleted": c.Param("id"),
		})
	}
}
