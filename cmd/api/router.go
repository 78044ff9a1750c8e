package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quotes-api/internal/shared/apperror"
	"quotes-api/internal/shared/middleware"
	"quotes-api/internal/shared/response"
	"quotes-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares. Logger wraps Recovery so panicking requests still
	// get an access log line; ErrorHandler sits innermost so it renders
	// errors before Logger reads the final status.
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)

	router.GET("/", helloHandler)
	router.GET("/about", aboutHandler(c))
	router.GET("/health", healthCheckHandler(c))

	setupAuthorRoutes(router, c)
	setupQuoteRoutes(router, c)

	router.NoRoute(func(ctx *gin.Context) {
		_ = ctx.Error(apperror.New(http.StatusNotFound, "NOT_FOUND", "route not found"))
	})

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(r *gin.Engine, c *container.Container) {
	authors := r.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("/deleted", c.AuthorHandler.ListDeleted)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
		authors.POST("/:id/restore", c.AuthorHandler.Restore)
		authors.GET("/:id/quotes", c.QuoteHandler.ListByAuthor)
		authors.POST("/:id/quotes", c.QuoteHandler.CreateForAuthor)
	}
}

// ========================================
// QUOTE ROUTES
// ========================================
func setupQuoteRoutes(r *gin.Engine, c *container.Container) {
	quotes := r.Group("/quotes")
	{
		quotes.GET("", c.QuoteHandler.List)
		quotes.POST("", c.QuoteHandler.Create)
		quotes.GET("/count", c.QuoteHandler.Count)
		quotes.GET("/random", c.QuoteHandler.Random)
		quotes.GET("/filter", c.QuoteHandler.Filter)
		quotes.GET("/export", c.QuoteHandler.Export)
		quotes.GET("/:id", c.QuoteHandler.GetByID)
		quotes.PUT("/:id", c.QuoteHandler.Update)
		quotes.DELETE("/:id", c.QuoteHandler.Delete)
		quotes.PATCH("/:id/increase_rating", c.QuoteHandler.IncreaseRating)
		quotes.PATCH("/:id/decrease_rating", c.QuoteHandler.DecreaseRating)
	}
}

// ========================================
// SERVICE ROUTES
// ========================================

func helloHandler(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

func aboutHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{
			"name":        appCtx.Config.App.Name,
			"version":     appCtx.Config.App.Version,
			"environment": appCtx.Config.App.Environment,
			"backend":     appCtx.Config.Store.Backend,
		})
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.HealthCheck(ctx); err != nil {
			_ = c.Error(apperror.ErrStorageUnavailable.Wrap(err))
			return
		}

		services := gin.H{"storage": "ok"}
		if appCtx.Cache != nil {
			if err := appCtx.Cache.Ping(ctx); err != nil {
				services["cache"] = "unavailable"
			} else {
				services["cache"] = "ok"
			}
		}

		response.JSON(c, http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"backend":   appCtx.Config.Store.Backend,
			"services":  services,
		})
	}
}
