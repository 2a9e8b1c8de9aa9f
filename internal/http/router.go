// Package http wires the middleware chain, the page handlers and the JSON
// endpoints the browser scripts talk to.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/draftcookie"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/flash"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/handlers"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/middleware"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/render"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/importer"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/picker"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/storage"
)

type Deps struct {
	API            *counter.Client
	Cache          *counter.CachedLister
	Flash          *flash.Codec
	Draft          *draftcookie.Codec
	Picker         *picker.Sessions
	Tracker        *importer.Tracker
	Archive        storage.Storage
	ImportMaxBytes int64
}

func NewRouter(logger *slog.Logger, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.FlashMiddleware(d.Flash),
		middleware.ErrorHandler(logger, render.ErrorPage),
	)

	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/orders")
	})

	orders := handlers.NewOrdersHandler(d.API, d.Cache, d.Flash, d.Draft, d.Picker, logger)
	r.GET("/orders", orders.List)
	r.GET("/orders/new", orders.NewForm)
	r.POST("/orders", orders.Create)
	r.POST("/orders/filters", orders.ApplyFilters)
	r.POST("/orders/filters/reset", orders.ResetFilters)
	r.GET("/orders/filters/remove/:key", orders.RemoveFilter)

	imp := handlers.NewImportHandler(d.API, d.Cache, d.Tracker, d.Archive, d.Flash, logger, d.ImportMaxBytes)
	r.GET("/import", imp.Page)
	r.POST("/import", imp.Start)

	pk := handlers.NewPickerHandler(d.Picker, logger)

	api := r.Group("/api")
	api.POST("/filters/draft", orders.SaveDraft)
	api.GET("/imports/:id/progress", imp.Progress)

	session := api.Group("/picker/:id")
	session.POST("/query", pk.Query)
	session.POST("/coords", pk.Coords)
	session.POST("/click", pk.Click)
	session.GET("/events", pk.Events)

	return r
}
