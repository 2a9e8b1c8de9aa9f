package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/middleware"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/picker"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/shared/apperr"
)

type PickerHandler struct {
	Sessions *picker.Sessions
	Log      *slog.Logger
}

func NewPickerHandler(sessions *picker.Sessions, log *slog.Logger) *PickerHandler {
	return &PickerHandler{Sessions: sessions, Log: log}
}

func (h *PickerHandler) session(c *gin.Context) (*picker.Picker, bool) {
	p, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Picker session expired. Reload the page."))
		return nil, false
	}
	return p, true
}

type queryInput struct {
	Query string `json:"query"`
}

// Query feeds a search-box edit into the session.
func (h *PickerHandler) Query(c *gin.Context) {
	p, ok := h.session(c)
	if !ok {
		return
	}
	var in queryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid picker input.", nil))
		return
	}
	p.SetQuery(in.Query)
	c.Status(http.StatusNoContent)
}

type coordsInput struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coords feeds a lat/lng field edit into the session.
func (h *PickerHandler) Coords(c *gin.Context) {
	p, ok := h.session(c)
	if !ok {
		return
	}
	var in coordsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid picker input.", nil))
		return
	}
	p.EditCoords(in.Lat, in.Lng)
	c.Status(http.StatusNoContent)
}

// Click feeds a map click into the session.
func (h *PickerHandler) Click(c *gin.Context) {
	p, ok := h.session(c)
	if !ok {
		return
	}
	var in coordsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid picker input.", nil))
		return
	}
	p.Click(in.Lat, in.Lng)
	c.Status(http.StatusNoContent)
}

// Events streams the session's picker events to the page over SSE.
func (h *PickerHandler) Events(c *gin.Context) {
	p, ok := h.session(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events := p.Events()
	done := c.Request.Context().Done()

	c.Stream(func(w io.Writer) bool {
		select {
		case e, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(e.Type, e)
			return true
		case <-done:
			return false
		}
	})
}
