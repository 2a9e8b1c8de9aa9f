package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/middleware"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/querystate"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/shared/apperr"
	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
)

// ApplyFilters turns the panel draft into applied filters and redirects to
// the resulting list URL. The draft cookie is cleared: once applied, the
// panel should mirror the URL again.
func (h *OrdersHandler) ApplyFilters(c *gin.Context) {
	var draft querystate.FiltersDraft
	if err := c.ShouldBind(&draft); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Filter values are invalid.", nil))
		return
	}

	p := querystate.Parse(c.Request.URL.Query()).WithFilters(draft.Apply())
	h.Draft.Clear(c)
	c.Redirect(http.StatusFound, p.URL(view.ListPath))
}

// SaveDraft stores panel edits without applying them, so half-filled
// filters survive navigation. Called from the panel via fetch on change.
func (h *OrdersHandler) SaveDraft(c *gin.Context) {
	var draft querystate.FiltersDraft
	if err := c.ShouldBind(&draft); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Filter values are invalid.", nil))
		return
	}
	if draft.IsZero() {
		h.Draft.Clear(c)
	} else {
		h.Draft.Set(c, draft)
	}
	c.Status(http.StatusNoContent)
}

// RemoveFilter drops a single applied filter (a chip's remove button).
// The same field is cleared from the saved draft so the panel does not
// resurrect the value on the next render.
func (h *OrdersHandler) RemoveFilter(c *gin.Context) {
	key := c.Param("key")
	p := querystate.Parse(c.Request.URL.Query())
	p = p.WithFilters(p.Filters.Remove(key))

	if draft, ok := h.Draft.Get(c); ok {
		draft = draft.Remove(key)
		if draft.IsZero() {
			h.Draft.Clear(c)
		} else {
			h.Draft.Set(c, draft)
		}
	}

	q := p.Values()
	if sortCol := c.Query("sort"); sortCol != "" {
		q.Set("sort", sortCol)
		if dir := c.Query("dir"); dir != "" {
			q.Set("dir", dir)
		}
	}
	loc := view.ListPath
	if enc := q.Encode(); enc != "" {
		loc += "?" + enc
	}
	c.Redirect(http.StatusFound, loc)
}

// ResetFilters clears search, filters and the saved draft; page size stays.
func (h *OrdersHandler) ResetFilters(c *gin.Context) {
	p := querystate.Parse(c.Request.URL.Query()).Reset()
	h.Draft.Clear(c)
	c.Redirect(http.StatusFound, p.URL(view.ListPath))
}
