package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/middleware"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/render"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/validation"
	"github.com/IvanMykytyn/BetterMeTestTask/internal/picker"
	"github.com/IvanMykytyn/BetterMeTestTask/pkg/view"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/pages"
)

// Coordinates and subtotal arrive as text so a failed submit can re-render
// exactly what was typed.
type createOrderForm struct {
	Latitude      string `form:"latitude" binding:"required"`
	Longitude     string `form:"longitude" binding:"required"`
	Subtotal      string `form:"subtotal" binding:"required"`
	OrderDate     string `form:"orderDate"`
	PickerSession string `form:"pickerSession"`
}

// NewForm renders the create page with a fresh map picker session. The
// order date starts at today; clearing it lets the API stamp the order.
func (h *OrdersHandler) NewForm(c *gin.Context) {
	sessionID, _ := h.Picker.Create()
	render.Component(c, http.StatusOK, pages.OrderNew(view.CreateOrderPage{
		OrderDate:     time.Now().Format("2006-01-02"),
		PickerSession: sessionID,
	}, middleware.GetFlash(c)))
}

func (h *OrdersHandler) Create(c *gin.Context) {
	var form createOrderForm
	bindErr := c.ShouldBind(&form)

	page := view.CreateOrderPage{
		Latitude:      form.Latitude,
		Longitude:     form.Longitude,
		Subtotal:      form.Subtotal,
		OrderDate:     form.OrderDate,
		PickerSession: form.PickerSession,
		Errors:        map[string]string{},
	}

	if bindErr != nil {
		page.Errors = validation.FromBindError(bindErr, &form)
	}

	input, fieldErrs := form.validate()
	for k, v := range fieldErrs {
		if _, taken := page.Errors[k]; !taken {
			page.Errors[k] = v
		}
	}

	if len(page.Errors) > 0 {
		render.Component(c, http.StatusUnprocessableEntity, pages.OrderNew(page, middleware.GetFlash(c)))
		return
	}

	resp, err := h.API.Create(c.Request.Context(), input)
	if err != nil {
		var apiErr *counter.APIError
		if errors.As(err, &apiErr) {
			page.APIError = apiErr.Message
		} else {
			page.APIError = "Could not reach the orders API. Try again."
		}
		render.Component(c, http.StatusBadGateway, pages.OrderNew(page, middleware.GetFlash(c)))
		return
	}

	h.Cache.Invalidate()
	if form.PickerSession != "" {
		h.Picker.Close(form.PickerSession)
	}
	render.RedirectWithFlash(c, h.Flash, view.ListPath, view.FlashSuccess,
		fmt.Sprintf("Order #%d created.", resp.ID))
}

// validate parses the typed fields; empty strings are left to the required
// checks from binding.
func (form createOrderForm) validate() (counter.CreateOrderInput, map[string]string) {
	errs := map[string]string{}
	var in counter.CreateOrderInput

	if form.Latitude != "" {
		lat, err := strconv.ParseFloat(form.Latitude, 64)
		if err != nil || !picker.ValidLatitude(lat) {
			errs["latitude"] = "Latitude must be a number between -90 and 90."
		} else {
			in.Latitude = lat
		}
	}
	if form.Longitude != "" {
		lng, err := strconv.ParseFloat(form.Longitude, 64)
		if err != nil || !picker.ValidLongitude(lng) {
			errs["longitude"] = "Longitude must be a number between -180 and 180."
		} else {
			in.Longitude = lng
		}
	}
	if form.Subtotal != "" {
		sub, err := strconv.ParseFloat(form.Subtotal, 64)
		// ParseFloat accepts "NaN" and "Inf", which would poison the JSON body.
		if err != nil || math.IsNaN(sub) || math.IsInf(sub, 0) || sub < 0 {
			errs["subtotal"] = "Subtotal must be a positive amount."
		} else {
			in.Subtotal = sub
		}
	}
	if form.OrderDate != "" {
		t, err := time.Parse("2006-01-02", form.OrderDate)
		switch {
		case err != nil:
			errs["orderDate"] = "Order date must be a valid date."
		case t.After(time.Now()):
			errs["orderDate"] = "Order date cannot be in the future."
		default:
			in.Timestamp = t.Format("2006-01-02 15:04:05")
		}
	}

	return in, errs
}
