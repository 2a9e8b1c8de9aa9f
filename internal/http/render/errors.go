package render

import (
	"github.com/gin-gonic/gin"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/http/middleware"
	"github.com/IvanMykytyn/BetterMeTestTask/templates/pages"
)

func ErrorPage(c *gin.Context, status int, msg string, requestID string) {
	flash := middleware.GetFlash(c)
	Component(c, status, pages.Error(status, msg, requestID, flash))
}
