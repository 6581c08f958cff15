package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Service banner
// @Description Returns a short service identification string
// @Tags home
// @Produce plain
// @Success 200 {string} string "vikoba backend"
// @Router /example/helloworld [get]
func GetHome(c *gin.Context) {
	c.String(http.StatusOK, "vikoba backend")
}
