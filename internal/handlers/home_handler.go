package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loomhouse/internal/middleware"
	"loomhouse/internal/services"
)

// HomeHandler serves the public home page aggregate
type HomeHandler struct {
	homeService services.HomeServicer
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(homeService services.HomeServicer) *HomeHandler {
	return &HomeHandler{homeService: homeService}
}

// Home returns everything the home page renders in one response
// @Summary     Home page
// @Tags        public
// @Produce     json
// @Success     200 {object} services.HomePage "Main categories, featured products, CSR icons and reviews"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/home [get]
func (h *HomeHandler) Home(c *gin.Context) {
	timing := middleware.StartTiming(c.Request.Context(), "home", "home page sections")
	page, err := h.homeService.Home(c.Request.Context())
	timing.Stop()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
